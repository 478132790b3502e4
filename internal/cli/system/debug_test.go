package system

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/julianstephens/niyyah/internal/constants"
	"github.com/julianstephens/niyyah/internal/models"
	"github.com/julianstephens/niyyah/internal/storage"
)

func TestDebugStorePathCmd(t *testing.T) {
	ctx, out := newTestContext(storage.NewMemoryStore())

	if err := (&DebugStorePathCmd{}).Run(ctx); err != nil {
		t.Fatalf("DebugStorePathCmd.Run() error = %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if got["path"] != "memory" {
		t.Errorf("path = %q, want memory", got["path"])
	}
}

func TestDebugDumpProgressCmd(t *testing.T) {
	store := storage.NewMemoryStore()
	_ = store.Set(constants.ProgressKey, `{"startDate":"2024-03-01","dailyProgress":{"2024-03-02":{"morning":true,"noon":true,"night":false}}}`)
	ctx, out := newTestContext(store)
	t.Cleanup(func() { _ = ctx.Close() })

	if err := (&DebugDumpProgressCmd{}).Run(ctx); err != nil {
		t.Fatalf("DebugDumpProgressCmd.Run() error = %v", err)
	}

	var state models.ProgressState
	if err := json.Unmarshal(out.Bytes(), &state); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if state.StartDate != "2024-03-01" {
		t.Errorf("StartDate = %q", state.StartDate)
	}
	if p := state.DailyProgress["2024-03-02"]; !p.Morning || !p.Noon || p.Night {
		t.Errorf("DailyProgress[2024-03-02] = %+v", p)
	}
}

func TestDebugDumpKeyCmd(t *testing.T) {
	store := storage.NewMemoryStore()
	_ = store.Set(constants.FirstLaunchKey, "false")
	ctx, out := newTestContext(store)

	if err := (&DebugDumpKeyCmd{Key: constants.FirstLaunchKey}).Run(ctx); err != nil {
		t.Fatalf("DebugDumpKeyCmd.Run() error = %v", err)
	}
	if strings.TrimSpace(out.String()) != "false" {
		t.Errorf("output = %q, want false", out.String())
	}

	if err := (&DebugDumpKeyCmd{Key: "missing"}).Run(ctx); err == nil {
		t.Error("expected error for a missing key")
	}
}

func TestDebugKeysCmd(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want []string
	}{
		{"empty", nil, []string{}},
		{"sorted", []string{constants.ProgressKey, constants.FirstLaunchKey}, []string{constants.FirstLaunchKey, constants.ProgressKey}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			for _, k := range tt.keys {
				_ = store.Set(k, "{}")
			}
			ctx, out := newTestContext(store)

			if err := (&DebugKeysCmd{}).Run(ctx); err != nil {
				t.Fatalf("DebugKeysCmd.Run() error = %v", err)
			}
			var got []string
			if err := json.Unmarshal(out.Bytes(), &got); err != nil {
				t.Fatalf("output is not JSON: %v\n%s", err, out.String())
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("keys = %v, want %v", got, tt.want)
			}
		})
	}
}
