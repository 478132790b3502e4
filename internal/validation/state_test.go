package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/niyyah/internal/models"
)

func TestCheckProgress(t *testing.T) {
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.Local)
	full := models.DailyProgress{Morning: true, Noon: true, Night: true}

	tests := []struct {
		name  string
		state models.ProgressState
		want  []ConflictType
	}{
		{
			name:  "clean",
			state: models.ProgressState{StartDate: "2024-01-01", DailyProgress: map[string]models.DailyProgress{"2024-01-02": full}},
			want:  nil,
		},
		{
			name:  "nothing started",
			state: models.ProgressState{},
			want:  nil,
		},
		{
			name:  "entries without start",
			state: models.ProgressState{DailyProgress: map[string]models.DailyProgress{"2024-01-02": full}},
			want:  []ConflictType{ConflictMissingStartDate},
		},
		{
			name:  "invalid start",
			state: models.ProgressState{StartDate: "01/01/2024"},
			want:  []ConflictType{ConflictInvalidDateKey},
		},
		{
			name: "bad entries",
			state: models.ProgressState{
				StartDate: "2024-01-05",
				DailyProgress: map[string]models.DailyProgress{
					"2024-01-01": full,
					"2024-02-01": full,
					"garbage":    full,
					"2024-01-06": {},
				},
			},
			want: []ConflictType{ConflictBeforeStart, ConflictEmptyEntry, ConflictFutureEntry, ConflictInvalidDateKey},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckProgress(tt.state, now)
			if len(result.Conflicts) != len(tt.want) {
				t.Fatalf("got %d conflicts, want %d: %s", len(result.Conflicts), len(tt.want), result.FormatReport())
			}
			for i, c := range result.Conflicts {
				if c.Type != tt.want[i] {
					t.Errorf("conflict %d type = %s, want %s", i, c.Type, tt.want[i])
				}
			}
		})
	}
}

func TestFormatReport(t *testing.T) {
	var empty ValidationResult
	if got := empty.FormatReport(); got != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", got)
	}

	result := ValidationResult{Conflicts: []Conflict{{Description: "first"}, {Description: "second"}}}
	report := result.FormatReport()
	if !strings.Contains(report, "- first") || !strings.Contains(report, "- second") {
		t.Errorf("FormatReport() missing entries: %q", report)
	}
}
