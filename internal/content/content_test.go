package content

import (
	"strings"
	"testing"

	"github.com/julianstephens/niyyah/internal/models"
)

func TestDays(t *testing.T) {
	table, err := Days()
	if err != nil {
		t.Fatalf("Days: %v", err)
	}
	if len(table) != 41 {
		t.Fatalf("expected 41 days, got %d", len(table))
	}
	for _, d := range table {
		if d.Theme == "" {
			t.Errorf("day %d has no theme", d.Day)
		}
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		day  int
		want int
	}{
		{-5, 0},
		{0, 0},
		{1, 0},
		{2, 1},
		{41, 40},
		{42, 0},
		{83, 0},
		{369, 368 % 41},
	}
	for _, tt := range tests {
		if got := Index(tt.day); got != tt.want {
			t.Errorf("Index(%d) = %d, want %d", tt.day, got, tt.want)
		}
	}
}

func TestAffirmation(t *testing.T) {
	day1 := Affirmation(1, models.SlotMorning)
	if !strings.HasPrefix(day1, "I begin this day with Bismillah, placing") {
		t.Errorf("Affirmation(1, morning) = %q", day1)
	}
	if got := Affirmation(42, models.SlotMorning); got != day1 {
		t.Errorf("Affirmation(42, morning) = %q, want the day 1 text", got)
	}
	if got := Affirmation(41, models.SlotNight); !strings.Contains(got, "41 days ago") {
		t.Errorf("Affirmation(41, night) = %q", got)
	}
	if Affirmation(3, models.SlotNoon) == Affirmation(3, models.SlotNight) {
		t.Error("expected distinct noon and night texts")
	}
}

func TestAffirmationFallback(t *testing.T) {
	for _, slot := range models.AllSlots {
		if got := Affirmation(0, slot); got != Fallback(slot) {
			t.Errorf("Affirmation(0, %s) = %q, want fallback", slot, got)
		}
	}
	if got := Affirmation(5, models.TimeSlot("dawn")); got != Fallback(models.SlotMorning) {
		t.Errorf("unknown slot = %q, want morning fallback", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"valid", "days:\n  - {day: 1, morning: a, noon: b, night: c}\n", ""},
		{"empty", "days: []\n", "empty"},
		{"out of order", "days:\n  - {day: 2, morning: a, noon: b, night: c}\n", "numbered"},
		{"missing slot", "days:\n  - {day: 1, morning: a, night: c}\n", "no noon text"},
		{"not yaml", "days: [\n", "parsing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Parse failed: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
