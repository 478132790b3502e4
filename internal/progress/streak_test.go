package progress

import (
	"testing"
	"time"

	"github.com/julianstephens/niyyah/internal/models"
)

var full = models.DailyProgress{Morning: true, Noon: true, Night: true}

func at(y int, m time.Month, d, h, mi int) time.Time {
	return time.Date(y, m, d, h, mi, 0, 0, time.UTC)
}

func TestTrueStreak(t *testing.T) {
	tests := []struct {
		name  string
		daily map[string]models.DailyProgress
		start string
		now   time.Time
		want  int
	}{
		{
			name:  "two days back, today incomplete",
			daily: map[string]models.DailyProgress{"2024-01-02": full, "2024-01-03": full},
			start: "2024-01-01",
			now:   at(2024, time.January, 4, 12, 0),
			want:  2,
		},
		{
			name: "two days back, today complete",
			daily: map[string]models.DailyProgress{
				"2024-01-02": full,
				"2024-01-03": full,
				"2024-01-04": full,
			},
			start: "2024-01-01",
			now:   at(2024, time.January, 4, 12, 0),
			want:  3,
		},
		{
			name:  "today partial does not break chain",
			daily: map[string]models.DailyProgress{"2024-01-03": full, "2024-01-04": {Morning: true}},
			start: "2024-01-01",
			now:   at(2024, time.January, 4, 20, 0),
			want:  1,
		},
		{
			name:  "yesterday partial stops scan",
			daily: map[string]models.DailyProgress{"2024-01-02": full, "2024-01-03": {Morning: true, Noon: true}},
			start: "2024-01-01",
			now:   at(2024, time.January, 4, 12, 0),
			want:  0,
		},
		{
			name:  "gap stops scan",
			daily: map[string]models.DailyProgress{"2024-01-01": full, "2024-01-03": full},
			start: "2024-01-01",
			now:   at(2024, time.January, 4, 12, 0),
			want:  1,
		},
		{
			name:  "days before start never count",
			daily: map[string]models.DailyProgress{"2023-12-30": full, "2023-12-31": full, "2024-01-01": full},
			start: "2024-01-01",
			now:   at(2024, time.January, 2, 12, 0),
			want:  1,
		},
		{
			name:  "after midnight belongs to previous day",
			daily: map[string]models.DailyProgress{"2024-01-02": full, "2024-01-03": full},
			start: "2024-01-01",
			now:   at(2024, time.January, 4, 3, 30),
			want:  2,
		},
		{
			name:  "no start date",
			daily: map[string]models.DailyProgress{"2024-01-03": full},
			start: "",
			now:   at(2024, time.January, 4, 12, 0),
			want:  0,
		},
		{
			name:  "unparseable start date",
			daily: map[string]models.DailyProgress{"2024-01-03": full},
			start: "garbage",
			now:   at(2024, time.January, 4, 12, 0),
			want:  0,
		},
		{
			name:  "no data",
			daily: nil,
			start: "2024-01-01",
			now:   at(2024, time.January, 4, 12, 0),
			want:  0,
		},
		{
			name:  "start in the future",
			daily: map[string]models.DailyProgress{"2024-01-03": full},
			start: "2030-01-01",
			now:   at(2024, time.January, 4, 12, 0),
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrueStreak(tt.daily, tt.start, tt.now); got != tt.want {
				t.Errorf("TrueStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTrueStreakIsBounded(t *testing.T) {
	daily := make(map[string]models.DailyProgress)
	day := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 2000; i++ {
		daily[day.AddDate(0, 0, i).Format("2006-01-02")] = full
	}
	now := time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, 1999)

	// 1000 days back plus today.
	if got := TrueStreak(daily, "2000-01-01", now); got != 1001 {
		t.Errorf("TrueStreak() = %d, want 1001", got)
	}
}

func TestTrueStreakAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	daily := map[string]models.DailyProgress{
		"2024-03-09": full,
		"2024-03-10": full,
		"2024-03-11": full,
	}
	now := time.Date(2024, time.March, 12, 9, 0, 0, 0, ny)
	if got := TrueStreak(daily, "2024-03-09", now); got != 3 {
		t.Errorf("TrueStreak() across DST = %d, want 3", got)
	}
}
