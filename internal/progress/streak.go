package progress

import (
	"time"

	"github.com/julianstephens/niyyah/internal/constants"
	"github.com/julianstephens/niyyah/internal/models"
	"github.com/julianstephens/niyyah/internal/timeslot"
)

// TrueStreak counts consecutive fully complete effective days ending yesterday,
// plus one if today is already complete. An incomplete today never breaks the
// chain. Days before startKey never count. The backward scan is bounded at
// constants.MaxStreakIterations steps.
func TrueStreak(daily map[string]models.DailyProgress, startKey string, now time.Time) int {
	if startKey == "" {
		return 0
	}
	start, err := timeslot.ParseDateKey(startKey, now.Location())
	if err != nil {
		return 0
	}

	today := timeslot.EffectiveToday(now)
	streak := 0
	for i := 1; i <= constants.MaxStreakIterations; i++ {
		// Calendar-day steps stay on local midnight across DST changes.
		check := time.Date(today.Year(), today.Month(), today.Day()-i, 0, 0, 0, 0, today.Location())
		if check.Before(start) {
			break
		}
		if !daily[timeslot.FormatDateKey(check)].IsComplete() {
			break
		}
		streak++
	}

	if daily[timeslot.FormatDateKey(today)].IsComplete() {
		streak++
	}
	return streak
}
