// Package insights derives read-only views of a journey: calendar day
// classification, monthly totals and unlockable badges.
package insights

import (
	"time"

	"github.com/julianstephens/niyyah/internal/models"
	"github.com/julianstephens/niyyah/internal/timeslot"
)

// DayStatus classifies one day. A missing record is a valid "nothing done".
// Today is pending until all three slots are done.
func DayStatus(p models.DailyProgress, ok, isToday, isFuture bool) models.DayStatus {
	if isFuture {
		return models.DayFuture
	}

	completed := 0
	if ok {
		completed = p.Completed()
	}
	switch {
	case completed == len(models.AllSlots):
		return models.DayComplete
	case isToday:
		return models.DayPending
	case completed > 0:
		return models.DayPartial
	default:
		return models.DayMissed
	}
}

// DayCell is one calendar day of a month view.
type DayCell struct {
	Day      int
	Key      string
	Status   models.DayStatus
	IsToday  bool
	Progress models.DailyProgress
}

// Calendar returns every day of the month with its status. Days after the
// effective today and days before startKey show as future.
func Calendar(year int, month time.Month, daily map[string]models.DailyProgress, startKey string, now time.Time) []DayCell {
	todayKey := timeslot.EffectiveDateKey(now)
	loc := now.Location()

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	days := first.AddDate(0, 1, -1).Day()

	cells := make([]DayCell, 0, days)
	for d := 1; d <= days; d++ {
		key := timeslot.FormatDateKey(time.Date(year, month, d, 0, 0, 0, 0, loc))
		p, ok := daily[key]
		// Keys are zero padded, so string order is date order.
		future := key > todayKey || (startKey != "" && key < startKey)
		cells = append(cells, DayCell{
			Day:      d,
			Key:      key,
			Status:   DayStatus(p, ok, key == todayKey, future),
			IsToday:  key == todayKey,
			Progress: p,
		})
	}
	return cells
}

// LeadingBlanks returns how many empty cells precede day 1 in a Sunday-first
// week grid.
func LeadingBlanks(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// MonthStats counts the month's days between startKey and effective today,
// inclusive, and how many of them were complete or partial. Today counts as
// partial while in progress.
func MonthStats(year int, month time.Month, daily map[string]models.DailyProgress, startKey string, now time.Time) models.MonthStats {
	todayKey := timeslot.EffectiveDateKey(now)

	var stats models.MonthStats
	for _, cell := range Calendar(year, month, daily, startKey, now) {
		if cell.Key > todayKey || (startKey != "" && cell.Key < startKey) {
			continue
		}
		stats.Total++
		switch n := cell.Progress.Completed(); {
		case n == len(models.AllSlots):
			stats.Complete++
		case n > 0:
			stats.Partial++
		}
	}
	return stats
}

// Achievements returns every badge with its unlock state.
func Achievements(daily map[string]models.DailyProgress, streak, elapsedDays int) []models.Badge {
	var anyMorning, anyNight bool
	for _, p := range daily {
		anyMorning = anyMorning || p.Morning
		anyNight = anyNight || p.Night
	}

	return []models.Badge{
		{ID: "first_step", Icon: "🌱", Title: "First Step", Description: "Record your first niyyah.", Unlocked: len(daily) > 0},
		{ID: "early_bird", Icon: "🌅", Title: "Early Bird", Description: "Complete a morning niyyah.", Unlocked: anyMorning},
		{ID: "night_owl", Icon: "🦉", Title: "Night Owl", Description: "Complete an evening niyyah.", Unlocked: anyNight},
		{ID: "streak_3", Icon: "🔥", Title: "Kindled", Description: "Reach a 3 day streak.", Unlocked: streak >= 3},
		{ID: "streak_7", Icon: "🌟", Title: "Steadfast Week", Description: "Reach a 7 day streak.", Unlocked: streak >= 7},
		{ID: "habit_21", Icon: "🧠", Title: "Habit Formed", Description: "Reach a 21 day streak.", Unlocked: streak >= 21},
		{ID: "master_33", Icon: "👑", Title: "Master of Intention", Description: "Reach a 33 day streak or journey day 33.", Unlocked: streak >= 33 || elapsedDays >= 33},
	}
}

// Unlocked returns the number of unlocked badges.
func Unlocked(badges []models.Badge) int {
	n := 0
	for _, b := range badges {
		if b.Unlocked {
			n++
		}
	}
	return n
}
