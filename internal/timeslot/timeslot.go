// Package timeslot maps wall-clock readings onto the journey's logical time:
// which writing slot is open, which effective day progress belongs to, and how
// many effective days have elapsed since a journey began.
//
// An effective day runs from 05:00 to 04:59 the next calendar day. Every
// function takes the current time explicitly and reads the calendar fields in
// that time's own location.
package timeslot

import (
	"fmt"
	"time"

	"github.com/julianstephens/niyyah/internal/constants"
	"github.com/julianstephens/niyyah/internal/models"
)

// SlotInfo holds the fixed attributes of a slot.
type SlotInfo struct {
	Slot      models.TimeSlot
	Label     string
	StartHour int
	// EndHour is exclusive. The night slot ends at 05:00 the next calendar day.
	EndHour   int
	TimeRange string
	Target    int
}

var slotTable = map[models.TimeSlot]SlotInfo{
	models.SlotMorning: {
		Slot:      models.SlotMorning,
		Label:     "Morning Niyyah",
		StartHour: 8,
		EndHour:   13,
		TimeRange: "8:00 AM – 1:00 PM",
		Target:    3,
	},
	models.SlotNoon: {
		Slot:      models.SlotNoon,
		Label:     "Afternoon Niyyah",
		StartHour: 13,
		EndHour:   18,
		TimeRange: "1:00 PM – 6:00 PM",
		Target:    6,
	},
	models.SlotNight: {
		Slot:      models.SlotNight,
		Label:     "Evening Niyyah",
		StartHour: 18,
		EndHour:   constants.DayBoundaryHour,
		TimeRange: "6:00 PM – 5:00 AM",
		Target:    9,
	},
}

// Info returns the fixed attributes of slot. Unknown slots return a zero SlotInfo.
func Info(slot models.TimeSlot) SlotInfo {
	return slotTable[slot]
}

// RepetitionTarget returns how many times the affirmation must be written in slot.
func RepetitionTarget(slot models.TimeSlot) int {
	return slotTable[slot].Target
}

// FormatDateKey formats t as YYYY-MM-DD using t's own calendar fields.
func FormatDateKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseDateKey returns local midnight of the day named by key in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(constants.DateFormat, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return t, nil
}

// CurrentSlot returns the open slot at now. The second result is false during
// the rest period [05:00, 08:00) when no slot is open.
func CurrentSlot(now time.Time) (models.TimeSlot, bool) {
	hour := now.Hour()
	switch {
	case hour >= constants.DayBoundaryHour && hour < 8:
		return "", false
	case hour >= 8 && hour < 13:
		return models.SlotMorning, true
	case hour >= 13 && hour < 18:
		return models.SlotNoon, true
	default:
		return models.SlotNight, true
	}
}

// IsSlotActive reports whether slot is the slot open at now.
func IsSlotActive(slot models.TimeSlot, now time.Time) bool {
	current, ok := CurrentSlot(now)
	return ok && current == slot
}

// Status classifies slot relative to now within the current effective day.
func Status(slot models.TimeSlot, now time.Time) models.SlotStatus {
	if IsSlotActive(slot, now) {
		return models.SlotStatusActive
	}

	hour := now.Hour()
	if slot == models.SlotNight {
		if hour >= constants.DayBoundaryHour && hour < 8 {
			return models.SlotStatusPassed
		}
		return models.SlotStatusUpcoming
	}

	// After midnight the day's morning and noon are behind us.
	if hour < constants.DayBoundaryHour {
		return models.SlotStatusPassed
	}
	if hour < slotTable[slot].StartHour {
		return models.SlotStatusUpcoming
	}
	return models.SlotStatusPassed
}

// midnight returns local midnight of t's calendar day shifted by days.
func midnight(t time.Time, days int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+days, 0, 0, 0, 0, t.Location())
}

// EffectiveToday returns local midnight of the effective day containing now.
func EffectiveToday(now time.Time) time.Time {
	if now.Hour() < constants.DayBoundaryHour {
		return midnight(now, -1)
	}
	return midnight(now, 0)
}

// EffectiveDateKey returns the date key progress made at now is recorded under.
func EffectiveDateKey(now time.Time) string {
	return FormatDateKey(EffectiveToday(now))
}

// EffectiveStartDate returns the journey start key for a first use at reference.
func EffectiveStartDate(reference time.Time) string {
	return EffectiveDateKey(reference)
}

// NextDayBoundary returns the instant the effective day named by key ends:
// 05:00 on the following calendar day.
func NextDayBoundary(key string, loc *time.Location) (time.Time, error) {
	day, err := ParseDateKey(key, loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day()+1, constants.DayBoundaryHour, 0, 0, 0, day.Location()), nil
}

// DaysBetween returns the number of calendar days from a to b, ignoring the
// clock and any DST shift between them.
func DaysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}

// ElapsedDays returns the 1-based effective day number of now within a journey
// that started on startKey. The start day is day 1 and the result is never
// below 1. An unparseable startKey counts as day 1.
func ElapsedDays(startKey string, now time.Time) int {
	start, err := ParseDateKey(startKey, now.Location())
	if err != nil {
		return 1
	}
	return max(1, DaysBetween(start, EffectiveToday(now))+1)
}

// DisplayDay caps the elapsed day count at the journey length.
func DisplayDay(totalElapsedDays int) int {
	return min(totalElapsedDays, constants.JourneyLength)
}

// IsJourneyComplete reports whether the journey length has been passed.
func IsJourneyComplete(totalElapsedDays int) bool {
	return totalElapsedDays > constants.JourneyLength
}
