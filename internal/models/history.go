package models

import "time"

// DayStatus is the calendar classification of an effective day.
type DayStatus string

const (
	DayComplete DayStatus = "complete"
	DayPartial  DayStatus = "partial"
	DayMissed   DayStatus = "missed"
	DayFuture   DayStatus = "future"
	DayPending  DayStatus = "pending"
)

// MonthStats summarizes one calendar month of a journey.
type MonthStats struct {
	Complete int `json:"complete"`
	Partial  int `json:"partial"`
	Total    int `json:"total"`
}

// Badge is an achievement and whether it has been unlocked.
type Badge struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

// ReminderKind distinguishes the first reminder of a slot from the last-chance nudge.
type ReminderKind string

const (
	ReminderPrimary ReminderKind = "primary"
	ReminderNudge   ReminderKind = "nudge"
)

// Reminder is a computed reminder time. Delivery is not handled here.
type Reminder struct {
	Slot TimeSlot     `json:"slot"`
	Kind ReminderKind `json:"kind"`
	At   time.Time    `json:"at"`
}

// InteractionStats holds the last local hour the user acted within each slot.
type InteractionStats struct {
	MorningLastInteractHour *int `json:"morningLastInteractHour"`
	NoonLastInteractHour    *int `json:"noonLastInteractHour"`
	NightLastInteractHour   *int `json:"nightLastInteractHour"`
}

// Hour returns the recorded hour for the slot, if any.
func (s InteractionStats) Hour(slot TimeSlot) *int {
	switch slot {
	case SlotMorning:
		return s.MorningLastInteractHour
	case SlotNoon:
		return s.NoonLastInteractHour
	case SlotNight:
		return s.NightLastInteractHour
	}
	return nil
}

// WithHour returns a copy of s with the slot's hour set.
func (s InteractionStats) WithHour(slot TimeSlot, hour int) InteractionStats {
	h := hour
	switch slot {
	case SlotMorning:
		s.MorningLastInteractHour = &h
	case SlotNoon:
		s.NoonLastInteractHour = &h
	case SlotNight:
		s.NightLastInteractHour = &h
	}
	return s
}
