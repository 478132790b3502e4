package models

import "fmt"

// TimeSlot is one of the three daily writing windows.
type TimeSlot string

const (
	SlotMorning TimeSlot = "morning"
	SlotNoon    TimeSlot = "noon"
	SlotNight   TimeSlot = "night"
)

// AllSlots lists the slots in the order they occur within an effective day.
var AllSlots = []TimeSlot{SlotMorning, SlotNoon, SlotNight}

// SlotStatus describes a slot relative to the current time within the effective day.
type SlotStatus string

const (
	SlotStatusActive   SlotStatus = "active"
	SlotStatusUpcoming SlotStatus = "upcoming"
	SlotStatusPassed   SlotStatus = "passed"
)

func (s TimeSlot) String() string {
	return string(s)
}

// Valid reports whether s is one of the known slots.
func (s TimeSlot) Valid() bool {
	switch s {
	case SlotMorning, SlotNoon, SlotNight:
		return true
	}
	return false
}

// ParseSlot converts a user supplied name into a TimeSlot.
func ParseSlot(name string) (TimeSlot, error) {
	switch name {
	case "morning", "am":
		return SlotMorning, nil
	case "noon", "afternoon":
		return SlotNoon, nil
	case "night", "evening", "pm":
		return SlotNight, nil
	}
	return "", fmt.Errorf("unknown slot %q (expected morning, noon or night)", name)
}
