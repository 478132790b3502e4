// Package content provides the embedded affirmation table. The table is YAML
// embedded at compile time and cycles every constants.ContentCycleDays days.
//
// Callers pass the elapsed journey day, never the streak, so content keeps
// moving forward when a streak breaks.
package content

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/niyyah/internal/constants"
	"github.com/julianstephens/niyyah/internal/models"
)

//go:embed affirmations.yaml
var affirmationsYAML []byte

// Day is one entry of the affirmation cycle.
type Day struct {
	Day     int    `yaml:"day"`
	Theme   string `yaml:"theme"`
	Morning string `yaml:"morning"`
	Noon    string `yaml:"noon"`
	Night   string `yaml:"night"`
}

// Text returns the affirmation for slot, or "" for an unknown slot.
func (d Day) Text(slot models.TimeSlot) string {
	switch slot {
	case models.SlotMorning:
		return d.Morning
	case models.SlotNoon:
		return d.Noon
	case models.SlotNight:
		return d.Night
	}
	return ""
}

var fallbacks = map[models.TimeSlot]string{
	models.SlotMorning: "I begin this day with Bismillah, trusting that Allah has a beautiful plan for me.",
	models.SlotNoon:    "Allah does not burden a soul beyond what it can bear. I am strong enough for today.",
	models.SlotNight:   "Alhamdulillah for this day — for every breath, every blessing, every test.",
}

var (
	loadOnce sync.Once
	days     []Day
	loadErr  error
)

// Parse decodes and checks an affirmation table. Entries must be numbered
// 1..n in order and every slot must have text.
func Parse(data []byte) ([]Day, error) {
	var doc struct {
		Days []Day `yaml:"days"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing affirmation table: %w", err)
	}
	if len(doc.Days) == 0 {
		return nil, fmt.Errorf("affirmation table is empty")
	}
	for i, d := range doc.Days {
		if d.Day != i+1 {
			return nil, fmt.Errorf("affirmation entry %d is numbered %d", i+1, d.Day)
		}
		for _, slot := range models.AllSlots {
			if d.Text(slot) == "" {
				return nil, fmt.Errorf("affirmation day %d has no %s text", d.Day, slot)
			}
		}
	}
	return doc.Days, nil
}

// Days returns the embedded table. An error means the embedded file is broken.
func Days() ([]Day, error) {
	loadOnce.Do(func() {
		days, loadErr = Parse(affirmationsYAML)
		if loadErr == nil && len(days) != constants.ContentCycleDays {
			loadErr = fmt.Errorf("affirmation table has %d days, want %d", len(days), constants.ContentCycleDays)
		}
	})
	return days, loadErr
}

// Index maps a 1-based journey day to its table position. Day 42 wraps to 0.
func Index(day int) int {
	if day <= 0 {
		return 0
	}
	return (day - 1) % constants.ContentCycleDays
}

// ForDay returns the table entry used on journey day day.
func ForDay(day int) (Day, bool) {
	table, err := Days()
	if err != nil || day <= 0 {
		return Day{}, false
	}
	idx := Index(day)
	if idx >= len(table) {
		return Day{}, false
	}
	return table[idx], true
}

// Affirmation returns the text to write on journey day day in slot. Days
// below 1, unknown slots and a broken table fall back to a fixed text.
func Affirmation(day int, slot models.TimeSlot) string {
	if d, ok := ForDay(day); ok {
		if text := d.Text(slot); text != "" {
			return text
		}
	}
	return Fallback(slot)
}

// Fallback returns the fixed affirmation for slot.
func Fallback(slot models.TimeSlot) string {
	if text, ok := fallbacks[slot]; ok {
		return text
	}
	return fallbacks[models.SlotMorning]
}
