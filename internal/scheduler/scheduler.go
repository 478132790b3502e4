// Package scheduler plans reminder times for the three writing slots. It
// computes when reminders should fire and keeps the per-slot interaction
// hours that shift them; delivering a reminder is left to the caller.
package scheduler

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/niyyah/internal/constants"
	"github.com/julianstephens/niyyah/internal/logger"
	"github.com/julianstephens/niyyah/internal/models"
	"github.com/julianstephens/niyyah/internal/storage"
	"github.com/julianstephens/niyyah/internal/timeslot"
)

// nudgeHours are the last-chance hours, one hour before each slot closes.
var nudgeHours = map[models.TimeSlot]int{
	models.SlotMorning: 12,
	models.SlotNoon:    17,
	models.SlotNight:   4,
}

type Scheduler struct {
	kv  storage.KV
	log *log.Logger
}

func New(kv storage.KV) *Scheduler {
	return &Scheduler{kv: kv, log: logger.With("component", "scheduler")}
}

// OptimalHour returns the hour of the primary reminder for slot: the last
// interaction hour when it falls inside the slot, otherwise the slot's start.
func OptimalHour(slot models.TimeSlot, statsHour *int) int {
	base := timeslot.Info(slot).StartHour
	if statsHour == nil || *statsHour < 0 || *statsHour > 23 {
		return base
	}
	if !timeslot.IsSlotActive(slot, time.Date(2000, time.January, 1, *statsHour, 0, 0, 0, time.UTC)) {
		return base
	}
	return *statsHour
}

// PlanReminders lists every reminder after now for the next days calendar
// days, starting with now's own date, in chronological order.
func PlanReminders(now time.Time, days int, stats models.InteractionStats) []models.Reminder {
	if days <= 0 {
		days = constants.DefaultReminderDays
	}

	var reminders []models.Reminder
	add := func(slot models.TimeSlot, kind models.ReminderKind, at time.Time) {
		if at.After(now) {
			reminders = append(reminders, models.Reminder{Slot: slot, Kind: kind, At: at})
		}
	}

	for i := 0; i < days; i++ {
		y, m, d := now.Year(), now.Month(), now.Day()+i
		for _, slot := range models.AllSlots {
			hour := OptimalHour(slot, stats.Hour(slot))
			day := d
			// Night hours past midnight belong to the following calendar day.
			if slot == models.SlotNight && hour < constants.DayBoundaryHour {
				day++
			}
			add(slot, models.ReminderPrimary, time.Date(y, m, day, hour, 0, 0, 0, now.Location()))

			nudgeDay := d
			if slot == models.SlotNight {
				nudgeDay++
			}
			add(slot, models.ReminderNudge, time.Date(y, m, nudgeDay, nudgeHours[slot], constants.NudgeMinute, 0, 0, now.Location()))
		}
	}

	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].At.Before(reminders[j].At)
	})
	return reminders
}

// Stats returns the stored interaction hours. Missing or unreadable stats
// are empty, not an error.
func (s *Scheduler) Stats() (models.InteractionStats, error) {
	raw, err := s.kv.Get(constants.InteractionKey)
	if errors.Is(err, storage.ErrNotFound) {
		return models.InteractionStats{}, nil
	}
	if err != nil {
		return models.InteractionStats{}, fmt.Errorf("failed to read interaction stats: %w", err)
	}

	var stats models.InteractionStats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		s.log.Warn("Ignoring unreadable interaction stats", "error", err)
		return models.InteractionStats{}, nil
	}
	return stats, nil
}

// RecordInteraction stores the local hour of at as the slot's interaction hour.
func (s *Scheduler) RecordInteraction(slot models.TimeSlot, at time.Time) error {
	if !slot.Valid() {
		return fmt.Errorf("unknown slot %q", slot)
	}
	stats, err := s.Stats()
	if err != nil {
		return err
	}

	data, err := json.Marshal(stats.WithHour(slot, at.Hour()))
	if err != nil {
		return fmt.Errorf("failed to encode interaction stats: %w", err)
	}
	if err := s.kv.Set(constants.InteractionKey, string(data)); err != nil {
		return fmt.Errorf("failed to save interaction stats: %w", err)
	}
	s.log.Debug("Recorded interaction", "slot", slot, "hour", at.Hour())
	return nil
}

// Plan loads the stored interaction hours and plans reminders from now.
func (s *Scheduler) Plan(now time.Time, days int) ([]models.Reminder, error) {
	stats, err := s.Stats()
	if err != nil {
		return nil, err
	}
	return PlanReminders(now, days, stats), nil
}
