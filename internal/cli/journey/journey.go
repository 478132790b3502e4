// Package journey holds the day-to-day commands: starting a journey,
// checking where it stands and writing the open slot's affirmation.
package journey

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/niyyah/internal/cli"
	"github.com/julianstephens/niyyah/internal/constants"
	"github.com/julianstephens/niyyah/internal/content"
	"github.com/julianstephens/niyyah/internal/models"
	"github.com/julianstephens/niyyah/internal/timeslot"
)

type StartCmd struct{}

func (c *StartCmd) Run(ctx *cli.Context) error {
	l, err := ctx.AcquireWriter()
	if err != nil {
		return err
	}
	defer l.Release()

	tr, err := ctx.Journey()
	if err != nil {
		return err
	}
	defer tr.Flush()

	now := ctx.Clock()
	if err := tr.StartJourney(now); err != nil {
		return err
	}

	ctx.Printf("✓ Journey started on %s\n", tr.StartDate())
	if slot, ok := timeslot.CurrentSlot(now); ok {
		ctx.Printf("  The %s is open now: run 'niyyah write'.\n", timeslot.Info(slot).Label)
	} else {
		ctx.Printf("  Rest period. The morning slot opens at 8:00 AM.\n")
	}
	return nil
}

// SlotReport is one slot's line in the status output.
type SlotReport struct {
	Slot      models.TimeSlot   `json:"slot"`
	Label     string            `json:"label"`
	TimeRange string            `json:"timeRange"`
	Status    models.SlotStatus `json:"status"`
	Done      bool              `json:"done"`
	Target    int               `json:"target"`
}

// StatusReport is the journey at a glance.
type StatusReport struct {
	Started     bool            `json:"started"`
	StartDate   string          `json:"startDate,omitempty"`
	Today       string          `json:"today"`
	Day         int             `json:"day"`
	DisplayDay  int             `json:"displayDay"`
	Streak      int             `json:"streak"`
	Complete    bool            `json:"journeyComplete"`
	TodayDone   bool            `json:"todayComplete"`
	CurrentSlot models.TimeSlot `json:"currentSlot,omitempty"`
	Slots       []SlotReport    `json:"slots"`
	Affirmation string          `json:"affirmation,omitempty"`
}

type StatusCmd struct {
	JSON bool `help:"Print the status as JSON."`
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Journey()
	if err != nil {
		return err
	}
	now := ctx.Clock()

	report := StatusReport{
		Started: tr.IsStarted(),
		Today:   timeslot.EffectiveDateKey(now),
		Slots:   []SlotReport{},
	}
	if report.Started {
		report.StartDate = tr.StartDate()
		report.Day = tr.ElapsedDays(now)
		report.DisplayDay = timeslot.DisplayDay(report.Day)
		report.Streak = tr.TrueStreak(now)
		report.Complete = timeslot.IsJourneyComplete(report.Day)
		report.TodayDone = tr.IsTodayComplete(now)
	}

	today, _ := tr.ProgressFor(report.Today)
	for _, slot := range models.AllSlots {
		info := timeslot.Info(slot)
		report.Slots = append(report.Slots, SlotReport{
			Slot:      slot,
			Label:     info.Label,
			TimeRange: info.TimeRange,
			Status:    timeslot.Status(slot, now),
			Done:      today.Done(slot),
			Target:    info.Target,
		})
	}
	if slot, ok := timeslot.CurrentSlot(now); ok {
		report.CurrentSlot = slot
		if report.Started {
			report.Affirmation = content.Affirmation(report.Day, slot)
		}
	}

	if c.JSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		ctx.Printf("%s\n", data)
		return nil
	}

	printStatus(ctx, report)
	return nil
}

func printStatus(ctx *cli.Context, r StatusReport) {
	if !r.Started {
		ctx.Printf("Journey not started. Run 'niyyah start' to begin your %d days.\n", constants.JourneyLength)
		return
	}

	ctx.Printf("Day %d of %d  ·  streak %d\n", r.DisplayDay, constants.JourneyLength, r.Streak)
	if r.Complete {
		ctx.Printf("✓ Journey complete! You are %d days in.\n", r.Day)
	}
	ctx.Printf("Effective day: %s (started %s)\n\n", r.Today, r.StartDate)

	for _, s := range r.Slots {
		ctx.Printf("  %s %-17s %-18s %s\n", slotMark(s), s.Label, s.TimeRange, slotNote(s))
	}

	switch {
	case r.TodayDone:
		ctx.Printf("\n✓ All three slots are done for today.\n")
	case r.CurrentSlot == "":
		ctx.Printf("\nRest period. The morning slot opens at 8:00 AM.\n")
	case r.Affirmation != "":
		ctx.Printf("\nToday's %s affirmation:\n  %s\n", r.CurrentSlot, r.Affirmation)
	}
}

func slotMark(s SlotReport) string {
	switch {
	case s.Done:
		return "✓"
	case s.Status == models.SlotStatusActive:
		return "▶"
	case s.Status == models.SlotStatusPassed:
		return "✗"
	default:
		return "·"
	}
}

func slotNote(s SlotReport) string {
	switch {
	case s.Done:
		return "done"
	case s.Status == models.SlotStatusActive:
		return fmt.Sprintf("open, write %d times", s.Target)
	default:
		return string(s.Status)
	}
}

// resolveSlot returns the named slot, or the slot open at now when name is empty.
func resolveSlot(name string, now time.Time) (models.TimeSlot, bool, error) {
	if name != "" {
		slot, err := models.ParseSlot(name)
		return slot, err == nil, err
	}
	slot, ok := timeslot.CurrentSlot(now)
	return slot, ok, nil
}
