package journey

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/niyyah/internal/cli"
	"github.com/julianstephens/niyyah/internal/constants"
	"github.com/julianstephens/niyyah/internal/insights"
	"github.com/julianstephens/niyyah/internal/models"
	"github.com/julianstephens/niyyah/internal/timeslot"
)

var statusMarks = map[models.DayStatus]string{
	models.DayComplete: "●",
	models.DayPartial:  "◐",
	models.DayMissed:   "○",
	models.DayPending:  "◌",
	models.DayFuture:   "·",
}

type HistoryCmd struct {
	Month string `help:"Month to show (YYYY-MM). Defaults to the current effective month."`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Journey()
	if err != nil {
		return err
	}
	now := ctx.Clock()

	today := timeslot.EffectiveToday(now)
	year, month := today.Year(), today.Month()
	if c.Month != "" {
		t, err := time.Parse("2006-01", c.Month)
		if err != nil {
			return fmt.Errorf("invalid month %q (expected YYYY-MM)", c.Month)
		}
		year, month = t.Year(), t.Month()
	}

	state := tr.Snapshot()
	cells := insights.Calendar(year, month, state.DailyProgress, state.StartDate, now)

	ctx.Printf("%s %d\n", month, year)
	ctx.Printf(" Su Mo Tu We Th Fr Sa\n")
	var row strings.Builder
	col := insights.LeadingBlanks(year, month)
	row.WriteString(strings.Repeat("   ", col))
	for _, cell := range cells {
		mark := statusMarks[cell.Status]
		if cell.IsToday {
			fmt.Fprintf(&row, "[%s]", mark)
		} else {
			fmt.Fprintf(&row, " %s ", mark)
		}
		col++
		if col == 7 {
			ctx.Printf("%s\n", strings.TrimRight(row.String(), " "))
			row.Reset()
			col = 0
		}
	}
	if row.Len() > 0 {
		ctx.Printf("%s\n", strings.TrimRight(row.String(), " "))
	}

	stats := insights.MonthStats(year, month, state.DailyProgress, state.StartDate, now)
	ctx.Printf("\n● complete  ◐ partial  ○ missed  ◌ today  · not tracked\n")
	ctx.Printf("Complete %d  ·  Partial %d  ·  Tracked %d\n", stats.Complete, stats.Partial, stats.Total)
	return nil
}

type AchievementsCmd struct{}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Journey()
	if err != nil {
		return err
	}
	now := ctx.Clock()

	badges := insights.Achievements(tr.DailyProgress(), tr.TrueStreak(now), tr.ElapsedDays(now))
	ctx.Printf("Achievements (%d of %d unlocked)\n\n", insights.Unlocked(badges), len(badges))
	for _, b := range badges {
		mark := "·"
		if b.Unlocked {
			mark = "✓"
		}
		ctx.Printf("  %s %s %-20s %s\n", mark, b.Icon, b.Title, b.Description)
	}
	return nil
}

type RemindersCmd struct {
	Days int `help:"Number of days to plan, starting today." default:"${reminder_days}"`
}

func (c *RemindersCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Journey(); err != nil {
		return err
	}
	now := ctx.Clock()

	days := c.Days
	if days <= 0 {
		days = constants.DefaultReminderDays
	}
	reminders, err := ctx.Scheduler.Plan(now, days)
	if err != nil {
		return err
	}
	if len(reminders) == 0 {
		ctx.Printf("No upcoming reminders.\n")
		return nil
	}

	ctx.Printf("Upcoming reminders (computed, not delivered):\n")
	lastDate := ""
	for _, r := range reminders {
		date := r.At.Format("Mon Jan 2")
		if date != lastDate {
			ctx.Printf("\n%s\n", date)
			lastDate = date
		}
		kind := "reminder"
		if r.Kind == models.ReminderNudge {
			kind = "last call"
		}
		ctx.Printf("  %s  %-17s %s\n", r.At.Format(constants.TimeFormat), timeslot.Info(r.Slot).Label, kind)
	}
	return nil
}
