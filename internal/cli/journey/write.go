package journey

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/julianstephens/niyyah/internal/cli"
	"github.com/julianstephens/niyyah/internal/constants"
	"github.com/julianstephens/niyyah/internal/content"
	apperrors "github.com/julianstephens/niyyah/internal/errors"
	"github.com/julianstephens/niyyah/internal/logger"
	"github.com/julianstephens/niyyah/internal/models"
	"github.com/julianstephens/niyyah/internal/progress"
	"github.com/julianstephens/niyyah/internal/timeslot"
	"github.com/julianstephens/niyyah/internal/validation"
)

// WriteCmd reads one repetition per line from stdin until the slot's target
// is reached.
type WriteCmd struct {
	Slot string `arg:"" optional:"" help:"Slot to write (morning, noon, night). Defaults to the open slot."`
}

func (c *WriteCmd) Run(ctx *cli.Context) error {
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
	slot, ok, err := resolveSlot(c.Slot, now)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrNoActiveSlot
	}

	session, err := progress.NewSession(tr, slot, content.Affirmation(tr.ElapsedDays(now), slot), ctx.Clock)
	if err != nil {
		return err
	}

	info := timeslot.Info(slot)
	ctx.Printf("%s: write this %d times, one per line.\n\n  %s\n\n", info.Label, session.Target(), session.Affirmation())

	scanner := bufio.NewScanner(ctx.In())
	for !session.Done() && scanner.Scan() {
		line := scanner.Text()
		res, err := session.Submit(line)
		if errors.Is(err, apperrors.ErrTextMismatch) {
			vi, seg := session.Check(line)
			ctx.Printf("✗ %d%% written, %d%% needed. Matched %q, check %q.\n", vi.Percent, constants.SubmitThresholdPercent, seg.Correct, seg.Incorrect)
			continue
		}
		if err != nil {
			return err
		}
		ctx.Printf("✓ %d/%d\n", res.Completed, res.Target)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if !session.Done() {
		ctx.Printf("Stopped at %d of %d repetitions. Nothing was recorded.\n", session.Completed(), session.Target())
		return nil
	}

	if ctx.Scheduler != nil {
		if err := ctx.Scheduler.RecordInteraction(slot, ctx.Clock()); err != nil {
			logger.Warn("Failed to record interaction time", "slot", slot, "error", err)
		}
	}

	ctx.Printf("\n✓ %s complete.\n", info.Label)
	if tr.IsTodayComplete(ctx.Clock()) {
		ctx.Printf("✓ All three slots done today. Streak: %d\n", tr.TrueStreak(ctx.Clock()))
	}
	return nil
}

// CheckCmd scores text against an affirmation without recording anything.
type CheckCmd struct {
	Text string `arg:"" help:"Text to score."`
	Slot string `help:"Slot whose affirmation to check against. Defaults to the open slot, or morning during the rest period."`
	Day  int    `help:"Journey day whose affirmation to use. Defaults to today."`
}

func (c *CheckCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Journey()
	if err != nil {
		return err
	}
	now := ctx.Clock()

	slot, ok, err := resolveSlot(c.Slot, now)
	if err != nil {
		return err
	}
	if !ok {
		slot = models.SlotMorning
	}
	day := c.Day
	if day <= 0 {
		day = tr.ElapsedDays(now)
	}

	target := content.Affirmation(day, slot)
	info := validation.Info(c.Text, target)
	seg := validation.Highlight(c.Text, validation.DisplayText(target))

	ctx.Printf("Affirmation:    %s\n", validation.DisplayText(target))
	ctx.Printf("Written:        %d%% (%d of %d characters)\n", info.Percent, info.InputLength, info.TargetLength)
	ctx.Printf("Correct so far: %s\n", yesNo(info.IsCorrectSoFar))
	ctx.Printf("Complete match: %s\n", yesNo(info.IsCompleteMatch))
	ctx.Printf("Can submit:     %s\n", yesNo(validation.CanSubmit(info)))
	ctx.Printf("Correct:   %q\nIncorrect: %q\nRemaining: %q\n", seg.Correct, seg.Incorrect, seg.Remaining)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
