package progress

import (
	"fmt"
	"time"

	apperrors "github.com/julianstephens/niyyah/internal/errors"
	"github.com/julianstephens/niyyah/internal/models"
	"github.com/julianstephens/niyyah/internal/timeslot"
	"github.com/julianstephens/niyyah/internal/validation"
)

// Session is one sitting of writing a slot's affirmation until its repetition
// target is reached. It is not safe for concurrent use.
type Session struct {
	tracker     *Tracker
	slot        models.TimeSlot
	affirmation string
	display     string
	clock       func() time.Time

	target    int
	completed int
	day       models.DailyProgress
	done      bool
}

// SubmitResult reports the session after an accepted repetition.
type SubmitResult struct {
	Completed int
	Target    int
	Done      bool
	// Progress is the effective day's record once the slot has been marked.
	Progress models.DailyProgress
}

// NewSession opens a writing session for slot. The slot must be the one open
// at clock() and must not already be done on the current effective day.
func NewSession(tr *Tracker, slot models.TimeSlot, affirmation string, clock func() time.Time) (*Session, error) {
	if clock == nil {
		clock = time.Now
	}
	if !tr.IsStarted() {
		return nil, apperrors.ErrNotStarted
	}

	now := clock()
	current, ok := timeslot.CurrentSlot(now)
	if !ok {
		return nil, apperrors.ErrNoActiveSlot
	}
	if current != slot {
		return nil, fmt.Errorf("%w: %s is open, not %s", apperrors.ErrSlotInactive, current, slot)
	}
	if p, _ := tr.ProgressFor(timeslot.EffectiveDateKey(now)); p.Done(slot) {
		return nil, apperrors.ErrSlotDone
	}

	return &Session{
		tracker:     tr,
		slot:        slot,
		affirmation: affirmation,
		display:     validation.DisplayText(affirmation),
		clock:       clock,
		target:      timeslot.RepetitionTarget(slot),
	}, nil
}

// Slot returns the slot being written.
func (s *Session) Slot() models.TimeSlot { return s.slot }

// Affirmation returns the text as shown to the user.
func (s *Session) Affirmation() string { return s.display }

// Target returns the number of repetitions required.
func (s *Session) Target() int { return s.target }

// Completed returns the number of accepted repetitions.
func (s *Session) Completed() int { return s.completed }

// Remaining returns the repetitions still required.
func (s *Session) Remaining() int { return max(0, s.target-s.completed) }

// Done reports whether the target has been reached and the slot recorded.
func (s *Session) Done() bool { return s.done }

// Check scores input against the affirmation for live feedback.
func (s *Session) Check(input string) (models.ValidationInfo, models.HighlightSegments) {
	return validation.Info(input, s.affirmation), validation.Highlight(input, s.display)
}

// ShouldAutoSubmit reports whether input is an exact match and can be
// accepted without an explicit submit.
func (s *Session) ShouldAutoSubmit(input string) bool {
	if input == "" || s.done {
		return false
	}
	return validation.ShouldAutoSubmit(validation.Info(input, s.affirmation))
}

// Submit accepts input as one repetition when it reaches the submit
// threshold. Reaching the target marks the slot on the effective day at
// clock().
func (s *Session) Submit(input string) (SubmitResult, error) {
	if s.done {
		return s.result(), apperrors.ErrSlotDone
	}

	info := validation.Info(input, s.affirmation)
	if input == "" || !validation.CanSubmit(info) {
		return s.result(), fmt.Errorf("%w: %d%% written", apperrors.ErrTextMismatch, info.Percent)
	}

	s.completed++
	if s.completed >= s.target {
		day, err := s.tracker.CompleteTask(s.slot, s.clock())
		if err != nil {
			s.completed--
			return s.result(), err
		}
		s.day = day
		s.done = true
	}
	return s.result(), nil
}

func (s *Session) result() SubmitResult {
	return SubmitResult{
		Completed: s.completed,
		Target:    s.target,
		Done:      s.done,
		Progress:  s.day,
	}
}
