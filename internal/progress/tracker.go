// Package progress owns the journey state: the start date and the per-day slot
// completion records. All reads and writes go through a Tracker, which
// persists every change through a single background writer.
package progress

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/niyyah/internal/constants"
	apperrors "github.com/julianstephens/niyyah/internal/errors"
	"github.com/julianstephens/niyyah/internal/logger"
	"github.com/julianstephens/niyyah/internal/models"
	"github.com/julianstephens/niyyah/internal/storage"
	"github.com/julianstephens/niyyah/internal/timeslot"
)

// Tracker is safe for concurrent use.
type Tracker struct {
	kv  storage.KV
	loc *time.Location
	log *log.Logger

	mu          sync.RWMutex
	state       models.ProgressState
	firstLaunch bool

	// Background writer. pending holds only the newest snapshot, so a burst of
	// mutations collapses into one write. Each snapshot fully replaces the blob.
	wmu     sync.Mutex
	wcond   *sync.Cond
	pending *string
	queued  uint64
	written uint64
	closed  bool
	wake    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLocation sets the location used to normalize legacy ISO start dates.
// It defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		if loc != nil {
			t.loc = loc
		}
	}
}

// WithLogger replaces the component logger.
func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// NewTracker starts the background writer. Call Close to drain it.
func NewTracker(kv storage.KV, opts ...Option) *Tracker {
	t := &Tracker{
		kv:          kv,
		loc:         time.Local,
		log:         logger.With("component", "progress"),
		firstLaunch: true,
		state:       models.ProgressState{DailyProgress: map[string]models.DailyProgress{}},
		wake:        make(chan struct{}, 1),
		stopped:     make(chan struct{}),
	}
	t.wcond = sync.NewCond(&t.wmu)
	for _, opt := range opts {
		opt(t)
	}
	go t.run()
	return t
}

// Load reads the persisted state. A malformed blob is logged and treated as
// no progress. When onboarding already happened but no usable start date
// survives, the start date is re-derived from now and persisted.
func (t *Tracker) Load(now time.Time) error {
	_, err := t.kv.Get(constants.FirstLaunchKey)
	firstLaunch := errors.Is(err, storage.ErrNotFound)
	if err != nil && !firstLaunch {
		return fmt.Errorf("failed to read first launch flag: %w", err)
	}

	state := models.ProgressState{DailyProgress: map[string]models.DailyProgress{}}
	raw, err := t.kv.Get(constants.ProgressKey)
	switch {
	case err == nil:
		decoded, derr := storage.DecodeProgress(raw, t.loc)
		if derr != nil {
			t.log.Warn("Stored progress is unreadable, starting fresh", "error", derr)
		}
		state = decoded
	case errors.Is(err, storage.ErrNotFound):
	default:
		return fmt.Errorf("failed to read progress: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.firstLaunch = firstLaunch
	t.state = state
	if !firstLaunch && t.state.StartDate == "" {
		t.state.StartDate = timeslot.EffectiveStartDate(now)
		t.state.StartTimestamp = now.UnixMilli()
		t.log.Info("Re-derived missing start date", "startDate", t.state.StartDate)
		t.persistLocked()
	}
	return nil
}

// IsFirstLaunch reports whether onboarding has never completed.
func (t *Tracker) IsFirstLaunch() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.firstLaunch
}

// StartJourney completes onboarding: the start date becomes the effective
// date key of now and any previous records are cleared.
func (t *Tracker) StartJourney(now time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.firstLaunch && t.state.StartDate != "" {
		return apperrors.ErrAlreadyStarted
	}

	if err := t.kv.Set(constants.FirstLaunchKey, "false"); err != nil {
		return fmt.Errorf("failed to record onboarding: %w", err)
	}
	t.firstLaunch = false
	t.state = models.ProgressState{
		StartDate:      timeslot.EffectiveStartDate(now),
		DailyProgress:  map[string]models.DailyProgress{},
		StartTimestamp: now.UnixMilli(),
	}
	t.log.Info("Journey started", "startDate", t.state.StartDate)
	t.persistLocked()
	return nil
}

// CompleteTask marks slot done on the effective day containing now and
// returns that day's record. Records are created lazily and slots are never
// unset. Persistence happens in the background; failures are logged.
func (t *Tracker) CompleteTask(slot models.TimeSlot, now time.Time) (models.DailyProgress, error) {
	if !slot.Valid() {
		return models.DailyProgress{}, fmt.Errorf("unknown slot %q", slot)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := timeslot.EffectiveDateKey(now)
	day := t.state.DailyProgress[key].Mark(slot)
	t.state.DailyProgress[key] = day

	// Without a start date there is nothing meaningful to persist yet.
	if t.state.StartDate != "" {
		t.persistLocked()
	}
	return day, nil
}

// ProgressFor returns the record stored under key.
func (t *Tracker) ProgressFor(key string) (models.DailyProgress, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.state.DailyProgress[key]
	return p, ok
}

// StartDate returns the journey start key, or "" before onboarding.
func (t *Tracker) StartDate() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.StartDate
}

// IsStarted reports whether a start date is set.
func (t *Tracker) IsStarted() bool {
	return t.StartDate() != ""
}

// DailyProgress returns a copy of every stored record.
func (t *Tracker) DailyProgress() map[string]models.DailyProgress {
	return t.Snapshot().DailyProgress
}

// Snapshot returns a deep copy of the whole state.
func (t *Tracker) Snapshot() models.ProgressState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.Clone()
}

// ElapsedDays returns the 1-based journey day at now, 1 before onboarding.
func (t *Tracker) ElapsedDays(now time.Time) int {
	start := t.StartDate()
	if start == "" {
		return 1
	}
	return timeslot.ElapsedDays(start, now)
}

// TrueStreak returns the current streak at now.
func (t *Tracker) TrueStreak(now time.Time) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return TrueStreak(t.state.DailyProgress, t.state.StartDate, now)
}

// IsTodayComplete reports whether all three slots of the effective day
// containing now are done.
func (t *Tracker) IsTodayComplete(now time.Time) bool {
	p, _ := t.ProgressFor(timeslot.EffectiveDateKey(now))
	return p.IsComplete()
}

// Reset erases the journey, returning to the first-launch state.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	// An in-flight write would otherwise land after the delete.
	t.Flush()

	for _, key := range []string{constants.ProgressKey, constants.FirstLaunchKey} {
		if err := t.kv.Delete(key); err != nil {
			return fmt.Errorf("failed to reset %s: %w", key, err)
		}
	}
	t.state = models.ProgressState{DailyProgress: map[string]models.DailyProgress{}}
	t.firstLaunch = true
	t.log.Info("Journey reset")
	return nil
}

// persistLocked snapshots the state and hands it to the writer. Callers hold t.mu,
// which keeps snapshots in mutation order.
func (t *Tracker) persistLocked() {
	blob, err := storage.EncodeProgress(t.state)
	if err != nil {
		t.log.Error("Failed to encode progress", "error", err)
		return
	}

	t.wmu.Lock()
	if t.closed {
		t.wmu.Unlock()
		t.write(blob)
		return
	}
	t.pending = &blob
	t.queued++
	t.wmu.Unlock()

	select {
	case t.wake <- struct{}{}:
	default:
	}
}

func (t *Tracker) write(blob string) {
	if err := t.kv.Set(constants.ProgressKey, blob); err != nil {
		t.log.Error("Failed to persist progress", "error", err)
	}
}

func (t *Tracker) run() {
	defer close(t.stopped)
	for range t.wake {
		for {
			t.wmu.Lock()
			blob, seq := t.pending, t.queued
			t.pending = nil
			t.wmu.Unlock()
			if blob == nil {
				break
			}

			t.write(*blob)

			t.wmu.Lock()
			if seq > t.written {
				t.written = seq
			}
			t.wcond.Broadcast()
			t.wmu.Unlock()
		}
	}
}

// Flush blocks until every change made before the call has been written.
func (t *Tracker) Flush() {
	t.wmu.Lock()
	defer t.wmu.Unlock()
	target := t.queued
	for t.written < target {
		t.wcond.Wait()
	}
}

// Close drains pending writes and stops the writer. Later mutations are
// written synchronously. Close is idempotent.
func (t *Tracker) Close() error {
	t.once.Do(func() {
		// Holding mu keeps mutators from queueing while the writer shuts down.
		t.mu.Lock()
		defer t.mu.Unlock()

		t.Flush()
		t.wmu.Lock()
		t.closed = true
		t.wmu.Unlock()
		close(t.wake)
		<-t.stopped
	})
	return nil
}
