package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/niyyah/internal/backup"
	"github.com/julianstephens/niyyah/internal/lock"
	"github.com/julianstephens/niyyah/internal/logger"
	"github.com/julianstephens/niyyah/internal/progress"
	"github.com/julianstephens/niyyah/internal/scheduler"
	"github.com/julianstephens/niyyah/internal/storage"
)

type Context struct {
	Store     storage.Provider
	Tracker   *progress.Tracker
	Scheduler *scheduler.Scheduler

	// Now and Location make up the clock. Both default to the system's.
	Now      func() time.Time
	Location *time.Location

	// ConfigFile is the optional JSONC config file. Empty means none.
	ConfigFile string

	Stdout io.Writer
	Stdin  io.Reader
}

// Clock returns the current time in the configured location.
func (c *Context) Clock() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	t := now()
	if c.Location != nil {
		t = t.In(c.Location)
	}
	return t
}

func (c *Context) Out() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

func (c *Context) In() io.Reader {
	if c.Stdin == nil {
		return os.Stdin
	}
	return c.Stdin
}

// Printf writes to the command's output.
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out(), format, args...)
}

// Journey returns the progress tracker, loading it from the store on first use.
func (c *Context) Journey() (*progress.Tracker, error) {
	if c.Tracker != nil {
		return c.Tracker, nil
	}
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	tr := progress.NewTracker(c.Store, progress.WithLocation(loc))
	if err := tr.Load(c.Clock()); err != nil {
		_ = tr.Close()
		return nil, fmt.Errorf("failed to load journey: %w", err)
	}
	c.Tracker = tr
	if c.Scheduler == nil {
		c.Scheduler = scheduler.New(c.Store)
	}
	return tr, nil
}

// Close drains the tracker and closes the store.
func (c *Context) Close() error {
	var errs []error
	if c.Tracker != nil {
		errs = append(errs, c.Tracker.Close())
		c.Tracker = nil
	}
	if c.Store != nil {
		errs = append(errs, c.Store.Close())
	}
	return errors.Join(errs...)
}

// AcquireWriter takes the single-writer lock next to a local store file.
// Remote and in-memory stores need no lock and get a nil *lock.Lock, which
// is safe to Release.
func (c *Context) AcquireWriter() (*lock.Lock, error) {
	path := c.Store.GetConfigPath()
	if !backup.Supported(path) {
		return nil, nil
	}
	l, err := lock.Acquire(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	return l, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	path := c.Store.GetConfigPath()
	if !backup.Supported(path) {
		return
	}
	mgr := backup.NewManager(path)
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}
