// Package lock keeps a single niyyah process writing to a local store. The
// lockfile holds "pid|token"; a lock whose process is gone, or belongs to
// some other program, is stale and gets taken over.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/niyyah/internal/constants"
	"github.com/julianstephens/niyyah/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getPIDFunc      = os.Getpid
	retryDelay      = constants.LockRetryDelay
)

// ErrLocked is returned when another live niyyah process holds the lock.
var ErrLocked = errors.New("another niyyah process is writing to this store")

// Lock is a held writer lock.
type Lock struct {
	path  string
	token string
}

// Owner is the parsed content of a lockfile.
type Owner struct {
	PID   int
	Token string
}

// Path returns the lockfile location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, constants.WriterLockfileName)
}

// Acquire takes the writer lock in dir, replacing a stale lock. A live
// holder is retried constants.LockMaxRetries times before ErrLocked.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	path := Path(dir)
	l := &Lock{path: path, token: uuid.NewString()}
	content := fmt.Sprintf("%d|%s", getPIDFunc(), l.token)

	var holder Owner
	for attempt := 0; attempt <= constants.LockMaxRetries; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err == nil {
			_, werr := f.WriteString(content)
			cerr := f.Close()
			if werr != nil || cerr != nil {
				_ = os.Remove(path)
				return nil, fmt.Errorf("failed to write lockfile: %w", errors.Join(werr, cerr))
			}
			logger.Debug("Acquired writer lock", "path", path)
			return l, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		owner, err := Read(path)
		if err != nil || !isLive(owner.PID) {
			logger.Warn("Removing stale writer lock", "path", path, "pid", owner.PID)
			if rerr := os.Remove(path); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to remove stale lockfile: %w", rerr)
			}
			continue
		}

		holder = owner
		if attempt < constants.LockMaxRetries {
			time.Sleep(retryDelay)
		}
	}
	return nil, fmt.Errorf("%w (pid %d)", ErrLocked, holder.PID)
}

// Read parses the lockfile at path.
func Read(path string) (Owner, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Owner{}, err
	}

	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return Owner{}, errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return Owner{}, errors.New("invalid process ID in lockfile")
	}
	if strings.TrimSpace(parts[1]) == "" {
		return Owner{}, errors.New("token in lockfile is empty")
	}
	return Owner{PID: pid, Token: parts[1]}, nil
}

func isLive(pid int) bool {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}

// Release removes the lockfile if this lock still owns it.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	owner, err := Read(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil || owner.Token != l.token {
		logger.Warn("Writer lock was taken over, leaving it in place", "path", l.path)
		return nil
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	logger.Debug("Released writer lock", "path", l.path)
	return nil
}
