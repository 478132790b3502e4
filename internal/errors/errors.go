// Package errors holds the sentinel errors shared by the tracker, the CLI and
// the TUI, plus the helpers main uses to report a failed command.
package errors

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/niyyah/internal/logger"
)

var (
	ErrNotStarted     = errors.New("journey not started, run 'niyyah start' first")
	ErrAlreadyStarted = errors.New("journey already started")
	// ErrNoActiveSlot covers the rest period between 05:00 and 08:00.
	ErrNoActiveSlot = errors.New("no writing slot is open right now")
	ErrSlotInactive = errors.New("slot is not active")
	ErrTextMismatch = errors.New("affirmation does not match")
	ErrSlotDone     = errors.New("slot already completed today")
)

// Replaced in tests.
var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Format renders err for the terminal. A nil error renders as "".
func Format(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + err.Error()
}

func Formatf(format string, args ...any) string {
	return Format(fmt.Errorf(format, args...))
}

// Fatal logs err, prints it and exits with status 1. It returns normally when
// err is nil.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintln(stderr, Format(err))
	exit(1)
}

func Fatalf(format string, args ...any) {
	Fatal(fmt.Errorf(format, args...))
}
