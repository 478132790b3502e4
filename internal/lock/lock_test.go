package lock

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	ps "github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

// withProcesses fakes the process table for the duration of the test.
func withProcesses(t *testing.T, procs map[int]string) {
	t.Helper()
	oldFind, oldPID, oldDelay := findProcessFunc, getPIDFunc, retryDelay
	t.Cleanup(func() {
		findProcessFunc, getPIDFunc, retryDelay = oldFind, oldPID, oldDelay
	})

	findProcessFunc = func(pid int) (ps.Process, error) {
		exe, ok := procs[pid]
		if !ok {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: exe}, nil
	}
	getPIDFunc = func() int { return 4242 }
	retryDelay = 0
}

func TestAcquireAndRelease(t *testing.T) {
	withProcesses(t, map[int]string{4242: "niyyah"})
	dir := t.TempDir()

	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	owner, err := Read(Path(dir))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if owner.PID != 4242 || owner.Token == "" {
		t.Errorf("lockfile owner = %+v", owner)
	}

	info, err := os.Stat(Path(dir))
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("lockfile permissions = %o, want 0600", perm)
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, err := os.Stat(Path(dir)); !errors.Is(err, os.ErrNotExist) {
		t.Error("lockfile should be gone after Release")
	}
	if err := l.Release(); err != nil {
		t.Errorf("second Release failed: %v", err)
	}
}

func TestAcquireHeldByLiveProcess(t *testing.T) {
	withProcesses(t, map[int]string{4242: "niyyah", 77: "niyyah"})
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte("77|other-token"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Acquire(dir)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("Acquire error = %v, want ErrLocked", err)
	}
	if !strings.Contains(err.Error(), "pid 77") {
		t.Errorf("error should name the holder: %v", err)
	}
}

func TestAcquireReplacesStaleLock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		procs   map[int]string
	}{
		{"dead process", "77|token", map[int]string{4242: "niyyah"}},
		{"reused pid", "77|token", map[int]string{4242: "niyyah", 77: "bash"}},
		{"malformed", "garbage", map[int]string{4242: "niyyah"}},
		{"bad pid", "abc|token", map[int]string{4242: "niyyah"}},
		{"empty token", "77|", map[int]string{4242: "niyyah", 77: "niyyah"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withProcesses(t, tt.procs)
			dir := t.TempDir()
			if err := os.WriteFile(Path(dir), []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			l, err := Acquire(dir)
			if err != nil {
				t.Fatalf("Acquire failed: %v", err)
			}
			defer l.Release()

			owner, err := Read(Path(dir))
			if err != nil || owner.PID != 4242 {
				t.Errorf("lock not taken over: %+v, %v", owner, err)
			}
		})
	}
}

func TestReleaseLeavesForeignLock(t *testing.T) {
	withProcesses(t, map[int]string{4242: "niyyah"})
	dir := t.TempDir()

	l, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	// Another process took the lock over after ours went stale.
	foreign := fmt.Sprintf("%d|%s", 99, "someone-else")
	if err := os.WriteFile(Path(dir), []byte(foreign), 0600); err != nil {
		t.Fatal(err)
	}
	if err := l.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	content, err := os.ReadFile(Path(dir))
	if err != nil {
		t.Fatalf("foreign lockfile was removed: %v", err)
	}
	if string(content) != foreign {
		t.Errorf("lockfile content = %q, want %q", content, foreign)
	}
}

func TestReadMissing(t *testing.T) {
	if _, err := Read(Path(t.TempDir())); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Read() error = %v, want not exist", err)
	}
}
