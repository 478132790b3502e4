package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/niyyah/internal/constants"
	"github.com/julianstephens/niyyah/internal/storage/sqlite"
)

// TestIntegrationBackupRestoreWorkflow walks a store through backup, change,
// restore and a second restore.
func TestIntegrationBackupRestoreWorkflow(t *testing.T) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "niyyah.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := store.Set(constants.FirstLaunchKey, "false"); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(constants.ProgressKey, `{"startDate":"2025-01-01","dailyProgress":{"2025-01-01":{"morning":true}}}`); err != nil {
		t.Fatal(err)
	}
	store.Close()

	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2025, 1, 1, 8, 0, 0, 0, time.Local))

	backup1Path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	store = sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(constants.ProgressKey, `{"startDate":"2025-01-01","dailyProgress":{"2025-01-01":{"morning":true,"noon":true}}}`); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(constants.FirstLaunchKey); err != nil {
		t.Fatal(err)
	}
	store.Close()

	backup2Path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("failed to create second backup: %v", err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("failed to list backups: %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("expected 2 backups, got %d", len(backups))
	}
	if backups[0].Path != backup2Path || backups[1].Path != backup1Path {
		t.Errorf("unexpected backup order: %+v", backups)
	}

	// Losing the database entirely is recoverable.
	if err := os.Remove(dbPath); err != nil {
		t.Fatal(err)
	}
	preRestore, err := mgr.RestoreBackup(backup1Path)
	if err != nil {
		t.Fatalf("failed to restore without a store: %v", err)
	}
	if preRestore != "" {
		t.Errorf("no pre-restore backup expected without a store, got %s", preRestore)
	}

	if got := readKey(t, dbPath, constants.FirstLaunchKey); got != "false" {
		t.Errorf("first launch flag = %q after restore", got)
	}
	if got := readKey(t, dbPath, constants.ProgressKey); got != `{"startDate":"2025-01-01","dailyProgress":{"2025-01-01":{"morning":true}}}` {
		t.Errorf("progress after restore = %s", got)
	}

	// Restoring over a live store snapshots it first without rotation.
	preRestore, err = mgr.RestoreBackup(backup2Path)
	if err != nil {
		t.Fatalf("failed to restore second backup: %v", err)
	}
	if preRestore == "" {
		t.Fatal("expected a pre-restore backup")
	}
	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups including the pre-restore one, got %d", len(backups))
	}
	if got := readKey(t, dbPath, constants.ProgressKey); got != `{"startDate":"2025-01-01","dailyProgress":{"2025-01-01":{"morning":true,"noon":true}}}` {
		t.Errorf("progress after second restore = %s", got)
	}
}

func TestIntegrationCorruptedBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	corrupted := filepath.Join(mgr.GetBackupDir(), "niyyah-20250101-0800.db")
	if err := os.WriteFile(corrupted, []byte("not a valid sqlite database"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.RestoreBackup(corrupted); err == nil {
		t.Fatal("expected restore of a corrupted backup to fail")
	}
	if got := readKey(t, dbPath, constants.ProgressKey); got != `{"startDate":"2024-01-01","dailyProgress":{}}` {
		t.Errorf("store was modified by a failed restore: %s", got)
	}
}

func TestIntegrationNoDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing.db")
	mgr := NewManager(dbPath)

	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected an error backing up a missing store")
	}
	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("expected an error restoring a missing backup")
	}
	if _, err := NewManager("memory").CreateBackup(); err != ErrUnsupported {
		t.Errorf("memory store backup error = %v, want ErrUnsupported", err)
	}
}
