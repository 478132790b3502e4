package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/niyyah/internal/backup"
	"github.com/julianstephens/niyyah/internal/cli"
	"github.com/julianstephens/niyyah/internal/config"
	"github.com/julianstephens/niyyah/internal/constants"
	"github.com/julianstephens/niyyah/internal/content"
	"github.com/julianstephens/niyyah/internal/keyring"
	"github.com/julianstephens/niyyah/internal/lock"
	"github.com/julianstephens/niyyah/internal/storage"
	"github.com/julianstephens/niyyah/internal/storage/postgres"
	"github.com/julianstephens/niyyah/internal/timeslot"
	"github.com/julianstephens/niyyah/internal/validation"
)

// warning is a failed check that does not fail the run.
type warning struct{ msg string }

func (w warning) Error() string { return w.msg }

func warn(format string, args ...interface{}) error {
	return warning{msg: fmt.Sprintf(format, args...)}
}

type healthCheck struct {
	name    string
	needsDB bool
	run     func(ctx *cli.Context) error
}

var healthChecks = []healthCheck{
	{"Schema version", true, checkSchemaVersion},
	{"Migrations complete", true, checkMigrationsComplete},
	{"Progress readable", true, checkProgressReadable},
	{"Progress consistency", true, checkProgressConsistency},
	{"Backups present", false, checkBackupsPresent},
	{"Writer lock", false, checkWriterLock},
	{"Credential keyring", false, checkKeyring},
	{"Affirmation table", false, checkContent},
	{"Config file", false, checkConfigFile},
	{"Clock/timezone", false, checkClockTimezone},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	now := ctx.Clock()
	ctx.Printf("Running diagnostics...\n")
	ctx.Printf("Store: %s\n", ctx.Store.GetConfigPath())
	ctx.Printf("Clock: %s %s, effective day %s\n\n", now.Format(constants.TimeFormat), now.Location(), timeslot.EffectiveDateKey(now))

	hasError := false
	dbReachable := true
	if err := ctx.Store.Load(); err != nil {
		ctx.Printf("❌ Store reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Store reachable: OK\n")
	}

	for _, check := range healthChecks {
		if check.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (store not reachable)\n", check.name)
			continue
		}
		err := check.run(ctx)
		var w warning
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", check.name)
		case errors.As(err, &w):
			ctx.Printf("⚠ %s: WARNING\n", check.name)
			ctx.Printf("   %s\n", w.msg)
		default:
			ctx.Printf("❌ %s: FAIL\n", check.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Printf("\n")
	if hasError {
		ctx.Printf("Diagnostics completed with errors.\n")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Printf("All diagnostics passed!\n")
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(cli.Migrator)
	if !ok {
		// JSON and memory stores have no schema
		return nil
	}
	current, latest, err := migrator.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return nil
	}
	current, latest, err := migrator.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'niyyah migrate')", current, latest)
	}
	return nil
}

func checkProgressReadable(ctx *cli.Context) error {
	raw, err := ctx.Store.Get(constants.ProgressKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read progress: %w", err)
	}
	if _, err := storage.DecodeProgress(raw, locationOf(ctx)); err != nil {
		return fmt.Errorf("stored progress is unreadable and will be treated as empty: %w", err)
	}
	return nil
}

func checkProgressConsistency(ctx *cli.Context) error {
	raw, err := ctx.Store.Get(constants.ProgressKey)
	if err != nil {
		return nil
	}
	state, err := storage.DecodeProgress(raw, locationOf(ctx))
	if err != nil {
		return nil
	}
	result := validation.CheckProgress(state, ctx.Clock())
	if result.HasConflicts() {
		return warn("%d issue(s) found\n%s", len(result.Conflicts), result.FormatReport())
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	if !backup.Supported(path) {
		return nil
	}
	backups, err := backup.NewManager(path).ListBackups()
	if err != nil {
		return warn("failed to list backups: %v", err)
	}
	if len(backups) == 0 {
		return warn("no backups found - consider creating one with 'niyyah backup create'")
	}
	return nil
}

func checkWriterLock(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	if !backup.Supported(path) {
		return nil
	}
	owner, err := lock.Read(lock.Path(filepath.Dir(path)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return warn("lockfile is unreadable and will be replaced: %v", err)
	}
	return warn("store is locked by pid %d; close other niyyah sessions before restoring", owner.PID)
}

// checkKeyring only matters for postgres, where the connection string may
// live in the OS keyring.
func checkKeyring(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*postgres.Store); !ok {
		return nil
	}
	if !keyring.IsAvailable() {
		return warn("OS keyring is unavailable; set %s instead", constants.EnvDBConnection)
	}
	return nil
}

func checkContent(*cli.Context) error {
	_, err := content.Days()
	return err
}

// checkConfigFile parses the config file. Kong already rejected a broken file
// for every other command, so this mostly reports which file is in use.
func checkConfigFile(ctx *cli.Context) error {
	if ctx.ConfigFile == "" {
		return nil
	}
	f, err := config.Load(ctx.ConfigFile)
	if err != nil {
		return err
	}
	if f.Timezone != "" {
		if _, err := config.Location(f.Timezone); err != nil {
			return fmt.Errorf("%s: %w", ctx.ConfigFile, err)
		}
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Clock()
	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func locationOf(ctx *cli.Context) *time.Location {
	if ctx.Location != nil {
		return ctx.Location
	}
	return time.Local
}
