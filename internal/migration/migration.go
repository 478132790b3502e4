// Package migration applies numbered SQL files to a database and tracks the
// applied version in a single-row schema_version table.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"
)

type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Placeholder selects the bind parameter syntax of the target database.
type Placeholder int

const (
	QuestionMark Placeholder = iota // sqlite
	Dollar                          // postgres
)

const createVersionTable = `CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

type Runner struct {
	db          *sql.DB
	fs          fs.FS
	placeholder Placeholder
}

type Option func(*Runner)

func WithPlaceholder(p Placeholder) Option {
	return func(r *Runner) { r.placeholder = p }
}

// NewRunner reads migrations from the root of migrationFS.
func NewRunner(db *sql.DB, migrationFS fs.FS, opts ...Option) *Runner {
	r := &Runner{db: db, fs: migrationFS}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runner) insertVersionSQL() string {
	param := "?"
	if r.placeholder == Dollar {
		param = "$1"
	}
	return "INSERT INTO schema_version (version) VALUES (" + param + ")"
}

// writeVersion replaces the stored version row through ex.
func (r *Runner) writeVersion(ex execer, version int) error {
	if _, err := ex.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("clear schema version: %w", err)
	}
	if _, err := ex.Exec(r.insertVersionSQL(), version); err != nil {
		return fmt.Errorf("write schema version %d: %w", version, err)
	}
	return nil
}

func (r *Runner) EnsureSchemaVersionTable() error {
	_, err := r.db.Exec(createVersionTable)
	return err
}

// GetCurrentVersion returns 0 for a database that has never been migrated.
func (r *Runner) GetCurrentVersion() (int, error) {
	if err := r.EnsureSchemaVersionTable(); err != nil {
		return 0, fmt.Errorf("failed to ensure schema_version table: %w", err)
	}

	var version int
	switch err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&version); {
	case errors.Is(err, sql.ErrNoRows):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	return version, nil
}

func (r *Runner) SetVersion(version int) error {
	if err := r.EnsureSchemaVersionTable(); err != nil {
		return fmt.Errorf("failed to ensure schema_version table: %w", err)
	}
	return r.writeVersion(r.db, version)
}

// parseFilename splits "003_add_index.sql" into 3 and "add_index".
func parseFilename(name string) (int, string, error) {
	prefix, rest, ok := strings.Cut(name, "_")
	if !ok {
		return 0, "", fmt.Errorf("invalid migration filename format: %s (expected NNN_name.sql)", name)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, "", fmt.Errorf("invalid version number in filename %s: %w", name, err)
	}
	if version < 1 {
		return 0, "", fmt.Errorf("invalid version number in filename %s: version must be at least 1", name)
	}
	return version, strings.TrimSuffix(rest, ".sql"), nil
}

// ReadMigrationFiles returns every .sql file sorted by version. Other files
// are ignored.
func (r *Runner) ReadMigrationFiles() ([]Migration, error) {
	names, err := fs.Glob(r.fs, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	migrations := make([]Migration, 0, len(names))
	seen := make(map[int]string, len(names))
	for _, name := range names {
		version, label, err := parseFilename(path.Base(name))
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("duplicate migration version %d (%s, %s)", version, prev, name)
		}
		seen[version] = name

		body, err := fs.ReadFile(r.fs, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", name, err)
		}
		migrations = append(migrations, Migration{Version: version, Name: label, SQL: string(body)})
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	return migrations, nil
}

func (r *Runner) GetLatestVersion() (int, error) {
	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		return 0, err
	}
	return latest(migrations), nil
}

func latest(migrations []Migration) int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}

func tooNew(current, supported int) error {
	return fmt.Errorf("database schema version (%d) is newer than supported version (%d) - please upgrade niyyah", current, supported)
}

// pending returns the migrations above current, in order.
func pending(migrations []Migration, current int) []Migration {
	i := sort.Search(len(migrations), func(i int) bool { return migrations[i].Version > current })
	return migrations[i:]
}

// apply runs one migration and records its version in the same transaction.
func (r *Runner) apply(m Migration) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", m.Version, err)
	}
	if _, err := tx.Exec(m.SQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
	}
	if err := r.writeVersion(tx, m.Version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migration %d: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", m.Version, err)
	}
	return nil
}

// ApplyMigrations brings the schema up to the newest file and reports how
// many migrations ran. logFn may be nil.
func (r *Runner) ApplyMigrations(logFn func(string)) (int, error) {
	logf := func(format string, args ...any) {
		if logFn != nil {
			logFn(fmt.Sprintf(format, args...))
		}
	}

	current, err := r.GetCurrentVersion()
	if err != nil {
		return 0, err
	}
	migrations, err := r.ReadMigrationFiles()
	if err != nil {
		return 0, fmt.Errorf("failed to read migrations: %w", err)
	}
	if len(migrations) == 0 {
		logf("No migration files found")
		return 0, nil
	}

	target := latest(migrations)
	if current > target {
		return 0, tooNew(current, target)
	}

	todo := pending(migrations, current)
	if len(todo) == 0 {
		logf("Database schema is up to date (version %d)", current)
		return 0, nil
	}

	logf("Migrating schema from version %d to %d (%d pending)", current, target, len(todo))
	started := time.Now()
	for n, m := range todo {
		logf("  [%d/%d] %03d_%s", n+1, len(todo), m.Version, m.Name)
		if err := r.apply(m); err != nil {
			return n, err
		}
	}
	logf("Applied %d migration(s) in %v", len(todo), time.Since(started).Round(time.Millisecond))
	return len(todo), nil
}

// ValidateVersion fails when the database was written by a newer build.
func (r *Runner) ValidateVersion() error {
	current, err := r.GetCurrentVersion()
	if err != nil {
		return err
	}
	supported, err := r.GetLatestVersion()
	if err != nil {
		return err
	}
	if current > supported {
		return tooNew(current, supported)
	}
	return nil
}
