package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/niyyah/internal/config"
	"github.com/julianstephens/niyyah/internal/keyring"
	"github.com/julianstephens/niyyah/internal/storage"
	"github.com/julianstephens/niyyah/internal/storage/postgres"
	"github.com/julianstephens/niyyah/internal/storage/sqlite"
)

// PostgresKeyword selects PostgreSQL with the connection string taken from
// NIYYAH_DB_CONNECTION or the OS keyring.
const PostgresKeyword = "postgres"

// Migrator is implemented by stores with a versioned schema.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaVersion() (current, latest int, err error)
}

// NewStore picks a backend for target: "memory", "postgres", a PostgreSQL
// connection string, a .json file or a SQLite file.
func NewStore(target string) (storage.Provider, error) {
	target = strings.TrimSpace(target)
	switch {
	case target == "":
		return nil, errors.New("no store configured")
	case target == "memory":
		return storage.NewMemoryStore(), nil
	case target == PostgresKeyword:
		connStr, source, err := keyring.ResolveConnectionString()
		if err != nil {
			return nil, fmt.Errorf("no PostgreSQL connection configured, run 'niyyah config set-connection': %w", err)
		}
		if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, fmt.Errorf("connection string from %s: %w", source, err)
		}
		return postgres.New(connStr), nil
	case isConnString(target):
		if _, err := postgres.ValidateConnString(target); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: store it with 'niyyah config set-connection' and use --store=postgres", err)
			}
			return nil, err
		}
		return postgres.New(target), nil
	}

	path, err := filepath.Abs(config.ExpandPath(target))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve store path: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

func isConnString(s string) bool {
	return postgres.IsConnString(s) || strings.Contains(s, "host=")
}
