package system

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/julianstephens/niyyah/internal/backup"
	"github.com/julianstephens/niyyah/internal/cli"
	"github.com/julianstephens/niyyah/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing store before initialization."`
	Source string `help:"Source store path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	l, err := ctx.AcquireWriter()
	if err != nil {
		return err
	}
	defer l.Release()

	if c.Force {
		if err := c.wipe(ctx); err != nil {
			return err
		}
	}

	// Initialize destination store
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized niyyah storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", c.Source)
		n, err := c.migrateData(ctx)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Printf("Migration completed successfully! Copied %d keys.\n", n)
	}
	return nil
}

// wipe removes a local store file, or every key of a remote one.
func (c *InitCmd) wipe(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()

	if !backup.Supported(dbPath) {
		if err := ctx.Store.Load(); err != nil {
			// Nothing to wipe yet.
			return nil
		}
		keys, err := ctx.Store.Keys()
		if err != nil {
			return fmt.Errorf("failed to list existing keys: %w", err)
		}
		for _, key := range keys {
			if err := ctx.Store.Delete(key); err != nil {
				return fmt.Errorf("failed to delete %s: %w", key, err)
			}
		}
		ctx.Printf("Deleted %d existing keys from %s\n", len(keys), dbPath)
		return nil
	}

	// Don't delete if it's the source (user error protection)
	if c.Source != "" {
		absSource, err := filepath.Abs(c.Source)
		if err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		// Close first to release the file
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// migrateData copies every key of the source store into the destination.
func (c *InitCmd) migrateData(ctx *cli.Context) (int, error) {
	source, err := cli.NewStore(c.Source)
	if err != nil {
		return 0, err
	}
	if source.GetConfigPath() == ctx.Store.GetConfigPath() {
		return 0, fmt.Errorf("source and destination are the same store")
	}

	if err := source.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source store: %w", err)
	}
	defer source.Close()

	return copyKeys(source, ctx.Store)
}

func copyKeys(src, dst storage.Provider) (int, error) {
	keys, err := src.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source keys: %w", err)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value, err := src.Get(key)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		if err := dst.Set(key, value); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", key, err)
		}
	}
	return len(keys), nil
}
