package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/niyyah/internal/cli"
	"github.com/julianstephens/niyyah/internal/storage"
)

type DebugCmd struct {
	StorePath    DebugStorePathCmd    `cmd:"" help:"Show the store path."`
	DumpProgress DebugDumpProgressCmd `cmd:"" help:"Dump the decoded journey state as JSON."`
	DumpKey      DebugDumpKeyCmd      `cmd:"" help:"Dump the raw value stored under a key."`
	Keys         DebugKeysCmd         `cmd:"" help:"List every stored key."`
}

func printJSON(ctx *cli.Context, v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Printf("%s\n", jsonBytes)
	return nil
}

type DebugStorePathCmd struct{}

func (cmd *DebugStorePathCmd) Run(ctx *cli.Context) error {
	// Output in machine-readable format
	return printJSON(ctx, map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpProgressCmd struct{}

func (cmd *DebugDumpProgressCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Journey()
	if err != nil {
		return err
	}
	return printJSON(ctx, tr.Snapshot())
}

type DebugDumpKeyCmd struct {
	Key string `arg:"" help:"Key to dump."`
}

func (cmd *DebugDumpKeyCmd) Run(ctx *cli.Context) error {
	value, err := ctx.Store.Get(cmd.Key)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no value stored under %s", cmd.Key)
	}
	if err != nil {
		return err
	}
	ctx.Printf("%s\n", value)
	return nil
}

type DebugKeysCmd struct{}

func (cmd *DebugKeysCmd) Run(ctx *cli.Context) error {
	keys, err := ctx.Store.Keys()
	if err != nil {
		return err
	}
	if keys == nil {
		keys = []string{}
	}
	return printJSON(ctx, keys)
}
