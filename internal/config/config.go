// Package config reads the optional niyyah config file. The file is JSON with
// comments and trailing commas allowed, and its keys mirror the global flags:
//
//	{
//	  // sqlite path, .json path or postgres connection string
//	  "store": "~/.config/niyyah/niyyah.db",
//	  "timezone": "Europe/Istanbul",
//	  "debug": false,
//	}
//
// Flags and NIYYAH_* environment variables override the file.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/tidwall/jsonc"
)

// File is the decoded config file.
type File struct {
	Store    string `json:"store,omitempty"`
	Timezone string `json:"timezone,omitempty"`
	Debug    bool   `json:"debug,omitempty"`
}

// Loader is a kong.ConfigurationLoader for JSONC files.
func Loader(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	resolver, err := kong.JSON(bytes.NewReader(jsonc.ToJSON(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return resolver, nil
}

// Parse strips comments and trailing commas from data and decodes it.
func Parse(data []byte) (File, error) {
	var f File
	if len(bytes.TrimSpace(data)) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &f); err != nil {
		return File{}, fmt.Errorf("parsing config: %w", err)
	}
	return f, nil
}

// Load reads the config file at path. A missing file is an empty config.
func Load(path string) (File, error) {
	data, err := os.ReadFile(ExpandPath(path))
	if errors.Is(err, os.ErrNotExist) {
		return File{}, nil
	}
	if err != nil {
		return File{}, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Location resolves a timezone name. Empty and "Local" mean the system zone.
func Location(name string) (*time.Location, error) {
	switch strings.TrimSpace(name) {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return loc, nil
}
