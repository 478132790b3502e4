package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
)

type flags struct {
	Store    string `default:"~/.config/niyyah/niyyah.db"`
	Timezone string
	Debug    bool
}

const sample = `{
	// local store
	"store": "/var/lib/niyyah/niyyah.db",
	/* zone */
	"timezone": "UTC",
	"debug": true,
}`

func parseWith(t *testing.T, content string, args ...string) flags {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.jsonc")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	var f flags
	parser, err := kong.New(&f, kong.Configuration(Loader, path))
	if err != nil {
		t.Fatalf("kong.New failed: %v", err)
	}
	if _, err := parser.Parse(args); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return f
}

func TestLoaderResolvesFlags(t *testing.T) {
	f := parseWith(t, sample)
	if f.Store != "/var/lib/niyyah/niyyah.db" {
		t.Errorf("Store = %q", f.Store)
	}
	if f.Timezone != "UTC" || !f.Debug {
		t.Errorf("Timezone = %q, Debug = %v", f.Timezone, f.Debug)
	}
}

func TestLoaderFlagsOverrideFile(t *testing.T) {
	f := parseWith(t, sample, "--store=/tmp/other.db")
	if f.Store != "/tmp/other.db" {
		t.Errorf("Store = %q, want the flag value", f.Store)
	}
	if f.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want the file value", f.Timezone)
	}
}

func TestLoaderMissingFile(t *testing.T) {
	var f flags
	parser, err := kong.New(&f, kong.Configuration(Loader, filepath.Join(t.TempDir(), "absent.jsonc")))
	if err != nil {
		t.Fatalf("kong.New failed: %v", err)
	}
	if _, err := parser.Parse(nil); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if f.Store != "~/.config/niyyah/niyyah.db" {
		t.Errorf("Store = %q, want the default", f.Store)
	}
}

func TestLoaderInvalid(t *testing.T) {
	if _, err := Loader(strings.NewReader(`{"store": `)); err == nil {
		t.Error("expected an error for truncated config")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	f, err := Load(filepath.Join(dir, "missing.jsonc"))
	if err != nil {
		t.Fatalf("Load of a missing file failed: %v", err)
	}
	if f != (File{}) {
		t.Errorf("missing file decoded to %+v", f)
	}

	path := filepath.Join(dir, "config.jsonc")
	if err := os.WriteFile(path, []byte(sample), 0600); err != nil {
		t.Fatal(err)
	}
	f, err = Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := File{Store: "/var/lib/niyyah/niyyah.db", Timezone: "UTC", Debug: true}
	if f != want {
		t.Errorf("Load() = %+v, want %+v", f, want)
	}

	if err := os.WriteFile(path, []byte("{ nope"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for a malformed file")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		in, want string
	}{
		{"~/.config/niyyah/niyyah.db", filepath.Join(home, ".config/niyyah/niyyah.db")},
		{"~", home},
		{"/abs/path.db", "/abs/path.db"},
		{"~other/x", "~other/x"},
		{"postgres://host/db", "postgres://host/db"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLocation(t *testing.T) {
	for _, name := range []string{"", "Local", "  "} {
		loc, err := Location(name)
		if err != nil || loc != time.Local {
			t.Errorf("Location(%q) = %v, %v; want time.Local", name, loc, err)
		}
	}

	loc, err := Location("UTC")
	if err != nil || loc.String() != "UTC" {
		t.Errorf("Location(UTC) = %v, %v", loc, err)
	}

	if _, err := Location("Mars/Olympus_Mons"); err == nil {
		t.Error("expected an error for an unknown zone")
	}
}
