// Package keyring keeps the PostgreSQL connection string in the OS credential
// store so it never has to sit in a config file or shell history.
package keyring

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/niyyah/internal/constants"
)

var (
	ErrNotFound           = errors.New("no connection string stored in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Source reports where a resolved connection string came from.
type Source string

const (
	SourceEnv     Source = "environment"
	SourceKeyring Source = "keyring"
)

// probeUser is an account name that is never written.
const probeUser = "availability-probe"

func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, keyring.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%s connection string: %w: %v", op, ErrKeyringUnavailable, err)
	}
}

func GetConnectionString() (string, error) {
	v, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		return "", translate(err, "read")
	}
	return v, nil
}

func SetConnectionString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return errors.New("connection string cannot be empty")
	}
	return translate(keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr), "store")
}

// DeleteConnectionString returns ErrNotFound when nothing was stored.
func DeleteConnectionString() error {
	return translate(keyring.Delete(constants.AppName, constants.DefaultKeyringUser), "delete")
}

// ResolveConnectionString prefers NIYYAH_DB_CONNECTION over the keyring.
func ResolveConnectionString() (string, Source, error) {
	if v := strings.TrimSpace(os.Getenv(constants.EnvDBConnection)); v != "" {
		return v, SourceEnv, nil
	}
	v, err := GetConnectionString()
	if err != nil {
		return "", "", err
	}
	return v, SourceKeyring, nil
}

// IsAvailable reports whether the keyring answers a lookup at all. A miss
// still counts as available.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, probeUser)
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
