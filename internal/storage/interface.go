// Package storage defines the key-value persistence contract shared by the
// SQLite, PostgreSQL and JSON file backends, and the codec for the journey
// state blob stored in it.
package storage

import "errors"

// ErrNotFound is returned by Get when a key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is the minimal string key-value surface the journey state needs.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	KV
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}
