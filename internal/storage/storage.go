// Package storage provides the key-value storage facility the task
// collection is persisted to.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/tasklist/internal/model"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("key not found")

// Storage is a string key-value store scoped to one application.
type Storage interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// openKeyring is replaced in tests to avoid touching the system keyring.
var openKeyring = func(dir string) (Storage, error) {
	return OpenKeyringStorage(dir)
}

// Open returns the backend selected by cfg.Backend.
func Open(cfg model.StorageConfig) (Storage, error) {
	switch cfg.Backend {
	case model.BackendSQLite, "":
		return NewSQLiteStorage(cfg.Path)
	case model.BackendKeyring:
		return openKeyring(cfg.KeyringDir)
	case model.BackendMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
