package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "tasklist"

// KeyringStorage stores each key as one item in the system keyring.
type KeyringStorage struct {
	ring keyring.Keyring
}

// NewKeyringStorage wraps an already opened keyring.
func NewKeyringStorage(ring keyring.Keyring) *KeyringStorage {
	return &KeyringStorage{ring: ring}
}

// OpenKeyringStorage opens the system keyring. fileDir is used by the
// encrypted file backend when no OS keyring is available; empty means
// ~/.config/tasklist/keyring.
func OpenKeyringStorage(fileDir string) (*KeyringStorage, error) {
	if fileDir == "" {
		fileDir = "~/.config/tasklist/keyring"
	}
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  fileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt("tasklist-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return NewKeyringStorage(ring), nil
}

func (s *KeyringStorage) Get(_ context.Context, key string) (string, error) {
	item, err := s.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("getting %q from keyring: %w", key, err)
	}
	return string(item.Data), nil
}

func (s *KeyringStorage) Set(_ context.Context, key, value string) error {
	err := s.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: serviceName + " " + key,
	})
	if err != nil {
		return fmt.Errorf("setting %q in keyring: %w", key, err)
	}
	return nil
}

func (s *KeyringStorage) Remove(_ context.Context, key string) error {
	err := s.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("removing %q from keyring: %w", key, err)
	}
	return nil
}

// Close is a no-op; keyring handles need no release.
func (s *KeyringStorage) Close() error { return nil }
