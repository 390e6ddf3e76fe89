package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/tasklist/internal/model"
	"github.com/nhle/tasklist/internal/storage"
)

// Persister loads and saves the whole task collection.
type Persister interface {
	// Load returns the persisted collection. A missing collection is an
	// empty slice with a nil error; an undecodable one wraps ErrCorrupt
	// and has been copied aside where the next Save cannot reach it.
	Load(ctx context.Context) ([]model.Task, error)

	// Save replaces the persisted collection.
	Save(ctx context.Context, tasks []model.Task) error
}

// KVPersister keeps the collection as one JSON array under a single key.
type KVPersister struct {
	storage storage.Storage
	key     string
}

// NewKVPersister returns a persister writing to key in s. An empty key
// falls back to model.DefaultStorageKey.
func NewKVPersister(s storage.Storage, key string) *KVPersister {
	if key == "" {
		key = model.DefaultStorageKey
	}
	return &KVPersister{storage: s, key: key}
}

func (p *KVPersister) Load(ctx context.Context) ([]model.Task, error) {
	raw, err := p.storage.Get(ctx, p.key)
	if errors.Is(err, storage.ErrNotFound) {
		return []model.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	tasks, err := Decode([]byte(raw))
	if err != nil {
		// Keep the unreadable payload before the next Save replaces it.
		backup := BackupKey(p.key)
		if setErr := p.storage.Set(ctx, backup, raw); setErr != nil {
			return nil, fmt.Errorf("backing up unreadable tasks to %q: %w", backup, setErr)
		}
		return nil, fmt.Errorf("loading tasks from %q (original kept under %q): %w", p.key, backup, err)
	}
	return tasks, nil
}

// BackupKey is where Load copies an undecodable collection stored at key.
func BackupKey(key string) string {
	return key + ".corrupt"
}

func (p *KVPersister) Save(ctx context.Context, tasks []model.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := p.storage.Set(ctx, p.key, string(data)); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	return nil
}
