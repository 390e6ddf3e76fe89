package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nhle/tasklist/internal/model"
	"github.com/nhle/tasklist/internal/storage"
	"github.com/nhle/tasklist/internal/store"
)

// NewTestStorage creates an in-memory SQLiteStorage with all migrations
// applied. It automatically closes the storage when the test completes.
func NewTestStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	s, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test storage: %v", err)
		}
	})

	return s
}

// Clock is a manually advanced clock for deterministic IDs and timestamps.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a Clock frozen at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// NewTestTaskStore returns an initialized TaskStore persisting to s under
// model.DefaultStorageKey, using clock for IDs and timestamps.
func NewTestTaskStore(t *testing.T, s storage.Storage, clock *Clock) *store.TaskStore {
	t.Helper()

	ts := store.New(
		store.WithPersister(store.NewKVPersister(s, model.DefaultStorageKey)),
		store.WithClock(clock.Now),
	)
	if err := ts.Initialize(context.Background()); err != nil {
		t.Fatalf("initializing task store: %v", err)
	}
	t.Cleanup(ts.Dispose)

	return ts
}

// ValidInput returns a complete TaskInput with the given title.
func ValidInput(title, category string) model.TaskInput {
	return model.TaskInput{
		Title:    title,
		Category: category,
		Priority: model.PriorityHigh,
		Date:     "2024-01-01",
	}
}
