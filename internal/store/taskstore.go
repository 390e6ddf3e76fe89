// Package store owns the task collection: its mutations, its filtered
// views, and its synchronization with persistent storage.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/tasklist/internal/model"
)

// FilterAll selects every task in FilteredTasks.
const FilterAll = "all"

// EventKind identifies the mutation that produced an Event.
type EventKind int

const (
	EventAdded EventKind = iota
	EventToggled
	EventDeleted
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventToggled:
		return "toggled"
	case EventDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Event describes a completed change to the collection. Task is the
// affected task after the change.
type Event struct {
	Kind  EventKind
	Task  model.Task
	Count int
}

// Listener is called after every successful mutation.
type Listener func(Event)

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithPersister sets the hook that writes the collection after each change.
func WithPersister(p Persister) Option {
	return func(s *TaskStore) { s.persister = p }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) { s.now = now }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *TaskStore) { s.logger = l }
}

// TaskStore holds the task collection, newest first.
//
// Every operation runs to completion under a mutex before the next one
// starts, so a TaskStore may be shared with bubbletea command goroutines.
type TaskStore struct {
	mu          sync.Mutex
	tasks       []model.Task
	ids         idGenerator
	persister   Persister
	now         func() time.Time
	logger      *zap.Logger
	initialized bool
	disposed    bool
	loadErr     error

	listenersMu sync.Mutex
	listeners   []subscription
	nextListen  int
}

type subscription struct {
	id int
	fn Listener
}

// New returns an empty, uninitialized TaskStore.
func New(opts ...Option) *TaskStore {
	s := &TaskStore{
		tasks:  []model.Task{},
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted collection. A missing collection starts
// empty. A corrupt one is logged, kept available through LoadErr, and
// replaced by an empty collection rather than failing. Calls after the
// first are no-ops.
func (s *TaskStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return nil
	}

	var loaded []model.Task
	if s.persister != nil {
		tasks, err := s.persister.Load(ctx)
		switch {
		case errors.Is(err, ErrCorrupt):
			s.logger.Warn("discarding corrupt persisted tasks", zap.Error(err))
			s.loadErr = err
		case err != nil:
			s.mu.Unlock()
			return fmt.Errorf("initializing task store: %w", err)
		default:
			loaded = tasks
		}
	}

	s.tasks = make([]model.Task, 0, len(loaded))
	s.tasks = append(s.tasks, loaded...)
	for _, t := range s.tasks {
		s.ids.observe(t.ID)
	}
	s.initialized = true
	count := len(s.tasks)
	s.mu.Unlock()

	s.logger.Debug("task store initialized", zap.Int("count", count))
	return nil
}

// LoadErr returns the ErrCorrupt-wrapping error that made Initialize start
// from an empty collection, or nil when the persisted tasks loaded.
func (s *TaskStore) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Dispose detaches all listeners. Later mutations return ErrDisposed.
func (s *TaskStore) Dispose() {
	s.mu.Lock()
	s.disposed = true
	s.mu.Unlock()

	s.listenersMu.Lock()
	s.listeners = nil
	s.listenersMu.Unlock()
}

// Subscribe registers fn for change events and returns a function that
// removes it.
func (s *TaskStore) Subscribe(fn Listener) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextListen
	s.nextListen++
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// AddTask validates in, prepends the new task and persists the collection.
// When a required field is blank it returns a *ValidationError and leaves
// the collection untouched.
func (s *TaskStore) AddTask(ctx context.Context, in model.TaskInput) (model.Task, error) {
	title := strings.TrimSpace(in.Title)
	category := strings.TrimSpace(in.Category)
	priority := strings.TrimSpace(in.Priority)
	date := strings.TrimSpace(in.Date)
	details := strings.TrimSpace(in.Details)

	var missing []string
	for _, f := range []struct{ name, value string }{
		{"title", title},
		{"category", category},
		{"priority", priority},
		{"date", date},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return model.Task{}, &ValidationError{Fields: missing}
	}
	if details == "" {
		details = model.DefaultDetails
	}

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return model.Task{}, ErrDisposed
	}

	now := s.now()
	task := model.Task{
		ID:        s.ids.next(now),
		Title:     title,
		Category:  category,
		Priority:  priority,
		Date:      date,
		Details:   details,
		Completed: false,
		CreatedAt: now.UTC(),
	}

	s.tasks = append([]model.Task{task}, s.tasks...)
	err := s.persistLocked(ctx)
	count := len(s.tasks)
	s.mu.Unlock()

	s.logger.Debug("task added", zap.Int64("id", task.ID), zap.String("category", task.Category))
	s.notify(Event{Kind: EventAdded, Task: task, Count: count})
	return task, err
}

// ToggleTask flips the completed flag of the task with the given id and
// returns the updated task. An unknown id is a silent no-op returning nil.
func (s *TaskStore) ToggleTask(ctx context.Context, id int64) (*model.Task, error) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil, ErrDisposed
	}

	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, nil
	}

	s.tasks[i].Completed = !s.tasks[i].Completed
	task := s.tasks[i]
	err := s.persistLocked(ctx)
	count := len(s.tasks)
	s.mu.Unlock()

	s.logger.Debug("task toggled", zap.Int64("id", id), zap.Bool("completed", task.Completed))
	s.notify(Event{Kind: EventToggled, Task: task, Count: count})
	return &task, err
}

// DeleteTask removes the task with the given id and reports whether one
// was removed. An unknown id changes nothing and persists nothing.
func (s *TaskStore) DeleteTask(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return false, ErrDisposed
	}

	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}

	task := s.tasks[i]
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	err := s.persistLocked(ctx)
	count := len(s.tasks)
	s.mu.Unlock()

	s.logger.Debug("task deleted", zap.Int64("id", id))
	s.notify(Event{Kind: EventDeleted, Task: task, Count: count})
	return true, err
}

// FilteredTasks returns the tasks whose category equals filter, in
// collection order, or every task when filter is FilterAll. The result is
// a copy.
func (s *TaskStore) FilteredTasks(filter string) []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	if filter == FilterAll {
		out := make([]model.Task, len(s.tasks))
		copy(out, s.tasks)
		return out
	}

	out := []model.Task{}
	for _, t := range s.tasks {
		if t.Category == filter {
			out = append(out, t)
		}
	}
	return out
}

// Count returns the number of tasks in the collection.
func (s *TaskStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Task returns the task with the given id.
func (s *TaskStore) Task(id int64) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// Categories returns the distinct categories present, in order of first
// appearance in the collection.
func (s *TaskStore) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var out []string
	for _, t := range s.tasks {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}

func (s *TaskStore) indexLocked(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the whole collection. The in-memory change stands
// even when the write fails.
func (s *TaskStore) persistLocked(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	snapshot := make([]model.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	if err := s.persister.Save(ctx, snapshot); err != nil {
		s.logger.Error("persisting tasks", zap.Error(err))
		return fmt.Errorf("persisting tasks: %w", err)
	}
	return nil
}

func (s *TaskStore) notify(ev Event) {
	s.listenersMu.Lock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, sub := range s.listeners {
		fns = append(fns, sub.fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
