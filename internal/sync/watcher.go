// Package sync forwards TaskStore change events into the Bubble Tea
// runtime, so the UI re-renders without the store knowing about it.
package sync

import (
	gosync "sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasklist/internal/store"
)

// ChangedMsg is a tea.Msg carrying one store change.
type ChangedMsg struct {
	Event store.Event
}

// Subscriber is the part of TaskStore the Watcher needs.
type Subscriber interface {
	Subscribe(fn store.Listener) func()
}

// Watcher relays store events over a buffered channel.
type Watcher struct {
	source      Subscriber
	eventCh     chan store.Event
	unsubscribe func()
	mu          gosync.Mutex
	running     bool
}

// New creates a Watcher for the given store.
func New(s Subscriber) *Watcher {
	return &Watcher{
		source:  s,
		eventCh: make(chan store.Event, 16),
	}
}

// Start subscribes to the store and returns a tea.Cmd that waits for the
// first event. Calling Start on a running Watcher returns nil.
func (w *Watcher) Start() tea.Cmd {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}
	w.running = true
	w.unsubscribe = w.source.Subscribe(w.send)

	return w.waitForEvent()
}

// Stop unsubscribes from the store and ends the pending wait command.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.unsubscribe()
	w.running = false
	close(w.eventCh)
}

// send forwards an event without blocking the store.
func (w *Watcher) send(ev store.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	select {
	case w.eventCh <- ev:
	default:
		// Channel full; the pending reload will pick up the latest state.
	}
}

func (w *Watcher) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-w.eventCh
		if !ok {
			return nil
		}
		return ChangedMsg{Event: ev}
	}
}

// WaitForNextEvent returns a tea.Cmd that waits for the next change.
// Call it after handling a ChangedMsg to keep listening.
func (w *Watcher) WaitForNextEvent() tea.Cmd {
	return w.waitForEvent()
}
