// Package notify shows one transient notification at a time.
package notify

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasklist/internal/display"
)

// ExpiredMsg is delivered when the notification with ID has outlived its TTL.
type ExpiredMsg struct {
	ID string
}

// Model holds the current notification. A newer notification replaces
// the current one; an expiry for a replaced one is ignored.
type Model struct {
	current *display.Notification
	ttl     time.Duration
}

// New creates a notification model with the default TTL.
func New() Model {
	return Model{ttl: display.NotificationTTL}
}

// Show replaces the current notification and schedules its expiry after
// n.TTL, or the default TTL when n sets none.
func (m *Model) Show(n display.Notification) tea.Cmd {
	m.current = &n
	id := n.ID
	ttl := m.ttl
	if n.TTL > 0 {
		ttl = n.TTL
	}
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return ExpiredMsg{ID: id}
	})
}

// Update clears the notification when its expiry arrives.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(ExpiredMsg); ok {
		if m.current != nil && m.current.ID == msg.ID {
			m.current = nil
		}
	}
	return m, nil
}

// Current returns the visible notification, or nil.
func (m Model) Current() *display.Notification {
	return m.current
}
