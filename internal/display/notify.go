package display

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind selects the notification colour.
type NotificationKind int

const (
	NotifySuccess NotificationKind = iota
	NotifyError
)

// NotificationTTL is how long a notification stays on screen.
const NotificationTTL = 3 * time.Second

// LoadFailedTTL keeps the startup warning about unreadable tasks visible
// long enough to read.
const LoadFailedTTL = 15 * time.Second

// Notification is a transient message shown after a user action.
type Notification struct {
	ID      string
	Kind    NotificationKind
	Message string

	// TTL overrides NotificationTTL when non-zero.
	TTL time.Duration
}

func newNotification(kind NotificationKind, msg string) Notification {
	return Notification{ID: uuid.NewString(), Kind: kind, Message: msg}
}

func TaskAdded() Notification {
	return newNotification(NotifySuccess, "✅ Task added successfully!")
}

// TaskToggled reports the state the task was toggled into.
func TaskToggled(completed bool) Notification {
	if completed {
		return newNotification(NotifySuccess, "🎉 Task completed!")
	}
	return newNotification(NotifySuccess, "↩️ Task marked as incomplete!")
}

func TaskDeleted() Notification {
	return newNotification(NotifyError, "🗑️ Task deleted!")
}

func MissingFields() Notification {
	return newNotification(NotifyError, "Please fill in all required fields!")
}

func SettingsSaved() Notification {
	return newNotification(NotifySuccess, "⚙️ Settings saved!")
}

// LoadFailed reports that the saved tasks could not be read and the list
// started empty. backupKey is where the unreadable payload was kept.
func LoadFailed(backupKey string) Notification {
	n := newNotification(NotifyError,
		"⚠️ Saved tasks were unreadable; starting empty. Original kept as "+backupKey)
	n.TTL = LoadFailedTTL
	return n
}

// Failure wraps an unexpected error, typically from persistence.
func Failure(err error) Notification {
	return newNotification(NotifyError, "⚠️ "+err.Error())
}
