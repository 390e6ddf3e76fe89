package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/tasklist/internal/display"
	"github.com/nhle/tasklist/internal/model"
	"github.com/nhle/tasklist/internal/store"
)

// taskAddedResultMsg is sent after AddTask returns.
type taskAddedResultMsg struct {
	task model.Task
	err  error
}

// taskToggledResultMsg is sent after ToggleTask returns. task is nil when
// the id no longer exists.
type taskToggledResultMsg struct {
	task *model.Task
	err  error
}

// taskDeletedResultMsg is sent after DeleteTask returns.
type taskDeletedResultMsg struct {
	deleted bool
	err     error
}

// addTask returns a command that adds a task built from the form input.
// The list reloads from the store change event, not from this result.
func (m *Model) addTask(in model.TaskInput) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		task, err := s.AddTask(context.Background(), in)
		return taskAddedResultMsg{task: task, err: err}
	}
}

// toggleTask returns a command that flips the completed flag of a task.
func (m *Model) toggleTask(id int64) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		task, err := s.ToggleTask(context.Background(), id)
		return taskToggledResultMsg{task: task, err: err}
	}
}

// deleteTask returns a command that removes a task.
func (m *Model) deleteTask(id int64) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		deleted, err := s.DeleteTask(context.Background(), id)
		return taskDeletedResultMsg{deleted: deleted, err: err}
	}
}

func addedNotification(err error) display.Notification {
	switch {
	case err == nil:
		return display.TaskAdded()
	case errors.Is(err, store.ErrValidation):
		return display.MissingFields()
	default:
		return display.Failure(err)
	}
}

func toggledNotification(task *model.Task, err error) (display.Notification, bool) {
	if err != nil {
		return display.Failure(err), true
	}
	if task == nil {
		return display.Notification{}, false
	}
	return display.TaskToggled(task.Completed), true
}

func deletedNotification(deleted bool, err error) (display.Notification, bool) {
	if err != nil {
		return display.Failure(err), true
	}
	if !deleted {
		return display.Notification{}, false
	}
	return display.TaskDeleted(), true
}

func invalidCommandNotification(err error) display.Notification {
	return display.Failure(err)
}
