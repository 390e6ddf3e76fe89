package app

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/tasklist/internal/display"
	"github.com/nhle/tasklist/internal/keys"
	"github.com/nhle/tasklist/internal/model"
	"github.com/nhle/tasklist/internal/store"
	appsync "github.com/nhle/tasklist/internal/sync"
	"github.com/nhle/tasklist/internal/ui"
	"github.com/nhle/tasklist/internal/ui/command"
	"github.com/nhle/tasklist/internal/ui/confirm"
	"github.com/nhle/tasklist/internal/ui/detail"
	helpview "github.com/nhle/tasklist/internal/ui/help"
	"github.com/nhle/tasklist/internal/ui/notify"
	"github.com/nhle/tasklist/internal/ui/settings"
	"github.com/nhle/tasklist/internal/ui/taskform"
	"github.com/nhle/tasklist/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewHelp
	ViewCommand
	ViewTaskCreate
	ViewConfirmDelete
	ViewSettings
)

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the task store.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        *store.TaskStore
	keys         *keys.KeyMap
	taskList     tasklist.Model
	detail       detail.Model
	helpView     helpview.Model
	commandView  command.Model
	taskForm     taskform.Model
	confirm      confirm.Model
	notify       notify.Model
	settings     settings.Model
	watcher      *appsync.Watcher
	logger       *zap.Logger
	count        int
	ready        bool
	startup      tea.Cmd
}

// New creates a new root application model for an initialized store.
// configPath is where the settings view saves cfg.
func New(s *store.TaskStore, cfg model.AppConfig, configPath string, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	k := keys.DefaultKeyMap()

	tl := tasklist.New(s, k, cfg.Display.Categories, 80, 24)
	_ = tl.SetFilter(cfg.Display.DefaultFilter)

	m := Model{
		currentView: ViewList,
		store:       s,
		keys:        k,
		taskList:    tl,
		detail:      detail.New(k, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(nil, 80, 24),
		taskForm:    taskform.New(nil, 80, 24),
		confirm:     confirm.New(80),
		notify:      notify.New(),
		settings:    settings.New(configPath, cfg, k, 80, 24),
		watcher:     appsync.New(s),
		logger:      logger,
		count:       s.Count(),
	}
	m.refreshCategories()
	if err := s.LoadErr(); err != nil {
		logger.Warn("starting with an empty task list", zap.Error(err))
		m.startup = m.notify.Show(display.LoadFailed(store.BackupKey(cfg.Storage.Key)))
	}
	return m
}

// Init loads the active tab and starts relaying store changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.taskList.Init(),
		m.watcher.Start(),
		m.startup,
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.taskList.SetSize(contentWidth, contentHeight)
		m.detail.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		m.taskForm.SetSize(contentWidth, contentHeight)
		m.confirm.SetWidth(contentWidth)
		m.settings.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case appsync.ChangedMsg:
		return m, tea.Batch(m.handleChange(msg.Event), m.watcher.WaitForNextEvent())

	case tasklist.SelectedTaskMsg:
		task, ok := m.store.Task(msg.TaskID)
		if !ok {
			return m, nil
		}
		m.detail.SetTask(&task)
		m.previousView = m.currentView
		m.currentView = ViewDetail
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewList
		return m, nil

	case detail.ActionMsg:
		switch msg.Action {
		case detail.ActionToggle:
			return m, m.toggleTask(msg.TaskID)
		case detail.ActionDelete:
			return m, m.askDelete(msg.TaskID)
		}
		return m, nil

	case taskform.TaskSubmittedMsg:
		m.currentView = ViewList
		return m, m.addTask(msg.Input)

	case taskform.FormCancelMsg:
		m.currentView = ViewList
		return m, nil

	case confirm.DeleteConfirmedMsg:
		m.currentView = ViewList
		return m, m.deleteTask(msg.TaskID)

	case confirm.DeleteCancelledMsg:
		m.currentView = m.previousView
		return m, nil

	case taskAddedResultMsg:
		if msg.err != nil && !errors.Is(msg.err, store.ErrValidation) {
			m.logger.Warn("adding task", zap.Error(msg.err))
		}
		return m, m.notify.Show(addedNotification(msg.err))

	case taskToggledResultMsg:
		if msg.err != nil {
			m.logger.Warn("toggling task", zap.Error(msg.err))
		}
		if n, ok := toggledNotification(msg.task, msg.err); ok {
			return m, m.notify.Show(n)
		}
		return m, nil

	case taskDeletedResultMsg:
		if msg.err != nil {
			m.logger.Warn("deleting task", zap.Error(msg.err))
		}
		if n, ok := deletedNotification(msg.deleted, msg.err); ok {
			return m, m.notify.Show(n)
		}
		return m, nil

	case settings.ClosedMsg:
		m.currentView = ViewList
		return m, nil

	case settings.SavedMsg:
		m.taskList.SetCategories(msg.Config.Display.Categories)
		m.refreshCategories()
		return m, m.notify.Show(display.SettingsSaved())

	case notify.ExpiredMsg:
		var cmd tea.Cmd
		m.notify, cmd = m.notify.Update(msg)
		return m, cmd

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(msg)

	case command.InvalidCommandMsg:
		m.currentView = m.previousView
		return m, m.notify.Show(invalidCommandNotification(msg.Err))

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		if cmd, handled := m.handleKeys(msg); handled {
			return m, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleKeys applies the keys that switch views. Keys are only intercepted
// in views that do not take text input.
func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch m.currentView {
	case ViewList:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit(), true

		case key.Matches(msg, m.keys.Help):
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return nil, true

		case key.Matches(msg, m.keys.Command):
			m.previousView = m.currentView
			m.currentView = ViewCommand
			return m.commandView.Focus(), true

		case key.Matches(msg, m.keys.New):
			return m.openForm(), true

		case key.Matches(msg, m.keys.Settings):
			m.previousView = m.currentView
			m.currentView = ViewSettings
			return m.settings.Init(), true

		case key.Matches(msg, m.keys.Toggle):
			if task, ok := m.taskList.SelectedTask(); ok {
				return m.toggleTask(task.ID), true
			}
			return nil, true

		case key.Matches(msg, m.keys.Delete):
			if task, ok := m.taskList.SelectedTask(); ok {
				return m.askDelete(task.ID), true
			}
			return nil, true
		}

	case ViewHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
			m.currentView = m.previousView
			return nil, true
		}

	case ViewCommand:
		if key.Matches(msg, m.keys.Back) {
			m.currentView = m.previousView
			return nil, true
		}

	case ViewTaskCreate:
		if key.Matches(msg, m.keys.Back) {
			m.currentView = ViewList
			return nil, true
		}

	case ViewConfirmDelete:
		if key.Matches(msg, m.keys.Back) || !m.confirm.Active() {
			m.currentView = m.previousView
			return nil, true
		}
	}
	return nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewTaskCreate:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case ViewConfirmDelete:
		m.confirm, cmd = m.confirm.Update(msg)
	case ViewSettings:
		m.settings, cmd = m.settings.Update(msg)
	}

	return m, cmd
}

// handleChange reacts to a store event: reload the list, track the count
// and keep the detail view in step with the task it shows.
func (m *Model) handleChange(ev store.Event) tea.Cmd {
	// The watcher may drop events, so ask the store.
	m.count = m.store.Count()
	m.refreshCategories()

	if shown, ok := m.detail.Task(); ok && shown.ID == ev.Task.ID {
		switch ev.Kind {
		case store.EventToggled:
			task := ev.Task
			m.detail.SetTask(&task)
		case store.EventDeleted:
			m.detail.SetTask(nil)
			if m.currentView == ViewDetail {
				m.currentView = ViewList
			}
		}
	}

	return m.taskList.LoadTasks()
}

// refreshCategories pushes the current tab set into the form and palette.
func (m *Model) refreshCategories() {
	var categories []string
	for _, t := range m.taskList.Tabs() {
		if t != store.FilterAll {
			categories = append(categories, t)
		}
	}
	m.taskForm.SetCategories(categories)
	m.commandView.SetCategories(categories)
}

func (m *Model) openForm() tea.Cmd {
	m.refreshCategories()
	m.previousView = m.currentView
	m.currentView = ViewTaskCreate
	return m.taskForm.StartCreate(m.taskList.Filter())
}

func (m *Model) askDelete(id int64) tea.Cmd {
	task, ok := m.store.Task(id)
	if !ok {
		return nil
	}
	m.previousView = m.currentView
	m.currentView = ViewConfirmDelete
	return m.confirm.Ask(task)
}

func (m *Model) quit() tea.Cmd {
	m.watcher.Stop()
	return tea.Quit
}

// executeCommand handles a parsed command from the command palette.
func (m *Model) executeCommand(c command.CommandMsg) tea.Cmd {
	m.logger.Debug("command", zap.String("name", string(c.Name)), zap.String("arg", c.Arg))

	switch c.Name {
	case command.CmdAll:
		m.currentView = ViewList
		return m.taskList.SetFilter(store.FilterAll)
	case command.CmdFilter:
		m.currentView = ViewList
		cmd := m.taskList.SetFilter(c.Arg)
		m.refreshCategories()
		return cmd
	case command.CmdNew:
		m.currentView = ViewList
		return m.openForm()
	case command.CmdHelp:
		m.previousView = ViewList
		m.currentView = ViewHelp
		return nil
	case command.CmdQuit:
		return m.quit()
	default:
		return nil
	}
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("📝 Task Manager", countSummary(m.count))
	notification := m.layout.RenderNotification(m.notify.Current())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, notification, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.taskList.View()
	case ViewDetail:
		return m.detail.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewTaskCreate:
		return m.taskForm.View()
	case ViewConfirmDelete:
		return m.confirm.View()
	case ViewSettings:
		return m.settings.View()
	default:
		return ""
	}
}

func countSummary(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewDetail:
		return "esc back | x complete/undo | d delete | j/k scroll"
	case ViewTaskCreate:
		return "enter next/submit | esc cancel"
	case ViewConfirmDelete:
		return "y delete | n cancel | esc back"
	case ViewSettings:
		return "e edit | enter next/save | esc back"
	default:
		return "q quit | ? help | n new | x done | d delete | tab category | : command | c settings"
	}
}
