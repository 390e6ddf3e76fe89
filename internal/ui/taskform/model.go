package taskform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasklist/internal/display"
	"github.com/nhle/tasklist/internal/model"
	"github.com/nhle/tasklist/internal/theme"
)

// TaskSubmittedMsg is dispatched when the form is completed.
type TaskSubmittedMsg struct {
	Input model.TaskInput
}

// FormCancelMsg is dispatched when the user cancels the form.
type FormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title    string
	category string
	priority string
	date     string
	details  string
}

// Model is the Bubble Tea model for the add-task form.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	categories []string
	now        func() time.Time
	width      int
	height     int
}

// New creates a new task form model offering the given categories.
func New(categories []string, width, height int) Model {
	return Model{
		fb:         &formBindings{},
		categories: categories,
		now:        time.Now,
		width:      width,
		height:     height,
	}
}

// SetCategories replaces the category options used by the next StartCreate.
func (m *Model) SetCategories(categories []string) {
	m.categories = categories
}

// StartCreate resets the fields, with the due date defaulting to today,
// and builds a fresh form. preferred preselects a category when it is
// one of the options.
func (m *Model) StartCreate(preferred string) tea.Cmd {
	m.fb.title = ""
	m.fb.category = ""
	if len(m.categories) > 0 {
		m.fb.category = m.categories[0]
	}
	for _, c := range m.categories {
		if c == preferred {
			m.fb.category = c
		}
	}
	m.fb.priority = model.PriorityMedium
	m.fb.date = display.Today(m.now())
	m.fb.details = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.form = nil
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		return m, func() tea.Msg { return FormCancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("📝 New Task") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	categoryOpts := make([]huh.Option[string], len(m.categories))
	for i, c := range m.categories {
		categoryOpts[i] = huh.NewOption(display.CategoryIcon(c)+" "+c, c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What needs to be done?").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOpts...).
				Value(&m.fb.category).
				Validate(validateRequired("Category")),
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption(display.PriorityLabel(model.PriorityHigh), model.PriorityHigh),
					huh.NewOption(display.PriorityLabel(model.PriorityMedium), model.PriorityMedium),
					huh.NewOption(display.PriorityLabel(model.PriorityLow), model.PriorityLow),
				).
				Value(&m.fb.priority),
			huh.NewInput().
				Title("Due Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fb.date).
				Validate(validateDate),
			huh.NewText().
				Title("Details").
				Placeholder("Optional details...").
				Value(&m.fb.details),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	in := model.TaskInput{
		Title:    m.fb.title,
		Category: m.fb.category,
		Priority: m.fb.priority,
		Date:     strings.TrimSpace(m.fb.date),
		Details:  m.fb.details,
	}
	return func() tea.Msg { return TaskSubmittedMsg{Input: in} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("Due Date is required")
	}
	if _, err := time.Parse(model.DateLayout, s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
