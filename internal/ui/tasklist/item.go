package tasklist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasklist/internal/display"
	"github.com/nhle/tasklist/internal/model"
	"github.com/nhle/tasklist/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// Title returns the task title for the list.
func (i TaskItem) Title() string { return i.Task.Title }

// Description returns a short summary line for the list.
func (i TaskItem) Description() string {
	parts := []string{
		display.CategoryIcon(i.Task.Category) + " " + i.Task.Category,
		display.PriorityLabel(i.Task.Priority),
		"Due: " + display.DueLabel(i.Task.Date, time.Now()),
	}
	return strings.Join(parts, " | ")
}

// TaskDelegate implements list.ItemDelegate for rendering tasks.
type TaskDelegate struct {
	// Now is the reference time for due labels.
	Now func() time.Time
}

// Height returns the number of lines each item takes.
func (d TaskDelegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d TaskDelegate) Spacing() int { return 1 }

// Update handles per-item messages (unused).
func (d TaskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a task as a title line and a meta line.
func (d TaskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}
	fmt.Fprint(w, d.render(ti.Task, index == m.Index()))
}

func (d TaskDelegate) render(task model.Task, selected bool) string {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}

	check := "○"
	title := task.Title
	if task.Completed {
		check = "✓"
		title = theme.CompletedStyle.Render(title)
	}

	priority := theme.PriorityStyle(task.Priority).Render(display.PriorityLabel(task.Priority))
	due := theme.DueDateStyle.Render("📅 Due: " + display.DueLabel(task.Date, now()))
	category := display.CategoryIcon(task.Category) + " " + task.Category

	line1 := check + " " + title
	line2 := lipgloss.JoinHorizontal(lipgloss.Top,
		"  ", category, "  ", priority, "  ", due,
	)
	content := line1 + "\n" + line2

	if selected {
		return theme.SelectedItemStyle.Render(content)
	}
	return theme.ListItemStyle.Render(content)
}
