package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/tasklist/internal/display"
	"github.com/nhle/tasklist/internal/theme"
)

// Layout manages the terminal layout dimensions: header, notification
// line, content and status bar.
type Layout struct {
	Width              int
	Height             int
	HeaderHeight       int
	NotificationHeight int
	StatusBarHeight    int
}

// NewLayout creates a Layout with the given terminal dimensions.
// The header, notification line and status bar are one row each.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:              width,
		Height:             height,
		HeaderHeight:       1,
		NotificationHeight: 1,
		StatusBarHeight:    1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area.
func (l Layout) ContentHeight() int {
	h := l.Height - l.HeaderHeight - l.NotificationHeight - l.StatusBarHeight
	if h < 0 {
		return 0
	}
	return h
}

// RenderHeader renders the top header bar with a title on the left and a
// summary (the task count) on the right.
func (l Layout) RenderHeader(title string, summary string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	statusRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(summary)

	gap := l.Width -
		lipgloss.Width(titleRendered) -
		lipgloss.Width(statusRendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.HeaderStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.HeaderStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		statusRendered,
	)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.StatusBarStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.StatusBarStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderNotification renders the notification line, right-aligned.
// A nil notification renders as an empty line.
func (l Layout) RenderNotification(n *display.Notification) string {
	if n == nil {
		return lipgloss.NewStyle().Width(l.Width).Render("")
	}

	style := theme.NotifySuccessStyle
	if n.Kind == display.NotifyError {
		style = theme.NotifyErrorStyle
	}

	return lipgloss.NewStyle().
		Width(l.Width).
		Align(lipgloss.Right).
		Render(style.Render(n.Message))
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, notification line, content area, and status bar.
func (l Layout) RenderWithFrame(
	header string,
	notification string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		notification,
		content,
		statusBar,
	)
}
