package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/model"
)

type confirmFocus int

const (
	confirmFocusCancel confirmFocus = iota
	confirmFocusConfirm
)

// deleteConfirm is the explicit confirmation step in front of every delete.
// While it is open no adapter call has been issued yet; cancelling closes
// it without any network traffic.
type deleteConfirm struct {
	task  model.Task
	focus confirmFocus
}

func newDeleteConfirm(task model.Task) *deleteConfirm {
	return &deleteConfirm{task: task, focus: confirmFocusCancel}
}

func (c *deleteConfirm) toggle() {
	if c.focus == confirmFocusCancel {
		c.focus = confirmFocusConfirm
	} else {
		c.focus = confirmFocusCancel
	}
}

func (c *deleteConfirm) render(width int) string {
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render("Delete")
	cancel := btnBase.Render("Cancel")
	if c.focus == confirmFocusConfirm {
		confirm = btnActive.Render("Delete")
	} else {
		cancel = btnActive.Render("Cancel")
	}

	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, sep, cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   esc: cancel")

	content := strings.Join([]string{
		fmt.Sprintf("Are you sure you want to delete %q?", c.task.Title),
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, "Delete task", content)
}
