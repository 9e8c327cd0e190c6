package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func modalBodyWidth(width int) int {
	w := width - 10
	if w > 64 {
		w = 64
	}
	if w < 28 {
		w = 28
	}
	return w
}

// renderModalBox draws the shared modal chrome: a header strip and a padded
// body, no borders (nested borders show background artifacts on some
// terminals).
func renderModalBox(width int, title, content string) string {
	bodyW := modalBodyWidth(width)

	header := lipgloss.NewStyle().
		Bold(true).
		Width(bodyW).
		Padding(0, 1).
		Background(colorControlBg).
		Foreground(colorSurfaceFg).
		Render(title)

	body := lipgloss.NewStyle().
		Width(bodyW).
		Padding(1, 1).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func (m appModel) placeCentered(box string) string {
	w := m.width
	h := m.height
	if w <= 0 || h <= 0 {
		return box
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
}
