package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/model"
)

func (m appModel) View() string {
	// Modals take over the screen; everything behind them is paused.
	if m.confirm != nil {
		return m.placeCentered(m.confirm.render(m.width))
	}
	if m.form != nil {
		return m.placeCentered(m.form.render(m.width))
	}

	switch m.view {
	case viewLogin:
		return m.placeCentered(m.auth.renderLogin(m.width, m.loading, m.spinner.View()))
	case viewRegister:
		return m.placeCentered(m.auth.renderRegister(m.width, m.loading, m.spinner.View()))
	case viewProfile:
		return m.placeCentered(m.profile.render(m.width, m.snap.Identity))
	case viewTaskDetail:
		return m.renderDetail()
	default:
		return m.renderBoard()
	}
}

func (m appModel) renderHeader(title string) string {
	left := lipgloss.NewStyle().Bold(true).Render("taskdeck") + "  " + styleMuted().Render(title)
	right := ""
	if m.snap.Authenticated() {
		who := m.snap.Identity.Name
		if m.snap.Identity.Role == model.RoleAdmin {
			who += " (admin)"
		}
		right = styleMuted().Render(who)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return " " + left + strings.Repeat(" ", gap) + right
}

func (m appModel) renderFlash() string {
	if m.flash == "" {
		return ""
	}
	st := styleSuccess()
	if m.flashIsErr {
		st = styleError()
	}
	return " " + st.Render(m.flash)
}

func (m appModel) renderFilterBar() string {
	var search string
	if m.searchActive {
		search = m.searchInput.View()
	} else if m.filters.Search != "" {
		search = "/ " + m.filters.Search
	} else {
		search = styleMuted().Render("/ search")
	}

	status := "status: " + m.filters.Status
	sort := fmt.Sprintf("sort: %s %s", m.filters.SortBy, m.filters.SortDir)

	var spin string
	if m.loading {
		spin = "  " + m.spinner.View()
	}

	return " " + search + "   " + styleMuted().Render(status+"   "+sort) + spin
}

func (m appModel) renderBoard() string {
	title := "Dashboard"
	if m.view == viewAdmin {
		title = "Admin · all tasks"
	}

	var body string
	switch {
	case m.boardErr != "":
		body = " " + styleError().Render(m.boardErr)
	case len(m.tasksList.Items()) == 0 && !m.loading:
		body = " " + styleMuted().Render("No tasks. Press n to create one.")
	default:
		body = m.tasksList.View()
	}

	help := " " + styleMuted().Render(m.boardHelp())

	return strings.Join([]string{
		m.renderHeader(title),
		m.renderFilterBar(),
		m.renderFlash(),
		body,
		help,
	}, "\n")
}

func (m appModel) boardHelp() string {
	parts := []string{
		"enter: open", "n: new", "e: edit", "d: delete",
		"/: search", "s: status", "o/O: sort", "r: refresh",
		"p: profile",
	}
	if m.snap.Identity.Role == model.RoleAdmin {
		if m.view == viewAdmin {
			parts = append(parts, "g: my tasks")
		} else {
			parts = append(parts, "a: admin")
		}
	}
	parts = append(parts, "L: logout", "q: quit")
	return strings.Join(parts, "   ")
}

func (m appModel) renderDetail() string {
	t := m.openTask

	var body string
	switch {
	case m.detailErr != "":
		body = " " + styleError().Render(m.detailErr)
	case m.loading && t.ID == 0:
		body = " " + m.spinner.View() + " loading…"
	default:
		var b strings.Builder
		b.WriteString(" " + renderStatusBadge(t.Status) + " " + lipgloss.NewStyle().Bold(true).Render(t.Title) + "\n\n")

		meta := make([]string, 0, 4)
		meta = append(meta, "status: "+string(t.Status))
		if d := t.DueDateOnly(); d != "" {
			meta = append(meta, "due: "+d)
		}
		if t.Tags != "" {
			meta = append(meta, "tags: "+t.Tags)
		}
		if t.Owner != nil {
			meta = append(meta, "owner: "+t.Owner.Name)
		}
		b.WriteString(" " + styleMuted().Render(strings.Join(meta, "   ")) + "\n\n")

		if strings.TrimSpace(t.Description) != "" {
			w := m.width - 4
			if w > 80 {
				w = 80
			}
			if w < 20 {
				w = 20
			}
			b.WriteString(renderMarkdown(t.Description, w))
		} else {
			b.WriteString(" " + styleMuted().Render("(no description)"))
		}
		body = b.String()
	}

	help := " " + styleMuted().Render("e: edit   d: delete   r: reload   esc: back")

	return strings.Join([]string{
		m.renderHeader(fmt.Sprintf("Task #%d", m.openTaskID)),
		m.renderFlash(),
		body,
		help,
	}, "\n")
}
