package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"taskdeck/internal/model"
)

type taskItem struct {
	task model.Task
	// showOwner is set on the admin board, where each row carries the
	// task's owner.
	showOwner bool
}

func (i taskItem) FilterValue() string { return i.task.Title }

func (i taskItem) Title() string {
	title := strings.TrimSpace(i.task.Title)
	if title == "" {
		title = "(untitled)"
	}

	parts := []string{renderStatusBadge(i.task.Status), title}

	meta := make([]string, 0, 3)
	if d := i.task.DueDateOnly(); d != "" {
		meta = append(meta, "due "+d)
	}
	if t := strings.TrimSpace(i.task.Tags); t != "" {
		meta = append(meta, t)
	}
	if i.showOwner && i.task.Owner != nil {
		meta = append(meta, "@"+i.task.Owner.Name)
	}
	if len(meta) > 0 {
		parts = append(parts, styleMuted().Render(strings.Join(meta, "  ")))
	}
	return strings.Join(parts, " ")
}

func (i taskItem) Description() string { return "" }

func renderStatusBadge(s model.Status) string {
	switch s {
	case model.StatusCompleted:
		return statusStyle(colorStatusDoneFg).Render("[✓]")
	case model.StatusInProgress:
		return statusStyle(colorStatusWipFg).Render("[~]")
	default:
		return statusStyle(colorStatusToDoFg).Render("[ ]")
	}
}

type taskDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newTaskDelegate() taskDelegate {
	return taskDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d taskDelegate) Height() int                             { return 1 }
func (d taskDelegate) Spacing() int                            { return 0 }
func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}

	txt := ""
	if t, ok := item.(interface{ Title() string }); ok {
		txt = t.Title()
	} else {
		txt = fmt.Sprint(item)
	}

	line := txt
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}

	fmt.Fprint(w, style.Render(line))
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, newTaskDelegate(), 0, 0)
	l.Title = title
	// The app renders its own header/footer chrome.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	// The search box drives filtering through the server; the list's own
	// fuzzy filter would fight it.
	l.SetFilteringEnabled(false)
	l.SetShowFilter(false)
	l.SetStatusBarItemName("task", "tasks")
	// Quit is handled at the app level so "q" can't bypass open modals.
	l.KeyMap.Quit.SetKeys()
	// Emacs-style navigation aliases.
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	l.KeyMap.CursorUp.SetKeys(append(cursorUpKeys, "ctrl+p")...)
	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	l.KeyMap.CursorDown.SetKeys(append(cursorDownKeys, "ctrl+n")...)
	return l
}

func selectTaskByID(l *list.Model, id int) {
	for i, it := range l.Items() {
		if ti, ok := it.(taskItem); ok && ti.task.ID == id {
			l.Select(i)
			return
		}
	}
}
