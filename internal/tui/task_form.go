package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/api"
	"taskdeck/internal/model"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldStatus
	fieldDue
	fieldTags
	fieldAssignee
)

// taskForm is the create/edit modal. In create mode the assignee defaults
// to the current identity; only admins get the reassignment field (the user
// directory is empty otherwise).
type taskForm struct {
	editing *model.Task

	title       textinput.Model
	description textarea.Model
	due         textinput.Model
	tags        textinput.Model

	status model.Status

	// assigneeIdx indexes users; -1 means "self" (or the task's current
	// owner when editing).
	assigneeIdx int
	users       []model.Identity

	current model.Identity
	focus   formField
	errMsg  string
}

func newTaskForm(edit *model.Task, current model.Identity, users []model.Identity) *taskForm {
	f := &taskForm{
		editing:     edit,
		status:      model.StatusToDo,
		assigneeIdx: -1,
		users:       users,
		current:     current,
	}

	f.title = textinput.New()
	f.title.Placeholder = "Title"
	f.title.CharLimit = 200
	f.title.Width = 48

	f.description = textarea.New()
	f.description.Placeholder = "Description…"
	f.description.CharLimit = 0
	f.description.SetWidth(48)
	f.description.SetHeight(4)
	f.description.ShowLineNumbers = false

	f.due = textinput.New()
	f.due.Placeholder = "YYYY-MM-DD"
	f.due.CharLimit = 10
	f.due.Width = 12

	f.tags = textinput.New()
	f.tags.Placeholder = "tag, another tag"
	f.tags.CharLimit = 200
	f.tags.Width = 48

	if edit != nil {
		f.title.SetValue(edit.Title)
		f.description.SetValue(edit.Description)
		f.status = edit.Status
		// Prefill the date-only portion; the server reports a datetime.
		f.due.SetValue(edit.DueDateOnly())
		f.tags.SetValue(edit.Tags)
		for i, u := range users {
			if u.ID == edit.UserID {
				f.assigneeIdx = i
				break
			}
		}
	}

	f.title.Focus()
	return f
}

func (f *taskForm) isEdit() bool { return f.editing != nil }

func (f *taskForm) assigneeID() int {
	if f.assigneeIdx >= 0 && f.assigneeIdx < len(f.users) {
		return f.users[f.assigneeIdx].ID
	}
	if f.editing != nil {
		return f.editing.UserID
	}
	return f.current.ID
}

func (f *taskForm) assigneeLabel() string {
	if f.assigneeIdx >= 0 && f.assigneeIdx < len(f.users) {
		return f.users[f.assigneeIdx].Name
	}
	if f.editing != nil && f.editing.Owner != nil {
		return f.editing.Owner.Name
	}
	return f.current.Name + " (you)"
}

// submit validates locally and builds the outbound draft. ok is false when
// validation rejects: no network call happens and the form stays open.
func (f *taskForm) submit() (taskID int, draft api.TaskDraft, ok bool) {
	title := strings.TrimSpace(f.title.Value())
	if title == "" {
		f.errMsg = "Title is required."
		return 0, api.TaskDraft{}, false
	}
	assignee := f.assigneeID()
	if assignee == 0 {
		f.errMsg = "No assignee resolved."
		return 0, api.TaskDraft{}, false
	}

	draft = api.TaskDraft{
		Title:       api.Ptr(title),
		Description: api.Ptr(f.description.Value()),
		Status:      api.Ptr(f.status),
		DueDate:     api.Ptr(strings.TrimSpace(f.due.Value())),
		Tags:        api.Ptr(f.tags.Value()),
		UserID:      api.Ptr(assignee),
	}
	if f.editing != nil {
		taskID = f.editing.ID
	}
	return taskID, draft, true
}

func (f *taskForm) fields() []formField {
	fs := []formField{fieldTitle, fieldDescription, fieldStatus, fieldDue, fieldTags}
	if len(f.users) > 0 {
		fs = append(fs, fieldAssignee)
	}
	return fs
}

func (f *taskForm) setFocus(field formField) {
	f.focus = field
	f.title.Blur()
	f.description.Blur()
	f.due.Blur()
	f.tags.Blur()
	switch field {
	case fieldTitle:
		f.title.Focus()
	case fieldDescription:
		f.description.Focus()
	case fieldDue:
		f.due.Focus()
	case fieldTags:
		f.tags.Focus()
	}
}

func (f *taskForm) focusNext(backwards bool) {
	fs := f.fields()
	idx := 0
	for i, field := range fs {
		if field == f.focus {
			idx = i
			break
		}
	}
	if backwards {
		idx = (idx - 1 + len(fs)) % len(fs)
	} else {
		idx = (idx + 1) % len(fs)
	}
	f.setFocus(fs[idx])
}

func (f *taskForm) cycleStatus(backwards bool) {
	ss := model.Statuses()
	idx := 0
	for i, s := range ss {
		if s == f.status {
			idx = i
			break
		}
	}
	if backwards {
		idx = (idx - 1 + len(ss)) % len(ss)
	} else {
		idx = (idx + 1) % len(ss)
	}
	f.status = ss[idx]
}

func (f *taskForm) cycleAssignee(backwards bool) {
	if len(f.users) == 0 {
		return
	}
	// -1 (self) is part of the cycle.
	if backwards {
		f.assigneeIdx--
		if f.assigneeIdx < -1 {
			f.assigneeIdx = len(f.users) - 1
		}
	} else {
		f.assigneeIdx++
		if f.assigneeIdx >= len(f.users) {
			f.assigneeIdx = -1
		}
	}
}

// update handles one key press. The returned command is non-nil only when
// the form submits successfully.
func (f *taskForm) update(msg tea.KeyMsg, m *appModel) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.form = nil
		return nil
	case "tab":
		f.focusNext(false)
		return nil
	case "shift+tab":
		f.focusNext(true)
		return nil
	case "ctrl+s":
		return f.trySubmit(m)
	}

	switch f.focus {
	case fieldStatus:
		switch msg.String() {
		case "left", "h":
			f.cycleStatus(true)
		case "right", "l", " ", "enter":
			f.cycleStatus(false)
		}
		return nil
	case fieldAssignee:
		switch msg.String() {
		case "left", "h":
			f.cycleAssignee(true)
		case "right", "l", " ", "enter":
			f.cycleAssignee(false)
		}
		return nil
	case fieldDescription:
		var cmd tea.Cmd
		f.description, cmd = f.description.Update(msg)
		return cmd
	}

	if msg.String() == "enter" {
		return f.trySubmit(m)
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDue:
		f.due, cmd = f.due.Update(msg)
	case fieldTags:
		f.tags, cmd = f.tags.Update(msg)
	}
	return cmd
}

func (f *taskForm) trySubmit(m *appModel) tea.Cmd {
	id, draft, ok := f.submit()
	if !ok {
		return nil
	}
	m.loading = true
	return m.saveTaskCmd(id, draft)
}

func (f *taskForm) render(width int) string {
	label := func(field formField, s string) string {
		st := styleMuted()
		if f.focus == field {
			st = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
		}
		return st.Render(s)
	}

	rows := []string{
		label(fieldTitle, "Title") + "\n" + f.title.View(),
		label(fieldDescription, "Description") + "\n" + f.description.View(),
		label(fieldStatus, "Status") + "  " + renderStatusBadge(f.status) + " " + string(f.status),
		label(fieldDue, "Due") + "\n" + f.due.View(),
		label(fieldTags, "Tags") + "\n" + f.tags.View(),
	}
	if len(f.users) > 0 {
		rows = append(rows, label(fieldAssignee, "Assignee")+"  "+f.assigneeLabel())
	}
	if f.errMsg != "" {
		rows = append(rows, styleError().Render(f.errMsg))
	}
	rows = append(rows, styleMuted().Render("tab: next field   enter/ctrl+s: save   esc: cancel"))

	title := "Create task"
	if f.isEdit() {
		title = "Edit task"
	}
	return renderModalBox(width, title, strings.Join(rows, "\n\n"))
}
