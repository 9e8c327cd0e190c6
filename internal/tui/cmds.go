package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/api"
	"taskdeck/internal/model"
)

// Every network operation runs inside a tea.Cmd and resolves to exactly one
// message: a normalized result or a normalized failure.

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

func (m appModel) bootstrapCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		return bootstrapDoneMsg{snap: store.Bootstrap(ctx)}
	}
}

func (m appModel) fetchTasksCmd(gen int, f model.TaskFilters) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		tasks, err := client.ListTasks(ctx, f)
		return tasksLoadedMsg{gen: gen, tasks: tasks, err: err}
	}
}

func (m appModel) fetchUsersCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		users, err := client.FetchUsers(ctx)
		return usersLoadedMsg{users: users, err: err}
	}
}

func (m appModel) fetchTaskCmd(id int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		task, err := client.FetchTask(ctx, id)
		return taskLoadedMsg{task: task, err: err}
	}
}

func (m appModel) saveTaskCmd(id int, draft api.TaskDraft) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		var (
			task model.Task
			err  error
		)
		if id == 0 {
			task, err = client.CreateTask(ctx, draft)
		} else {
			task, err = client.UpdateTask(ctx, id, draft)
		}
		return taskSavedMsg{task: task, err: err}
	}
}

func (m appModel) deleteTaskCmd(id int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		return taskDeletedMsg{id: id, err: client.DeleteTask(ctx, id)}
	}
}

func (m appModel) loginCmd(creds api.Credentials) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		id, err := store.Login(ctx, creds)
		return authDoneMsg{id: id, err: err}
	}
}

func (m appModel) registerCmd(creds api.RegisterCredentials) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		id, err := store.Register(ctx, creds)
		return authDoneMsg{id: id, err: err}
	}
}

func (m appModel) logoutCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		store.Logout(ctx)
		return logoutDoneMsg{}
	}
}

func (m appModel) saveProfileCmd(upd api.ProfileUpdate) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		id, err := client.UpdateProfile(ctx, upd)
		return profileSavedMsg{id: id, err: err}
	}
}

func (m appModel) changePasswordCmd(chg api.PasswordChange) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := opCtx()
		defer cancel()
		msg, err := client.ChangePassword(ctx, chg)
		return passwordChangedMsg{message: msg, err: err}
	}
}

// armDebounce schedules a delayed fetch; any newer filter edit supersedes
// the armed timer by bumping the generation.
func (m *appModel) armDebounce() tea.Cmd {
	m.debounceGen++
	gen := m.debounceGen
	return tea.Tick(filterDebounce, func(time.Time) tea.Msg {
		return debounceFireMsg{gen: gen}
	})
}

// startFetch kicks a task list fetch for the current filters, invalidating
// any response still in flight.
func (m *appModel) startFetch() tea.Cmd {
	m.fetchGen++
	m.loading = true
	m.boardErr = ""
	return m.fetchTasksCmd(m.fetchGen, m.filters)
}
