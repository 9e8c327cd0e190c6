package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/api"
	"taskdeck/internal/model"
	"taskdeck/internal/nav"
)

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.bootstrapCmd())
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case bootstrapDoneMsg:
		m.snap = msg.snap
		m.debugLogf("bootstrap settled: %s", m.snap.State)
		return m, m.navigate(nav.DefaultRoute)

	case sessionExpiredMsg:
		return m.handleSessionExpired()

	case debounceFireMsg:
		if msg.gen != m.debounceGen {
			return m, nil
		}
		return m, m.startFetch()

	case tasksLoadedMsg:
		return m.handleTasksLoaded(msg)

	case usersLoadedMsg:
		if msg.err != nil {
			m.setFlash(msg.err.Error(), true)
			return m, nil
		}
		m.users = msg.users
		return m, nil

	case taskLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.detailErr = msg.err.Error()
			return m, nil
		}
		m.detailErr = ""
		m.openTask = msg.task
		return m, nil

	case taskSavedMsg:
		return m.handleTaskSaved(msg)

	case taskDeletedMsg:
		return m.handleTaskDeleted(msg)

	case authDoneMsg:
		return m.handleAuthDone(msg)

	case logoutDoneMsg:
		m.loading = false
		m.snap = m.store.Snapshot()
		m.resetBoard()
		m.flash = ""
		m.view = viewLogin
		m.pendingRoute = nav.DefaultRoute
		m.auth.resetFocus(viewLogin)
		return m, nil

	case profileSavedMsg:
		m.loading = false
		if msg.err != nil {
			m.profile.accountMsg = msg.err.Error()
			m.profile.accountIsErr = true
			return m, nil
		}
		m.store.SetIdentity(msg.id)
		m.snap = m.store.Snapshot()
		m.profile.accountMsg = "Profile updated."
		m.profile.accountIsErr = false
		return m, nil

	case passwordChangedMsg:
		m.loading = false
		if msg.err != nil {
			m.profile.passwordMsg = msg.err.Error()
			m.profile.passwordIsErr = true
			return m, nil
		}
		text := msg.message
		if text == "" {
			text = "Password changed."
		}
		m.profile.passwordMsg = text
		m.profile.passwordIsErr = false
		m.profile.clearPasswords()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// navigate runs the guard for the requested route and enters the resulting
// view. The attempted route survives a login redirect.
func (m *appModel) navigate(route nav.Route) tea.Cmd {
	res := nav.Decide(m.snap, route)
	m.debugLogf("navigate %s: decision %d", route, res.Decision)
	switch res.Decision {
	case nav.Wait:
		m.pendingRoute = res.Attempted
		return nil
	case nav.RedirectLogin:
		m.pendingRoute = res.Attempted
		m.view = viewLogin
		m.auth.resetFocus(viewLogin)
		return nil
	case nav.RedirectDefault:
		return m.enterView(viewFor(nav.DefaultRoute))
	default:
		return m.enterView(viewFor(route))
	}
}

// enterView switches views and kicks that view's initial loads.
func (m *appModel) enterView(v view) tea.Cmd {
	m.view = v
	m.flash = ""
	switch v {
	case viewDashboard, viewAdmin:
		m.boardView = v
		cmds := []tea.Cmd{m.startFetch()}
		if m.snap.Identity.Role == model.RoleAdmin && len(m.users) == 0 {
			cmds = append(cmds, m.fetchUsersCmd())
		}
		return tea.Batch(cmds...)
	case viewTaskDetail:
		if m.openTaskID == 0 {
			return m.enterView(m.boardView)
		}
		m.detailErr = ""
		m.loading = true
		return m.fetchTaskCmd(m.openTaskID)
	case viewProfile:
		m.profile.seed(m.snap.Identity)
	case viewLogin, viewRegister:
		m.auth.resetFocus(v)
	}
	return nil
}

func (m *appModel) resetBoard() {
	m.tasks = nil
	m.users = nil
	m.tasksList.SetItems(nil)
	m.filters = model.TaskFilters{
		Status:  model.StatusAll,
		SortBy:  "created_at",
		SortDir: model.SortDesc,
	}
	m.searchInput.SetValue("")
	m.searchActive = false
	m.boardErr = ""
	m.openTaskID = 0
	m.openTask = model.Task{}
	m.form = nil
	m.confirm = nil
}

func (m *appModel) setFlash(text string, isErr bool) {
	m.flash = text
	m.flashIsErr = isErr
}

func (m appModel) handleSessionExpired() (tea.Model, tea.Cmd) {
	m.snap = m.store.Snapshot()
	if !nav.Public(routeFor(m.view)) {
		m.pendingRoute = routeFor(m.view)
	}
	// The open task id survives the wipe so a re-login can restore the
	// detail view; the stale task body does not.
	openID := m.openTaskID
	m.resetBoard()
	m.openTaskID = openID
	m.loading = false
	m.auth.notice = api.SessionExpiredMessage
	m.view = viewLogin
	m.auth.resetFocus(viewLogin)
	return m, nil
}

func (m appModel) handleTasksLoaded(msg tasksLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.fetchGen {
		m.debugLogf("discarding stale task fetch gen %d (current %d)", msg.gen, m.fetchGen)
		return m, nil
	}
	m.loading = false
	if msg.err != nil {
		m.boardErr = msg.err.Error()
		return m, nil
	}
	m.boardErr = ""
	m.tasks = msg.tasks

	selected := 0
	if it, ok := m.tasksList.SelectedItem().(taskItem); ok {
		selected = it.task.ID
	}

	showOwner := m.boardView == viewAdmin
	items := make([]list.Item, 0, len(msg.tasks))
	for _, t := range msg.tasks {
		if showOwner && t.Owner == nil {
			t.Owner = m.ownerFromDirectory(t.UserID)
		}
		items = append(items, taskItem{task: t, showOwner: showOwner})
	}
	m.tasksList.SetItems(items)
	if selected != 0 {
		selectTaskByID(&m.tasksList, selected)
	}
	return m, nil
}

func (m appModel) handleTaskSaved(msg taskSavedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		if m.form != nil {
			m.form.errMsg = msg.err.Error()
			return m, nil
		}
		m.setFlash(msg.err.Error(), true)
		return m, nil
	}
	m.form = nil
	m.setFlash("Task saved.", false)
	if m.view == viewTaskDetail && m.openTaskID == msg.task.ID {
		m.openTask = msg.task
		return m, nil
	}
	return m, m.startFetch()
}

func (m appModel) handleTaskDeleted(msg taskDeletedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.confirm = nil
	if msg.err != nil {
		m.setFlash(msg.err.Error(), true)
		return m, nil
	}
	m.setFlash("Task deleted.", false)
	if m.view == viewTaskDetail {
		m.view = m.boardView
	}
	return m, m.startFetch()
}

func (m appModel) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		if m.view == viewRegister {
			m.auth.regErr = msg.err.Error()
		} else {
			m.auth.loginErr = msg.err.Error()
		}
		return m, nil
	}
	m.snap = m.store.Snapshot()
	m.auth.notice = ""
	m.auth.loginErr = ""
	m.auth.regErr = ""
	m.auth.loginPassword.SetValue("")
	m.auth.regPassword.SetValue("")
	m.auth.regConfirm.SetValue("")

	route := m.pendingRoute
	m.pendingRoute = nav.DefaultRoute
	return m, m.navigate(route)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Open modals swallow all keys.
	if m.confirm != nil {
		return m.handleConfirmKey(msg)
	}
	if m.form != nil {
		return m, m.form.update(msg, &m)
	}

	switch m.view {
	case viewLogin:
		return m, m.auth.updateLogin(msg, &m)
	case viewRegister:
		return m, m.auth.updateRegister(msg, &m)
	case viewProfile:
		if msg.String() == "esc" {
			return m, m.navigate(nav.DefaultRoute)
		}
		return m, m.profile.update(msg, &m)
	case viewTaskDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleBoardKey(msg)
	}
}

func (m appModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.confirm = nil
		return m, nil
	case "tab", "left", "right", "h", "l":
		m.confirm.toggle()
		return m, nil
	case "enter":
		if m.confirm.focus == confirmFocusConfirm {
			id := m.confirm.task.ID
			m.loading = true
			return m, m.deleteTaskCmd(id)
		}
		m.confirm = nil
		return m, nil
	}
	return m, nil
}

func (m appModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "b":
		m.view = m.boardView
		return m, m.startFetch()
	case "e":
		if m.openTask.ID != 0 {
			m.form = newTaskForm(&m.openTask, m.snap.Identity, m.formUsers())
		}
		return m, nil
	case "d":
		if m.openTask.ID != 0 {
			m.confirm = newDeleteConfirm(m.openTask)
		}
		return m, nil
	case "r":
		m.loading = true
		return m, m.fetchTaskCmd(m.openTaskID)
	}
	return m, nil
}

func (m appModel) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchActive {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searchActive = true
		m.searchInput.Focus()
		return m, nil
	case "s":
		m.cycleStatusFilter()
		return m, m.armDebounce()
	case "o":
		if m.filters.SortDir == model.SortAsc {
			m.filters.SortDir = model.SortDesc
		} else {
			m.filters.SortDir = model.SortAsc
		}
		return m, m.armDebounce()
	case "O":
		m.cycleSortBy()
		return m, m.armDebounce()
	case "r":
		return m, m.startFetch()
	case "n":
		m.form = newTaskForm(nil, m.snap.Identity, m.formUsers())
		return m, nil
	case "e":
		if t, ok := m.selectedTask(); ok {
			m.form = newTaskForm(&t, m.snap.Identity, m.formUsers())
		}
		return m, nil
	case "d":
		if t, ok := m.selectedTask(); ok {
			m.confirm = newDeleteConfirm(t)
		}
		return m, nil
	case "enter":
		if t, ok := m.selectedTask(); ok {
			m.openTaskID = t.ID
			m.openTask = t
			m.detailErr = ""
			m.view = viewTaskDetail
			m.loading = true
			return m, m.fetchTaskCmd(t.ID)
		}
		return m, nil
	case "p":
		return m, m.navigate(nav.RouteProfile)
	case "a":
		if m.snap.Identity.Role != model.RoleAdmin {
			m.setFlash("Admin board requires the admin role.", true)
			return m, nil
		}
		return m, m.navigate(nav.RouteAdmin)
	case "g":
		if m.view == viewAdmin {
			return m, m.navigate(nav.RouteDashboard)
		}
		return m, nil
	case "L":
		m.loading = true
		return m, m.logoutCmd()
	}

	var cmd tea.Cmd
	m.tasksList, cmd = m.tasksList.Update(msg)
	return m, cmd
}

func (m appModel) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchActive = false
		m.searchInput.Blur()
		if m.searchInput.Value() != m.filters.Search {
			m.searchInput.SetValue(m.filters.Search)
		}
		return m, nil
	case "enter":
		m.searchActive = false
		m.searchInput.Blur()
		if m.searchInput.Value() == m.filters.Search {
			return m, nil
		}
		m.filters.Search = m.searchInput.Value()
		// Immediate: the user committed the query, no point debouncing.
		m.debounceGen++
		return m, m.startFetch()
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return m, cmd
	}
	m.filters.Search = m.searchInput.Value()
	return m, tea.Batch(cmd, m.armDebounce())
}

func (m *appModel) cycleStatusFilter() {
	order := []string{model.StatusAll, string(model.StatusToDo), string(model.StatusInProgress), string(model.StatusCompleted)}
	idx := 0
	for i, s := range order {
		if s == m.filters.Status {
			idx = i
			break
		}
	}
	m.filters.Status = order[(idx+1)%len(order)]
}

func (m *appModel) cycleSortBy() {
	order := []string{"created_at", "due_date", "title", "status"}
	idx := 0
	for i, s := range order {
		if s == m.filters.SortBy {
			idx = i
			break
		}
	}
	m.filters.SortBy = order[(idx+1)%len(order)]
}

func (m appModel) selectedTask() (model.Task, bool) {
	it, ok := m.tasksList.SelectedItem().(taskItem)
	if !ok {
		return model.Task{}, false
	}
	return it.task, true
}

// ownerFromDirectory resolves a task's owner from the fetched user
// directory. The list endpoint embeds only an id/name summary and may omit
// it; the directory fills the gap on the admin board.
func (m appModel) ownerFromDirectory(userID int) *model.OwnerSummary {
	for _, u := range m.users {
		if u.ID == userID {
			return &model.OwnerSummary{ID: u.ID, Name: u.Name}
		}
	}
	return nil
}

// formUsers returns the assignee choices for the task form: admins pick
// from the user directory, everyone else has no choice to make.
func (m appModel) formUsers() []model.Identity {
	if m.snap.Identity.Role != model.RoleAdmin {
		return nil
	}
	return m.users
}
