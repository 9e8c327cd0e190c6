package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"taskdeck/internal/api"
	"taskdeck/internal/model"
	"taskdeck/internal/nav"
	"taskdeck/internal/session"
)

const (
	// filterDebounce is how long filter input must pause before a re-fetch.
	filterDebounce = 500 * time.Millisecond

	opTimeout = 15 * time.Second
)

type appModel struct {
	client *api.Client
	store  *session.Store

	width  int
	height int

	view view
	snap session.Snapshot
	// pendingRoute is the route the guard bounced to login; a successful
	// login resumes there.
	pendingRoute nav.Route

	// Board state, shared by the self-scoped and admin-scoped lists.
	tasksList    list.Model
	tasks        []model.Task
	users        []model.Identity
	filters      model.TaskFilters
	searchInput  textinput.Model
	searchActive bool
	loading      bool
	spinner      spinner.Model
	boardErr     string

	// debounceGen invalidates armed debounce timers; fetchGen invalidates
	// in-flight responses.
	debounceGen int
	fetchGen    int

	// Task detail. boardView is the board the detail was opened from, so
	// esc returns there.
	openTaskID int
	openTask   model.Task
	detailErr  string
	boardView  view

	form    *taskForm
	confirm *deleteConfirm

	auth    authForms
	profile profileForms

	// flash is the one-line status message under the header.
	flash      string
	flashIsErr bool

	debugLogPath string
}

func newAppModel(opts Options) appModel {
	m := appModel{
		client:       opts.Client,
		store:        opts.Store,
		view:         viewLogin,
		boardView:    viewDashboard,
		snap:         opts.Store.Snapshot(),
		pendingRoute: nav.DefaultRoute,
		debugLogPath: opts.DebugLog,
	}

	m.filters = model.TaskFilters{
		Status:  model.StatusAll,
		SortBy:  "created_at",
		SortDir: model.SortDesc,
	}

	m.tasksList = newList("Tasks", nil)

	m.searchInput = textinput.New()
	m.searchInput.Placeholder = "Search tasks…"
	m.searchInput.CharLimit = 120
	m.searchInput.Width = 32
	m.searchInput.Prompt = "/ "

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	m.auth = newAuthForms()
	m.profile = newProfileForms()

	return m
}

func (m *appModel) resize() {
	h := m.height - 7 // header, filter bar, flash, footer
	if h < 5 {
		h = 5
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	m.tasksList.SetSize(w, h)
}

// debugLogf appends one trace line when TASKDECK_TUI_DEBUG_LOG is set.
func (m appModel) debugLogf(format string, args ...any) {
	if m.debugLogPath == "" {
		return
	}
	f, err := os.OpenFile(m.debugLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, format+"\n", args...)
}
