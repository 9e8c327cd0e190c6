package tui

import (
	"taskdeck/internal/model"
	"taskdeck/internal/nav"
	"taskdeck/internal/session"
)

type view int

const (
	viewLogin view = iota
	viewRegister
	viewDashboard
	viewTaskDetail
	viewProfile
	viewAdmin
)

func routeFor(v view) nav.Route {
	switch v {
	case viewLogin:
		return nav.RouteLogin
	case viewRegister:
		return nav.RouteRegister
	case viewDashboard:
		return nav.RouteDashboard
	case viewTaskDetail:
		return nav.RouteTask
	case viewProfile:
		return nav.RouteProfile
	case viewAdmin:
		return nav.RouteAdmin
	default:
		return nav.RouteLogin
	}
}

func viewFor(r nav.Route) view {
	switch r {
	case nav.RouteLogin:
		return viewLogin
	case nav.RouteRegister:
		return viewRegister
	case nav.RouteDashboard:
		return viewDashboard
	case nav.RouteTask:
		return viewTaskDetail
	case nav.RouteProfile:
		return viewProfile
	case nav.RouteAdmin:
		return viewAdmin
	default:
		return viewLogin
	}
}

// bootstrapDoneMsg reports the startup identity probe settling.
type bootstrapDoneMsg struct{ snap session.Snapshot }

// sessionExpiredMsg is sent by the top-level unauthorized listener after
// the session store has already been cleared.
type sessionExpiredMsg struct{}

// debounceFireMsg fires when the filter debounce delay elapses. Stale
// generations (the user kept typing) are ignored.
type debounceFireMsg struct{ gen int }

// tasksLoadedMsg carries one fetch generation's result; responses from
// superseded generations are discarded, so rapid filter changes cannot
// apply out of order.
type tasksLoadedMsg struct {
	gen   int
	tasks []model.Task
	err   error
}

type usersLoadedMsg struct {
	users []model.Identity
	err   error
}

type taskLoadedMsg struct {
	task model.Task
	err  error
}

type taskSavedMsg struct {
	task model.Task
	err  error
}

type taskDeletedMsg struct {
	id  int
	err error
}

// authDoneMsg reports a login or register attempt.
type authDoneMsg struct {
	id  model.Identity
	err error
}

type logoutDoneMsg struct{}

type profileSavedMsg struct {
	id  model.Identity
	err error
}

type passwordChangedMsg struct {
	message string
	err     error
}
