// Package nav holds the navigable route table and the access guard: a pure
// decision function over (session snapshot, requested route). It keeps no
// state of its own, so every navigation re-evaluates from scratch.
package nav

import (
	"strings"

	"taskdeck/internal/model"
	"taskdeck/internal/session"
)

type Route string

const (
	RouteLogin     Route = "/login"
	RouteRegister  Route = "/register"
	RouteDashboard Route = "/dashboard"
	RouteTask      Route = "/task/:id"
	RouteProfile   Route = "/profile"
	RouteAdmin     Route = "/admin"
)

// DefaultRoute is where authenticated users land when a route denies them.
const DefaultRoute = RouteDashboard

// routeRoles maps each route to its allowed role set; nil means public.
var routeRoles = map[Route][]model.Role{
	RouteLogin:     nil,
	RouteRegister:  nil,
	RouteDashboard: {model.RoleUser, model.RoleAdmin},
	RouteTask:      {model.RoleUser, model.RoleAdmin},
	RouteProfile:   {model.RoleUser, model.RoleAdmin},
	RouteAdmin:     {model.RoleAdmin},
}

// Resolve maps a concrete path to its route. Unknown paths resolve to the
// login route, mirroring the catch-all redirect.
func Resolve(path string) Route {
	path = "/" + strings.Trim(strings.TrimSpace(path), "/")
	switch path {
	case string(RouteLogin), string(RouteRegister), string(RouteDashboard),
		string(RouteProfile), string(RouteAdmin):
		return Route(path)
	}
	if rest, ok := strings.CutPrefix(path, "/task/"); ok && rest != "" && !strings.Contains(rest, "/") {
		return RouteTask
	}
	return RouteLogin
}

// Public reports whether the route needs no authentication.
func Public(r Route) bool { return routeRoles[r] == nil }

type Decision int

const (
	// Wait: the startup probe has not settled; render nothing protected yet.
	Wait Decision = iota
	Render
	RedirectLogin
	RedirectDefault
)

// Result carries the decision plus the attempted route so a later login can
// resume where the user was headed.
type Result struct {
	Decision  Decision
	Attempted Route
}

// Decide applies the rule order: unauthenticated goes to login (attempted
// route preserved); authenticated but role-denied goes to the default view;
// otherwise render.
func Decide(snap session.Snapshot, route Route) Result {
	if Public(route) {
		return Result{Decision: Render, Attempted: route}
	}
	if snap.Loading() {
		return Result{Decision: Wait, Attempted: route}
	}
	if !snap.Authenticated() {
		return Result{Decision: RedirectLogin, Attempted: route}
	}
	for _, r := range routeRoles[route] {
		if r == snap.Identity.Role {
			return Result{Decision: Render, Attempted: route}
		}
	}
	return Result{Decision: RedirectDefault, Attempted: route}
}
