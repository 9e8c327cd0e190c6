package nav

import (
	"testing"

	"taskdeck/internal/model"
	"taskdeck/internal/session"
)

func snap(state session.State, role model.Role) session.Snapshot {
	s := session.Snapshot{State: state}
	if state == session.StateAuthenticated {
		s.Identity = model.Identity{ID: 1, Role: role}
	}
	return s
}

func TestResolve(t *testing.T) {
	cases := []struct {
		path string
		want Route
	}{
		{"/login", RouteLogin},
		{"/dashboard", RouteDashboard},
		{"dashboard/", RouteDashboard},
		{"/task/42", RouteTask},
		{"/task/", RouteLogin},
		{"/task/1/edit", RouteLogin},
		{"/admin", RouteAdmin},
		{"/nope", RouteLogin},
		{"", RouteLogin},
	}
	for _, tc := range cases {
		if got := Resolve(tc.path); got != tc.want {
			t.Fatalf("Resolve(%q): expected %q, got %q", tc.path, tc.want, got)
		}
	}
}

func TestDecide_RuleOrder(t *testing.T) {
	cases := []struct {
		name  string
		snap  session.Snapshot
		route Route
		want  Decision
	}{
		{"public while anonymous", snap(session.StateAnonymous, ""), RouteLogin, Render},
		{"public while loading", snap(session.StateLoading, ""), RouteRegister, Render},
		{"protected while loading waits", snap(session.StateLoading, ""), RouteDashboard, Wait},
		{"protected while uninitialized waits", snap(session.StateUninitialized, ""), RouteProfile, Wait},
		{"anonymous redirects to login", snap(session.StateAnonymous, ""), RouteDashboard, RedirectLogin},
		{"user renders dashboard", snap(session.StateAuthenticated, model.RoleUser), RouteDashboard, Render},
		{"user renders task detail", snap(session.StateAuthenticated, model.RoleUser), RouteTask, Render},
		{"user denied admin", snap(session.StateAuthenticated, model.RoleUser), RouteAdmin, RedirectDefault},
		{"admin renders admin", snap(session.StateAuthenticated, model.RoleAdmin), RouteAdmin, Render},
		{"admin renders dashboard", snap(session.StateAuthenticated, model.RoleAdmin), RouteDashboard, Render},
	}
	for _, tc := range cases {
		got := Decide(tc.snap, tc.route)
		if got.Decision != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got.Decision)
		}
		if got.Attempted != tc.route {
			t.Fatalf("%s: expected attempted route preserved (%q), got %q", tc.name, tc.route, got.Attempted)
		}
	}
}

func TestDecide_UnauthorizedSessionRedirects(t *testing.T) {
	// After MarkUnauthorized the next evaluation of any protected route must
	// bounce to login.
	st := session.NewStore(nil)
	st.MarkUnauthorized()

	res := Decide(st.Snapshot(), RouteDashboard)
	if res.Decision != RedirectLogin {
		t.Fatalf("expected RedirectLogin after unauthorized, got %v", res.Decision)
	}
}
