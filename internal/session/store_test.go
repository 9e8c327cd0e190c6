package session

import (
	"context"
	"errors"
	"testing"

	"taskdeck/internal/api"
	"taskdeck/internal/model"
)

type fakeAuth struct {
	identity  model.Identity
	probeErr  error
	loginErr  error
	logoutErr error

	logoutCalls int
}

func (f *fakeAuth) Login(_ context.Context, _ api.Credentials) (model.Identity, error) {
	if f.loginErr != nil {
		return model.Identity{}, f.loginErr
	}
	return f.identity, nil
}

func (f *fakeAuth) Register(_ context.Context, _ api.RegisterCredentials) (model.Identity, error) {
	return f.identity, nil
}

func (f *fakeAuth) FetchIdentity(_ context.Context) (model.Identity, error) {
	if f.probeErr != nil {
		return model.Identity{}, f.probeErr
	}
	return f.identity, nil
}

func (f *fakeAuth) Logout(_ context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func TestStore_InitialState(t *testing.T) {
	s := NewStore(&fakeAuth{})
	snap := s.Snapshot()
	if snap.State != StateUninitialized {
		t.Fatalf("expected uninitialized, got %v", snap.State)
	}
	if !snap.Loading() {
		t.Fatalf("expected Loading() before bootstrap")
	}
}

func TestStore_BootstrapAuthenticated(t *testing.T) {
	id := model.Identity{ID: 1, Name: "Ada", Role: model.RoleAdmin}
	s := NewStore(&fakeAuth{identity: id})

	snap := s.Bootstrap(context.Background())
	if snap.State != StateAuthenticated {
		t.Fatalf("expected authenticated, got %v", snap.State)
	}
	if snap.Identity.Name != "Ada" {
		t.Fatalf("expected identity populated, got %+v", snap.Identity)
	}
	if snap.Loading() {
		t.Fatalf("expected Loading() to clear after bootstrap")
	}
}

func TestStore_BootstrapProbeFailureIsAnonymousNotError(t *testing.T) {
	s := NewStore(&fakeAuth{probeErr: errors.New("401")})
	snap := s.Bootstrap(context.Background())
	if snap.State != StateAnonymous {
		t.Fatalf("expected anonymous on probe failure, got %v", snap.State)
	}
	if snap.Identity.ID != 0 {
		t.Fatalf("expected empty identity, got %+v", snap.Identity)
	}
}

func TestStore_LoginTransitions(t *testing.T) {
	id := model.Identity{ID: 2, Email: "a@b.com", Role: model.RoleUser}
	s := NewStore(&fakeAuth{identity: id})

	got, err := s.Login(context.Background(), api.Credentials{Email: "a@b.com", Password: "x"})
	if err != nil {
		t.Fatalf("Login: unexpected error: %v", err)
	}
	if got.Role != model.RoleUser {
		t.Fatalf("expected role user, got %q", got.Role)
	}
	if snap := s.Snapshot(); !snap.Authenticated() {
		t.Fatalf("expected authenticated after login, got %v", snap.State)
	}
}

func TestStore_LoginFailureLeavesStateAlone(t *testing.T) {
	s := NewStore(&fakeAuth{loginErr: errors.New("bad credentials")})
	s.MarkUnauthorized() // start anonymous

	if _, err := s.Login(context.Background(), api.Credentials{}); err == nil {
		t.Fatalf("expected login error")
	}
	if snap := s.Snapshot(); snap.State != StateAnonymous {
		t.Fatalf("expected still anonymous, got %v", snap.State)
	}
}

func TestStore_LogoutClearsEvenOnServerError(t *testing.T) {
	auth := &fakeAuth{identity: model.Identity{ID: 1}, logoutErr: errors.New("boom")}
	s := NewStore(auth)
	s.Bootstrap(context.Background())

	s.Logout(context.Background())
	if auth.logoutCalls != 1 {
		t.Fatalf("expected one best-effort server logout, got %d", auth.logoutCalls)
	}
	if snap := s.Snapshot(); snap.State != StateAnonymous || snap.Identity.ID != 0 {
		t.Fatalf("expected local state cleared, got %+v", snap)
	}
}

func TestStore_SetIdentityReplacesInPlace(t *testing.T) {
	s := NewStore(&fakeAuth{identity: model.Identity{ID: 1, Name: "Ada"}})
	s.Bootstrap(context.Background())

	s.SetIdentity(model.Identity{ID: 1, Name: "Ada L."})
	if snap := s.Snapshot(); snap.Identity.Name != "Ada L." {
		t.Fatalf("expected identity replaced, got %+v", snap.Identity)
	}
}

func TestStore_SetIdentityIgnoredWhenAnonymous(t *testing.T) {
	s := NewStore(&fakeAuth{})
	s.MarkUnauthorized()
	s.SetIdentity(model.Identity{ID: 7})
	if snap := s.Snapshot(); snap.State != StateAnonymous || snap.Identity.ID != 0 {
		t.Fatalf("expected anonymous state untouched, got %+v", snap)
	}
}

func TestStore_MarkUnauthorized(t *testing.T) {
	s := NewStore(&fakeAuth{identity: model.Identity{ID: 1}})
	s.Bootstrap(context.Background())

	s.MarkUnauthorized()
	if snap := s.Snapshot(); snap.State != StateAnonymous {
		t.Fatalf("expected anonymous after unauthorized, got %v", snap.State)
	}
}
