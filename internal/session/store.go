// Package session owns the process-wide authentication state. The store is
// the single writer; everything else reads immutable snapshots.
package session

import (
	"context"
	"sync"

	"taskdeck/internal/api"
	"taskdeck/internal/model"
)

type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable read of the session at one point in time.
type Snapshot struct {
	State    State
	Identity model.Identity
}

func (s Snapshot) Authenticated() bool { return s.State == StateAuthenticated }

// Loading reports whether the startup probe has not settled yet. Consumers
// must not render protected content while this holds.
func (s Snapshot) Loading() bool {
	return s.State == StateUninitialized || s.State == StateLoading
}

// Authenticator is the slice of the API adapter the store depends on.
type Authenticator interface {
	Login(ctx context.Context, creds api.Credentials) (model.Identity, error)
	Register(ctx context.Context, creds api.RegisterCredentials) (model.Identity, error)
	FetchIdentity(ctx context.Context) (model.Identity, error)
	Logout(ctx context.Context) error
}

type Store struct {
	auth Authenticator

	mu       sync.Mutex
	state    State
	identity model.Identity
}

func NewStore(auth Authenticator) *Store {
	return &Store{auth: auth, state: StateUninitialized}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{State: s.state, Identity: s.identity}
}

// Bootstrap probes the profile endpoint once at startup. Any failure means
// anonymous; it is never surfaced as an error.
func (s *Store) Bootstrap(ctx context.Context) Snapshot {
	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	id, err := s.auth.FetchIdentity(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateAnonymous
		s.identity = model.Identity{}
	} else {
		s.state = StateAuthenticated
		s.identity = id
	}
	return Snapshot{State: s.state, Identity: s.identity}
}

func (s *Store) Login(ctx context.Context, creds api.Credentials) (model.Identity, error) {
	id, err := s.auth.Login(ctx, creds)
	if err != nil {
		return model.Identity{}, err
	}
	s.setAuthenticated(id)
	return id, nil
}

func (s *Store) Register(ctx context.Context, creds api.RegisterCredentials) (model.Identity, error) {
	id, err := s.auth.Register(ctx, creds)
	if err != nil {
		return model.Identity{}, err
	}
	s.setAuthenticated(id)
	return id, nil
}

// Logout notifies the server best-effort. Local state clears regardless of
// the server's answer.
func (s *Store) Logout(ctx context.Context) {
	_ = s.auth.Logout(ctx)
	s.clear()
}

// SetIdentity replaces the identity in place after a profile update. A
// no-op unless currently authenticated.
func (s *Store) SetIdentity(id model.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated {
		return
	}
	s.identity = id
}

// MarkUnauthorized is the top-level 401 listener's entry point: the session
// is gone on the server, so it is gone here too.
func (s *Store) MarkUnauthorized() { s.clear() }

func (s *Store) setAuthenticated(id model.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAuthenticated
	s.identity = id
}

func (s *Store) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAnonymous
	s.identity = model.Identity{}
}
