package api

import (
	"context"
	"net/http"
	"strings"

	"taskdeck/internal/model"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterCredentials struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// wireUser is the profile shape the server speaks: a role list instead of a
// single role.
type wireUser struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

// identity normalizes the server role list to a single role. Precedence is
// deterministic rather than positional: admin wins if present anywhere,
// else the first recognized entry, else user.
func (u wireUser) identity() model.Identity {
	role := model.RoleUser
	for _, r := range u.Roles {
		if strings.EqualFold(strings.TrimSpace(r), string(model.RoleAdmin)) {
			role = model.RoleAdmin
			break
		}
	}
	if role != model.RoleAdmin && len(u.Roles) > 0 {
		if first := strings.ToLower(strings.TrimSpace(u.Roles[0])); first == string(model.RoleUser) {
			role = model.RoleUser
		}
	}
	return model.Identity{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        role,
		Roles:       u.Roles,
		Permissions: u.Permissions,
		CreatedAt:   u.CreatedAt,
	}
}

// Login acquires the anti-forgery cookie, then authenticates. The session
// cookie lands in the client's jar as a side effect.
func (c *Client) Login(ctx context.Context, creds Credentials) (model.Identity, error) {
	if err := c.bootstrapCSRF(ctx); err != nil {
		return model.Identity{}, err
	}
	var u wireUser
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &u); err != nil {
		return model.Identity{}, err
	}
	return u.identity(), nil
}

// Register creates an account and authenticates in one step. Password
// confirmation matching is the caller's concern; the adapter only forwards.
func (c *Client) Register(ctx context.Context, creds RegisterCredentials) (model.Identity, error) {
	if err := c.bootstrapCSRF(ctx); err != nil {
		return model.Identity{}, err
	}
	var u wireUser
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, creds, &u); err != nil {
		return model.Identity{}, err
	}
	return u.identity(), nil
}

// FetchIdentity probes the profile endpoint. Failure means "not
// authenticated" to the session store; the error carries that decision.
func (c *Client) FetchIdentity(ctx context.Context) (model.Identity, error) {
	var u wireUser
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &u); err != nil {
		return model.Identity{}, err
	}
	return u.identity(), nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

type ProfileUpdate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) (model.Identity, error) {
	var u wireUser
	if err := c.do(ctx, http.MethodPut, "/user/profile", nil, upd, &u); err != nil {
		return model.Identity{}, err
	}
	return u.identity(), nil
}

type PasswordChange struct {
	CurrentPassword      string `json:"current_password"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// ChangePassword returns the server's confirmation message.
func (c *Client) ChangePassword(ctx context.Context, chg PasswordChange) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/user/password", nil, chg, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}
