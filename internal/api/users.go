package api

import (
	"context"
	"net/http"

	"taskdeck/internal/model"
)

// FetchUsers returns the full user directory (admin only on the server
// side). Roles normalize the same way authenticate does.
func (c *Client) FetchUsers(ctx context.Context) ([]model.Identity, error) {
	var users []wireUser
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &users); err != nil {
		return nil, err
	}
	out := make([]model.Identity, 0, len(users))
	for _, u := range users {
		out = append(out, u.identity())
	}
	return out, nil
}
