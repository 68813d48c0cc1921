// ABOUTME: Read-only user listing against /admin/users
// ABOUTME: The admin client never mutates accounts

package api

import (
	"context"
	"net/http"
)

// ListUsers fetches all platform accounts
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var env struct {
		Data []User `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}
