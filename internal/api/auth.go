// ABOUTME: Authentication operations against /auth endpoints
// ABOUTME: Login, logout, and current-identity lookup

package api

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token and the authenticated user
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout notifies the backend that the current token should be revoked
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// Me fetches the identity behind the current token
func (c *Client) Me(ctx context.Context) (*User, error) {
	var env struct {
		Data User `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}
