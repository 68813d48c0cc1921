// ABOUTME: Category CRUD operations against /admin/categories endpoints
// ABOUTME: Names are validated locally before any request is issued

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// Category name bounds, matching the backend's own validation
const (
	CategoryNameMin = 2
	CategoryNameMax = 50
)

// ValidateCategoryName checks the name constraints without touching the
// network. Violations return a KindValidation error with a field message.
func ValidateCategoryName(name string) error {
	trimmed := strings.TrimSpace(name)
	var msg string
	switch {
	case trimmed == "":
		msg = "category name is required"
	case utf8.RuneCountInString(trimmed) < CategoryNameMin:
		msg = fmt.Sprintf("category name must be at least %d characters", CategoryNameMin)
	case utf8.RuneCountInString(trimmed) > CategoryNameMax:
		msg = fmt.Sprintf("category name must be less than %d characters", CategoryNameMax+1)
	default:
		return nil
	}
	return &Error{
		Kind:    KindValidation,
		Message: msg,
		Fields:  map[string][]string{"name": {msg}},
	}
}

type categoryRequest struct {
	Name string `json:"name"`
}

// ListCategories fetches all categories with their book counts
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var env struct {
		Data []Category `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/categories", nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// CreateCategory adds a new category
func (c *Client) CreateCategory(ctx context.Context, name string) (*Category, error) {
	if err := ValidateCategoryName(name); err != nil {
		return nil, err
	}
	var env struct {
		Data Category `json:"data"`
	}
	body := categoryRequest{Name: strings.TrimSpace(name)}
	if err := c.do(ctx, http.MethodPost, "/admin/categories", nil, body, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// UpdateCategory renames an existing category
func (c *Client) UpdateCategory(ctx context.Context, id int, name string) (*Category, error) {
	if err := ValidateCategoryName(name); err != nil {
		return nil, err
	}
	var env struct {
		Data Category `json:"data"`
	}
	body := categoryRequest{Name: strings.TrimSpace(name)}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/categories/%d", id), nil, body, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// DeleteCategory removes a category; books keep existing (server-enforced)
func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/categories/%d", id), nil, nil, nil)
}
