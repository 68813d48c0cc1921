// ABOUTME: Book moderation operations against /admin/books endpoints
// ABOUTME: Listing with filters plus approve/reject/update/delete/restore

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListBooks fetches a page of books. Category and submitter are always
// embedded so screens never need follow-up fetches.
func (c *Client) ListBooks(ctx context.Context, filters BookFilters) (*BookPage, error) {
	query := url.Values{}
	if filters.Status != "" {
		query.Set("filter[status]", string(filters.Status))
	}
	if filters.CategoryID > 0 {
		query.Set("filter[category_id]", strconv.Itoa(filters.CategoryID))
	}
	if filters.Search != "" {
		query.Set("filter[title]", filters.Search)
	}
	if filters.Page > 0 {
		query.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(filters.PerPage))
	}
	query.Set("include", "category,creator")

	var env struct {
		Data BookPage `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/books", query, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// GetBook fetches a single book by ID
func (c *Client) GetBook(ctx context.Context, id int) (*Book, error) {
	var env struct {
		Data Book `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/admin/books/%d", id), nil, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// ApproveBook transitions a pending book to approved
func (c *Client) ApproveBook(ctx context.Context, id int) (*Book, error) {
	var env struct {
		Data Book `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/books/%d/approve", id), nil, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

type rejectRequest struct {
	// An empty reason is omitted entirely, never sent as ""
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// RejectBook transitions a pending book to rejected with an optional reason
func (c *Client) RejectBook(ctx context.Context, id int, reason string) (*Book, error) {
	var env struct {
		Data Book `json:"data"`
	}
	body := rejectRequest{RejectionReason: reason}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/books/%d/reject", id), nil, body, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// UpdateBook edits book metadata
func (c *Client) UpdateBook(ctx context.Context, id int, update BookUpdate) (*Book, error) {
	var env struct {
		Data Book `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/books/%d", id), nil, update, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// DeleteBook soft-deletes a book
func (c *Client) DeleteBook(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/admin/books/%d", id), nil, nil, nil)
}

// RestoreBook undoes a soft delete
func (c *Client) RestoreBook(ctx context.Context, id int) (*Book, error) {
	var env struct {
		Data Book `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/admin/books/%d/restore", id), nil, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}
