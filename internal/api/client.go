// ABOUTME: HTTP client adapter for the Book Reader admin API
// ABOUTME: Injects bearer credentials and maps responses to typed errors

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Abdooo2235/bookreader-admin/internal/debuglog"
)

// TokenSource supplies the current bearer token; empty means no credentials
type TokenSource func() string

// Client is the API client for the Book Reader admin backend
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokenSource    TokenSource
	onUnauthorized func()
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetTokenSource installs the credential provider (usually the session store)
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokenSource = ts
}

// SetUnauthorizedHandler installs the callback invoked on any 401 response.
// The session store uses it to force a logout regardless of which call failed.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// errorEnvelope is the backend's error body shape
type errorEnvelope struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// do executes one request against the backend. No retries happen here;
// retry policy belongs to the fetch layer.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.handleErrorResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("invalid response from backend: %w", err)
		}
	}

	return nil
}

// handleRequestError converts transport and context errors to friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return &Error{Kind: KindNetwork, Message: "request canceled"}
	}
	if ctx.Err() == context.DeadlineExceeded {
		return &Error{Kind: KindNetwork, Message: "request timed out"}
	}
	return &Error{Kind: KindNetwork, Message: fmt.Sprintf("cannot connect to backend at %s: %v", c.baseURL, err)}
}

// handleErrorResponse maps non-2xx responses onto the error taxonomy
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var env errorEnvelope
	// A missing or malformed body still yields a usable status-only error
	_ = json.NewDecoder(resp.Body).Decode(&env)

	apiErr := &Error{StatusCode: resp.StatusCode, Message: env.Message}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		apiErr.Kind = KindUnauthorized
		if apiErr.Message == "" {
			apiErr.Message = "unauthorized"
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	case http.StatusForbidden:
		apiErr.Kind = KindForbidden
		if apiErr.Message == "" {
			apiErr.Message = "access denied: you do not have permission to access this resource"
		}
		debuglog.Warn("403 from %s %s: %s", resp.Request.Method, resp.Request.URL.Path, apiErr.Message)
	case http.StatusUnprocessableEntity:
		apiErr.Kind = KindValidation
		apiErr.Fields = env.Errors
		if apiErr.Message == "" {
			apiErr.Message = "validation failed"
		}
	default:
		apiErr.Kind = KindServer
	}

	return apiErr
}
