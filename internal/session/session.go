// ABOUTME: Persisted authentication state for the admin client
// ABOUTME: Single source of truth for token, identity, and the login flag

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Abdooo2235/bookreader-admin/internal/api"
	"github.com/Abdooo2235/bookreader-admin/internal/debuglog"
)

// ErrAccessDenied is returned when credentials are valid but the account
// does not hold the admin role. The store is left logged out.
var ErrAccessDenied = errors.New("access denied: admin privileges required")

// sessionFile is the name of the persisted record inside the config dir
const sessionFile = "session.json"

// persisted is the on-disk shape. Loading and error flags never persist.
type persisted struct {
	Token         string    `json:"token"`
	User          *api.User `json:"user"`
	Authenticated bool      `json:"authenticated"`
}

// Store holds the process-wide session. All methods are safe for use from
// concurrent tea commands.
type Store struct {
	mu     sync.Mutex
	path   string
	client *api.Client

	token         string
	user          *api.User
	authenticated bool
	loading       bool
	lastErr       string
}

// New creates the store, restores any persisted session, and wires itself
// into the client as both token source and 401 handler.
func New(configDir string, client *api.Client) *Store {
	s := &Store{
		path:   filepath.Join(configDir, sessionFile),
		client: client,
	}
	s.load()
	client.SetTokenSource(s.Token)
	client.SetUnauthorizedHandler(s.ForceLogout)
	return s
}

// load restores the persisted record. A missing or corrupt file means
// starting logged out.
func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		debuglog.Warn("corrupt session file, starting logged out: %v", err)
		return
	}
	s.token = p.Token
	s.user = p.User
	// Never trust a persisted authenticated flag without a token
	s.authenticated = p.Authenticated && p.Token != ""
}

// save writes the current record. Callers must hold the mutex.
func (s *Store) save() {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		debuglog.Error("session save", err)
		return
	}
	data, err := json.MarshalIndent(persisted{
		Token:         s.token,
		User:          s.user,
		Authenticated: s.authenticated,
	}, "", "  ")
	if err != nil {
		debuglog.Error("session save", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		debuglog.Error("session save", err)
	}
}

// clearLocked resets the in-memory session. Callers must hold the mutex.
func (s *Store) clearLocked() {
	s.token = ""
	s.user = nil
	s.authenticated = false
	s.loading = false
}

// Login authenticates against the backend. Only admin identities may hold
// a session; anything else leaves the store logged out. On failure the
// persisted record is left untouched.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		msg := "login failed. Please check your credentials."
		if api.IsKind(err, api.KindNetwork) {
			msg = err.Error()
		}
		s.mu.Lock()
		s.clearLocked()
		s.lastErr = msg
		s.mu.Unlock()
		return fmt.Errorf("login failed: %w", err)
	}

	if resp.User.Role != api.RoleAdmin {
		s.mu.Lock()
		s.clearLocked()
		s.lastErr = ErrAccessDenied.Error()
		s.mu.Unlock()
		return ErrAccessDenied
	}

	user := resp.User
	s.mu.Lock()
	s.token = resp.Token
	s.user = &user
	s.authenticated = true
	s.loading = false
	s.save()
	s.mu.Unlock()
	return nil
}

// Logout notifies the backend best-effort, then clears and persists the
// empty session. It always succeeds locally and is safe to call repeatedly.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token != "" {
		if err := s.client.Logout(ctx); err != nil {
			debuglog.Error("logout notification", err)
		}
	}

	s.mu.Lock()
	s.clearLocked()
	s.lastErr = ""
	s.save()
	s.mu.Unlock()
}

// CheckAuth re-validates a persisted token against /auth/me. Any failure
// or a non-admin role collapses to logged out with the token discarded:
// doubt about the identity always fails closed.
func (s *Store) CheckAuth(ctx context.Context) bool {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	if token == "" {
		s.mu.Lock()
		s.authenticated = false
		s.mu.Unlock()
		return false
	}

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	user, err := s.client.Me(ctx)
	if err != nil || user.Role != api.RoleAdmin {
		if err != nil {
			debuglog.Warn("session re-validation failed: %v", err)
		}
		s.ForceLogout()
		return false
	}

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.loading = false
	s.save()
	s.mu.Unlock()
	return true
}

// ForceLogout clears the session without a backend call. The HTTP client
// invokes it on any 401 response, from any screen.
func (s *Store) ForceLogout() {
	s.mu.Lock()
	s.clearLocked()
	s.save()
	s.mu.Unlock()
}

// Token returns the current bearer token, empty when logged out
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns a copy of the current identity, or nil
func (s *Store) User() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether an admin identity currently holds a session
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Loading reports whether a login or re-validation is in flight
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the most recent login failure message
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearError discards the stored failure message
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}
