// ABOUTME: Tests for scripted sign-in and sign-out

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abdooo2235/bookreader-admin/internal/api"
)

// stdinPassword makes readPassword consume stdin instead of prompting.
// Under go test stdin is empty, so the password arrives as "".
func stdinPassword(t *testing.T) {
	t.Helper()
	loginPasswordStdin = true
	t.Cleanup(func() { loginPasswordStdin = false })
}

func TestRunLoginSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(api.LoginResponse{
			Token: "tok-1",
			User:  api.User{ID: 1, Name: "Admin", Email: "admin@example.com", Role: api.RoleAdmin},
		})
	}))
	defer server.Close()
	testEnv(t, server.URL)
	stdinPassword(t)

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf, "admin@example.com"); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Signed in as Admin <admin@example.com>") {
		t.Errorf("unexpected output %s", buf.String())
	}
}

func TestRunLoginNonAdmin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(api.LoginResponse{
			Token: "tok-2",
			User:  api.User{ID: 2, Name: "Reader", Email: "reader@example.com", Role: api.RoleUser},
		})
	}))
	defer server.Close()
	testEnv(t, server.URL)
	stdinPassword(t)

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf, "reader@example.com"); code != 2 {
		t.Errorf("expected exit 2 for a non-admin account, got %d", code)
	}
	if !strings.Contains(buf.String(), "administrator access") {
		t.Errorf("expected role refusal, got %s", buf.String())
	}
}

func TestRunLoginBadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid credentials"})
	}))
	defer server.Close()
	testEnv(t, server.URL)
	stdinPassword(t)

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf, "admin@example.com"); code != 2 {
		t.Errorf("expected exit 2 for bad credentials, got %d", code)
	}
	if !strings.Contains(buf.String(), "credentials") {
		t.Errorf("expected failure message, got %s", buf.String())
	}
}

func TestRunLogoutAlwaysSucceeds(t *testing.T) {
	testEnv(t, "http://127.0.0.1:1")

	var buf bytes.Buffer
	if code := runLogout(context.Background(), &buf); code != 0 {
		t.Errorf("expected exit 0 even with the backend down, got %d", code)
	}
	if !strings.Contains(buf.String(), "Signed out.") {
		t.Errorf("unexpected output %s", buf.String())
	}
}
