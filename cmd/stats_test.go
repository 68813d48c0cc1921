// ABOUTME: Tests for the stats command output and exit codes

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

// testEnv points the command at a mock backend and an isolated config dir
func testEnv(t *testing.T, serverURL string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	apiURL = serverURL
	t.Cleanup(func() {
		apiURL = ""
		jsonOutput = false
	})
}

func TestRunStatsHuman(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/dashboard/stats" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": api.DashboardStats{
				TotalUsers: 10, TotalBooks: 5, ApprovedBooks: 3, PendingBooks: 1, RejectedBooks: 1, TotalCategories: 4,
			},
		})
	}))
	defer server.Close()
	testEnv(t, server.URL)

	var buf bytes.Buffer
	if code := runStats(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}

	out := buf.String()
	for _, want := range []string{"Users:", "Pending:", "Categories:"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %s", want, out)
		}
	}
}

func TestRunStatsJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"data": api.DashboardStats{TotalUsers: 10}})
	}))
	defer server.Close()
	testEnv(t, server.URL)
	jsonOutput = true

	var buf bytes.Buffer
	if code := runStats(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	var decoded api.DashboardStats
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("expected valid JSON, got %s", buf.String())
	}
	if decoded.TotalUsers != 10 {
		t.Errorf("unexpected decoded stats %+v", decoded)
	}
}

func TestRunStatsConnectionError(t *testing.T) {
	testEnv(t, "http://127.0.0.1:1")

	var buf bytes.Buffer
	if code := runStats(context.Background(), &buf); code != 1 {
		t.Errorf("expected exit 1 for connection failure, got %d", code)
	}
	if !strings.Contains(buf.String(), "Error:") {
		t.Errorf("expected error output, got %s", buf.String())
	}
}

func TestRunStatsUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Unauthenticated."})
	}))
	defer server.Close()
	testEnv(t, server.URL)

	var buf bytes.Buffer
	if code := runStats(context.Background(), &buf); code != 2 {
		t.Errorf("expected exit 2 for auth failure, got %d", code)
	}
}
