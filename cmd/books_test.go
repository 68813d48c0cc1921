// ABOUTME: Tests for the book moderation commands

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abdooo2235/bookreader-admin/internal/api"
)

func TestRunBooksList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/books" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("filter[status]"); got != "pending" {
			t.Errorf("expected status filter, got %q", got)
		}
		category := api.Category{ID: 1, Name: "Fiction"}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": api.BookPage{
				Data:        []api.Book{{ID: 1, Title: "A Book", Author: "Writer", Status: api.StatusPending, Category: &category}},
				CurrentPage: 1, LastPage: 1, Total: 1,
			},
		})
	}))
	defer server.Close()
	testEnv(t, server.URL)
	booksStatus = "pending"
	t.Cleanup(func() { booksStatus = ""; booksPage = 1 })

	var buf bytes.Buffer
	if code := runBooksList(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	out := buf.String()
	for _, want := range []string{"A Book", "pending", "Fiction", "Page 1 of 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %s", want, out)
		}
	}
}

func TestRunBooksApprove(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/admin/books/7/approve" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": api.Book{ID: 7, Title: "Approved Title", Status: api.StatusApproved},
		})
	}))
	defer server.Close()
	testEnv(t, server.URL)

	var buf bytes.Buffer
	if code := runBooksApprove(context.Background(), &buf, "7"); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Approved Title") {
		t.Errorf("expected confirmation, got %s", buf.String())
	}
}

func TestRunBooksApproveInvalidID(t *testing.T) {
	testEnv(t, "http://127.0.0.1:1")

	var buf bytes.Buffer
	if code := runBooksApprove(context.Background(), &buf, "abc"); code != 1 {
		t.Errorf("expected exit 1 for a bad ID, got %d", code)
	}
}

func TestRunBooksRejectSendsReason(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": api.Book{ID: 7, Title: "Rejected Title", Status: api.StatusRejected},
		})
	}))
	defer server.Close()
	testEnv(t, server.URL)
	rejectReason = "  low quality scan  "
	t.Cleanup(func() { rejectReason = "" })

	var buf bytes.Buffer
	if code := runBooksReject(context.Background(), &buf, "7"); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(gotBody, "low quality scan") {
		t.Errorf("expected trimmed reason in body, got %s", gotBody)
	}
	if strings.Contains(gotBody, "  low quality") {
		t.Errorf("expected reason to be trimmed, got %s", gotBody)
	}
}

func TestRunBooksRejectEmptyReasonOmitted(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": api.Book{ID: 7, Status: api.StatusRejected},
		})
	}))
	defer server.Close()
	testEnv(t, server.URL)
	rejectReason = ""

	var buf bytes.Buffer
	if code := runBooksReject(context.Background(), &buf, "7"); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if strings.Contains(gotBody, "rejection_reason") {
		t.Errorf("empty reason must be omitted, got %s", gotBody)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("unexpected %q", got)
	}
	if got := truncate("a very long book title", 10); got != "a very ..." {
		t.Errorf("unexpected %q", got)
	}
	// Multi-byte titles must be cut on rune boundaries
	if got := truncate("Преступление и наказание", 10); got != "Преступ..." {
		t.Errorf("unexpected %q", got)
	}
	if got := truncate("日本語の本", 10); got != "日本語の本" {
		t.Errorf("five runes fit in ten, got %q", got)
	}
}
