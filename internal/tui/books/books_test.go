// ABOUTME: Tests for the moderation queue screen
// ABOUTME: Drives Update with messages and asserts state and rendering

package books

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Abdooo2235/bookreader-admin/internal/api"
	"github.com/Abdooo2235/bookreader-admin/internal/fetch"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func testPage() *api.BookPage {
	category := api.Category{ID: 1, Name: "Fiction"}
	submitter := api.User{ID: 2, Name: "Reader", Email: "reader@example.com", Role: api.RoleUser}
	return &api.BookPage{
		Data: []api.Book{
			{ID: 1, Title: "Pending Book", Author: "A", Status: api.StatusPending, Category: &category, SubmittedBy: &submitter},
			{ID: 2, Title: "Approved Book", Author: "B", Status: api.StatusApproved, Category: &category},
			{ID: 3, Title: "Rejected Book", Author: "C", Status: api.StatusRejected},
		},
		CurrentPage: 1,
		LastPage:    3,
		PerPage:     10,
		Total:       25,
	}
}

func loadedScreen(t *testing.T) *Books {
	t.Helper()
	b := New(api.New("http://127.0.0.1:1"), fetch.New())
	model, _ := b.Update(pageLoadedMsg{key: b.cacheKey(), page: testPage()})
	return model.(*Books)
}

func TestInitialStateLoads(t *testing.T) {
	b := New(api.New("http://127.0.0.1:1"), fetch.New())
	if !b.loading {
		t.Error("expected loading state before the first page arrives")
	}
	if b.filter != "all" {
		t.Errorf("expected filter all, got %q", b.filter)
	}
	if b.Init() == nil {
		t.Error("Init must return the load command")
	}
}

func TestPageLoadedPopulatesTable(t *testing.T) {
	b := loadedScreen(t)
	if b.loading {
		t.Error("expected loading cleared")
	}
	if got := len(b.table.Rows()); got != 3 {
		t.Errorf("expected 3 rows, got %d", got)
	}

	view := b.View()
	for _, want := range []string{"Pending Book", "Fiction", "Reader", "Page 1 of 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestCountsFromUnfilteredPageOnly(t *testing.T) {
	b := loadedScreen(t)
	if !b.countsValid {
		t.Fatal("expected counts after an unfiltered load")
	}
	if b.counts.pending != 1 || b.counts.approved != 1 || b.counts.rejected != 1 {
		t.Errorf("unexpected counts %+v", b.counts)
	}

	// A filtered page must not overwrite the counts
	b.filter = "pending"
	filtered := &api.BookPage{
		Data:        []api.Book{{ID: 1, Title: "Pending Book", Status: api.StatusPending}},
		CurrentPage: 1, LastPage: 1, Total: 1,
	}
	model, _ := b.Update(pageLoadedMsg{key: b.cacheKey(), page: filtered})
	b = model.(*Books)
	if b.counts.approved != 1 || b.counts.rejected != 1 {
		t.Errorf("filtered page must not rewrite counts, got %+v", b.counts)
	}
}

func TestFilterKeyCycles(t *testing.T) {
	b := loadedScreen(t)
	want := []string{"pending", "approved", "rejected", "all"}
	for _, expected := range want {
		model, cmd := b.Update(key("f"))
		b = model.(*Books)
		if b.filter != expected {
			t.Errorf("expected filter %q, got %q", expected, b.filter)
		}
		if cmd == nil {
			t.Error("filter change must trigger a load")
		}
		if b.pageNum != 1 {
			t.Error("filter change must reset to page 1")
		}
		// Resolve the pending load before the next keypress
		model, _ = b.Update(pageLoadedMsg{key: b.cacheKey(), page: testPage()})
		b = model.(*Books)
	}
}

func TestApproveOnlyOnPending(t *testing.T) {
	b := loadedScreen(t)

	// Cursor on row 1 (approved book): approve must be a no-op
	b.table.SetCursor(1)
	model, cmd := b.Update(key("a"))
	b = model.(*Books)
	if b.inFlight {
		t.Error("approve on a non-pending book must not start an action")
	}
	if cmd != nil {
		t.Error("approve on a non-pending book must not return a command")
	}

	// Cursor on row 0 (pending): approve starts the action
	b.table.SetCursor(0)
	model, cmd = b.Update(key("a"))
	b = model.(*Books)
	if !b.inFlight {
		t.Error("expected action in flight")
	}
	if cmd == nil {
		t.Error("expected approve command")
	}

	// A second press while in flight is ignored
	model, cmd = b.Update(key("a"))
	b = model.(*Books)
	if cmd != nil {
		t.Error("second approve while in flight must be ignored")
	}
}

func TestRejectModalFlow(t *testing.T) {
	b := loadedScreen(t)
	b.table.SetCursor(0)

	model, _ := b.Update(key("x"))
	b = model.(*Books)
	if !b.rejectMode {
		t.Fatal("expected reject modal to open on a pending book")
	}
	if !b.InputActive() {
		t.Error("modal must capture input")
	}

	// Type a reason and confirm
	model, _ = b.Update(key("too blurry"))
	b = model.(*Books)
	model, cmd := b.Update(key("enter"))
	b = model.(*Books)
	if !b.inFlight || cmd == nil {
		t.Fatal("expected reject action in flight")
	}

	// Failure keeps the modal and the typed reason
	model, _ = b.Update(actionDoneMsg{verb: "Rejected", err: &api.Error{Kind: api.KindServer, Message: "boom"}})
	b = model.(*Books)
	if !b.rejectMode {
		t.Error("failed reject must keep the modal open")
	}
	if b.reason.Value() != "too blurry" {
		t.Errorf("failed reject must keep the reason, got %q", b.reason.Value())
	}
	if b.rejectErr == "" {
		t.Error("expected the failure message in the modal")
	}

	// Success closes the modal and reloads
	model, cmd = b.Update(key("enter"))
	b = model.(*Books)
	model, cmd = b.Update(actionDoneMsg{verb: "Rejected", title: "Pending Book"})
	b = model.(*Books)
	if b.rejectMode {
		t.Error("successful reject must close the modal")
	}
	if !b.loading || cmd == nil {
		t.Error("successful reject must reload the list")
	}
}

func TestRejectModalEscCancels(t *testing.T) {
	b := loadedScreen(t)
	b.table.SetCursor(0)

	model, _ := b.Update(key("x"))
	b = model.(*Books)
	model, _ = b.Update(key("esc"))
	b = model.(*Books)
	if b.rejectMode {
		t.Error("esc must close the modal")
	}
	if b.inFlight {
		t.Error("cancel must not start an action")
	}
}

func TestRejectOnlyOnPending(t *testing.T) {
	b := loadedScreen(t)
	b.table.SetCursor(2) // rejected book

	model, _ := b.Update(key("x"))
	b = model.(*Books)
	if b.rejectMode {
		t.Error("reject must be a no-op on a non-pending book")
	}
}

func TestPaginationGuards(t *testing.T) {
	b := loadedScreen(t)

	// On page 1 of 3: left is a no-op, right advances
	model, cmd := b.Update(key("left"))
	b = model.(*Books)
	if cmd != nil || b.pageNum != 1 {
		t.Error("left on the first page must be a no-op")
	}

	model, cmd = b.Update(key("right"))
	b = model.(*Books)
	if cmd == nil || b.pageNum != 2 {
		t.Errorf("right must advance to page 2, got %d", b.pageNum)
	}

	// Last page: right is a no-op
	lastPage := testPage()
	lastPage.CurrentPage = 3
	model, _ = b.Update(pageLoadedMsg{key: b.cacheKey(), page: lastPage})
	b = model.(*Books)
	model, cmd = b.Update(key("right"))
	b = model.(*Books)
	if cmd != nil {
		t.Error("right on the last page must be a no-op")
	}
}

func TestSearchFlow(t *testing.T) {
	b := loadedScreen(t)
	b.pageNum = 2

	model, _ := b.Update(key("/"))
	b = model.(*Books)
	if !b.searchMode || !b.InputActive() {
		t.Fatal("expected search mode")
	}

	model, _ = b.Update(key("golang"))
	b = model.(*Books)
	model, cmd := b.Update(key("enter"))
	b = model.(*Books)
	if b.searchMode {
		t.Error("enter must leave search mode")
	}
	if b.search != "golang" {
		t.Errorf("expected search term, got %q", b.search)
	}
	if b.pageNum != 1 {
		t.Error("a new search must reset to page 1")
	}
	if cmd == nil {
		t.Error("a new search must trigger a load")
	}
}

func TestEnterOpensDetail(t *testing.T) {
	b := loadedScreen(t)
	b.table.SetCursor(1)

	_, cmd := b.Update(key("enter"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(OpenDetailMsg)
	if !ok {
		t.Fatalf("expected OpenDetailMsg, got %T", cmd())
	}
	if msg.ID != 2 {
		t.Errorf("expected book 2, got %d", msg.ID)
	}
}

func TestLoadErrorRendered(t *testing.T) {
	b := New(api.New("http://127.0.0.1:1"), fetch.New())
	model, _ := b.Update(pageLoadedMsg{key: b.cacheKey(), err: &api.Error{Kind: api.KindNetwork, Message: "cannot connect"}})
	b = model.(*Books)

	view := b.View()
	if !strings.Contains(view, "cannot connect") {
		t.Errorf("expected the error in the view, got %q", view)
	}
}

func TestStaleFetchDiscarded(t *testing.T) {
	b := loadedScreen(t)

	// Walk all → pending → approved; the pending fetch is now superseded
	model, _ := b.Update(key("f"))
	b = model.(*Books)
	staleKey := b.cacheKey()
	model, _ = b.Update(key("f"))
	b = model.(*Books)
	if b.filter != "approved" {
		t.Fatalf("expected approved filter, got %q", b.filter)
	}

	approved := &api.BookPage{
		Data:        []api.Book{{ID: 5, Title: "Approved Only", Status: api.StatusApproved}},
		CurrentPage: 1, LastPage: 1, Total: 1,
	}
	model, _ = b.Update(pageLoadedMsg{key: b.cacheKey(), page: approved})
	b = model.(*Books)

	// The superseded pending fetch resolves late and must be dropped
	stale := &api.BookPage{
		Data:        []api.Book{{ID: 6, Title: "Still Pending", Status: api.StatusPending}},
		CurrentPage: 1, LastPage: 9, Total: 99,
	}
	model, _ = b.Update(pageLoadedMsg{key: staleKey, page: stale})
	b = model.(*Books)

	if b.loading {
		t.Error("a discarded fetch must not change the loading state")
	}
	view := b.View()
	if strings.Contains(view, "Still Pending") {
		t.Error("stale page must not render")
	}
	if !strings.Contains(view, "Approved Only") {
		t.Error("current page must stay on screen")
	}
	if b.page.Total != 1 {
		t.Errorf("stale pagination meta must not land, got total %d", b.page.Total)
	}
}

func TestCacheKeyShape(t *testing.T) {
	b := New(api.New("http://127.0.0.1:1"), fetch.New())
	b.filter = "pending"
	b.search = "go"
	b.pageNum = 2
	if got := b.cacheKey(); got != "books:pending:go:2" {
		t.Errorf("unexpected cache key %q", got)
	}
}
