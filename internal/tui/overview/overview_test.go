// ABOUTME: Tests for the overview screen rendering and refresh

package overview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Abdooo2235/bookreader-admin/internal/api"
	"github.com/Abdooo2235/bookreader-admin/internal/fetch"
)

func testStats() *api.DashboardStats {
	return &api.DashboardStats{
		TotalUsers:      150,
		TotalBooks:      89,
		ApprovedBooks:   70,
		PendingBooks:    12,
		RejectedBooks:   7,
		TotalCategories: 9,
	}
}

func TestLoadingState(t *testing.T) {
	o := New(api.New("http://127.0.0.1:1"), fetch.New())
	if !strings.Contains(o.View(), "Loading") {
		t.Error("expected loading state before data arrives")
	}
	if o.Init() == nil {
		t.Error("Init must return the load command")
	}
}

func TestStatsRendered(t *testing.T) {
	o := New(api.New("http://127.0.0.1:1"), fetch.New())
	model, _ := o.Update(statsLoadedMsg{stats: testStats()})
	o = model.(*Overview)

	view := o.View()
	for _, want := range []string{"150", "89", "70", "12", "7", "9", "waiting for moderation"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestNoBacklogBannerWhenClear(t *testing.T) {
	stats := testStats()
	stats.PendingBooks = 0
	o := New(api.New("http://127.0.0.1:1"), fetch.New())
	model, _ := o.Update(statsLoadedMsg{stats: stats})
	o = model.(*Overview)

	if strings.Contains(o.View(), "waiting for moderation") {
		t.Error("no banner expected without pending books")
	}
}

func TestErrorState(t *testing.T) {
	o := New(api.New("http://127.0.0.1:1"), fetch.New())
	model, _ := o.Update(statsLoadedMsg{err: &api.Error{Kind: api.KindNetwork, Message: "cannot connect"}})
	o = model.(*Overview)

	if !strings.Contains(o.View(), "cannot connect") {
		t.Error("expected the error in the view")
	}
}

func TestRefreshKeyReloads(t *testing.T) {
	o := New(api.New("http://127.0.0.1:1"), fetch.New())
	model, _ := o.Update(statsLoadedMsg{stats: testStats()})
	o = model.(*Overview)

	model, cmd := o.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	o = model.(*Overview)
	if !o.loading || cmd == nil {
		t.Error("r must invalidate and reload")
	}
}
