// ABOUTME: Tests for the theme picker screen

package settings

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Abdooo2235/bookreader-admin/internal/theme"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestCursorStartsOnActiveTheme(t *testing.T) {
	store := theme.NewStore(t.TempDir())
	if _, err := store.Set("midnight"); err != nil {
		t.Fatal(err)
	}

	s := New(store)
	if s.themes[s.cursor].Name != "midnight" {
		t.Errorf("expected cursor on midnight, got %q", s.themes[s.cursor].Name)
	}
}

func TestEnterAppliesAndPersists(t *testing.T) {
	dir := t.TempDir()
	store := theme.NewStore(dir)
	s := New(store)

	// Move off the default and apply
	model, _ := s.Update(key("down"))
	s = model.(*Settings)
	model, cmd := s.Update(key("enter"))
	s = model.(*Settings)
	if cmd == nil {
		t.Fatal("expected a theme change message")
	}

	msg, ok := cmd().(ThemeChangedMsg)
	if !ok {
		t.Fatalf("expected ThemeChangedMsg, got %T", cmd())
	}
	if msg.Theme.Name != store.Current().Name {
		t.Errorf("message and store disagree: %q vs %q", msg.Theme.Name, store.Current().Name)
	}

	// The choice survives a restart
	restored := theme.NewStore(dir)
	if restored.Current().Name != store.Current().Name {
		t.Error("expected the applied theme to persist")
	}
}

func TestToggleKeySwitchesMode(t *testing.T) {
	store := theme.NewStore(t.TempDir())
	s := New(store)
	before := store.Current().Mode

	model, cmd := s.Update(key("t"))
	s = model.(*Settings)
	if cmd == nil {
		t.Fatal("expected a theme change message")
	}
	if store.Current().Mode == before {
		t.Error("t must switch to the opposite mode")
	}
	if s.themes[s.cursor].Name != store.Current().Name {
		t.Error("cursor must follow the toggled theme")
	}
}

func TestViewListsAllThemes(t *testing.T) {
	s := New(theme.NewStore(t.TempDir()))
	view := s.View()
	for _, th := range theme.All() {
		if !strings.Contains(view, th.Name) {
			t.Errorf("expected view to list %q", th.Name)
		}
	}
}
