// ABOUTME: Named color themes and the persisted theme preference
// ABOUTME: The active palette drives every lipgloss style in the TUI

package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/Abdooo2235/bookreader-admin/internal/debuglog"
)

// Mode is the light/dark classification of a theme
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Palette holds the colors a theme contributes to the styles package
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color
	Muted     lipgloss.Color
	Text      lipgloss.Color
	Surface   lipgloss.Color
}

// Theme is a named palette with a derived light/dark mode
type Theme struct {
	Name    string
	Mode    Mode
	Palette Palette
}

// DefaultName is the theme used when nothing is persisted or the
// persisted name is unknown
const DefaultName = "light"

var themes = []Theme{
	{
		Name: "light",
		Mode: Light,
		Palette: Palette{
			Primary:   lipgloss.Color("#7C3AED"),
			Secondary: lipgloss.Color("#059669"),
			Accent:    lipgloss.Color("#8B5CF6"),
			Warning:   lipgloss.Color("#D97706"),
			Danger:    lipgloss.Color("#DC2626"),
			Muted:     lipgloss.Color("#6B7280"),
			Text:      lipgloss.Color("#111827"),
			Surface:   lipgloss.Color("#E5E7EB"),
		},
	},
	{
		Name: "dark",
		Mode: Dark,
		Palette: Palette{
			Primary:   lipgloss.Color("#7C3AED"),
			Secondary: lipgloss.Color("#10B981"),
			Accent:    lipgloss.Color("#8B5CF6"),
			Warning:   lipgloss.Color("#F59E0B"),
			Danger:    lipgloss.Color("#EF4444"),
			Muted:     lipgloss.Color("#6B7280"),
			Text:      lipgloss.Color("#F9FAFB"),
			Surface:   lipgloss.Color("#374151"),
		},
	},
	{
		Name: "dark-ocean",
		Mode: Dark,
		Palette: Palette{
			Primary:   lipgloss.Color("#06B6D4"),
			Secondary: lipgloss.Color("#34D399"),
			Accent:    lipgloss.Color("#22D3EE"),
			Warning:   lipgloss.Color("#FBBF24"),
			Danger:    lipgloss.Color("#F87171"),
			Muted:     lipgloss.Color("#64748B"),
			Text:      lipgloss.Color("#E2E8F0"),
			Surface:   lipgloss.Color("#1E293B"),
		},
	},
	{
		Name: "solarized-light",
		Mode: Light,
		Palette: Palette{
			Primary:   lipgloss.Color("#268BD2"),
			Secondary: lipgloss.Color("#859900"),
			Accent:    lipgloss.Color("#2AA198"),
			Warning:   lipgloss.Color("#B58900"),
			Danger:    lipgloss.Color("#DC322F"),
			Muted:     lipgloss.Color("#93A1A1"),
			Text:      lipgloss.Color("#586E75"),
			Surface:   lipgloss.Color("#EEE8D5"),
		},
	},
	{
		Name: "midnight",
		Mode: Dark,
		Palette: Palette{
			Primary:   lipgloss.Color("#818CF8"),
			Secondary: lipgloss.Color("#4ADE80"),
			Accent:    lipgloss.Color("#A5B4FC"),
			Warning:   lipgloss.Color("#FACC15"),
			Danger:    lipgloss.Color("#FB7185"),
			Muted:     lipgloss.Color("#475569"),
			Text:      lipgloss.Color("#F1F5F9"),
			Surface:   lipgloss.Color("#0F172A"),
		},
	},
}

// All returns every available theme in display order
func All() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// ByName looks up a theme by its name
func ByName(name string) (Theme, bool) {
	for _, t := range themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Default returns the fallback theme
func Default() Theme {
	t, _ := ByName(DefaultName)
	return t
}

// themeFile is the persisted preference inside the config dir
const themeFile = "theme.json"

// persisted stores the theme name only; the palette is data, not state
type persisted struct {
	Theme string `json:"theme"`
}

// Store is the persisted theme preference
type Store struct {
	mu      sync.Mutex
	path    string
	current Theme
}

// NewStore loads the preference from the config dir. Missing or unknown
// names fall back to the default theme.
func NewStore(configDir string) *Store {
	s := &Store{
		path:    filepath.Join(configDir, themeFile),
		current: Default(),
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		debuglog.Warn("corrupt theme file, using default: %v", err)
		return
	}
	if t, ok := ByName(p.Theme); ok {
		s.current = t
	}
}

func (s *Store) save() {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		debuglog.Error("theme save", err)
		return
	}
	data, err := json.MarshalIndent(persisted{Theme: s.current.Name}, "", "  ")
	if err != nil {
		debuglog.Error("theme save", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		debuglog.Error("theme save", err)
	}
}

// Current returns the active theme
func (s *Store) Current() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Set activates and persists the named theme
func (s *Store) Set(name string) (Theme, error) {
	t, ok := ByName(name)
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
	s.mu.Lock()
	s.current = t
	s.save()
	s.mu.Unlock()
	return t, nil
}

// ToggleMode switches to the first theme of the opposite mode
func (s *Store) ToggleMode() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	target := Dark
	if s.current.Mode == Dark {
		target = Light
	}
	for _, t := range themes {
		if t.Mode == target {
			s.current = t
			s.save()
			break
		}
	}
	return s.current
}
