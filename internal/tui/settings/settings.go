// ABOUTME: Settings screen for switching and persisting the color theme
// ABOUTME: Applying a theme rebuilds the shared styles for the next frame

package settings

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Abdooo2235/bookreader-admin/internal/theme"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/icons"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/styles"
)

// ThemeChangedMsg tells the root model a new palette is active
type ThemeChangedMsg struct {
	Theme theme.Theme
}

// Settings is the theme picker screen
type Settings struct {
	store  *theme.Store
	themes []theme.Theme
	cursor int
	width  int
}

// New creates the settings screen with the cursor on the active theme
func New(store *theme.Store) *Settings {
	s := &Settings{store: store, themes: theme.All()}
	current := store.Current().Name
	for i, t := range s.themes {
		if t.Name == current {
			s.cursor = i
			break
		}
	}
	return s
}

// Init implements tea.Model
func (s *Settings) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *Settings) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.themes)-1 {
				s.cursor++
			}
		case "enter":
			return s, s.apply(s.themes[s.cursor].Name)
		case "t":
			// Quick light/dark toggle without moving the cursor
			applied := s.store.ToggleMode()
			s.moveCursorTo(applied.Name)
			styles.Apply(applied)
			return s, func() tea.Msg { return ThemeChangedMsg{Theme: applied} }
		}
	}
	return s, nil
}

func (s *Settings) apply(name string) tea.Cmd {
	applied, err := s.store.Set(name)
	if err != nil {
		return nil
	}
	styles.Apply(applied)
	return func() tea.Msg { return ThemeChangedMsg{Theme: applied} }
}

func (s *Settings) moveCursorTo(name string) {
	for i, t := range s.themes {
		if t.Name == name {
			s.cursor = i
			return
		}
	}
}

// View implements tea.Model
func (s *Settings) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Settings.String() + " Settings"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("Theme"))
	sb.WriteString("\n")

	active := s.store.Current().Name
	for i, t := range s.themes {
		marker := "  "
		if i == s.cursor {
			marker = styles.SelectedItem.Render("> ")
		}
		label := fmt.Sprintf("%-16s %s", t.Name, t.Mode)
		if t.Name == active {
			label += "  " + icons.Approved.String()
		}
		if i == s.cursor {
			sb.WriteString(marker + styles.SelectedItem.Render(label))
		} else {
			sb.WriteString(marker + styles.NormalItem.Render(label))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render(icons.Theme.String() + " enter apply  t toggle light/dark"))
	sb.WriteString("\n")

	return sb.String()
}
