// ABOUTME: Shared lipgloss styles for consistent TUI appearance
// ABOUTME: Rebuilt from the active theme palette on every theme switch

package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Abdooo2235/bookreader-admin/internal/theme"
)

// Colors - populated from the active theme
var (
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color
	Muted     lipgloss.Color
	Text      lipgloss.Color
	Surface   lipgloss.Color
)

// Base styles - rebuilt by Apply
var (
	Title          lipgloss.Style
	Subtitle       lipgloss.Style
	StatusOK       lipgloss.Style
	StatusWarning  lipgloss.Style
	StatusCritical lipgloss.Style
	Panel          lipgloss.Style
	ActivePanel    lipgloss.Style
	Help           lipgloss.Style
	KeyStyle       lipgloss.Style
	ValueStyle     lipgloss.Style
	ErrorText      lipgloss.Style
	SelectedItem   lipgloss.Style
	NormalItem     lipgloss.Style
)

func init() {
	Apply(theme.Default())
}

// Apply rebuilds every style from the given theme. Screens render with the
// package-level styles, so a switch is visible on the next frame.
func Apply(t theme.Theme) {
	p := t.Palette

	Primary = p.Primary
	Secondary = p.Secondary
	Accent = p.Accent
	Warning = p.Warning
	Danger = p.Danger
	Muted = p.Muted
	Text = p.Text
	Surface = p.Surface

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
		Foreground(Muted).
		MarginBottom(1)

	StatusOK = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	StatusWarning = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	StatusCritical = lipgloss.NewStyle().
		Foreground(Danger).
		Bold(true)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(1, 2)

	ActivePanel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 2)

	Help = lipgloss.NewStyle().
		Foreground(Muted).
		MarginTop(1)

	KeyStyle = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	ValueStyle = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	ErrorText = lipgloss.NewStyle().
		Foreground(Danger)

	SelectedItem = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	NormalItem = lipgloss.NewStyle().
		Foreground(Text)
}
