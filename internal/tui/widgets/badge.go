// ABOUTME: Status badge widgets for quick visual status indication
// ABOUTME: Colored inline badges for moderation states and user roles

package widgets

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Abdooo2235/bookreader-admin/internal/api"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/icons"
)

// Level represents the severity of a badge
type Level int

const (
	LevelOK Level = iota
	LevelWarning
	LevelDanger
	LevelInfo
	LevelNeutral
)

// Badge colors
var (
	badgeOKBg      = lipgloss.Color("#10B981")
	badgeOKFg      = lipgloss.Color("#FFFFFF")
	badgeWarnBg    = lipgloss.Color("#F59E0B")
	badgeWarnFg    = lipgloss.Color("#000000")
	badgeDangerBg  = lipgloss.Color("#EF4444")
	badgeDangerFg  = lipgloss.Color("#FFFFFF")
	badgeInfoBg    = lipgloss.Color("#3B82F6")
	badgeInfoFg    = lipgloss.Color("#FFFFFF")
	badgeNeutralBg = lipgloss.Color("#6B7280")
	badgeNeutralFg = lipgloss.Color("#FFFFFF")
)

// Badge renders a colored inline badge
func Badge(text string, level Level) string {
	var bg, fg lipgloss.Color

	switch level {
	case LevelOK:
		bg, fg = badgeOKBg, badgeOKFg
	case LevelWarning:
		bg, fg = badgeWarnBg, badgeWarnFg
	case LevelDanger:
		bg, fg = badgeDangerBg, badgeDangerFg
	case LevelInfo:
		bg, fg = badgeInfoBg, badgeInfoFg
	default:
		bg, fg = badgeNeutralBg, badgeNeutralFg
	}

	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// StatusBadge renders a moderation status badge
func StatusBadge(status api.BookStatus) string {
	switch status {
	case api.StatusApproved:
		return Badge("APPROVED", LevelOK)
	case api.StatusPending:
		return Badge("PENDING", LevelWarning)
	case api.StatusRejected:
		return Badge("REJECTED", LevelDanger)
	default:
		return Badge(string(status), LevelNeutral)
	}
}

// StatusIcon returns the colored icon for a moderation status
func StatusIcon(status api.BookStatus) string {
	switch status {
	case api.StatusApproved:
		return lipgloss.NewStyle().Foreground(badgeOKBg).Render(icons.Approved.String())
	case api.StatusPending:
		return lipgloss.NewStyle().Foreground(badgeWarnBg).Render(icons.Pending.String())
	case api.StatusRejected:
		return lipgloss.NewStyle().Foreground(badgeDangerBg).Render(icons.Rejected.String())
	default:
		return lipgloss.NewStyle().Foreground(badgeNeutralBg).Render("•")
	}
}

// RoleBadge renders a user role badge; admins stand out
func RoleBadge(role string) string {
	if role == api.RoleAdmin {
		return Badge("ADMIN", LevelInfo)
	}
	return Badge("USER", LevelNeutral)
}
