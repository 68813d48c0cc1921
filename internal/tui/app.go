// ABOUTME: Root bubbletea model for the admin TUI
// ABOUTME: Routes input to the active screen and enforces the auth guard

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Abdooo2235/bookreader-admin/internal/api"
	"github.com/Abdooo2235/bookreader-admin/internal/fetch"
	"github.com/Abdooo2235/bookreader-admin/internal/session"
	"github.com/Abdooo2235/bookreader-admin/internal/theme"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/bookdetail"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/books"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/categories"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/icons"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/login"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/overview"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/settings"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/styles"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/users"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenOverview
	ScreenBooks
	ScreenBookDetail
	ScreenCategories
	ScreenUsers
	ScreenSettings
)

// Layout constants
const (
	minTerminalWidth = 80
	statusDuration   = 4 * time.Second
)

// authCheckedMsg is sent when background session re-validation completes
type authCheckedMsg struct {
	ok bool
}

// statusExpiredMsg clears a stale toast
type statusExpiredMsg struct {
	id int
}

// App is the root model for the TUI
type App struct {
	client  *api.Client
	session *session.Store
	cache   *fetch.Cache
	themes  *theme.Store

	screen Screen
	width  int
	height int

	statusText  string
	statusIsErr bool
	statusID    int

	loginScreen    *login.Login
	overviewScreen *overview.Overview
	booksScreen    *books.Books
	detailScreen   *bookdetail.Detail
	categoryScreen *categories.Categories
	usersScreen    *users.Users
	settingsScreen *settings.Settings
}

// New creates the root TUI application
func New(client *api.Client, sess *session.Store, cache *fetch.Cache, themes *theme.Store) *App {
	styles.Apply(themes.Current())

	a := &App{
		client:  client,
		session: sess,
		cache:   cache,
		themes:  themes,
		screen:  ScreenLogin,
	}
	a.loginScreen = login.New(sess)

	// A persisted session shows the overview right away; the background
	// re-validation throws us back to login if the token is stale.
	if sess.Token() != "" {
		a.screen = ScreenOverview
		a.overviewScreen = overview.New(client, cache)
	}
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.loginScreen.Init()}
	if a.screen == ScreenOverview {
		cmds = append(cmds, a.overviewScreen.Init(), a.checkAuth())
	}
	return tea.Batch(cmds...)
}

// checkAuth re-validates the persisted token off the update loop
func (a *App) checkAuth() tea.Cmd {
	return func() tea.Msg {
		return authCheckedMsg{ok: a.session.CheckAuth(context.Background())}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Any 401 clears the session out from under us. Whatever the message
	// was, a protected screen without a session goes back to login and the
	// message is dropped so no stale payload lands after the redirect.
	if a.screen != ScreenLogin && !a.session.Authenticated() {
		if _, resize := msg.(tea.WindowSizeMsg); !resize {
			a.toLogin("Session expired. Please sign in again.")
			return a, a.loginScreen.Init()
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, a.forwardToAll(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.inputActive() {
			if handled, cmd := a.handleGlobalKey(msg.String()); handled {
				return a, cmd
			}
		}
		return a, a.forward(msg)

	case authCheckedMsg:
		if !msg.ok {
			a.toLogin("Session expired. Please sign in again.")
			return a, a.loginScreen.Init()
		}
		return a, nil

	case login.LoggedInMsg:
		a.screen = ScreenOverview
		a.overviewScreen = overview.New(a.client, a.cache)
		user := a.session.User()
		name := ""
		if user != nil {
			name = user.Name
		}
		return a, tea.Batch(a.overviewScreen.Init(), a.setStatus("Welcome back, "+name, false))

	case books.OpenDetailMsg:
		a.screen = ScreenBookDetail
		a.detailScreen = bookdetail.New(a.client, a.cache, msg.ID)
		return a, a.detailScreen.Init()

	case bookdetail.BackMsg:
		a.screen = ScreenBooks
		a.detailScreen = nil
		if a.booksScreen == nil {
			a.booksScreen = books.New(a.client, a.cache)
			return a, a.booksScreen.Init()
		}
		// The list may be stale after detail-screen mutations
		return a, a.forward(reloadKey())

	case books.StatusMsg:
		return a, a.setStatus(msg.Text, msg.IsErr)
	case bookdetail.StatusMsg:
		return a, a.setStatus(msg.Text, msg.IsErr)
	case categories.StatusMsg:
		return a, a.setStatus(msg.Text, msg.IsErr)

	case settings.ThemeChangedMsg:
		return a, a.setStatus("Theme: "+msg.Theme.Name, false)

	case statusExpiredMsg:
		if msg.id == a.statusID {
			a.statusText = ""
		}
		return a, nil
	}

	return a, a.forward(msg)
}

// handleGlobalKey processes navigation available on every protected screen
func (a *App) handleGlobalKey(key string) (bool, tea.Cmd) {
	if a.screen == ScreenLogin {
		return false, nil
	}

	switch key {
	case "q":
		return true, tea.Quit
	case "1":
		return true, a.show(ScreenOverview)
	case "2":
		return true, a.show(ScreenBooks)
	case "3":
		return true, a.show(ScreenCategories)
	case "4":
		return true, a.show(ScreenUsers)
	case "5":
		return true, a.show(ScreenSettings)
	case "L":
		return true, a.logout()
	}
	return false, nil
}

// show switches to a top-level screen, creating it on first visit
func (a *App) show(screen Screen) tea.Cmd {
	if a.screen == screen {
		return nil
	}
	a.screen = screen
	a.detailScreen = nil

	switch screen {
	case ScreenOverview:
		if a.overviewScreen == nil {
			a.overviewScreen = overview.New(a.client, a.cache)
			return a.overviewScreen.Init()
		}
		return a.forward(reloadKey())
	case ScreenBooks:
		if a.booksScreen == nil {
			a.booksScreen = books.New(a.client, a.cache)
			return a.booksScreen.Init()
		}
		return a.forward(reloadKey())
	case ScreenCategories:
		if a.categoryScreen == nil {
			a.categoryScreen = categories.New(a.client, a.cache)
			return a.categoryScreen.Init()
		}
		return a.forward(reloadKey())
	case ScreenUsers:
		if a.usersScreen == nil {
			a.usersScreen = users.New(a.client, a.cache)
			return a.usersScreen.Init()
		}
		return a.forward(reloadKey())
	case ScreenSettings:
		if a.settingsScreen == nil {
			a.settingsScreen = settings.New(a.themes)
		}
		return nil
	}
	return nil
}

// logout shows login right away, then revokes the token in the background.
// The deliberate sign-out keeps its own notice; only an involuntary loss of
// the session reads as expired.
func (a *App) logout() tea.Cmd {
	a.toLogin("Signed out.")
	a.statusIsErr = false
	sess := a.session
	return tea.Batch(a.loginScreen.Init(), func() tea.Msg {
		sess.Logout(context.Background())
		return nil
	})
}

// toLogin drops every protected screen and shows a fresh login form
func (a *App) toLogin(status string) {
	a.screen = ScreenLogin
	a.loginScreen = login.New(a.session)
	a.overviewScreen = nil
	a.booksScreen = nil
	a.detailScreen = nil
	a.categoryScreen = nil
	a.usersScreen = nil
	a.statusText = status
	a.statusIsErr = true
	a.statusID++
}

// inputActive reports whether the active screen is capturing free text
func (a *App) inputActive() bool {
	switch a.screen {
	case ScreenLogin:
		return true
	case ScreenBooks:
		return a.booksScreen != nil && a.booksScreen.InputActive()
	case ScreenBookDetail:
		return a.detailScreen != nil && a.detailScreen.InputActive()
	case ScreenCategories:
		return a.categoryScreen != nil && a.categoryScreen.InputActive()
	}
	return false
}

// forward routes a message to the active screen only
func (a *App) forward(msg tea.Msg) tea.Cmd {
	switch a.screen {
	case ScreenLogin:
		model, cmd := a.loginScreen.Update(msg)
		a.loginScreen = model.(*login.Login)
		return cmd
	case ScreenOverview:
		if a.overviewScreen == nil {
			return nil
		}
		model, cmd := a.overviewScreen.Update(msg)
		a.overviewScreen = model.(*overview.Overview)
		return cmd
	case ScreenBooks:
		if a.booksScreen == nil {
			return nil
		}
		model, cmd := a.booksScreen.Update(msg)
		a.booksScreen = model.(*books.Books)
		return cmd
	case ScreenBookDetail:
		if a.detailScreen == nil {
			return nil
		}
		model, cmd := a.detailScreen.Update(msg)
		a.detailScreen = model.(*bookdetail.Detail)
		return cmd
	case ScreenCategories:
		if a.categoryScreen == nil {
			return nil
		}
		model, cmd := a.categoryScreen.Update(msg)
		a.categoryScreen = model.(*categories.Categories)
		return cmd
	case ScreenUsers:
		if a.usersScreen == nil {
			return nil
		}
		model, cmd := a.usersScreen.Update(msg)
		a.usersScreen = model.(*users.Users)
		return cmd
	case ScreenSettings:
		if a.settingsScreen == nil {
			return nil
		}
		model, cmd := a.settingsScreen.Update(msg)
		a.settingsScreen = model.(*settings.Settings)
		return cmd
	}
	return nil
}

// forwardToAll delivers resize events to every live screen
func (a *App) forwardToAll(msg tea.WindowSizeMsg) tea.Cmd {
	var cmds []tea.Cmd
	screens := []func(tea.Msg) tea.Cmd{}
	if a.loginScreen != nil {
		screens = append(screens, func(m tea.Msg) tea.Cmd { model, cmd := a.loginScreen.Update(m); a.loginScreen = model.(*login.Login); return cmd })
	}
	if a.overviewScreen != nil {
		screens = append(screens, func(m tea.Msg) tea.Cmd { model, cmd := a.overviewScreen.Update(m); a.overviewScreen = model.(*overview.Overview); return cmd })
	}
	if a.booksScreen != nil {
		screens = append(screens, func(m tea.Msg) tea.Cmd { model, cmd := a.booksScreen.Update(m); a.booksScreen = model.(*books.Books); return cmd })
	}
	if a.detailScreen != nil {
		screens = append(screens, func(m tea.Msg) tea.Cmd { model, cmd := a.detailScreen.Update(m); a.detailScreen = model.(*bookdetail.Detail); return cmd })
	}
	if a.categoryScreen != nil {
		screens = append(screens, func(m tea.Msg) tea.Cmd { model, cmd := a.categoryScreen.Update(m); a.categoryScreen = model.(*categories.Categories); return cmd })
	}
	if a.usersScreen != nil {
		screens = append(screens, func(m tea.Msg) tea.Cmd { model, cmd := a.usersScreen.Update(m); a.usersScreen = model.(*users.Users); return cmd })
	}
	if a.settingsScreen != nil {
		screens = append(screens, func(m tea.Msg) tea.Cmd { model, cmd := a.settingsScreen.Update(m); a.settingsScreen = model.(*settings.Settings); return cmd })
	}
	for _, fn := range screens {
		if cmd := fn(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// setStatus shows a toast and schedules its expiry
func (a *App) setStatus(text string, isErr bool) tea.Cmd {
	a.statusText = text
	a.statusIsErr = isErr
	a.statusID++
	id := a.statusID
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return statusExpiredMsg{id: id}
	})
}

// reloadKey synthesizes the per-screen refresh keystroke
func reloadKey() tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}
}

// View implements tea.Model
func (a *App) View() string {
	var content string
	switch a.screen {
	case ScreenLogin:
		content = a.loginScreen.View()
	case ScreenOverview:
		if a.overviewScreen != nil {
			content = a.overviewScreen.View()
		}
	case ScreenBooks:
		if a.booksScreen != nil {
			content = a.booksScreen.View()
		}
	case ScreenBookDetail:
		if a.detailScreen != nil {
			content = a.detailScreen.View()
		}
	case ScreenCategories:
		if a.categoryScreen != nil {
			content = a.categoryScreen.View()
		}
	case ScreenUsers:
		if a.usersScreen != nil {
			content = a.usersScreen.View()
		}
	case ScreenSettings:
		if a.settingsScreen != nil {
			content = a.settingsScreen.View()
		}
	}
	return a.wrapWithFrame(content)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder
	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())
	return sb.String()
}

// renderHeader creates the header bar with app branding and identity
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("Book Reader Admin"))

	rightText := ""
	if user := a.session.User(); user != nil && a.screen != ScreenLogin {
		rightText = contextStyle.Render(user.Email) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	return borderStyle.Render("╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮")
}

// renderFooter creates the footer with shortcuts and the status toast
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	shortcuts := a.shortcuts()

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if a.statusText != "" {
		statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)
		if a.statusIsErr {
			statusStyle = lipgloss.NewStyle().Foreground(styles.Danger)
		}
		rightText = statusStyle.Render(a.statusText) + " "
		rightPlainText = a.statusText + " "
	}

	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := width - 4 - leftWidth - rightWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	return borderStyle.Render("╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯")
}

// shortcuts lists the footer hints for the active screen
func (a *App) shortcuts() []string {
	nav := []string{"1-5 Screens", "L Logout", "q Quit"}

	switch a.screen {
	case ScreenLogin:
		return []string{"Tab Next field", "Enter Submit", "Ctrl+c Quit"}
	case ScreenOverview:
		return append([]string{"r Refresh"}, nav...)
	case ScreenBooks:
		if a.booksScreen != nil {
			return append(a.booksScreen.Shortcuts(), nav...)
		}
	case ScreenBookDetail:
		if a.detailScreen != nil {
			return append(a.detailScreen.Shortcuts(), nav...)
		}
	case ScreenCategories:
		if a.categoryScreen != nil {
			return append(a.categoryScreen.Shortcuts(), nav...)
		}
	case ScreenUsers:
		return append([]string{"↑↓ Navigate", "r Refresh"}, nav...)
	case ScreenSettings:
		return append([]string{"↑↓ Select", "Enter Apply", "t Toggle"}, nav...)
	}
	return nav
}

// Run starts the TUI
func Run(client *api.Client, sess *session.Store, cache *fetch.Cache, themes *theme.Store) error {
	app := New(client, sess, cache, themes)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
