// ABOUTME: Read-only user directory screen
// ABOUTME: Lists every platform account with role and verification state

package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Abdooo2235/bookreader-admin/internal/api"
	"github.com/Abdooo2235/bookreader-admin/internal/fetch"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/icons"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/styles"
)

const cacheKey = "users"

// loadedMsg is sent when the user list arrives
type loadedMsg struct {
	users []api.User
	err   error
}

// Users is the account directory screen
type Users struct {
	client *api.Client
	cache  *fetch.Cache
	width  int
	height int

	table   table.Model
	users   []api.User
	loading bool
	loadErr error
}

// New creates the user screen
func New(client *api.Client, cache *fetch.Cache) *Users {
	columns := []table.Column{
		{Title: "Name", Width: 22},
		{Title: "Email", Width: 30},
		{Title: "Role", Width: 8},
		{Title: "Verified", Width: 10},
		{Title: "Joined", Width: 20},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(14),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		Foreground(styles.Primary).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(styles.Primary).
		Bold(true)
	t.SetStyles(ts)

	return &Users{client: client, cache: cache, table: t, loading: true}
}

// Init implements tea.Model
func (u *Users) Init() tea.Cmd {
	return u.load()
}

func (u *Users) load() tea.Cmd {
	return func() tea.Msg {
		users, err := fetch.Get(context.Background(), u.cache, cacheKey,
			func(ctx context.Context) ([]api.User, error) {
				return u.client.ListUsers(ctx)
			})
		return loadedMsg{users: users, err: err}
	}
}

// Update implements tea.Model
func (u *Users) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		u.width = msg.Width
		u.height = msg.Height
		u.table.SetHeight(maxInt(6, msg.Height-10))
		return u, nil

	case loadedMsg:
		u.loading = false
		u.loadErr = msg.err
		if msg.err == nil {
			u.users = msg.users
			u.refreshRows()
		}
		return u, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			u.cache.Invalidate(cacheKey)
			u.loading = true
			u.loadErr = nil
			return u, u.load()
		}
		var cmd tea.Cmd
		u.table, cmd = u.table.Update(msg)
		return u, cmd
	}

	return u, nil
}

func (u *Users) refreshRows() {
	rows := make([]table.Row, 0, len(u.users))
	for _, account := range u.users {
		verified := "no"
		if account.EmailVerifiedAt != nil {
			verified = "yes"
		}
		rows = append(rows, table.Row{
			account.Name,
			account.Email,
			account.Role,
			verified,
			account.CreatedAt,
		})
	}
	u.table.SetRows(rows)
}

// View implements tea.Model
func (u *Users) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.User.String() + " Users"))
	sb.WriteString("\n")

	switch {
	case u.loading:
		sb.WriteString(styles.Subtitle.Render("Loading users..."))
	case u.loadErr != nil:
		sb.WriteString(styles.ErrorText.Render("Error: " + u.loadErr.Error()))
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("r retry"))
	case len(u.users) == 0:
		sb.WriteString(styles.Subtitle.Render("No users found."))
	default:
		sb.WriteString(u.table.View())
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%d account(s)", len(u.users))))
	}

	return sb.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
