// ABOUTME: Login screen as a bubbletea model wrapping a huh credential form
// ABOUTME: Owns the sign-in call and reports success via LoggedInMsg

package login

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Abdooo2235/bookreader-admin/internal/session"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/icons"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/styles"
)

// LoggedInMsg is sent when sign-in succeeds with an admin identity
type LoggedInMsg struct{}

// loginResultMsg carries the outcome of the sign-in command
type loginResultMsg struct {
	err error
}

// Login manages the credential form flow
type Login struct {
	session *session.Store
	form    *huh.Form
	width   int

	email    string
	password string

	submitting bool
	errMsg     string
}

// createTheme returns a huh theme built from the active styles
func createTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Group.Title = lipgloss.NewStyle().
		Foreground(styles.Primary).
		Bold(true).
		MarginBottom(1)
	t.Group.Description = lipgloss.NewStyle().
		Foreground(styles.Muted).
		MarginBottom(1)

	t.Focused.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.Primary)
	t.Focused.Title = lipgloss.NewStyle().
		Foreground(styles.Accent).
		Bold(true)
	t.Focused.Description = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().
		Foreground(styles.Danger).
		SetString(" *")
	t.Focused.ErrorMessage = lipgloss.NewStyle().
		Foreground(styles.Danger)

	t.Focused.TextInput.Cursor = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().
		Foreground(styles.Muted)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().
		Foreground(styles.Primary)
	t.Focused.TextInput.Text = lipgloss.NewStyle().
		Foreground(styles.Text)

	t.Focused.FocusedButton = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(styles.Primary).
		Padding(0, 2).
		MarginRight(1)
	t.Focused.BlurredButton = lipgloss.NewStyle().
		Foreground(styles.Muted).
		Background(styles.Surface).
		Padding(0, 2).
		MarginRight(1)

	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().
		PaddingLeft(1).
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true)
	t.Blurred.Title = lipgloss.NewStyle().
		Foreground(styles.Muted)

	return t
}

// New creates the login screen
func New(sess *session.Store) *Login {
	l := &Login{session: sess}
	l.form = l.createForm()
	return l
}

func (l *Login) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("admin@example.com").
				Value(&l.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&l.password).
				Validate(validateRequired("password")),
		).Title("Admin Sign In").
			Description("Sign in with an administrator account"),
	).WithTheme(createTheme())
}

// Init implements tea.Model
func (l *Login) Init() tea.Cmd {
	return l.form.Init()
}

// Update implements tea.Model
func (l *Login) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.width = msg.Width

	case loginResultMsg:
		l.submitting = false
		if msg.err != nil {
			l.errMsg = l.session.LastError()
			if l.errMsg == "" {
				l.errMsg = msg.err.Error()
			}
			// Keep the email, drop the password, present a fresh form
			l.password = ""
			l.form = l.createForm()
			return l, l.form.Init()
		}
		l.errMsg = ""
		return l, func() tea.Msg { return LoggedInMsg{} }
	}

	if l.submitting {
		return l, nil
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.submitting = true
		l.errMsg = ""
		return l, l.submit()
	}

	return l, cmd
}

// submit runs the sign-in call off the update loop
func (l *Login) submit() tea.Cmd {
	email, password := strings.TrimSpace(l.email), l.password
	return func() tea.Msg {
		err := l.session.Login(context.Background(), email, password)
		return loginResultMsg{err: err}
	}
}

// View implements tea.Model
func (l *Login) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Login.String() + " Book Reader Admin"))
	sb.WriteString("\n\n")

	if l.submitting {
		sb.WriteString(styles.Subtitle.Render("Signing in..."))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(l.form.View())

	if l.errMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.ErrorText.Render(icons.Warning.String() + " " + l.errMsg))
		sb.WriteString("\n")
	}

	return sb.String()
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errRequired("email")
	}
	if !strings.Contains(s, "@") {
		return errInvalidEmail
	}
	return nil
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return errRequired(field)
		}
		return nil
	}
}
