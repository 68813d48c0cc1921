// ABOUTME: Overview screen showing platform-wide aggregate counters
// ABOUTME: Renders metric blocks for users, books by status, and categories

package overview

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Abdooo2235/bookreader-admin/internal/api"
	"github.com/Abdooo2235/bookreader-admin/internal/fetch"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/icons"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/styles"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/widgets"
)

const cacheKey = "stats"

// statsLoadedMsg is sent when the dashboard counters arrive
type statsLoadedMsg struct {
	stats *api.DashboardStats
	err   error
}

// Overview displays the aggregate counters
type Overview struct {
	client *api.Client
	cache  *fetch.Cache
	width  int

	stats   *api.DashboardStats
	loading bool
	err     error
}

// New creates the overview screen
func New(client *api.Client, cache *fetch.Cache) *Overview {
	return &Overview{client: client, cache: cache, loading: true}
}

// Init implements tea.Model
func (o *Overview) Init() tea.Cmd {
	return o.load()
}

// Update implements tea.Model
func (o *Overview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		o.width = msg.Width

	case statsLoadedMsg:
		o.loading = false
		o.stats = msg.stats
		o.err = msg.err

	case tea.KeyMsg:
		if msg.String() == "r" {
			o.cache.Invalidate(cacheKey)
			o.loading = true
			o.err = nil
			return o, o.load()
		}
	}
	return o, nil
}

// load fetches the counters through the cache
func (o *Overview) load() tea.Cmd {
	return func() tea.Msg {
		stats, err := fetch.Get(context.Background(), o.cache, cacheKey,
			func(ctx context.Context) (*api.DashboardStats, error) {
				return o.client.GetDashboardStats(ctx)
			})
		return statsLoadedMsg{stats: stats, err: err}
	}
}

// View implements tea.Model
func (o *Overview) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Stats.String() + " Overview"))
	sb.WriteString("\n")

	if o.loading {
		sb.WriteString(styles.Subtitle.Render("Loading statistics..."))
		return sb.String()
	}
	if o.err != nil {
		sb.WriteString(styles.ErrorText.Render("Error: " + o.err.Error()))
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("r retry"))
		return sb.String()
	}
	if o.stats == nil {
		return sb.String()
	}

	cfg := widgets.DefaultMetricBlockConfig()
	cfg.BorderColor = styles.Muted
	cfg.TitleColor = styles.Primary
	cfg.ValueColor = styles.Text

	s := o.stats
	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		widgets.MetricBlock(icons.User, "Users", fmt.Sprintf("%d", s.TotalUsers), "registered", cfg),
		" ",
		widgets.MetricBlock(icons.Book, "Books", fmt.Sprintf("%d", s.TotalBooks), "total shared", cfg),
		" ",
		widgets.MetricBlock(icons.Category, "Categories", fmt.Sprintf("%d", s.TotalCategories), "active", cfg),
	)
	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top,
		widgets.MetricBlock(icons.Approved, "Approved", fmt.Sprintf("%d", s.ApprovedBooks), "published", cfg),
		" ",
		widgets.MetricBlock(icons.Pending, "Pending", fmt.Sprintf("%d", s.PendingBooks), "awaiting review", cfg),
		" ",
		widgets.MetricBlock(icons.Rejected, "Rejected", fmt.Sprintf("%d", s.RejectedBooks), "declined", cfg),
	)

	sb.WriteString(topRow)
	sb.WriteString("\n")
	sb.WriteString(bottomRow)
	sb.WriteString("\n")

	if s.PendingBooks > 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.StatusWarning.Render(
			fmt.Sprintf("%s %d book(s) waiting for moderation", icons.Warning.String(), s.PendingBooks)))
		sb.WriteString("\n")
	}

	return sb.String()
}
