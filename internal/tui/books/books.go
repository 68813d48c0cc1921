// ABOUTME: Book moderation queue screen with filters, search, and paging
// ABOUTME: Approvals and rejections run one at a time and refetch the list

package books

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Abdooo2235/bookreader-admin/internal/api"
	"github.com/Abdooo2235/bookreader-admin/internal/fetch"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/icons"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/styles"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/widgets"
)

// filterCycle is the order the f key walks through
var filterCycle = []string{"all", "pending", "approved", "rejected"}

// StatusMsg is a toast for the root frame
type StatusMsg struct {
	Text  string
	IsErr bool
}

// OpenDetailMsg asks the root model to show one book
type OpenDetailMsg struct {
	ID int
}

// pageLoadedMsg is sent when a list page arrives. key records which
// filter/search/page the fetch was issued for, so a superseded fetch that
// resolves late can be told apart from the current one.
type pageLoadedMsg struct {
	key  string
	page *api.BookPage
	err  error
}

// actionDoneMsg is sent when a moderation action resolves
type actionDoneMsg struct {
	verb  string
	title string
	err   error
}

// statusCounts are derived from the visible page, never fetched separately
type statusCounts struct {
	pending  int
	approved int
	rejected int
}

// Books is the moderation queue screen
type Books struct {
	client *api.Client
	cache  *fetch.Cache
	width  int
	height int

	table       table.Model
	page        *api.BookPage
	counts      statusCounts
	countsValid bool

	filter     string
	search     string
	pageNum    int
	loading    bool
	loadErr    error
	inFlight   bool
	rejectMode bool
	rejectID   int
	rejectErr  string
	reason     textinput.Model
	searchMode bool
	searchIn   textinput.Model
}

// New creates the book queue screen
func New(client *api.Client, cache *fetch.Cache) *Books {
	columns := []table.Column{
		{Title: "Title", Width: 28},
		{Title: "Author", Width: 18},
		{Title: "Category", Width: 14},
		{Title: "Submitted By", Width: 18},
		{Title: "Status", Width: 10},
		{Title: "DLs", Width: 5},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(table.DefaultStyles().Header.GetBorderStyle()).
		Foreground(styles.Primary).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(styles.Primary).
		Bold(true)
	t.SetStyles(ts)

	reason := textinput.New()
	reason.Placeholder = "reason (optional)"
	reason.CharLimit = 500

	searchIn := textinput.New()
	searchIn.Placeholder = "search titles"
	searchIn.CharLimit = 100

	return &Books{
		client:   client,
		cache:    cache,
		table:    t,
		filter:   "all",
		pageNum:  1,
		loading:  true,
		reason:   reason,
		searchIn: searchIn,
	}
}

// Init implements tea.Model
func (b *Books) Init() tea.Cmd {
	return b.load()
}

// cacheKey identifies one page of one filtered view
func (b *Books) cacheKey() string {
	return fmt.Sprintf("books:%s:%s:%d", b.filter, b.search, b.pageNum)
}

// load fetches the current page through the cache
func (b *Books) load() tea.Cmd {
	filter, search, pageNum := b.filter, b.search, b.pageNum
	key := b.cacheKey()
	return func() tea.Msg {
		page, err := fetch.Get(context.Background(), b.cache, key,
			func(ctx context.Context) (*api.BookPage, error) {
				f := api.BookFilters{Search: search, Page: pageNum}
				if filter != "all" {
					f.Status = api.BookStatus(filter)
				}
				return b.client.ListBooks(ctx, f)
			})
		return pageLoadedMsg{key: key, page: page, err: err}
	}
}

// reload drops the cached page and fetches again
func (b *Books) reload() tea.Cmd {
	b.cache.Invalidate(b.cacheKey())
	b.loading = true
	b.loadErr = nil
	return b.load()
}

// Update implements tea.Model
func (b *Books) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.table.SetHeight(maxInt(6, msg.Height-14))
		return b, nil

	case pageLoadedMsg:
		// A fetch for a view the user has already left must not land
		if msg.key != b.cacheKey() {
			return b, nil
		}
		b.loading = false
		b.loadErr = msg.err
		if msg.err == nil {
			b.page = msg.page
			b.refreshRows()
		}
		return b, nil

	case actionDoneMsg:
		b.inFlight = false
		if msg.err != nil {
			if b.rejectMode {
				// Keep the modal and the typed reason so the admin can retry
				b.rejectErr = msg.err.Error()
				return b, nil
			}
			return b, toast(fmt.Sprintf("%s failed: %v", msg.verb, msg.err), true)
		}
		b.closeRejectModal()
		b.cache.InvalidatePrefix("books:")
		b.cache.Invalidate("stats")
		b.loading = true
		return b, tea.Batch(
			b.load(),
			toast(fmt.Sprintf("%s %q", msg.verb, msg.title), false),
		)

	case tea.KeyMsg:
		if b.rejectMode {
			return b.updateRejectModal(msg)
		}
		if b.searchMode {
			return b.updateSearchMode(msg)
		}
		return b.updateList(msg)
	}

	return b, nil
}

func (b *Books) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		return b, b.reload()

	case "f":
		b.filter = nextFilter(b.filter)
		b.pageNum = 1
		b.loading = true
		b.loadErr = nil
		return b, b.load()

	case "/":
		b.searchMode = true
		b.searchIn.SetValue(b.search)
		b.searchIn.Focus()
		return b, textinput.Blink

	case "left", "h":
		if b.page != nil && b.page.CurrentPage > 1 && !b.loading {
			b.pageNum = b.page.CurrentPage - 1
			b.loading = true
			return b, b.load()
		}
		return b, nil

	case "right", "l":
		if b.page != nil && b.page.CurrentPage < b.page.LastPage && !b.loading {
			b.pageNum = b.page.CurrentPage + 1
			b.loading = true
			return b, b.load()
		}
		return b, nil

	case "enter":
		if book := b.selected(); book != nil {
			id := book.ID
			return b, func() tea.Msg { return OpenDetailMsg{ID: id} }
		}
		return b, nil

	case "a":
		book := b.selected()
		if book == nil || book.Status != api.StatusPending || b.inFlight {
			return b, nil
		}
		b.inFlight = true
		return b, b.approve(book.ID, book.Title)

	case "x":
		book := b.selected()
		if book == nil || book.Status != api.StatusPending || b.inFlight {
			return b, nil
		}
		b.rejectMode = true
		b.rejectID = book.ID
		b.rejectErr = ""
		b.reason.SetValue("")
		b.reason.Focus()
		return b, textinput.Blink
	}

	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

func (b *Books) updateRejectModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if !b.inFlight {
			b.closeRejectModal()
		}
		return b, nil
	case "enter":
		if b.inFlight {
			return b, nil
		}
		b.inFlight = true
		b.rejectErr = ""
		book := b.bookByID(b.rejectID)
		title := ""
		if book != nil {
			title = book.Title
		}
		return b, b.reject(b.rejectID, title, strings.TrimSpace(b.reason.Value()))
	}

	var cmd tea.Cmd
	b.reason, cmd = b.reason.Update(msg)
	return b, cmd
}

func (b *Books) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		b.searchMode = false
		b.searchIn.Blur()
		return b, nil
	case "enter":
		b.searchMode = false
		b.searchIn.Blur()
		b.search = strings.TrimSpace(b.searchIn.Value())
		b.pageNum = 1
		b.loading = true
		b.loadErr = nil
		return b, b.load()
	}

	var cmd tea.Cmd
	b.searchIn, cmd = b.searchIn.Update(msg)
	return b, cmd
}

func (b *Books) closeRejectModal() {
	b.rejectMode = false
	b.rejectID = 0
	b.rejectErr = ""
	b.reason.Blur()
}

// approve runs the approval off the update loop
func (b *Books) approve(id int, title string) tea.Cmd {
	return func() tea.Msg {
		_, err := b.client.ApproveBook(context.Background(), id)
		return actionDoneMsg{verb: "Approved", title: title, err: err}
	}
}

// reject runs the rejection off the update loop; empty reasons are omitted
func (b *Books) reject(id int, title, reason string) tea.Cmd {
	return func() tea.Msg {
		_, err := b.client.RejectBook(context.Background(), id, reason)
		return actionDoneMsg{verb: "Rejected", title: title, err: err}
	}
}

// refreshRows rebuilds table rows and, for the unfiltered view, the counts
func (b *Books) refreshRows() {
	rows := make([]table.Row, 0, len(b.page.Data))
	counts := statusCounts{}
	for _, book := range b.page.Data {
		category := "-"
		if book.Category != nil {
			category = book.Category.Name
		}
		submitter := "-"
		if book.SubmittedBy != nil {
			submitter = book.SubmittedBy.Name
		}
		rows = append(rows, table.Row{
			book.Title,
			book.Author,
			category,
			submitter,
			string(book.Status),
			fmt.Sprintf("%d", book.DownloadsCount),
		})
		switch book.Status {
		case api.StatusPending:
			counts.pending++
		case api.StatusApproved:
			counts.approved++
		case api.StatusRejected:
			counts.rejected++
		}
	}
	b.table.SetRows(rows)
	if cursor := b.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		b.table.SetCursor(len(rows) - 1)
	}

	// A filtered page would count only one status, which reads as the
	// other statuses having vanished. Only the unfiltered view updates them.
	if b.filter == "all" {
		b.counts = counts
		b.countsValid = true
	}
}

// selected returns the book under the cursor, or nil
func (b *Books) selected() *api.Book {
	if b.page == nil {
		return nil
	}
	cursor := b.table.Cursor()
	if cursor < 0 || cursor >= len(b.page.Data) {
		return nil
	}
	return &b.page.Data[cursor]
}

func (b *Books) bookByID(id int) *api.Book {
	if b.page == nil {
		return nil
	}
	for i := range b.page.Data {
		if b.page.Data[i].ID == id {
			return &b.page.Data[i]
		}
	}
	return nil
}

// View implements tea.Model
func (b *Books) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Book.String() + " Books"))
	sb.WriteString("\n")

	sb.WriteString(b.renderFilterLine())
	sb.WriteString("\n")

	if b.searchMode {
		sb.WriteString(icons.Search.String() + " " + b.searchIn.View())
		sb.WriteString("\n")
	} else if b.search != "" {
		sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s %q", icons.Search.String(), b.search)))
		sb.WriteString("\n")
	}

	switch {
	case b.loading:
		sb.WriteString(styles.Subtitle.Render("Loading books..."))
		sb.WriteString("\n")
	case b.loadErr != nil:
		sb.WriteString(styles.ErrorText.Render("Error: " + b.loadErr.Error()))
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("r retry"))
		sb.WriteString("\n")
	case b.page == nil || len(b.page.Data) == 0:
		sb.WriteString(styles.Subtitle.Render("No books match the current view."))
		sb.WriteString("\n")
	default:
		sb.WriteString(b.table.View())
		sb.WriteString("\n")
		sb.WriteString(b.renderPageLine())
		sb.WriteString("\n")
	}

	if b.rejectMode {
		sb.WriteString("\n")
		sb.WriteString(b.renderRejectModal())
	}

	if b.inFlight && !b.rejectMode {
		sb.WriteString(styles.Subtitle.Render("Working..."))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (b *Books) renderFilterLine() string {
	var parts []string
	for _, f := range filterCycle {
		label := f
		if f == b.filter {
			parts = append(parts, styles.SelectedItem.Render("["+label+"]"))
		} else {
			parts = append(parts, styles.NormalItem.Render(" "+label+" "))
		}
	}
	line := strings.Join(parts, " ")

	if b.countsValid {
		line += "   " + widgets.StatusIcon(api.StatusPending) + fmt.Sprintf(" %d", b.counts.pending) +
			"  " + widgets.StatusIcon(api.StatusApproved) + fmt.Sprintf(" %d", b.counts.approved) +
			"  " + widgets.StatusIcon(api.StatusRejected) + fmt.Sprintf(" %d", b.counts.rejected)
	}
	return line
}

func (b *Books) renderPageLine() string {
	p := b.page
	return styles.Subtitle.Render(fmt.Sprintf("Page %d of %d  (%d total)", p.CurrentPage, p.LastPage, p.Total))
}

func (b *Books) renderRejectModal() string {
	var sb strings.Builder
	sb.WriteString(styles.StatusCritical.Render(icons.Rejected.String() + " Reject book"))
	sb.WriteString("\n")
	sb.WriteString(b.reason.View())
	sb.WriteString("\n")
	if b.rejectErr != "" {
		sb.WriteString(styles.ErrorText.Render(b.rejectErr))
		sb.WriteString("\n")
	}
	if b.inFlight {
		sb.WriteString(styles.Subtitle.Render("Rejecting..."))
	} else {
		sb.WriteString(styles.Help.Render("enter confirm  esc cancel"))
	}
	return styles.ActivePanel.Render(sb.String())
}

// InputActive reports whether a text field is capturing keystrokes
func (b *Books) InputActive() bool {
	return b.rejectMode || b.searchMode
}

// Shortcuts returns the footer hints for the current mode
func (b *Books) Shortcuts() []string {
	if b.rejectMode {
		return []string{"Enter Confirm", "Esc Cancel"}
	}
	if b.searchMode {
		return []string{"Enter Search", "Esc Cancel"}
	}
	return []string{"↑↓ Navigate", "Enter Detail", "a Approve", "x Reject", "f Filter", "/ Search", "←→ Page", "r Refresh"}
}

func toast(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text, IsErr: isErr}
	}
}

func nextFilter(current string) string {
	for i, f := range filterCycle {
		if f == current {
			return filterCycle[(i+1)%len(filterCycle)]
		}
	}
	return filterCycle[0]
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
