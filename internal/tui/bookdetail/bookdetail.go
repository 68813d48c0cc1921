// ABOUTME: Single-book detail screen with moderation and lifecycle actions
// ABOUTME: Loads the full record on open and refetches after every mutation

package bookdetail

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Abdooo2235/bookreader-admin/internal/api"
	"github.com/Abdooo2235/bookreader-admin/internal/fetch"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/icons"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/styles"
	"github.com/Abdooo2235/bookreader-admin/internal/tui/widgets"
)

// BackMsg asks the root model to return to the book list
type BackMsg struct{}

// StatusMsg is a toast for the root frame
type StatusMsg struct {
	Text  string
	IsErr bool
}

// bookLoadedMsg is sent when the record arrives. id marks which book the
// fetch was for, so a load left over from a previously opened book is
// told apart from the current one.
type bookLoadedMsg struct {
	id   int
	book *api.Book
	err  error
}

// actionDoneMsg is sent when a mutation resolves
type actionDoneMsg struct {
	verb string
	err  error
}

// Detail shows one book
type Detail struct {
	client *api.Client
	cache  *fetch.Cache
	id     int
	width  int

	book    *api.Book
	loading bool
	loadErr error

	inFlight    bool
	rejectMode  bool
	rejectErr   string
	reason      textinput.Model
	confirmDel  bool
}

// New creates the detail screen for one book
func New(client *api.Client, cache *fetch.Cache, id int) *Detail {
	reason := textinput.New()
	reason.Placeholder = "reason (optional)"
	reason.CharLimit = 500

	return &Detail{
		client:  client,
		cache:   cache,
		id:      id,
		loading: true,
		reason:  reason,
	}
}

// Init implements tea.Model
func (d *Detail) Init() tea.Cmd {
	return d.load()
}

// load fetches the full record; detail always reads fresh state
func (d *Detail) load() tea.Cmd {
	id := d.id
	return func() tea.Msg {
		book, err := d.client.GetBook(context.Background(), id)
		return bookLoadedMsg{id: id, book: book, err: err}
	}
}

// Update implements tea.Model
func (d *Detail) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		return d, nil

	case bookLoadedMsg:
		if msg.id != d.id {
			return d, nil
		}
		d.loading = false
		d.book = msg.book
		d.loadErr = msg.err
		return d, nil

	case actionDoneMsg:
		d.inFlight = false
		if msg.err != nil {
			if d.rejectMode {
				d.rejectErr = msg.err.Error()
				return d, nil
			}
			return d, toast(fmt.Sprintf("%s failed: %v", msg.verb, msg.err), true)
		}
		d.closeRejectModal()
		d.confirmDel = false
		d.cache.InvalidatePrefix("books:")
		d.cache.Invalidate("stats")
		d.loading = true
		return d, tea.Batch(d.load(), toast(msg.verb, false))

	case tea.KeyMsg:
		if d.rejectMode {
			return d.updateRejectModal(msg)
		}
		if d.confirmDel {
			return d.updateConfirmDelete(msg)
		}
		return d.updateKeys(msg)
	}

	return d, nil
}

func (d *Detail) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "b", "esc":
		return d, func() tea.Msg { return BackMsg{} }
	case "r":
		d.loading = true
		d.loadErr = nil
		return d, d.load()
	case "a":
		if d.book == nil || d.book.Status != api.StatusPending || d.inFlight {
			return d, nil
		}
		d.inFlight = true
		return d, d.run("Approved", func(ctx context.Context) error {
			_, err := d.client.ApproveBook(ctx, d.id)
			return err
		})
	case "x":
		if d.book == nil || d.book.Status != api.StatusPending || d.inFlight {
			return d, nil
		}
		d.rejectMode = true
		d.rejectErr = ""
		d.reason.SetValue("")
		d.reason.Focus()
		return d, textinput.Blink
	case "d":
		if d.book == nil || d.book.DeletedAt != nil || d.inFlight {
			return d, nil
		}
		d.confirmDel = true
		return d, nil
	case "u":
		if d.book == nil || d.book.DeletedAt == nil || d.inFlight {
			return d, nil
		}
		d.inFlight = true
		return d, d.run("Restored", func(ctx context.Context) error {
			_, err := d.client.RestoreBook(ctx, d.id)
			return err
		})
	}
	return d, nil
}

func (d *Detail) updateRejectModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if !d.inFlight {
			d.closeRejectModal()
		}
		return d, nil
	case "enter":
		if d.inFlight {
			return d, nil
		}
		d.inFlight = true
		d.rejectErr = ""
		reason := strings.TrimSpace(d.reason.Value())
		return d, d.run("Rejected", func(ctx context.Context) error {
			_, err := d.client.RejectBook(ctx, d.id, reason)
			return err
		})
	}

	var cmd tea.Cmd
	d.reason, cmd = d.reason.Update(msg)
	return d, cmd
}

func (d *Detail) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		d.confirmDel = false
		d.inFlight = true
		return d, d.run("Deleted", func(ctx context.Context) error {
			return d.client.DeleteBook(ctx, d.id)
		})
	case "n", "esc":
		d.confirmDel = false
	}
	return d, nil
}

func (d *Detail) closeRejectModal() {
	d.rejectMode = false
	d.rejectErr = ""
	d.reason.Blur()
}

// run executes a mutation off the update loop
func (d *Detail) run(verb string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{verb: verb, err: fn(context.Background())}
	}
}

// View implements tea.Model
func (d *Detail) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Book.String() + " Book Detail"))
	sb.WriteString("\n")

	if d.loading {
		sb.WriteString(styles.Subtitle.Render("Loading book..."))
		return sb.String()
	}
	if d.loadErr != nil {
		sb.WriteString(styles.ErrorText.Render("Error: " + d.loadErr.Error()))
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("r retry  b back"))
		return sb.String()
	}
	if d.book == nil {
		return sb.String()
	}

	book := d.book

	sb.WriteString(styles.ValueStyle.Render(book.Title))
	sb.WriteString("  ")
	sb.WriteString(widgets.StatusBadge(book.Status))
	if book.DeletedAt != nil {
		sb.WriteString("  ")
		sb.WriteString(widgets.Badge("DELETED", widgets.LevelDanger))
	}
	sb.WriteString("\n\n")

	sb.WriteString(d.field("Author", book.Author))
	if book.Category != nil {
		sb.WriteString(d.field("Category", book.Category.Name))
	}
	if book.SubmittedBy != nil {
		sb.WriteString(d.field("Submitted by", fmt.Sprintf("%s <%s>", book.SubmittedBy.Name, book.SubmittedBy.Email)))
	}
	sb.WriteString(d.field("Pages", fmt.Sprintf("%d", book.Pages)))
	sb.WriteString(d.field("Format", strings.ToUpper(book.FileType)))
	sb.WriteString(d.field("Downloads", fmt.Sprintf("%d", book.DownloadsCount)))
	sb.WriteString(d.field("Submitted", book.CreatedAt))
	if book.Description != nil && *book.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render("Description"))
		sb.WriteString("\n")
		sb.WriteString(styles.NormalItem.Render(*book.Description))
		sb.WriteString("\n")
	}

	if d.rejectMode {
		sb.WriteString("\n")
		sb.WriteString(d.renderRejectModal())
	}
	if d.confirmDel {
		sb.WriteString("\n")
		sb.WriteString(styles.ActivePanel.Render(
			styles.StatusCritical.Render(icons.Trash.String()+" Delete this book?") + "\n" +
				styles.Help.Render("y confirm  n cancel")))
	}
	if d.inFlight && !d.rejectMode {
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render("Working..."))
	}

	return sb.String()
}

func (d *Detail) field(label, value string) string {
	return styles.KeyStyle.Render(fmt.Sprintf("%-14s", label)) + styles.NormalItem.Render(value) + "\n"
}

func (d *Detail) renderRejectModal() string {
	var sb strings.Builder
	sb.WriteString(styles.StatusCritical.Render(icons.Rejected.String() + " Reject book"))
	sb.WriteString("\n")
	sb.WriteString(d.reason.View())
	sb.WriteString("\n")
	if d.rejectErr != "" {
		sb.WriteString(styles.ErrorText.Render(d.rejectErr))
		sb.WriteString("\n")
	}
	if d.inFlight {
		sb.WriteString(styles.Subtitle.Render("Rejecting..."))
	} else {
		sb.WriteString(styles.Help.Render("enter confirm  esc cancel"))
	}
	return styles.ActivePanel.Render(sb.String())
}

// InputActive reports whether a text field is capturing keystrokes
func (d *Detail) InputActive() bool {
	return d.rejectMode
}

// Shortcuts returns the footer hints for the current mode
func (d *Detail) Shortcuts() []string {
	if d.rejectMode {
		return []string{"Enter Confirm", "Esc Cancel"}
	}
	if d.confirmDel {
		return []string{"y Confirm", "n Cancel"}
	}
	hints := []string{"b Back", "r Refresh"}
	if d.book != nil && d.book.Status == api.StatusPending {
		hints = append(hints, "a Approve", "x Reject")
	}
	if d.book != nil && d.book.DeletedAt == nil {
		hints = append(hints, "d Delete")
	}
	if d.book != nil && d.book.DeletedAt != nil {
		hints = append(hints, "u Restore")
	}
	return hints
}

func toast(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text, IsErr: isErr}
	}
}
