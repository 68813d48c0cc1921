// ABOUTME: Category management screen with inline create and rename forms
// ABOUTME: Name rules are checked locally before any request is sent

package categories

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
)

const cacheKey = "categories"

// StatusMsg is a toast for the root frame
type StatusMsg struct {
	Text  string
	IsErr bool
}

// loadedMsg is sent when the category list arrives
type loadedMsg struct {
	categories []api.Category
	err        error
}

// actionDoneMsg is sent when a mutation resolves
type actionDoneMsg struct {
	verb string
	err  error
}

// formMode says what the name input is for
type formMode int

const (
	formNone formMode = iota
	formCreate
	formRename
)

// Categories is the category management screen
type Categories struct {
	client *api.Client
	cache  *fetch.Cache
	width  int
	height int

	table      table.Model
	categories []api.Category
	loading    bool
	loadErr    error

	mode       formMode
	editID     int
	input      textinput.Model
	formErr    string
	inFlight   bool
	confirmDel bool
	deleteID   int
	deleteName string
}

// New creates the category screen
func New(client *api.Client, cache *fetch.Cache) *Categories {
	columns := []table.Column{
		{Title: "Name", Width: 30},
		{Title: "Books", Width: 8},
		{Title: "Created", Width: 20},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		Foreground(styles.Primary).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(styles.Primary).
		Bold(true)
	t.SetStyles(ts)

	input := textinput.New()
	input.Placeholder = "category name"
	input.CharLimit = api.CategoryNameMax

	return &Categories{
		client:  client,
		cache:   cache,
		table:   t,
		loading: true,
		input:   input,
	}
}

// Init implements tea.Model
func (c *Categories) Init() tea.Cmd {
	return c.load()
}

// load fetches the list through the cache
func (c *Categories) load() tea.Cmd {
	return func() tea.Msg {
		categories, err := fetch.Get(context.Background(), c.cache, cacheKey,
			func(ctx context.Context) ([]api.Category, error) {
				return c.client.ListCategories(ctx)
			})
		return loadedMsg{categories: categories, err: err}
	}
}

// Update implements tea.Model
func (c *Categories) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		c.table.SetHeight(maxInt(6, msg.Height-12))
		return c, nil

	case loadedMsg:
		c.loading = false
		c.loadErr = msg.err
		if msg.err == nil {
			c.categories = msg.categories
			c.refreshRows()
		}
		return c, nil

	case actionDoneMsg:
		c.inFlight = false
		if msg.err != nil {
			if c.mode != formNone {
				// Server-side rejection keeps the form open with the message
				c.formErr = msg.err.Error()
				return c, nil
			}
			return c, toast(fmt.Sprintf("%s failed: %v", msg.verb, msg.err), true)
		}
		c.closeForm()
		c.confirmDel = false
		c.cache.Invalidate(cacheKey)
		c.cache.Invalidate("stats")
		c.loading = true
		return c, tea.Batch(c.load(), toast(msg.verb, false))

	case tea.KeyMsg:
		if c.mode != formNone {
			return c.updateForm(msg)
		}
		if c.confirmDel {
			return c.updateConfirmDelete(msg)
		}
		return c.updateList(msg)
	}

	return c, nil
}

func (c *Categories) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		c.cache.Invalidate(cacheKey)
		c.loading = true
		c.loadErr = nil
		return c, c.load()

	case "n":
		if c.inFlight {
			return c, nil
		}
		c.mode = formCreate
		c.formErr = ""
		c.input.SetValue("")
		c.input.Focus()
		return c, textinput.Blink

	case "e":
		cat := c.selected()
		if cat == nil || c.inFlight {
			return c, nil
		}
		c.mode = formRename
		c.editID = cat.ID
		c.formErr = ""
		c.input.SetValue(cat.Name)
		c.input.Focus()
		return c, textinput.Blink

	case "d":
		cat := c.selected()
		if cat == nil || c.inFlight {
			return c, nil
		}
		c.confirmDel = true
		c.deleteID = cat.ID
		c.deleteName = cat.Name
		return c, nil
	}

	var cmd tea.Cmd
	c.table, cmd = c.table.Update(msg)
	return c, cmd
}

func (c *Categories) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if !c.inFlight {
			c.closeForm()
		}
		return c, nil
	case "enter":
		if c.inFlight {
			return c, nil
		}
		name := strings.TrimSpace(c.input.Value())
		if err := api.ValidateCategoryName(name); err != nil {
			c.formErr = err.Error()
			return c, nil
		}
		c.inFlight = true
		c.formErr = ""
		if c.mode == formCreate {
			return c, c.create(name)
		}
		return c, c.rename(c.editID, name)
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *Categories) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		c.confirmDel = false
		c.inFlight = true
		return c, c.delete(c.deleteID, c.deleteName)
	case "n", "esc":
		c.confirmDel = false
	}
	return c, nil
}

func (c *Categories) closeForm() {
	c.mode = formNone
	c.editID = 0
	c.formErr = ""
	c.input.Blur()
}

func (c *Categories) create(name string) tea.Cmd {
	return func() tea.Msg {
		_, err := c.client.CreateCategory(context.Background(), name)
		return actionDoneMsg{verb: fmt.Sprintf("Created %q", name), err: err}
	}
}

func (c *Categories) rename(id int, name string) tea.Cmd {
	return func() tea.Msg {
		_, err := c.client.UpdateCategory(context.Background(), id, name)
		return actionDoneMsg{verb: fmt.Sprintf("Renamed to %q", name), err: err}
	}
}

func (c *Categories) delete(id int, name string) tea.Cmd {
	return func() tea.Msg {
		err := c.client.DeleteCategory(context.Background(), id)
		return actionDoneMsg{verb: fmt.Sprintf("Deleted %q", name), err: err}
	}
}

func (c *Categories) refreshRows() {
	rows := make([]table.Row, 0, len(c.categories))
	for _, cat := range c.categories {
		rows = append(rows, table.Row{
			cat.Name,
			fmt.Sprintf("%d", cat.BooksCount),
			cat.CreatedAt,
		})
	}
	c.table.SetRows(rows)
	if cursor := c.table.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		c.table.SetCursor(len(rows) - 1)
	}
}

func (c *Categories) selected() *api.Category {
	cursor := c.table.Cursor()
	if cursor < 0 || cursor >= len(c.categories) {
		return nil
	}
	return &c.categories[cursor]
}

// View implements tea.Model
func (c *Categories) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Category.String() + " Categories"))
	sb.WriteString("\n")

	switch {
	case c.loading:
		sb.WriteString(styles.Subtitle.Render("Loading categories..."))
		sb.WriteString("\n")
	case c.loadErr != nil:
		sb.WriteString(styles.ErrorText.Render("Error: " + c.loadErr.Error()))
		sb.WriteString("\n")
		sb.WriteString(styles.Help.Render("r retry"))
		sb.WriteString("\n")
	case len(c.categories) == 0:
		sb.WriteString(styles.Subtitle.Render("No categories yet. Press n to create one."))
		sb.WriteString("\n")
	default:
		sb.WriteString(c.table.View())
		sb.WriteString("\n")
	}

	if c.mode != formNone {
		sb.WriteString("\n")
		sb.WriteString(c.renderForm())
	}
	if c.confirmDel {
		sb.WriteString("\n")
		sb.WriteString(styles.ActivePanel.Render(
			styles.StatusCritical.Render(fmt.Sprintf("%s Delete category %q?", icons.Trash.String(), c.deleteName)) + "\n" +
				styles.Subtitle.Render("Books keep their data; the server refuses if books still use it.") + "\n" +
				styles.Help.Render("y confirm  n cancel")))
	}
	if c.inFlight && c.mode == formNone {
		sb.WriteString(styles.Subtitle.Render("Working..."))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (c *Categories) renderForm() string {
	title := icons.Add.String() + " New category"
	if c.mode == formRename {
		title = icons.Edit.String() + " Rename category"
	}

	var sb strings.Builder
	sb.WriteString(styles.SelectedItem.Render(title))
	sb.WriteString("\n")
	sb.WriteString(c.input.View())
	sb.WriteString("\n")
	if c.formErr != "" {
		sb.WriteString(styles.ErrorText.Render(c.formErr))
		sb.WriteString("\n")
	}
	if c.inFlight {
		sb.WriteString(styles.Subtitle.Render("Saving..."))
	} else {
		sb.WriteString(styles.Help.Render("enter save  esc cancel"))
	}
	return styles.ActivePanel.Render(sb.String())
}

// InputActive reports whether the name field is capturing keystrokes
func (c *Categories) InputActive() bool {
	return c.mode != formNone
}

// Shortcuts returns the footer hints for the current mode
func (c *Categories) Shortcuts() []string {
	if c.mode != formNone {
		return []string{"Enter Save", "Esc Cancel"}
	}
	if c.confirmDel {
		return []string{"y Confirm", "n Cancel"}
	}
	return []string{"↑↓ Navigate", "n New", "e Rename", "d Delete", "r Refresh"}
}

func toast(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text, IsErr: isErr}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
