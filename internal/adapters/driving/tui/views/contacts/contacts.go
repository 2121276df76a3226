// Package contacts provides the contact browser view for the TUI.
// Search, filters, sorting, and pagination all run locally over the
// loaded snapshot; only reloads and mutations touch the network.
package contacts

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hubdeck/hubdeck-cli/internal/adapters/driving/tui/messages"
	"github.com/hubdeck/hubdeck-cli/internal/adapters/driving/tui/styles"
	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driven"
	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driving"
)

// sortCycle is the order the sort key steps through.
var sortCycle = []domain.SortField{
	"",
	domain.SortByFirstName,
	domain.SortByLastName,
	domain.SortByEmail,
	domain.SortByCompany,
	domain.SortByCreateDate,
	domain.SortByLastModifiedDate,
}

// View is the contact browser.
type View struct {
	styles   *styles.Styles
	contacts driving.ContactService
	prefs    driven.PrefStore
	ctx      context.Context

	search textinput.Model

	criteria  domain.FilterCriteria
	sortField domain.SortField
	sortDir   domain.SortDirection
	page      int
	pageSize  int

	current  domain.Page
	selected int

	focusSearch bool
	loading     bool
	err         error

	width  int
	height int
	ready  bool
}

// NewView creates a new contact browser view.
func NewView(s *styles.Styles, contacts driving.ContactService, prefs driven.PrefStore) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	search := textinput.New()
	search.Placeholder = "Search contacts..."
	search.Prompt = "/ "
	search.CharLimit = 120

	v := &View{
		styles:   s,
		contacts: contacts,
		prefs:    prefs,
		ctx:      context.Background(),
		search:   search,
		sortDir:  domain.SortAsc,
		page:     1,
	}
	v.loadPrefs()
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// loadPrefs seeds filters, sort, and page size from saved preferences.
func (v *View) loadPrefs() {
	if v.prefs == nil {
		return
	}
	v.criteria.HasEmail = v.prefs.GetBool(driven.PrefHasEmail)
	v.criteria.HasPhone = v.prefs.GetBool(driven.PrefHasPhone)
	v.criteria.HasCompany = v.prefs.GetBool(driven.PrefHasCompany)
	v.sortField = domain.SortField(v.prefs.GetString(driven.PrefSortField))
	if v.prefs.GetString(driven.PrefSortDirection) == string(domain.SortDesc) {
		v.sortDir = domain.SortDesc
	}
	v.pageSize = v.prefs.GetInt(driven.PrefPageSize)
}

// savePrefs persists the current browsing preferences. Failures are
// non-fatal.
func (v *View) savePrefs() {
	if v.prefs == nil {
		return
	}
	_ = v.prefs.Set(driven.PrefHasEmail, v.criteria.HasEmail)
	_ = v.prefs.Set(driven.PrefHasPhone, v.criteria.HasPhone)
	_ = v.prefs.Set(driven.PrefHasCompany, v.criteria.HasCompany)
	_ = v.prefs.Set(driven.PrefSortField, string(v.sortField))
	_ = v.prefs.Set(driven.PrefSortDirection, string(v.sortDir))
}

// Init loads the snapshot.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.performLoad()
}

// performLoad fetches all contacts from the backend.
func (v *View) performLoad() tea.Cmd {
	return func() tea.Msg {
		err := v.contacts.Load(v.ctx)
		return messages.ContactsLoaded{Err: err}
	}
}

// refresh recomputes the visible page from the snapshot.
func (v *View) refresh() {
	v.current = v.contacts.List(driving.ListOptions{
		Query:         v.search.Value(),
		Criteria:      v.criteria,
		SortField:     v.sortField,
		SortDirection: v.sortDir,
		Page:          v.page,
		PageSize:      v.pageSize,
	})
	// A shrinking result set can strand the page and cursor.
	if v.current.CurrentPage > v.current.TotalPages && v.current.TotalPages > 0 {
		v.page = v.current.TotalPages
		v.refresh()
		return
	}
	if v.selected >= len(v.current.Items) {
		v.selected = len(v.current.Items) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
}

// Update handles messages for the contact browser.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ContactsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.refresh()
		return v, nil

	case messages.ContactDeleted:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.refresh()
		return v, nil

	case messages.PrefsChanged:
		v.loadPrefs()
		v.page = 1
		v.refresh()
		return v, nil
	}

	return v, nil
}

//nolint:gocyclo // central key handler
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Search mode: keys edit the query and the page follows live.
	if v.focusSearch {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			if msg.Type == tea.KeyEsc {
				v.search.SetValue("")
			}
			v.focusSearch = false
			v.search.Blur()
			v.page = 1
			v.refresh()
			return v, nil
		default:
			var cmd tea.Cmd
			v.search, cmd = v.search.Update(msg)
			v.page = 1
			v.refresh()
			return v, cmd
		}
	}

	switch msg.String() {
	case "/":
		v.focusSearch = true
		return v, v.search.Focus()

	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.current.Items)-1 {
			v.selected++
		}

	case "left", "h":
		if v.page > 1 {
			v.page--
			v.selected = 0
			v.refresh()
		}
	case "right", "l":
		if v.current.HasMore {
			v.page++
			v.selected = 0
			v.refresh()
		}

	case "e":
		v.criteria.HasEmail = !v.criteria.HasEmail
		v.page = 1
		v.savePrefs()
		v.refresh()
	case "p":
		v.criteria.HasPhone = !v.criteria.HasPhone
		v.page = 1
		v.savePrefs()
		v.refresh()
	case "c":
		v.criteria.HasCompany = !v.criteria.HasCompany
		v.page = 1
		v.savePrefs()
		v.refresh()

	case "s":
		v.sortField = nextSortField(v.sortField)
		v.savePrefs()
		v.refresh()
	case "S":
		if v.sortDir == domain.SortAsc {
			v.sortDir = domain.SortDesc
		} else {
			v.sortDir = domain.SortAsc
		}
		v.savePrefs()
		v.refresh()

	case "R":
		v.loading = true
		return v, v.performLoad()

	case "d":
		if contact := v.Selected(); contact != nil {
			v.loading = true
			return v, v.performDelete(contact.ID)
		}

	case "enter":
		if contact := v.Selected(); contact != nil {
			selected := *contact
			return v, func() tea.Msg {
				return messages.ContactSelected{Contact: selected}
			}
		}

	case "q", "esc":
		return v, func() tea.Msg { return messages.Quit{} }
	}

	return v, nil
}

func nextSortField(field domain.SortField) domain.SortField {
	for i, f := range sortCycle {
		if f == field {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return sortCycle[0]
}

// performDelete removes a contact and relies on the service to reload
// the snapshot.
func (v *View) performDelete(id string) tea.Cmd {
	return func() tea.Msg {
		err := v.contacts.Delete(v.ctx, id)
		return messages.ContactDeleted{ID: id, Err: err}
	}
}

// View renders the contact browser.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("Contacts"), "")

	if v.focusSearch || v.search.Value() != "" {
		sections = append(sections, v.styles.InputField.Render(v.search.View()), "")
	}

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.loading {
		sections = append(sections, v.styles.Muted.Render("Loading contacts..."))
	} else {
		sections = append(sections, v.renderRows())
	}

	sections = append(sections, "", v.renderStatus())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderRows() string {
	if len(v.current.Items) == 0 {
		return v.styles.Muted.Render("No contacts found.")
	}

	lines := make([]string, 0, len(v.current.Items))
	for i := range v.current.Items {
		c := &v.current.Items[i]
		row := fmt.Sprintf("%-25s %-30s %s", truncate(c.DisplayName(), 24), truncate(c.Email, 29), truncate(c.Company, 20))
		if i == v.selected {
			lines = append(lines, v.styles.Selected.Render("> "+row))
		} else {
			lines = append(lines, v.styles.Normal.Render("  "+row))
		}
	}
	return strings.Join(lines, "\n")
}

func (v *View) renderStatus() string {
	var filters []string
	if v.criteria.HasEmail {
		filters = append(filters, "email")
	}
	if v.criteria.HasPhone {
		filters = append(filters, "phone")
	}
	if v.criteria.HasCompany {
		filters = append(filters, "company")
	}

	parts := []string{fmt.Sprintf("page %d/%d", v.current.CurrentPage, v.current.TotalPages)}
	if len(filters) > 0 {
		parts = append(parts, "filters: "+strings.Join(filters, ","))
	}
	if v.sortField != "" {
		parts = append(parts, fmt.Sprintf("sort: %s %s", v.sortField, v.sortDir))
	}

	help := "[/] search  [e/p/c] filters  [s/S] sort  [←/→] page  [enter] open  [d] delete  [R] reload  [q] quit"
	return v.styles.StatusBar.Render(strings.Join(parts, "  ")) + "\n" + v.styles.Help.Render(help)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.search.Width = width - 8
}

// Selected returns the contact under the cursor, or nil.
func (v *View) Selected() *domain.Contact {
	if v.selected < 0 || v.selected >= len(v.current.Items) {
		return nil
	}
	return &v.current.Items[v.selected]
}

// Page returns the currently rendered page.
func (v *View) Page() domain.Page {
	return v.current
}

// Query returns the current search query.
func (v *View) Query() string {
	return v.search.Value()
}

// Criteria returns the active filter criteria.
func (v *View) Criteria() domain.FilterCriteria {
	return v.criteria
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
