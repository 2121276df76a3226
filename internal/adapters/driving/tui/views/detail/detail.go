// Package detail provides the single-contact view for the TUI.
package detail

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hubdeck/hubdeck-cli/internal/adapters/driving/tui/messages"
	"github.com/hubdeck/hubdeck-cli/internal/adapters/driving/tui/styles"
	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driving"
)

// View shows one contact with its attachments and AI summary.
type View struct {
	styles   *styles.Styles
	contacts driving.ContactService
	ctx      context.Context

	contact domain.Contact
	files   []domain.Attachment

	summary        string
	summaryLoading bool
	filesLoading   bool
	spinner        spinner.Model
	err            error

	width  int
	height int
	ready  bool
}

// NewView creates a new contact detail view.
func NewView(s *styles.Styles, contacts driving.ContactService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(s.Accent)

	return &View{
		styles:   s,
		contacts: contacts,
		ctx:      context.Background(),
		spinner:  sp,
		width:    80,
		height:   24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetContact points the view at a contact and starts loading its
// attachments. The summary loads on demand.
func (v *View) SetContact(contact domain.Contact) tea.Cmd {
	v.contact = contact
	v.files = nil
	v.summary = ""
	v.summaryLoading = false
	v.filesLoading = true
	v.err = nil
	return tea.Batch(v.spinner.Tick, v.performListFiles())
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.spinner.Tick
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SummaryLoaded:
		if msg.ContactID != v.contact.ID {
			return v, nil
		}
		v.summaryLoading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.summary = msg.Summary
		return v, nil

	case messages.FilesLoaded:
		if msg.ContactID != v.contact.ID {
			return v, nil
		}
		v.filesLoading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.files = msg.Files
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewContacts}
		}
	case "a":
		if v.summaryLoading || v.summary != "" {
			return v, nil
		}
		v.summaryLoading = true
		v.err = nil
		return v, tea.Batch(v.spinner.Tick, v.performSummarize())
	}
	return v, nil
}

func (v *View) performSummarize() tea.Cmd {
	contactID := v.contact.ID
	return func() tea.Msg {
		summary, err := v.contacts.Summarize(v.ctx, contactID)
		return messages.SummaryLoaded{ContactID: contactID, Summary: summary, Err: err}
	}
}

func (v *View) performListFiles() tea.Cmd {
	contactID := v.contact.ID
	return func() tea.Msg {
		files, err := v.contacts.ListFiles(v.ctx, contactID)
		return messages.FilesLoaded{ContactID: contactID, Files: files, Err: err}
	}
}

// View renders the detail view.
func (v *View) View() string {
	c := &v.contact

	sections := make([]string, 0, 12)
	sections = append(sections, v.styles.Title.Render(c.DisplayName()), "")

	field := func(label, value string) {
		if value != "" {
			sections = append(sections,
				v.styles.Muted.Render(label)+v.styles.Normal.Render(value))
		}
	}
	field("ID:        ", c.ID)
	field("Email:     ", c.Email)
	field("Phone:     ", domain.FormatPhoneNumber(c.Phone))
	field("Company:   ", c.Company)
	field("Created:   ", c.CreateDate)
	field("Modified:  ", c.LastModifiedDate)
	field("Notes:     ", c.Notes)

	sections = append(sections, "", v.styles.Subtitle.Render("Attachments"))
	switch {
	case v.filesLoading:
		sections = append(sections, v.spinner.View()+" Loading...")
	case len(v.files) == 0:
		sections = append(sections, v.styles.Muted.Render("None."))
	default:
		for i := range v.files {
			sections = append(sections, v.styles.Normal.Render(
				"  "+v.files[i].Name+"  "+domain.FormatFileSize(v.files[i].Size)))
		}
	}

	sections = append(sections, "", v.styles.Subtitle.Render("AI Summary"))
	switch {
	case v.summaryLoading:
		sections = append(sections, v.spinner.View()+" Generating...")
	case v.summary != "":
		sections = append(sections, v.styles.Normal.Render(wrap(v.summary, v.width-4)))
	default:
		sections = append(sections, v.styles.Muted.Render("Press [a] to generate."))
	}

	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render("Error: "+v.err.Error()))
	}

	sections = append(sections, "", v.styles.Help.Render("[a] summary  [esc] back"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// wrap breaks text at word boundaries to the given width.
func wrap(s string, width int) string {
	if width < 20 {
		width = 20
	}
	words := strings.Fields(s)
	var b strings.Builder
	line := 0
	for i, w := range words {
		if line > 0 && line+1+len(w) > width {
			b.WriteByte('\n')
			line = 0
		} else if i > 0 {
			b.WriteByte(' ')
			line++
		}
		b.WriteString(w)
		line += len(w)
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Contact returns the contact being shown.
func (v *View) Contact() domain.Contact {
	return v.contact
}

// Summary returns the loaded summary, if any.
func (v *View) Summary() string {
	return v.summary
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
