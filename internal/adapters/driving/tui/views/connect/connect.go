// Package connect provides the connection view for the TUI.
package connect

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hubdeck/hubdeck-cli/internal/adapters/driving/tui/messages"
	"github.com/hubdeck/hubdeck-cli/internal/adapters/driving/tui/styles"
	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driving"
)

// View is the connection view. It shows the session state and drives
// the authorization handshake.
type View struct {
	styles  *styles.Styles
	session driving.SessionService
	ctx     context.Context

	userID string
	orgID  string

	spinner    spinner.Model
	state      domain.ConnectionState
	connecting bool
	err        error

	width  int
	height int
	ready  bool
}

// NewView creates a new connection view.
func NewView(s *styles.Styles, session driving.SessionService, userID, orgID string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(s.Accent)

	return &View{
		styles:  s,
		session: session,
		ctx:     context.Background(),
		userID:  userID,
		orgID:   orgID,
		spinner: sp,
		state:   session.State(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.spinner.Tick
}

// Update handles messages for the connection view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.StateChanged:
		v.state = msg.State
		return v, nil

	case messages.ConnectCompleted:
		v.connecting = false
		v.state = v.session.State()
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewContacts}
		}

	case messages.DisconnectCompleted:
		v.state = v.session.State()
		v.err = msg.Err
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
	case "enter", "c":
		if v.connecting || v.state == domain.StateConnected {
			return v, nil
		}
		v.connecting = true
		v.err = nil
		return v, v.performConnect()
	case "q":
		return v, func() tea.Msg { return messages.Quit{} }
	}
	return v, nil
}

// performConnect runs the handshake off the UI loop. It blocks until
// the viewport closes and credentials are exchanged.
func (v *View) performConnect() tea.Cmd {
	return func() tea.Msg {
		err := v.session.Connect(v.ctx, v.userID, v.orgID)
		return messages.ConnectCompleted{Err: err}
	}
}

// View renders the connection view.
func (v *View) View() string {
	title := v.styles.Title.Render("Hubdeck")
	subtitle := v.styles.Muted.Render("HubSpot contact manager")

	var status string
	switch v.state {
	case domain.StateConnecting:
		status = v.spinner.View() + " Waiting for authorization... complete the flow in the browser window and close it."
	case domain.StateExchanging:
		status = v.spinner.View() + " Exchanging credentials..."
	case domain.StateConnected:
		status = v.styles.Success.Render("Connected.")
	default:
		status = "Not connected. Press " + v.styles.Subtitle.Render("enter") + " to connect to HubSpot."
	}

	sections := []string{title, subtitle, "", status}

	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render("Error: "+v.err.Error()))
	}

	sections = append(sections, "", v.styles.Help.Render("[enter] connect  [q] quit"))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	box := v.styles.Border.Padding(1, 2).Render(content)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, box)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// State returns the connection state the view is showing.
func (v *View) State() domain.ConnectionState {
	return v.state
}

// Connecting reports whether a handshake is in flight.
func (v *View) Connecting() bool {
	return v.connecting
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
