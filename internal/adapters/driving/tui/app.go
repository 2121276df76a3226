package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hubdeck/hubdeck-cli/internal/adapters/driving/tui/messages"
	"github.com/hubdeck/hubdeck-cli/internal/adapters/driving/tui/styles"
	"github.com/hubdeck/hubdeck-cli/internal/adapters/driving/tui/views/connect"
	"github.com/hubdeck/hubdeck-cli/internal/adapters/driving/tui/views/contacts"
	"github.com/hubdeck/hubdeck-cli/internal/adapters/driving/tui/views/detail"
	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// connectView drives the authorization handshake.
	connectView *connect.View

	// contactsView is the contact browser.
	contactsView *contacts.View

	// detailView shows a single contact.
	detailView *detail.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	app := &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		connectView:  connect.NewView(s, ports.Session, ports.UserID, ports.OrgID),
		contactsView: contacts.NewView(s, ports.Contacts, ports.Prefs),
		detailView:   detail.NewView(s, ports.Contacts),
		currentView:  messages.ViewConnect,
	}

	if ports.Session.State() == domain.StateConnected {
		app.currentView = messages.ViewContacts
	}
	return app, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.connectView.WithContext(ctx)
	a.contactsView.WithContext(ctx)
	a.detailView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("hubdeck - HubSpot Contacts"),
		a.connectView.Init(),
	}
	if a.currentView == messages.ViewContacts {
		cmds = append(cmds, a.contactsView.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.connectView.SetDimensions(msg.Width, msg.Height)
		a.contactsView.SetDimensions(msg.Width, msg.Height)
		a.detailView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.updateCurrent(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewContacts {
			return a, a.contactsView.Init()
		}
		return a, nil

	case messages.ContactSelected:
		a.currentView = messages.ViewDetail
		return a, a.detailView.SetContact(msg.Contact)

	case messages.StateChanged:
		// Connection transitions always reach the connect view, even
		// when another view is active.
		a.connectView, cmd = a.connectView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a.updateCurrent(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a.updateCurrent(msg)
}

// updateCurrent forwards a message to the active view.
func (a *App) updateCurrent(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewConnect:
		a.connectView, cmd = a.connectView.Update(msg)
	case messages.ViewContacts:
		a.contactsView, cmd = a.contactsView.Update(msg)
	case messages.ViewDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewHelp:
		// Help view has no state to update
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewConnect:
		return a.connectView.View()
	case messages.ViewContacts:
		return a.contactsView.View()
	case messages.ViewDetail:
		return a.detailView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.connectView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Contacts:
  j/k, ↑/↓    Navigate contacts
  h/l, ←/→    Previous / next page
  /           Search
  e/p/c       Toggle email/phone/company filters
  s           Cycle sort field
  S           Flip sort direction
  enter       Open contact
  d           Delete contact
  R           Reload from HubSpot

Detail:
  a           Generate AI summary
  esc         Back to contacts

[esc] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.connectView.SetDimensions(width, height)
	a.contactsView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
}
