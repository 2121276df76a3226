// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewConnect is the connection / login view.
	ViewConnect ViewType = iota
	// ViewContacts is the contact browser.
	ViewContacts
	// ViewDetail shows a single contact.
	ViewDetail
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewConnect:
		return "connect"
	case ViewContacts:
		return "contacts"
	case ViewDetail:
		return "detail"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// StateChanged carries connection state transitions from the session
// service.
type StateChanged struct {
	State domain.ConnectionState
}

// ConnectCompleted signals the authorization handshake finished.
type ConnectCompleted struct {
	Err error
}

// DisconnectCompleted signals the session ended.
type DisconnectCompleted struct {
	Err error
}

// ContactsLoaded signals the snapshot was (re)loaded from the backend.
type ContactsLoaded struct {
	Err error
}

// ContactSelected signals a contact was chosen for the detail view.
type ContactSelected struct {
	Contact domain.Contact
}

// ContactDeleted signals a contact was removed.
type ContactDeleted struct {
	ID  string
	Err error
}

// SummaryLoaded carries an AI-generated contact summary.
type SummaryLoaded struct {
	ContactID string
	Summary   string
	Err       error
}

// FilesLoaded carries a contact's attachments.
type FilesLoaded struct {
	ContactID string
	Files     []domain.Attachment
	Err       error
}

// PrefsChanged signals the preference file changed on disk.
type PrefsChanged struct{}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
