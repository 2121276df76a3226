// Package tui provides an interactive terminal user interface for
// hubdeck. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driven"
	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session manages the HubSpot connection.
	Session driving.SessionService

	// Contacts provides contact operations over the loaded snapshot.
	Contacts driving.ContactService

	// Prefs persists viewer preferences (page size, sort, filters).
	Prefs driven.PrefStore

	// UserID and OrgID identify the backend session.
	UserID string
	OrgID  string
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSessionService
	}
	if p.Contacts == nil {
		return ErrMissingContactService
	}
	return nil
}
