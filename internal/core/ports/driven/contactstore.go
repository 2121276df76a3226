package driven

import "github.com/hubdeck/hubdeck-cli/internal/core/domain"

// ContactStore holds the in-memory contact snapshot for the lifetime of
// a session. The local copy is read-mostly: it is replaced wholesale on
// load and after every successful mutation, never edited in place. The
// backend remains the sole authority.
type ContactStore interface {
	// Replace swaps the snapshot for the given list, preserving order.
	Replace(contacts []domain.Contact)

	// All returns a copy of the snapshot in fetch order.
	All() []domain.Contact

	// Get returns the contact with the given id, or domain.ErrNotFound.
	Get(id string) (*domain.Contact, error)

	// Len returns the snapshot size.
	Len() int
}
