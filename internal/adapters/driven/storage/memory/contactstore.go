// Package memory provides in-memory driven adapters. The contact store
// holds the session's contact snapshot; nothing here survives process
// exit.
package memory

import (
	"sync"

	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driven"
)

// Ensure ContactStore implements the interface.
var _ driven.ContactStore = (*ContactStore)(nil)

// ContactStore is an in-memory, order-preserving contact snapshot.
// Safe for concurrent use.
type ContactStore struct {
	mu       sync.RWMutex
	contacts []domain.Contact
	byID     map[string]int
}

// NewContactStore creates an empty contact store.
func NewContactStore() *ContactStore {
	return &ContactStore{
		byID: make(map[string]int),
	}
}

// Replace swaps the snapshot for the given list, preserving order.
func (s *ContactStore) Replace(contacts []domain.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contacts = make([]domain.Contact, len(contacts))
	copy(s.contacts, contacts)

	s.byID = make(map[string]int, len(contacts))
	for i, c := range s.contacts {
		s.byID[c.ID] = i
	}
}

// All returns a copy of the snapshot in fetch order.
func (s *ContactStore) All() []domain.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

// Get returns the contact with the given id, or domain.ErrNotFound.
func (s *ContactStore) Get(id string) (*domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := s.contacts[i]
	return &c, nil
}

// Len returns the snapshot size.
func (s *ContactStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contacts)
}
