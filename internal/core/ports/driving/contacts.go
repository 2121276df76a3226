package driving

import (
	"context"
	"io"

	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
)

// ListOptions configures an in-memory contact listing.
type ListOptions struct {
	// Query is the free-text search query. Empty means no search.
	Query string

	// Criteria are the structural filters to apply.
	Criteria domain.FilterCriteria

	// SortField orders the result. Empty means no sorting.
	SortField domain.SortField

	// SortDirection is ascending when unset.
	SortDirection domain.SortDirection

	// Page is the 1-based page number. Defaults to 1 when zero.
	Page int

	// PageSize is the page size. Defaults to domain.DefaultPageSize
	// when zero.
	PageSize int
}

// ContactService owns the in-memory contact snapshot and every contact
// operation. Mutations go to the backend and, on success, refresh the
// snapshot; the client never holds authoritative state.
type ContactService interface {
	// Load fetches all contacts from the backend and replaces the
	// snapshot.
	Load(ctx context.Context) error

	// List applies search, filter, sort, and pagination over the
	// snapshot. Purely local; never touches the network.
	List(opts ListOptions) domain.Page

	// Get returns one contact from the snapshot.
	Get(id string) (*domain.Contact, error)

	// Create creates a contact, then reloads the snapshot.
	Create(ctx context.Context, props domain.ContactProperties) (domain.Contact, error)

	// Update patches a contact, then reloads the snapshot.
	Update(ctx context.Context, id string, props domain.ContactProperties) (domain.Contact, error)

	// Delete removes a contact, then reloads the snapshot.
	Delete(ctx context.Context, id string) error

	// UploadFile validates and uploads an attachment. onProgress may
	// be nil.
	UploadFile(ctx context.Context, contactID, name string, r io.Reader, size int64, onProgress func(int)) (domain.Attachment, error)

	// ListFiles lists a contact's attachments.
	ListFiles(ctx context.Context, contactID string) ([]domain.Attachment, error)

	// Summarize requests an AI-generated summary of a contact.
	Summarize(ctx context.Context, contactID string) (string, error)

	// SearchRemote performs a server-side search, bypassing the
	// snapshot.
	SearchRemote(ctx context.Context, query string, criteria domain.FilterCriteria) ([]domain.Contact, error)
}
