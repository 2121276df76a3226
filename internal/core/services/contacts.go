package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driven"
	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driving"
	"github.com/hubdeck/hubdeck-cli/internal/logger"
)

// Ensure ContactService implements the interface.
var _ driving.ContactService = (*ContactService)(nil)

// ContactService owns the in-memory contact snapshot and performs every
// contact operation against the integration API. Mutations reload the
// snapshot on success; the backend stays authoritative.
type ContactService struct {
	api   driven.IntegrationClient
	store driven.ContactStore
	creds driven.CredentialSource

	// now is injectable for expiry tests.
	now func() time.Time
}

// NewContactService creates a contact service reading credentials from
// the given source.
func NewContactService(api driven.IntegrationClient, store driven.ContactStore, creds driven.CredentialSource) *ContactService {
	return &ContactService{
		api:   api,
		store: store,
		creds: creds,
		now:   time.Now,
	}
}

// ensureCredentials returns usable credentials, refreshing them through
// the backend when they are inside the expiry margin.
func (s *ContactService) ensureCredentials(ctx context.Context) (*domain.Credentials, error) {
	creds := s.creds.Credentials()
	if creds == nil {
		return nil, domain.ErrNotConnected
	}

	if creds.Expired(s.now()) {
		logger.Debug("Credentials near expiry, validating with backend")
		refreshed, err := s.api.CheckCredentials(ctx, creds)
		if err != nil {
			return nil, err
		}
		if refreshed != nil {
			s.creds.UpdateCredentials(refreshed)
			creds = refreshed
		}
	}
	return creds, nil
}

// Load fetches all contacts and replaces the snapshot.
func (s *ContactService) Load(ctx context.Context) error {
	creds, err := s.ensureCredentials(ctx)
	if err != nil {
		return err
	}

	contacts, err := s.api.LoadContacts(ctx, creds)
	if err != nil {
		return err
	}

	s.store.Replace(contacts)
	logger.Info("Loaded %d contacts", len(contacts))
	return nil
}

// List applies the query pipeline over the snapshot:
// paginate(sort(filter(search(contacts)))). Purely local.
func (s *ContactService) List(opts driving.ListOptions) domain.Page {
	contacts := s.store.All()

	contacts = domain.SearchContacts(contacts, opts.Query)
	contacts = domain.FilterContacts(contacts, opts.Criteria)
	if opts.SortField != "" {
		contacts = domain.SortContacts(contacts, opts.SortField, opts.SortDirection)
	}

	page := opts.Page
	if page <= 0 {
		page = 1
	}
	return domain.Paginate(contacts, page, opts.PageSize)
}

// Get returns one contact from the snapshot.
func (s *ContactService) Get(id string) (*domain.Contact, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.Get(id)
}

// Create creates a contact, then reloads the snapshot.
func (s *ContactService) Create(ctx context.Context, props domain.ContactProperties) (domain.Contact, error) {
	creds, err := s.ensureCredentials(ctx)
	if err != nil {
		return domain.Contact{}, err
	}

	created, err := s.api.CreateContact(ctx, creds, props)
	if err != nil {
		return domain.Contact{}, err
	}

	if err := s.Load(ctx); err != nil {
		return created, fmt.Errorf("contact created but refresh failed: %w", err)
	}
	return created, nil
}

// Update patches a contact, then reloads the snapshot.
func (s *ContactService) Update(ctx context.Context, id string, props domain.ContactProperties) (domain.Contact, error) {
	if id == "" {
		return domain.Contact{}, domain.ErrInvalidInput
	}
	creds, err := s.ensureCredentials(ctx)
	if err != nil {
		return domain.Contact{}, err
	}

	updated, err := s.api.UpdateContact(ctx, creds, id, props)
	if err != nil {
		return domain.Contact{}, err
	}

	if err := s.Load(ctx); err != nil {
		return updated, fmt.Errorf("contact updated but refresh failed: %w", err)
	}
	return updated, nil
}

// Delete removes a contact, then reloads the snapshot.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	creds, err := s.ensureCredentials(ctx)
	if err != nil {
		return err
	}

	if err := s.api.DeleteContact(ctx, creds, id); err != nil {
		return err
	}

	if err := s.Load(ctx); err != nil {
		return fmt.Errorf("contact deleted but refresh failed: %w", err)
	}
	return nil
}

// UploadFile validates the file locally, then uploads it as an
// attachment. onProgress may be nil.
func (s *ContactService) UploadFile(ctx context.Context, contactID, name string, r io.Reader, size int64, onProgress func(int)) (domain.Attachment, error) {
	if contactID == "" || name == "" {
		return domain.Attachment{}, domain.ErrInvalidInput
	}
	if !domain.IsAllowedFileType(name) {
		return domain.Attachment{}, domain.ErrFileType
	}
	if !domain.IsAllowedFileSize(size) {
		return domain.Attachment{}, domain.ErrFileTooLarge
	}

	creds, err := s.ensureCredentials(ctx)
	if err != nil {
		return domain.Attachment{}, err
	}

	return s.api.UploadFile(ctx, creds, contactID, name, r, size, onProgress)
}

// ListFiles lists a contact's attachments.
func (s *ContactService) ListFiles(ctx context.Context, contactID string) ([]domain.Attachment, error) {
	if contactID == "" {
		return nil, domain.ErrInvalidInput
	}
	creds, err := s.ensureCredentials(ctx)
	if err != nil {
		return nil, err
	}
	return s.api.ListFiles(ctx, creds, contactID)
}

// Summarize requests an AI-generated summary of a contact.
func (s *ContactService) Summarize(ctx context.Context, contactID string) (string, error) {
	if contactID == "" {
		return "", domain.ErrInvalidInput
	}
	creds, err := s.ensureCredentials(ctx)
	if err != nil {
		return "", err
	}
	return s.api.Summarize(ctx, creds, contactID)
}

// SearchRemote performs a server-side search, bypassing the snapshot.
func (s *ContactService) SearchRemote(ctx context.Context, query string, criteria domain.FilterCriteria) ([]domain.Contact, error) {
	creds, err := s.ensureCredentials(ctx)
	if err != nil {
		return nil, err
	}
	return s.api.SearchRemote(ctx, creds, query, criteria)
}
