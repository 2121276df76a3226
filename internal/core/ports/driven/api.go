package driven

import (
	"context"
	"io"

	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
)

// ProgressFunc receives fractional upload progress as a percentage in
// [0, 100]. Values are non-decreasing across a single transfer.
type ProgressFunc func(percent int)

// IntegrationClient is the remote integration backend for one CRM.
// Every call maps to a single HTTP request; no retries, no backoff.
// Errors returned by implementations are already normalised to
// human-readable messages (structured server detail, generic network
// error, or a fallback).
type IntegrationClient interface {
	// Authorize starts the OAuth flow and returns the authorization
	// page URL to open for the user.
	Authorize(ctx context.Context, userID, orgID string) (string, error)

	// Credentials exchanges the ambient (user, org) session for a
	// credentials bundle. Returns domain.ErrEmptyCredentials when the
	// backend has nothing to hand out.
	Credentials(ctx context.Context, userID, orgID string) (*domain.Credentials, error)

	// LoadContacts fetches all contacts, flattened into the domain
	// shape.
	LoadContacts(ctx context.Context, creds *domain.Credentials) ([]domain.Contact, error)

	// CreateContact creates a contact from the given properties.
	CreateContact(ctx context.Context, creds *domain.Credentials, props domain.ContactProperties) (domain.Contact, error)

	// UpdateContact patches an existing contact.
	UpdateContact(ctx context.Context, creds *domain.Credentials, id string, props domain.ContactProperties) (domain.Contact, error)

	// DeleteContact removes a contact.
	DeleteContact(ctx context.Context, creds *domain.Credentials, id string) error

	// UploadFile attaches a file to a contact. onProgress may be nil.
	UploadFile(ctx context.Context, creds *domain.Credentials, contactID, name string, r io.Reader, size int64, onProgress ProgressFunc) (domain.Attachment, error)

	// ListFiles lists a contact's attachments.
	ListFiles(ctx context.Context, creds *domain.Credentials, contactID string) ([]domain.Attachment, error)

	// Summarize requests an AI-generated summary of a contact.
	Summarize(ctx context.Context, creds *domain.Credentials, contactID string) (string, error)

	// SearchRemote performs a server-side contact search.
	SearchRemote(ctx context.Context, creds *domain.Credentials, query string, criteria domain.FilterCriteria) ([]domain.Contact, error)

	// CheckCredentials validates the credentials with the backend and
	// returns the (possibly refreshed) bundle.
	CheckCredentials(ctx context.Context, creds *domain.Credentials) (*domain.Credentials, error)

	// Logout ends the backend session for (user, org).
	Logout(ctx context.Context, userID, orgID string) error
}
