package driving

import (
	"context"

	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
)

// SessionService manages the authorization handshake with the external
// CRM. It owns the credentials for the lifetime of the process; nothing
// is persisted.
type SessionService interface {
	// Connect runs the full handshake: fetch the authorization URL,
	// open it in a detached viewport, poll for the viewport's closure,
	// then exchange (user, org) for credentials. It blocks until the
	// session is Connected or the handshake fails. The poll itself
	// never times out; cancel ctx to abandon an unfinished connect.
	Connect(ctx context.Context, userID, orgID string) error

	// Disconnect ends the backend session and unconditionally clears
	// local credentials. A logout error is returned for surfacing but
	// the local reset happens regardless.
	Disconnect(ctx context.Context, userID, orgID string) error

	// State returns the current connection state.
	State() domain.ConnectionState

	// Credentials returns the current bundle, or nil when not
	// connected.
	Credentials() *domain.Credentials
}
