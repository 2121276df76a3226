package driven

import "github.com/hubdeck/hubdeck-cli/internal/core/domain"

// CredentialSource exposes the session's current credentials to
// services that call the integration API. The connection manager owns
// the credentials; everything else reads them here.
type CredentialSource interface {
	// Credentials returns the current bundle, or nil when
	// disconnected.
	Credentials() *domain.Credentials

	// UpdateCredentials replaces the bundle after a successful
	// refresh. Implementations ignore the update when the session is
	// not connected.
	UpdateCredentials(creds *domain.Credentials)
}
