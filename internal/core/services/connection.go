package services

import (
	"context"
	"sync"
	"time"

	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driven"
	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driving"
	"github.com/hubdeck/hubdeck-cli/internal/logger"
)

// Ensure ConnectionService implements the interfaces.
var (
	_ driving.SessionService  = (*ConnectionService)(nil)
	_ driven.CredentialSource = (*ConnectionService)(nil)
)

const (
	// DefaultPollInterval is how often the authorization viewport is
	// checked for closure.
	DefaultPollInterval = 200 * time.Millisecond

	// Viewport geometry and name for the authorization window.
	viewportName   = "HubSpot Authorization"
	viewportWidth  = 600
	viewportHeight = 600
)

// ConnectionService is the connection manager: it runs the
// connect-and-poll authorization handshake and owns the resulting
// credentials for the lifetime of the process.
//
// State transitions: Disconnected -> Connecting (viewport open, poll
// running) -> Exchanging (viewport closed, trading session for
// credentials) -> Connected. Any failure returns to Disconnected. The
// poll task is scoped to the Connecting state and cannot outlive it.
type ConnectionService struct {
	api    driven.IntegrationClient
	opener driven.ViewportOpener

	pollInterval time.Duration

	mu      sync.Mutex
	state   domain.ConnectionState
	creds   *domain.Credentials
	onState func(domain.ConnectionState)
}

// NewConnectionService creates a connection manager using the given
// API client and viewport opener.
func NewConnectionService(api driven.IntegrationClient, opener driven.ViewportOpener) *ConnectionService {
	return &ConnectionService{
		api:          api,
		opener:       opener,
		pollInterval: DefaultPollInterval,
		state:        domain.StateDisconnected,
	}
}

// SetPollInterval overrides the viewport poll interval. Useful for
// testing.
func (s *ConnectionService) SetPollInterval(d time.Duration) {
	if d > 0 {
		s.pollInterval = d
	}
}

// OnStateChange registers a listener invoked after every state
// transition. The listener runs outside the service lock.
func (s *ConnectionService) OnStateChange(fn func(domain.ConnectionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onState = fn
}

// Connect runs the authorization handshake. It blocks until the session
// is Connected or the handshake fails; the viewport poll itself never
// times out, so cancel ctx to abandon an unfinished connect.
func (s *ConnectionService) Connect(ctx context.Context, userID, orgID string) error {
	s.mu.Lock()
	switch s.state {
	case domain.StateConnecting, domain.StateExchanging:
		s.mu.Unlock()
		return domain.ErrConnectInProgress
	case domain.StateConnected:
		s.mu.Unlock()
		return nil
	}
	s.state = domain.StateConnecting
	s.mu.Unlock()
	s.notify(domain.StateConnecting)

	logger.Section("Connect")
	logger.Debug("Requesting authorization URL for user=%s org=%s", userID, orgID)

	authURL, err := s.api.Authorize(ctx, userID, orgID)
	if err != nil {
		s.toDisconnected()
		return err
	}

	viewport, err := s.opener.Open(authURL, viewportName, viewportWidth, viewportHeight)
	if err != nil {
		s.toDisconnected()
		return err
	}

	logger.Debug("Authorization viewport open, polling every %s", s.pollInterval)
	if err := s.waitForViewportClose(ctx, viewport); err != nil {
		s.toDisconnected()
		return err
	}

	s.setState(domain.StateExchanging)
	logger.Debug("Viewport closed, exchanging session for credentials")

	creds, err := s.api.Credentials(ctx, userID, orgID)
	if err != nil {
		s.toDisconnected()
		return err
	}
	if creds == nil {
		s.toDisconnected()
		return domain.ErrEmptyCredentials
	}

	s.mu.Lock()
	s.state = domain.StateConnected
	s.creds = creds
	s.mu.Unlock()
	s.notify(domain.StateConnected)
	logger.Info("Connected")
	return nil
}

// waitForViewportClose polls the viewport until it closes or ctx is
// cancelled. The ticker is scoped to this call: it is stopped on every
// return path and fires no further ticks once closure is detected.
func (s *ConnectionService) waitForViewportClose(ctx context.Context, viewport driven.Viewport) error {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = viewport.Close()
			return ctx.Err()
		case <-ticker.C:
			if viewport.Closed() {
				return nil
			}
		}
	}
}

// Disconnect ends the backend session. Local teardown is not gated on
// the server's acknowledgment: the state resets to Disconnected and
// credentials are cleared even when the logout request fails; its error
// is returned for surfacing only.
func (s *ConnectionService) Disconnect(ctx context.Context, userID, orgID string) error {
	logger.Section("Disconnect")
	err := s.api.Logout(ctx, userID, orgID)
	if err != nil {
		logger.Warn("Logout request failed: %v", err)
	}

	s.mu.Lock()
	s.state = domain.StateDisconnected
	s.creds = nil
	s.mu.Unlock()
	s.notify(domain.StateDisconnected)
	return err
}

// State returns the current connection state.
func (s *ConnectionService) State() domain.ConnectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Credentials returns the current bundle, or nil when not connected.
func (s *ConnectionService) Credentials() *domain.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds
}

// UpdateCredentials replaces the bundle after a refresh. Ignored unless
// the session is Connected; a refresh racing a disconnect must not
// resurrect credentials.
func (s *ConnectionService) UpdateCredentials(creds *domain.Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == domain.StateConnected && creds != nil {
		s.creds = creds
	}
}

func (s *ConnectionService) setState(state domain.ConnectionState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.notify(state)
}

func (s *ConnectionService) toDisconnected() {
	s.mu.Lock()
	s.state = domain.StateDisconnected
	s.creds = nil
	s.mu.Unlock()
	s.notify(domain.StateDisconnected)
}

func (s *ConnectionService) notify(state domain.ConnectionState) {
	s.mu.Lock()
	fn := s.onState
	s.mu.Unlock()
	if fn != nil {
		fn(state)
	}
}
