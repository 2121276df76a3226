package domain

// ConnectionState is the state of the authorization handshake with the
// external CRM.
type ConnectionState int

const (
	// StateDisconnected means no credentials are held. Initial state.
	StateDisconnected ConnectionState = iota

	// StateConnecting means the authorization viewport is open and its
	// closure is being polled.
	StateConnecting

	// StateExchanging means the viewport closed and the session is
	// being traded for credentials.
	StateExchanging

	// StateConnected means credentials are held and usable.
	StateConnected
)

// String returns a human-readable state name.
func (s ConnectionState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateExchanging:
		return "exchanging"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}
