package driven

// Viewport is a detached authorization window opened for the user.
// The connection manager polls Closed to detect when the user has
// finished (or abandoned) the external authorization flow.
type Viewport interface {
	// Closed reports whether the viewport has been closed.
	Closed() bool

	// Close closes the viewport if it is still open. Idempotent.
	Close() error
}

// ViewportOpener opens authorization viewports.
type ViewportOpener interface {
	// Open shows url in a detached viewport with the given descriptive
	// window name and dimensions. Implementations that cannot honour
	// the dimensions may ignore them.
	Open(url, name string, width, height int) (Viewport, error)
}
