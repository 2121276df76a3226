package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Connection errors.

	// ErrNotConnected indicates an operation needs credentials but the
	// session is disconnected.
	ErrNotConnected = errors.New("not connected")

	// ErrConnectInProgress indicates a connect handshake is already
	// running.
	ErrConnectInProgress = errors.New("connect already in progress")

	// ErrEmptyCredentials indicates the credential exchange returned an
	// empty or unusable payload.
	ErrEmptyCredentials = errors.New("empty credentials payload")

	// Network errors.

	// ErrNetwork indicates the request was sent but no response
	// arrived. Surfaced as a generic message; the backend never saw
	// (or never answered) the request.
	ErrNetwork = errors.New("network error occurred")

	// Attachment errors.

	// ErrFileType indicates the file's extension is not accepted.
	ErrFileType = errors.New("file type not allowed")

	// ErrFileTooLarge indicates the file exceeds MaxAttachmentSize.
	ErrFileTooLarge = errors.New("file exceeds maximum size")
)
