package tui

import "errors"

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("tui: session service is required")

// ErrMissingContactService is returned when the contact service is not provided.
var ErrMissingContactService = errors.New("tui: contact service is required")
