package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
)

// errUnexpected is the fallback for failures that carry no usable
// message of their own.
var errUnexpected = errors.New("an unexpected error occurred")

// serverError is the structured error body the backend returns.
type serverError struct {
	Detail string `json:"detail"`
}

// normalizeTransportError maps request-sent-no-response failures to the
// generic network error. Context cancellation passes through so callers
// can tell an abandoned operation from a broken network.
func normalizeTransportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return domain.ErrNetwork
}

// normalizeStatusError extracts the backend's structured detail message
// when present; otherwise falls back to a generic status message.
func normalizeStatusError(status int, body []byte) error {
	var se serverError
	if err := json.Unmarshal(body, &se); err == nil && se.Detail != "" {
		return errors.New(se.Detail)
	}
	return fmt.Errorf("request failed with status %d", status)
}
