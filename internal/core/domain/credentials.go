package domain

import (
	"encoding/json"
	"time"

	"golang.org/x/oauth2"
)

// ExpiryMargin is the safety buffer applied when checking whether
// credentials are still usable. A token within this margin of its
// expiry instant is treated as already expired.
const ExpiryMargin = 5 * time.Minute

// Credentials is the opaque token bundle issued by the backend's OAuth
// exchange. The raw payload is round-tripped verbatim to the API in the
// `credentials` form field; the parsed token is only used locally for
// the expiry predicate.
//
// A Credentials value is either fully present (usable) or absent (nil);
// there is no partial state.
type Credentials struct {
	// Token is the parsed OAuth core of the payload.
	Token oauth2.Token

	raw []byte
}

// credentialsEnvelope captures the fields hubdeck cares about beyond
// what oauth2.Token decodes. The backend hands through whatever the CRM
// issued, so both expires_at and expires_in may appear.
type credentialsEnvelope struct {
	ExpiresAt string `json:"expires_at"`
}

// ParseCredentials decodes a raw credentials payload. An empty payload
// or one without an access token yields ErrEmptyCredentials.
func ParseCredentials(raw []byte) (*Credentials, error) {
	trimmed := string(raw)
	if trimmed == "" || trimmed == "null" || trimmed == "{}" {
		return nil, ErrEmptyCredentials
	}

	var tok oauth2.Token
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, ErrEmptyCredentials
	}

	// expires_in is relative; anchor it now so Expiry is absolute.
	if tok.Expiry.IsZero() && tok.ExpiresIn > 0 {
		tok.Expiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	}

	// Some payloads carry an absolute expires_at instead.
	var env credentialsEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.ExpiresAt != "" {
		if at, err := time.Parse(time.RFC3339, env.ExpiresAt); err == nil {
			tok.Expiry = at
		}
	}

	return &Credentials{Token: tok, raw: append([]byte(nil), raw...)}, nil
}

// Payload returns the raw credentials JSON exactly as issued.
func (c *Credentials) Payload() string {
	return string(c.raw)
}

// Expired reports whether the credentials should be refreshed before
// use: true once now reaches the expiry instant minus ExpiryMargin.
// Credentials without a known expiry are treated as expired, matching
// the absent-is-unusable policy.
func (c *Credentials) Expired(now time.Time) bool {
	if c == nil {
		return true
	}
	if c.Token.Expiry.IsZero() {
		return true
	}
	return !now.Before(c.Token.Expiry.Add(-ExpiryMargin))
}
