package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCredentialsEmptyPayload(t *testing.T) {
	for _, payload := range []string{"", "null", "{}"} {
		_, err := ParseCredentials([]byte(payload))
		assert.ErrorIs(t, err, ErrEmptyCredentials, "payload %q", payload)
	}
}

func TestParseCredentialsMissingAccessToken(t *testing.T) {
	_, err := ParseCredentials([]byte(`{"refresh_token":"r"}`))

	assert.ErrorIs(t, err, ErrEmptyCredentials)
}

func TestParseCredentialsRoundTripsRawPayload(t *testing.T) {
	raw := `{"access_token":"tok","refresh_token":"ref","expires_in":1800,"token_type":"bearer"}`

	creds, err := ParseCredentials([]byte(raw))

	require.NoError(t, err)
	assert.Equal(t, raw, creds.Payload())
	assert.Equal(t, "tok", creds.Token.AccessToken)
	assert.Equal(t, "ref", creds.Token.RefreshToken)
}

func TestParseCredentialsAnchorsExpiresIn(t *testing.T) {
	creds, err := ParseCredentials([]byte(`{"access_token":"tok","expires_in":1800}`))

	require.NoError(t, err)
	assert.False(t, creds.Expired(time.Now()))
	assert.True(t, creds.Expired(time.Now().Add(30*time.Minute)))
}

func TestParseCredentialsHonoursExpiresAt(t *testing.T) {
	creds, err := ParseCredentials([]byte(`{"access_token":"tok","expires_at":"2030-01-01T00:00:00Z"}`))

	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), creds.Token.Expiry)
}

func TestExpiredAppliesFiveMinuteMargin(t *testing.T) {
	creds, err := ParseCredentials([]byte(`{"access_token":"tok","expires_at":"2030-01-01T00:00:00Z"}`))
	require.NoError(t, err)

	expiry := creds.Token.Expiry

	assert.False(t, creds.Expired(expiry.Add(-ExpiryMargin-time.Second)))
	assert.True(t, creds.Expired(expiry.Add(-ExpiryMargin)))
	assert.True(t, creds.Expired(expiry))
}

func TestExpiredNilAndUnknownExpiry(t *testing.T) {
	var creds *Credentials
	assert.True(t, creds.Expired(time.Now()))

	noExpiry, err := ParseCredentials([]byte(`{"access_token":"tok"}`))
	require.NoError(t, err)
	assert.True(t, noExpiry.Expired(time.Now()))
}
