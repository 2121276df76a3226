package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockClient implements driven.IntegrationClient for testing.
type mockClient struct {
	mu sync.Mutex

	authURL      string
	authorizeErr error

	creds          *domain.Credentials
	credentialsErr error

	contacts []domain.Contact
	loadErr  error

	created   domain.Contact
	createErr error
	updated   domain.Contact
	updateErr error
	deleteErr error

	attachment  domain.Attachment
	uploadErr   error
	attachments []domain.Attachment
	listErr     error

	summary      string
	summarizeErr error

	remote    []domain.Contact
	remoteErr error

	checked  *domain.Credentials
	checkErr error

	logoutErr error

	loadCalls   int
	checkCalls  int
	logoutCalls int
}

func (m *mockClient) Authorize(_ context.Context, _, _ string) (string, error) {
	return m.authURL, m.authorizeErr
}

func (m *mockClient) Credentials(_ context.Context, _, _ string) (*domain.Credentials, error) {
	return m.creds, m.credentialsErr
}

func (m *mockClient) LoadContacts(_ context.Context, _ *domain.Credentials) ([]domain.Contact, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()
	return m.contacts, m.loadErr
}

func (m *mockClient) CreateContact(_ context.Context, _ *domain.Credentials, _ domain.ContactProperties) (domain.Contact, error) {
	return m.created, m.createErr
}

func (m *mockClient) UpdateContact(_ context.Context, _ *domain.Credentials, _ string, _ domain.ContactProperties) (domain.Contact, error) {
	return m.updated, m.updateErr
}

func (m *mockClient) DeleteContact(_ context.Context, _ *domain.Credentials, _ string) error {
	return m.deleteErr
}

func (m *mockClient) UploadFile(_ context.Context, _ *domain.Credentials, _, _ string, _ io.Reader, _ int64, onProgress driven.ProgressFunc) (domain.Attachment, error) {
	if onProgress != nil {
		onProgress(100)
	}
	return m.attachment, m.uploadErr
}

func (m *mockClient) ListFiles(_ context.Context, _ *domain.Credentials, _ string) ([]domain.Attachment, error) {
	return m.attachments, m.listErr
}

func (m *mockClient) Summarize(_ context.Context, _ *domain.Credentials, _ string) (string, error) {
	return m.summary, m.summarizeErr
}

func (m *mockClient) SearchRemote(_ context.Context, _ *domain.Credentials, _ string, _ domain.FilterCriteria) ([]domain.Contact, error) {
	return m.remote, m.remoteErr
}

func (m *mockClient) CheckCredentials(_ context.Context, _ *domain.Credentials) (*domain.Credentials, error) {
	m.mu.Lock()
	m.checkCalls++
	m.mu.Unlock()
	return m.checked, m.checkErr
}

func (m *mockClient) Logout(_ context.Context, _, _ string) error {
	m.mu.Lock()
	m.logoutCalls++
	m.mu.Unlock()
	return m.logoutErr
}

// fakeViewport reports closed after a fixed number of polls.
type fakeViewport struct {
	mu         sync.Mutex
	closeAfter int
	polls      int
	closed     bool
}

func (v *fakeViewport) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return true
	}
	v.polls++
	if v.polls >= v.closeAfter {
		v.closed = true
	}
	return v.closed
}

func (v *fakeViewport) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	return nil
}

func (v *fakeViewport) pollCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.polls
}

// fakeOpener hands out a single prepared viewport.
type fakeOpener struct {
	viewport *fakeViewport
	openErr  error

	gotURL    string
	gotName   string
	gotWidth  int
	gotHeight int
}

func (o *fakeOpener) Open(url, name string, width, height int) (driven.Viewport, error) {
	o.gotURL = url
	o.gotName = name
	o.gotWidth = width
	o.gotHeight = height
	if o.openErr != nil {
		return nil, o.openErr
	}
	return o.viewport, nil
}

func validCreds(t *testing.T) *domain.Credentials {
	t.Helper()
	creds, err := domain.ParseCredentials([]byte(`{"access_token":"tok","expires_in":3600}`))
	require.NoError(t, err)
	return creds
}

// --- Tests ---

func TestConnectHappyPath(t *testing.T) {
	client := &mockClient{authURL: "https://crm.example/auth", creds: validCreds(t)}
	viewport := &fakeViewport{closeAfter: 3}
	opener := &fakeOpener{viewport: viewport}

	svc := NewConnectionService(client, opener)
	svc.SetPollInterval(time.Millisecond)

	var states []domain.ConnectionState
	var mu sync.Mutex
	svc.OnStateChange(func(st domain.ConnectionState) {
		mu.Lock()
		states = append(states, st)
		mu.Unlock()
	})

	err := svc.Connect(context.Background(), "user-1", "org-1")

	require.NoError(t, err)
	assert.Equal(t, domain.StateConnected, svc.State())
	require.NotNil(t, svc.Credentials())

	assert.Equal(t, "https://crm.example/auth", opener.gotURL)
	assert.Equal(t, "HubSpot Authorization", opener.gotName)
	assert.Equal(t, 600, opener.gotWidth)
	assert.Equal(t, 600, opener.gotHeight)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []domain.ConnectionState{
		domain.StateConnecting,
		domain.StateExchanging,
		domain.StateConnected,
	}, states)
}

func TestConnectPollStopsAfterClosure(t *testing.T) {
	client := &mockClient{authURL: "https://crm.example/auth", creds: validCreds(t)}
	viewport := &fakeViewport{closeAfter: 2}
	opener := &fakeOpener{viewport: viewport}

	svc := NewConnectionService(client, opener)
	svc.SetPollInterval(time.Millisecond)

	require.NoError(t, svc.Connect(context.Background(), "u", "o"))

	polls := viewport.pollCount()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, polls, viewport.pollCount(), "poll ticks after closure detected")
}

func TestConnectEmptyCredentials(t *testing.T) {
	client := &mockClient{authURL: "https://crm.example/auth", creds: nil}
	opener := &fakeOpener{viewport: &fakeViewport{closeAfter: 1}}

	svc := NewConnectionService(client, opener)
	svc.SetPollInterval(time.Millisecond)

	err := svc.Connect(context.Background(), "u", "o")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyCredentials)
	assert.Equal(t, domain.StateDisconnected, svc.State())
	assert.Nil(t, svc.Credentials())
}

func TestConnectExchangeError(t *testing.T) {
	client := &mockClient{
		authURL:        "https://crm.example/auth",
		credentialsErr: errors.New("no credentials found"),
	}
	opener := &fakeOpener{viewport: &fakeViewport{closeAfter: 1}}

	svc := NewConnectionService(client, opener)
	svc.SetPollInterval(time.Millisecond)

	err := svc.Connect(context.Background(), "u", "o")

	require.EqualError(t, err, "no credentials found")
	assert.Equal(t, domain.StateDisconnected, svc.State())
}

func TestConnectAuthorizeError(t *testing.T) {
	client := &mockClient{authorizeErr: errors.New("authorization failed")}
	opener := &fakeOpener{viewport: &fakeViewport{closeAfter: 1}}

	svc := NewConnectionService(client, opener)

	err := svc.Connect(context.Background(), "u", "o")

	require.Error(t, err)
	assert.Equal(t, domain.StateDisconnected, svc.State())
}

func TestConnectOpenerError(t *testing.T) {
	client := &mockClient{authURL: "https://crm.example/auth"}
	opener := &fakeOpener{openErr: errors.New("no browser available")}

	svc := NewConnectionService(client, opener)

	err := svc.Connect(context.Background(), "u", "o")

	require.Error(t, err)
	assert.Equal(t, domain.StateDisconnected, svc.State())
}

func TestConnectCancelledWhileViewportOpen(t *testing.T) {
	client := &mockClient{authURL: "https://crm.example/auth", creds: validCreds(t)}
	// Never closes on its own.
	viewport := &fakeViewport{closeAfter: 1 << 30}
	opener := &fakeOpener{viewport: viewport}

	svc := NewConnectionService(client, opener)
	svc.SetPollInterval(time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- svc.Connect(ctx, "u", "o")
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	err := <-errCh
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.StateDisconnected, svc.State())
	assert.True(t, viewport.closed, "abandoned connect should close the viewport")
}

func TestConnectWhileConnectInProgress(t *testing.T) {
	client := &mockClient{authURL: "https://crm.example/auth", creds: validCreds(t)}
	viewport := &fakeViewport{closeAfter: 1 << 30}
	opener := &fakeOpener{viewport: viewport}

	svc := NewConnectionService(client, opener)
	svc.SetPollInterval(time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = svc.Connect(ctx, "u", "o") }()

	// Wait for the first connect to reach Connecting.
	require.Eventually(t, func() bool {
		return svc.State() == domain.StateConnecting
	}, time.Second, time.Millisecond)

	err := svc.Connect(context.Background(), "u", "o")
	assert.ErrorIs(t, err, domain.ErrConnectInProgress)
}

func TestDisconnectClearsStateEvenWhenLogoutFails(t *testing.T) {
	client := &mockClient{authURL: "https://crm.example/auth", creds: validCreds(t)}
	opener := &fakeOpener{viewport: &fakeViewport{closeAfter: 1}}

	svc := NewConnectionService(client, opener)
	svc.SetPollInterval(time.Millisecond)
	require.NoError(t, svc.Connect(context.Background(), "u", "o"))

	client.logoutErr = errors.New("logout failed")

	err := svc.Disconnect(context.Background(), "u", "o")

	require.EqualError(t, err, "logout failed")
	assert.Equal(t, domain.StateDisconnected, svc.State())
	assert.Nil(t, svc.Credentials())
	assert.Equal(t, 1, client.logoutCalls)
}

func TestUpdateCredentialsIgnoredWhenDisconnected(t *testing.T) {
	svc := NewConnectionService(&mockClient{}, &fakeOpener{})

	svc.UpdateCredentials(validCreds(t))

	assert.Nil(t, svc.Credentials())
}
