package connect

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubdeck/hubdeck-cli/internal/adapters/driving/tui/messages"
	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
)

type fakeSession struct {
	state      domain.ConnectionState
	connectErr error
	connects   int
}

func (f *fakeSession) Connect(_ context.Context, _, _ string) error {
	f.connects++
	if f.connectErr != nil {
		f.state = domain.StateDisconnected
		return f.connectErr
	}
	f.state = domain.StateConnected
	return nil
}

func (f *fakeSession) Disconnect(_ context.Context, _, _ string) error {
	f.state = domain.StateDisconnected
	return nil
}

func (f *fakeSession) State() domain.ConnectionState    { return f.state }
func (f *fakeSession) Credentials() *domain.Credentials { return nil }

func TestEnterStartsHandshake(t *testing.T) {
	session := &fakeSession{}
	v := NewView(nil, session, "u1", "o1")
	v.SetDimensions(80, 24)

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, v.Connecting())

	msg := cmd()
	completed, ok := msg.(messages.ConnectCompleted)
	require.True(t, ok)
	assert.NoError(t, completed.Err)
	assert.Equal(t, 1, session.connects)
}

func TestSuccessfulConnectNavigatesToContacts(t *testing.T) {
	session := &fakeSession{state: domain.StateConnected}
	v := NewView(nil, session, "u1", "o1")
	v.SetDimensions(80, 24)

	v, cmd := v.Update(messages.ConnectCompleted{})
	require.NotNil(t, cmd)

	changed, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewContacts, changed.View)
	assert.False(t, v.Connecting())
}

func TestFailedConnectShowsError(t *testing.T) {
	session := &fakeSession{}
	v := NewView(nil, session, "u1", "o1")
	v.SetDimensions(80, 24)

	v, cmd := v.Update(messages.ConnectCompleted{Err: errors.New("network error occurred")})

	assert.Nil(t, cmd)
	require.Error(t, v.Err())
	assert.Contains(t, v.View(), "network error occurred")
}

func TestEnterIgnoredWhileConnecting(t *testing.T) {
	session := &fakeSession{}
	v := NewView(nil, session, "u1", "o1")
	v.SetDimensions(80, 24)

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, 0, session.connects) // commands not yet executed
}

func TestStateChangedUpdatesStatus(t *testing.T) {
	v := NewView(nil, &fakeSession{}, "u1", "o1")
	v.SetDimensions(80, 24)

	v, _ = v.Update(messages.StateChanged{State: domain.StateExchanging})

	assert.Equal(t, domain.StateExchanging, v.State())
	assert.Contains(t, v.View(), "Exchanging credentials")
}
