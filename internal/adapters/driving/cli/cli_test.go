package cli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driving"
)

// fakeSession is a SessionService that is already connected.
type fakeSession struct {
	state       domain.ConnectionState
	connects    int
	disconnects int
}

func (f *fakeSession) Connect(_ context.Context, _, _ string) error {
	f.connects++
	f.state = domain.StateConnected
	return nil
}

func (f *fakeSession) Disconnect(_ context.Context, _, _ string) error {
	f.disconnects++
	f.state = domain.StateDisconnected
	return nil
}

func (f *fakeSession) State() domain.ConnectionState    { return f.state }
func (f *fakeSession) Credentials() *domain.Credentials { return nil }

// fakeContacts serves canned contacts.
type fakeContacts struct {
	contacts     []domain.Contact
	summary      string
	loads        int
	createdProps domain.ContactProperties
}

func (f *fakeContacts) Load(_ context.Context) error {
	f.loads++
	return nil
}

func (f *fakeContacts) List(opts driving.ListOptions) domain.Page {
	filtered := domain.FilterContacts(domain.SearchContacts(f.contacts, opts.Query), opts.Criteria)
	return domain.Paginate(filtered, opts.Page, opts.PageSize)
}

func (f *fakeContacts) Get(id string) (*domain.Contact, error) {
	for i := range f.contacts {
		if f.contacts[i].ID == id {
			return &f.contacts[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeContacts) Create(_ context.Context, props domain.ContactProperties) (domain.Contact, error) {
	f.createdProps = props
	return domain.Contact{ID: "new", FirstName: props.FirstName}, nil
}

func (f *fakeContacts) Update(_ context.Context, id string, _ domain.ContactProperties) (domain.Contact, error) {
	return domain.Contact{ID: id}, nil
}

func (f *fakeContacts) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeContacts) UploadFile(_ context.Context, _, name string, _ io.Reader, size int64, onProgress func(int)) (domain.Attachment, error) {
	if onProgress != nil {
		onProgress(100)
	}
	return domain.Attachment{ID: "f1", Name: name, Size: size}, nil
}

func (f *fakeContacts) ListFiles(_ context.Context, _ string) ([]domain.Attachment, error) {
	return nil, nil
}

func (f *fakeContacts) Summarize(_ context.Context, _ string) (string, error) {
	return f.summary, nil
}

func (f *fakeContacts) SearchRemote(_ context.Context, _ string, _ domain.FilterCriteria) ([]domain.Contact, error) {
	return f.contacts, nil
}

// setupTestServices injects fakes and returns a cleanup restoring the
// previous services.
func setupTestServices(session *fakeSession, contacts *fakeContacts) func() {
	prevSession, prevContacts, prevPrefs := sessionService, contactService, prefStore
	sessionService = session
	contactService = contacts
	prefStore = nil
	return func() {
		sessionService, contactService, prefStore = prevSession, prevContacts, prevPrefs
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestConnectCmd_Use(t *testing.T) {
	assert.Equal(t, "connect", connectCmd.Use)
}

func TestConnectCmd_Executes(t *testing.T) {
	session := &fakeSession{}
	cleanup := setupTestServices(session, &fakeContacts{})
	defer cleanup()

	out, err := execute(t, "connect")

	require.NoError(t, err)
	assert.Equal(t, 1, session.connects)
	assert.Contains(t, out, "Connected to HubSpot.")
}

func TestConnectCmd_FailsWithoutServices(t *testing.T) {
	cleanup := setupTestServices(nil, nil)
	defer cleanup()
	sessionService = nil

	_, err := execute(t, "connect")

	assert.Error(t, err)
}

func TestLogoutCmd_Executes(t *testing.T) {
	session := &fakeSession{state: domain.StateConnected}
	cleanup := setupTestServices(session, &fakeContacts{})
	defer cleanup()

	out, err := execute(t, "logout")

	require.NoError(t, err)
	assert.Equal(t, 1, session.disconnects)
	assert.Contains(t, out, "Disconnected.")
}

func TestContactsListCmd_ConnectsOnDemand(t *testing.T) {
	session := &fakeSession{}
	contacts := &fakeContacts{contacts: []domain.Contact{
		{ID: "1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@a.io"},
	}}
	cleanup := setupTestServices(session, contacts)
	defer cleanup()

	out, err := execute(t, "contacts", "list")

	require.NoError(t, err)
	assert.Equal(t, 1, session.connects)
	assert.Equal(t, 1, contacts.loads)
	assert.Contains(t, out, "Ada Lovelace")
}

func TestContactsListCmd_SkipsConnectWhenConnected(t *testing.T) {
	session := &fakeSession{state: domain.StateConnected}
	cleanup := setupTestServices(session, &fakeContacts{})
	defer cleanup()

	_, err := execute(t, "contacts", "list")

	require.NoError(t, err)
	assert.Equal(t, 0, session.connects)
}

func TestContactsListCmd_RejectsUnknownSortField(t *testing.T) {
	cleanup := setupTestServices(&fakeSession{state: domain.StateConnected}, &fakeContacts{})
	defer cleanup()

	_, err := execute(t, "contacts", "list", "--sort", "shoesize")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sort field")
}

func TestContactsGetCmd_RequiresArg(t *testing.T) {
	_, err := execute(t, "contacts", "get")

	assert.Error(t, err)
}

func TestContactsCreateCmd_PassesAllFlags(t *testing.T) {
	contacts := &fakeContacts{}
	cleanup := setupTestServices(&fakeSession{state: domain.StateConnected}, contacts)
	defer cleanup()

	out, err := execute(t, "contacts", "create",
		"--first-name", "Ada",
		"--last-name", "Lovelace",
		"--email", "ada@analytical.io",
		"--notes", "Met at the symposium.")

	require.NoError(t, err)
	assert.Contains(t, out, "Created contact")
	assert.Equal(t, "Ada", contacts.createdProps.FirstName)
	assert.Equal(t, "Lovelace", contacts.createdProps.LastName)
	assert.Equal(t, "Met at the symposium.", contacts.createdProps.Notes)
}

func TestContactsCreateCmd_RejectsInvalidEmail(t *testing.T) {
	cleanup := setupTestServices(&fakeSession{state: domain.StateConnected}, &fakeContacts{})
	defer cleanup()

	_, err := execute(t, "contacts", "create", "--email", "not-an-email")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSummarizeCmd_PrintsSummary(t *testing.T) {
	contacts := &fakeContacts{summary: "A long-time customer."}
	cleanup := setupTestServices(&fakeSession{state: domain.StateConnected}, contacts)
	defer cleanup()

	out, err := execute(t, "summarize", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "A long-time customer.")
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "hubdeck version test-version-1.0.0")
}
