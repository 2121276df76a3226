package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
)

func testCreds(t *testing.T) *domain.Credentials {
	t.Helper()
	creds, err := domain.ParseCredentials([]byte(`{"access_token":"tok","expires_in":3600}`))
	require.NoError(t, err)
	return creds
}

func TestAuthorizeReturnsURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/integrations/hubspot/authorize", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "u1", r.Form.Get("user_id"))
		assert.Equal(t, "o1", r.Form.Get("org_id"))
		json.NewEncoder(w).Encode("https://app.hubspot.com/oauth/authorize?x=1")
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	authURL, err := client.Authorize(context.Background(), "u1", "o1")

	require.NoError(t, err)
	assert.Equal(t, "https://app.hubspot.com/oauth/authorize?x=1", authURL)
}

func TestServerDetailSurfacesVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Contact already exists"})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.CreateContact(context.Background(), testCreds(t), domain.ContactProperties{})

	require.Error(t, err)
	assert.Equal(t, "Contact already exists", err.Error())
}

func TestErrorStatusWithoutDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>gateway</html>"))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	_, err := client.LoadContacts(context.Background(), testCreds(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // no listener anymore

	client := NewClient(server.URL, nil)
	_, err := client.LoadContacts(context.Background(), testCreds(t))

	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestCancelledRequestIsNotNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server notices the client going away;
		// only then does the request context fire.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	client := NewClient(server.URL, nil)
	_, err := client.LoadContacts(ctx, testCreds(t))

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNetwork)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadContactsFlattensProperties(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":"1","properties":{"firstname":"Ada","lastname":"Lovelace","email":"ada@a.io"}},
			{"id":"2","properties":{}}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	contacts, err := client.LoadContacts(context.Background(), testCreds(t))

	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Ada", contacts[0].FirstName)
	assert.Equal(t, "ada@a.io", contacts[0].Email)
	assert.Equal(t, "2", contacts[1].ID)
	assert.Empty(t, contacts[1].FirstName)
}

func TestCreateContactSendsProperties(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		var props domain.ContactProperties
		require.NoError(t, json.Unmarshal([]byte(r.Form.Get("contact_data")), &props))
		assert.Equal(t, "Ada", props.FirstName)
		assert.Equal(t, "Met at the symposium.", props.Notes)
		w.Write([]byte(`{"id":"7","properties":{"firstname":"Ada","notes":"Met at the symposium."}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	contact, err := client.CreateContact(context.Background(), testCreds(t), domain.ContactProperties{
		FirstName: "Ada",
		Notes:     "Met at the symposium.",
	})

	require.NoError(t, err)
	assert.Equal(t, "7", contact.ID)
	assert.Equal(t, "Met at the symposium.", contact.Notes)
}

func TestUpdateContactSendsProperties(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/integrations/hubspot/contacts/7", r.URL.Path)
		require.NoError(t, r.ParseForm())
		var props domain.ContactProperties
		require.NoError(t, json.Unmarshal([]byte(r.Form.Get("contact_data")), &props))
		assert.Equal(t, "Prefers email.", props.Notes)
		w.Write([]byte(`{"id":"7","properties":{"firstname":"Ada","notes":"Prefers email."}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	contact, err := client.UpdateContact(context.Background(), testCreds(t), "7", domain.ContactProperties{
		FirstName: "Ada",
		Notes:     "Prefers email.",
	})

	require.NoError(t, err)
	assert.Equal(t, "Prefers email.", contact.Notes)
}

func TestSummarizeHandlesBothShapes(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"summary": "A valued customer."})
		}))
		defer server.Close()

		summary, err := NewClient(server.URL, nil).Summarize(context.Background(), testCreds(t), "1")
		require.NoError(t, err)
		assert.Equal(t, "A valued customer.", summary)
	})

	t.Run("bare string", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode("A valued customer.")
		}))
		defer server.Close()

		summary, err := NewClient(server.URL, nil).Summarize(context.Background(), testCreds(t), "1")
		require.NoError(t, err)
		assert.Equal(t, "A valued customer.", summary)
	})
}

func TestUploadFileProgressReachesHundred(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.NotEmpty(t, r.FormValue("credentials"))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "notes.pdf", header.Filename)
		w.Write([]byte(`{"id":"f1","name":"notes.pdf","size":11}`))
	}))
	defer server.Close()

	var reported []int
	client := NewClient(server.URL, nil)
	att, err := client.UploadFile(context.Background(), testCreds(t), "1", "notes.pdf",
		strings.NewReader("hello world"), 11, func(p int) { reported = append(reported, p) })

	require.NoError(t, err)
	assert.Equal(t, "f1", att.ID)
	require.NotEmpty(t, reported)
	for i := 1; i < len(reported); i++ {
		assert.GreaterOrEqual(t, reported[i], reported[i-1])
	}
	assert.Equal(t, 100, reported[len(reported)-1])
}

func TestListFilesPassesCredentialsAsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.NotEmpty(t, r.URL.Query().Get("credentials"))
		w.Write([]byte(`[{"id":"f1","name":"a.pdf","size":10}]`))
	}))
	defer server.Close()

	files, err := NewClient(server.URL, nil).ListFiles(context.Background(), testCreds(t), "1")

	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a.pdf", files[0].Name)
}

func TestResolveBaseURLPrefersHealthyLocal(t *testing.T) {
	local := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer local.Close()

	got := resolveBaseURL(local.Client(), local.URL, "https://prod.example")

	assert.Equal(t, local.URL, got)
}

func TestResolveBaseURLFallsBackToProduction(t *testing.T) {
	t.Run("unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		got := resolveBaseURL(nil, server.URL, "https://prod.example")
		assert.Equal(t, "https://prod.example", got)
	})

	t.Run("unhealthy", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		got := resolveBaseURL(server.Client(), server.URL, "https://prod.example")
		assert.Equal(t, "https://prod.example", got)
	})
}
