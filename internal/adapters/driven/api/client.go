// Package api implements the driven IntegrationClient port against the
// remote integration backend. Every operation is a single form-encoded
// HTTP request; errors are normalised here so callers only ever see
// human-readable messages.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hubdeck/hubdeck-cli/internal/core/domain"
	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driven"
	"github.com/hubdeck/hubdeck-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.IntegrationClient = (*Client)(nil)

// basePath is the integration's path prefix on the backend.
const basePath = "/integrations/hubspot"

// Client talks to the integration backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL (without the
// integration path). A nil httpClient gets a default with a 30 second
// timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Authorize starts the OAuth flow and returns the authorization URL.
func (c *Client) Authorize(ctx context.Context, userID, orgID string) (string, error) {
	form := url.Values{}
	form.Set("user_id", userID)
	form.Set("org_id", orgID)

	body, err := c.submitForm(ctx, http.MethodPost, "/authorize", form)
	if err != nil {
		return "", err
	}

	// The backend returns the URL as a JSON string.
	var authURL string
	if err := json.Unmarshal(body, &authURL); err != nil {
		return "", errUnexpected
	}
	return authURL, nil
}

// Credentials exchanges the (user, org) session for a credentials
// bundle.
func (c *Client) Credentials(ctx context.Context, userID, orgID string) (*domain.Credentials, error) {
	form := url.Values{}
	form.Set("user_id", userID)
	form.Set("org_id", orgID)

	body, err := c.submitForm(ctx, http.MethodPost, "/credentials", form)
	if err != nil {
		return nil, err
	}
	return domain.ParseCredentials(body)
}

// LoadContacts fetches all contacts and flattens them into the domain
// shape.
func (c *Client) LoadContacts(ctx context.Context, creds *domain.Credentials) ([]domain.Contact, error) {
	form := url.Values{}
	form.Set("credentials", creds.Payload())

	body, err := c.submitForm(ctx, http.MethodPost, "/load", form)
	if err != nil {
		return nil, err
	}

	var raw []domain.RawContact
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errUnexpected
	}

	contacts := make([]domain.Contact, len(raw))
	for i, r := range raw {
		contacts[i] = r.Flatten()
	}
	logger.Debug("Fetched %d contacts", len(contacts))
	return contacts, nil
}

// CreateContact creates a contact from the given properties.
func (c *Client) CreateContact(ctx context.Context, creds *domain.Credentials, props domain.ContactProperties) (domain.Contact, error) {
	data, err := json.Marshal(props)
	if err != nil {
		return domain.Contact{}, err
	}

	form := url.Values{}
	form.Set("credentials", creds.Payload())
	form.Set("contact_data", string(data))

	body, err := c.submitForm(ctx, http.MethodPost, "/contacts", form)
	if err != nil {
		return domain.Contact{}, err
	}
	return decodeContact(body)
}

// UpdateContact patches an existing contact.
func (c *Client) UpdateContact(ctx context.Context, creds *domain.Credentials, id string, props domain.ContactProperties) (domain.Contact, error) {
	data, err := json.Marshal(props)
	if err != nil {
		return domain.Contact{}, err
	}

	form := url.Values{}
	form.Set("credentials", creds.Payload())
	form.Set("contact_data", string(data))

	body, err := c.submitForm(ctx, http.MethodPatch, "/contacts/"+url.PathEscape(id), form)
	if err != nil {
		return domain.Contact{}, err
	}
	return decodeContact(body)
}

// DeleteContact removes a contact.
func (c *Client) DeleteContact(ctx context.Context, creds *domain.Credentials, id string) error {
	form := url.Values{}
	form.Set("credentials", creds.Payload())

	_, err := c.submitForm(ctx, http.MethodDelete, "/contacts/"+url.PathEscape(id), form)
	return err
}

// ListFiles lists a contact's attachments. Credentials travel as a
// query parameter on this endpoint.
func (c *Client) ListFiles(ctx context.Context, creds *domain.Credentials, contactID string) ([]domain.Attachment, error) {
	endpoint := c.endpoint("/contacts/"+url.PathEscape(contactID)+"/files") +
		"?credentials=" + url.QueryEscape(creds.Payload())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var files []domain.Attachment
	if len(body) == 0 {
		return []domain.Attachment{}, nil
	}
	if err := json.Unmarshal(body, &files); err != nil {
		return nil, errUnexpected
	}
	return files, nil
}

// Summarize requests an AI-generated summary of a contact.
func (c *Client) Summarize(ctx context.Context, creds *domain.Credentials, contactID string) (string, error) {
	form := url.Values{}
	form.Set("credentials", creds.Payload())
	form.Set("contact_id", contactID)

	body, err := c.submitForm(ctx, http.MethodPost, "/contacts/"+url.PathEscape(contactID)+"/summarize", form)
	if err != nil {
		return "", err
	}

	var resp struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(body, &resp); err == nil && resp.Summary != "" {
		return resp.Summary, nil
	}

	// Older deployments return the summary as a bare JSON string.
	var plain string
	if err := json.Unmarshal(body, &plain); err == nil {
		return plain, nil
	}
	return "", errUnexpected
}

// searchFilters is the wire shape of the `filters` form field.
type searchFilters struct {
	HasEmail   bool             `json:"hasEmail,omitempty"`
	HasPhone   bool             `json:"hasPhone,omitempty"`
	HasCompany bool             `json:"hasCompany,omitempty"`
	DateRange  *searchDateRange `json:"dateRange,omitempty"`
}

type searchDateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SearchRemote performs a server-side contact search.
func (c *Client) SearchRemote(ctx context.Context, creds *domain.Credentials, query string, criteria domain.FilterCriteria) ([]domain.Contact, error) {
	filters := searchFilters{
		HasEmail:   criteria.HasEmail,
		HasPhone:   criteria.HasPhone,
		HasCompany: criteria.HasCompany,
	}
	if criteria.Created != nil {
		filters.DateRange = &searchDateRange{
			Start: criteria.Created.Start.Format(time.RFC3339),
			End:   criteria.Created.End.Format(time.RFC3339),
		}
	}
	data, err := json.Marshal(filters)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("credentials", creds.Payload())
	form.Set("query", query)
	form.Set("filters", string(data))

	body, err := c.submitForm(ctx, http.MethodPost, "/search", form)
	if err != nil {
		return nil, err
	}

	var raw []domain.RawContact
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errUnexpected
	}
	contacts := make([]domain.Contact, len(raw))
	for i, r := range raw {
		contacts[i] = r.Flatten()
	}
	return contacts, nil
}

// CheckCredentials validates the bundle with the backend and returns
// the (possibly refreshed) credentials.
func (c *Client) CheckCredentials(ctx context.Context, creds *domain.Credentials) (*domain.Credentials, error) {
	form := url.Values{}
	form.Set("credentials", creds.Payload())

	body, err := c.submitForm(ctx, http.MethodPost, "/check-credentials", form)
	if err != nil {
		return nil, err
	}
	return domain.ParseCredentials(body)
}

// Logout ends the backend session for (user, org).
func (c *Client) Logout(ctx context.Context, userID, orgID string) error {
	form := url.Values{}
	form.Set("user_id", userID)
	form.Set("org_id", orgID)

	_, err := c.submitForm(ctx, http.MethodPost, "/logout", form)
	return err
}

// endpoint joins the base URL, integration path, and endpoint path.
func (c *Client) endpoint(path string) string {
	return c.baseURL + basePath + path
}

// submitForm sends a form-encoded request and returns the response
// body, with errors already normalised.
func (c *Client) submitForm(ctx context.Context, method, path string, form url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

// do executes the request and normalises every failure mode.
func (c *Client) do(req *http.Request) ([]byte, error) {
	logger.Debug("%s %s", req.Method, req.URL.Path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, normalizeTransportError(req.Context(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, normalizeTransportError(req.Context(), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, normalizeStatusError(resp.StatusCode, body)
	}
	return body, nil
}

func decodeContact(body []byte) (domain.Contact, error) {
	var raw domain.RawContact
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.Contact{}, errUnexpected
	}
	return raw.Flatten(), nil
}
