package domain

import (
	"regexp"
	"strings"
)

// Contact represents one CRM contact record.
// Every field except ID is optional; absent values are normalised to the
// empty string at the ingestion boundary (see RawContact.Flatten), so
// consumers never see a nil field.
type Contact struct {
	// ID is the opaque, unique identifier assigned by the CRM.
	ID string `json:"id"`

	// FirstName is the contact's given name.
	FirstName string `json:"firstname"`

	// LastName is the contact's family name.
	LastName string `json:"lastname"`

	// Email is the contact's email address.
	Email string `json:"email"`

	// Phone is the contact's phone number.
	Phone string `json:"phone"`

	// Company is the contact's company name.
	Company string `json:"company"`

	// CreateDate is the creation timestamp as reported by the CRM
	// (RFC 3339). Kept as a string; parsed only where a comparison
	// is needed.
	CreateDate string `json:"createDate"`

	// LastModifiedDate is the last-modified timestamp as reported by
	// the CRM (RFC 3339).
	LastModifiedDate string `json:"lastModifiedDate"`

	// Notes is free-form text attached to the contact.
	Notes string `json:"notes"`
}

// DisplayName returns the contact's full name, or "No Name" when both
// name fields are empty.
func (c Contact) DisplayName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return "No Name"
	}
	return name
}

// searchableText joins the searchable fields into a single lowercase
// string. The naive space-joined concatenation means a term can match
// across two adjacent fields; that quirk is intentional and relied on
// by SearchContacts.
func (c Contact) searchableText() string {
	return strings.ToLower(strings.Join([]string{
		c.FirstName,
		c.LastName,
		c.Email,
		c.Company,
		c.Phone,
	}, " "))
}

// ContactProperties is the mutable property set accepted by the
// create and update operations. It mirrors the wire shape of the
// `properties` sub-object.
type ContactProperties struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
	Notes     string `json:"notes"`
}

// RawContact is a contact record as returned by the integration API:
// an id plus a `properties` sub-object.
type RawContact struct {
	ID         string        `json:"id"`
	Properties RawProperties `json:"properties"`
}

// RawProperties is the `properties` sub-object of a raw contact record.
type RawProperties struct {
	FirstName        string `json:"firstname"`
	LastName         string `json:"lastname"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Company          string `json:"company"`
	CreateDate       string `json:"createdate"`
	LastModifiedDate string `json:"lastmodifieddate"`
	Notes            string `json:"notes"`
}

// Flatten converts a raw wire record into a Contact. This is the single
// place where absent fields become empty strings.
func (r RawContact) Flatten() Contact {
	return Contact{
		ID:               r.ID,
		FirstName:        r.Properties.FirstName,
		LastName:         r.Properties.LastName,
		Email:            r.Properties.Email,
		Phone:            r.Properties.Phone,
		Company:          r.Properties.Company,
		CreateDate:       r.Properties.CreateDate,
		LastModifiedDate: r.Properties.LastModifiedDate,
		Notes:            r.Properties.Notes,
	}
}

// Raw converts a Contact back into the wire shape. Flatten and Raw are
// inverses for every known field.
func (c Contact) Raw() RawContact {
	return RawContact{
		ID: c.ID,
		Properties: RawProperties{
			FirstName:        c.FirstName,
			LastName:         c.LastName,
			Email:            c.Email,
			Phone:            c.Phone,
			Company:          c.Company,
			CreateDate:       c.CreateDate,
			LastModifiedDate: c.LastModifiedDate,
			Notes:            c.Notes,
		},
	}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether s looks like an email address. The check
// is deliberately loose; the CRM is the authority on validity.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

var nonDigit = regexp.MustCompile(`\D`)

// FormatPhoneNumber formats a ten-digit phone number as (XXX) XXX-XXXX.
// Anything else is returned unchanged.
func FormatPhoneNumber(phone string) string {
	if phone == "" {
		return ""
	}
	cleaned := nonDigit.ReplaceAllString(phone, "")
	if len(cleaned) != 10 {
		return phone
	}
	return "(" + cleaned[0:3] + ") " + cleaned[3:6] + "-" + cleaned[6:]
}
