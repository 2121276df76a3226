package domain

import (
	"sort"
	"strings"
	"time"
)

// SortDirection orders a sorted contact list.
type SortDirection string

const (
	// SortAsc sorts ascending. This is the default.
	SortAsc SortDirection = "asc"
	// SortDesc sorts descending.
	SortDesc SortDirection = "desc"
)

// SortField names a sortable contact field.
type SortField string

const (
	SortByFirstName        SortField = "firstname"
	SortByLastName         SortField = "lastname"
	SortByEmail            SortField = "email"
	SortByPhone            SortField = "phone"
	SortByCompany          SortField = "company"
	SortByCreateDate       SortField = "createdate"
	SortByLastModifiedDate SortField = "lastmodifieddate"
)

// fieldValue returns the named field of c, or the empty string for an
// unknown field. Missing values therefore compare as empty strings.
func (f SortField) fieldValue(c Contact) string {
	switch f {
	case SortByFirstName:
		return c.FirstName
	case SortByLastName:
		return c.LastName
	case SortByEmail:
		return c.Email
	case SortByPhone:
		return c.Phone
	case SortByCompany:
		return c.Company
	case SortByCreateDate:
		return c.CreateDate
	case SortByLastModifiedDate:
		return c.LastModifiedDate
	default:
		return ""
	}
}

// DateRange is an inclusive [Start, End] window over creation dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// FilterCriteria is a set of independent predicates combined with
// logical AND. The zero value imposes no constraints: an unset
// predicate means "no constraint", not "false".
type FilterCriteria struct {
	// HasEmail keeps only contacts with a non-empty email.
	HasEmail bool

	// HasPhone keeps only contacts with a non-empty phone.
	HasPhone bool

	// HasCompany keeps only contacts with a non-empty company.
	HasCompany bool

	// Created restricts to contacts whose creation date falls inside
	// the inclusive range. Nil means no date constraint.
	Created *DateRange
}

// IsZero reports whether no predicate is active.
func (f FilterCriteria) IsZero() bool {
	return !f.HasEmail && !f.HasPhone && !f.HasCompany && f.Created == nil
}

// matches reports whether c satisfies every active predicate.
func (f FilterCriteria) matches(c Contact) bool {
	if f.HasEmail && c.Email == "" {
		return false
	}
	if f.HasPhone && c.Phone == "" {
		return false
	}
	if f.HasCompany && c.Company == "" {
		return false
	}
	if f.Created != nil {
		created, err := time.Parse(time.RFC3339, c.CreateDate)
		// An unparseable creation date never excludes a contact.
		if err == nil {
			if created.Before(f.Created.Start) || created.After(f.Created.End) {
				return false
			}
		}
	}
	return true
}

// SearchContacts returns the subsequence of contacts whose concatenated
// searchable fields (first name, last name, email, company, phone)
// contain every whitespace-delimited token of query as a
// case-insensitive substring. An empty query returns the input
// unchanged. The input is never mutated.
//
// Matching runs over the space-joined concatenation of the fields, so a
// token can coincidentally match across a field boundary. That matches
// the behaviour users already rely on; do not tighten it to per-field
// matching.
func SearchContacts(contacts []Contact, query string) []Contact {
	if query == "" {
		return contacts
	}
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return contacts
	}

	result := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		text := c.searchableText()
		match := true
		for _, term := range terms {
			if !strings.Contains(text, term) {
				match = false
				break
			}
		}
		if match {
			result = append(result, c)
		}
	}
	return result
}

// FilterContacts returns the subsequence of contacts satisfying every
// active predicate in criteria. Zero-value criteria returns the input
// unchanged. The input is never mutated.
func FilterContacts(contacts []Contact, criteria FilterCriteria) []Contact {
	if criteria.IsZero() {
		return contacts
	}
	result := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		if criteria.matches(c) {
			result = append(result, c)
		}
	}
	return result
}

// SortContacts returns a new slice ordered by the given field. String
// comparison is case-insensitive and missing values compare as empty
// strings. The sort is not guaranteed stable; ties may reorder. The
// input is never mutated.
func SortContacts(contacts []Contact, field SortField, direction SortDirection) []Contact {
	sorted := make([]Contact, len(contacts))
	copy(sorted, contacts)

	sort.Slice(sorted, func(i, j int) bool {
		a := strings.ToLower(field.fieldValue(sorted[i]))
		b := strings.ToLower(field.fieldValue(sorted[j]))
		if direction == SortDesc {
			return a > b
		}
		return a < b
	})
	return sorted
}

// Page is one page of a paginated contact list plus derived metadata.
type Page struct {
	// Items is the page-sized slice of the input.
	Items []Contact `json:"items"`

	// TotalPages is ceil(len(input) / pageSize).
	TotalPages int `json:"totalPages"`

	// CurrentPage echoes the requested page number.
	CurrentPage int `json:"currentPage"`

	// HasMore reports whether pages exist after this one.
	HasMore bool `json:"hasMore"`
}

// DefaultPageSize is used when a caller passes a non-positive page size.
const DefaultPageSize = 10

// Paginate slices contacts into the requested 1-based page. An empty
// input yields zero total pages and an empty page. The input is never
// mutated.
func Paginate(contacts []Contact, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	start := (page - 1) * pageSize
	end := start + pageSize

	items := []Contact{}
	if start >= 0 && start < len(contacts) {
		if end > len(contacts) {
			end = len(contacts)
		}
		items = append(items, contacts[start:end]...)
	}

	return Page{
		Items:       items,
		TotalPages:  (len(contacts) + pageSize - 1) / pageSize,
		CurrentPage: page,
		HasMore:     start+pageSize < len(contacts),
	}
}
