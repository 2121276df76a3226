package driven

// Preference keys used by the CLI and TUI. Missing or malformed values
// degrade to defaults; a broken preference file never fails an
// operation.
const (
	PrefPageSize      = "contacts.page_size"
	PrefSortField     = "contacts.sort_field"
	PrefSortDirection = "contacts.sort_direction"
	PrefHasEmail      = "filters.has_email"
	PrefHasPhone      = "filters.has_phone"
	PrefHasCompany    = "filters.has_company"

	// Session identity. Generated on first run and reused so the
	// backend associates the same installation across connects.
	PrefUserID = "session.user_id"
	PrefOrgID  = "session.org_id"
)

// PrefStore provides access to persisted user preferences.
// Implementations handle persistence (e.g., TOML files) and type
// conversion.
type PrefStore interface {
	// Get retrieves a preference value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string preference.
	// Returns empty string if the key is missing or not a string.
	GetString(key string) string

	// GetInt retrieves an integer preference.
	// Returns 0 if the key is missing or not an integer.
	GetInt(key string) int

	// GetBool retrieves a boolean preference.
	// Returns false if the key is missing or not a boolean.
	GetBool(key string) bool

	// Set stores a preference value. The value is persisted
	// immediately.
	Set(key string, value any) error

	// Save persists the current preferences to storage.
	Save() error

	// Load reads preferences from storage.
	Load() error

	// Path returns the preference file path.
	Path() string
}
