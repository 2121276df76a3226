// Package file stores viewer preferences in a TOML file under the
// hubdeck config directory.
package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/hubdeck/hubdeck-cli/internal/core/ports/driven"
	"github.com/hubdeck/hubdeck-cli/internal/logger"
)

// Ensure PrefStore implements the interface.
var _ driven.PrefStore = (*PrefStore)(nil)

// PrefStore is a file-based implementation of driven.PrefStore using
// TOML. Preferences live in a TOML file within the hubdeck config
// directory.
type PrefStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewPrefStore creates a new TOML-based preference store.
// If configDir is empty, defaults to ~/.hubdeck/config.toml.
func NewPrefStore(configDir string) (*PrefStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".hubdeck")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &PrefStore{
		filePath: filepath.Join(configDir, "config.toml"),
		data:     make(map[string]any),
	}

	// A malformed file degrades to defaults rather than blocking
	// startup; the next Save rewrites it.
	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Ignoring unreadable preferences at %s: %v", s.filePath, err)
	}

	return s, nil
}

// Get retrieves a preference value by key.
func (s *PrefStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	return val, ok
}

// GetString retrieves a string preference value.
func (s *PrefStore) GetString(key string) string {
	val, ok := s.Get(key)
	if !ok {
		return ""
	}

	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// GetInt retrieves an integer preference value.
func (s *PrefStore) GetInt(key string) int {
	val, ok := s.Get(key)
	if !ok {
		return 0
	}

	// TOML integers are parsed as int64
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// GetBool retrieves a boolean preference value.
func (s *PrefStore) GetBool(key string) bool {
	val, ok := s.Get(key)
	if !ok {
		return false
	}

	b, ok := val.(bool)
	if !ok {
		return false
	}
	return b
}

// Set stores a preference value and persists immediately.
func (s *PrefStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return s.save()
}

// Save persists the current preferences to disk.
func (s *PrefStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes preferences to the TOML file (caller must hold lock).
func (s *PrefStore) save() error {
	data, err := toml.Marshal(s.data)
	if err != nil {
		return err
	}

	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads preferences from the TOML file.
func (s *PrefStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *PrefStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			// No preferences file yet - that's fine, start empty
			s.data = make(map[string]any)
			return nil
		}
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}

	if loaded == nil {
		loaded = make(map[string]any)
	}

	// Flatten nested tables into dot-notation keys for easier access
	s.data = flattenMap(loaded, "")
	return nil
}

// Watch reloads preferences whenever the file changes on disk and
// calls onChange after each successful reload. Call Close to stop
// watching.
func (s *PrefStore) Watch(onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory, not the file: editors replace files on
	// save, which drops file-level watches.
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		watcher.Close()
		return err
	}

	s.watcher = watcher
	s.done = make(chan struct{})

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.filePath {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				s.mu.Lock()
				err := s.load()
				s.mu.Unlock()
				if err != nil {
					logger.Debug("Preference reload failed: %v", err)
					continue
				}
				if onChange != nil {
					onChange()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Debug("Preference watcher error: %v", err)
			case <-s.done:
				return
			}
		}
	}()

	return nil
}

// Close stops the file watcher if one is running.
func (s *PrefStore) Close() error {
	if s.watcher == nil {
		return nil
	}
	close(s.done)
	return s.watcher.Close()
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)

	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}

	return result
}

// Path returns the preferences file path.
func (s *PrefStore) Path() string {
	return s.filePath
}
