package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Key prefix shared by every persisted record.
const keyPrefix = "spring_festival_"

// Well-known keys.
const (
	KeySettings       = keyPrefix + "settings"
	KeyDanmakuHistory = keyPrefix + "danmaku_history"
	KeyUserDanmaku    = keyPrefix + "user_danmaku"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

var (
	ErrUnknownBackend = errors.New("unknown storage backend")
	ErrUnavailable    = errors.New("storage unavailable")
)

// KnownKeys lists every key the application writes, in export order.
func KnownKeys() []string {
	return []string{KeySettings, KeyDanmakuHistory, KeyUserDanmaku}
}

// Backend persists raw JSON values by key.
type Backend interface {
	Read(key string) (value []byte, found bool, err error)
	Write(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Store is the typed key/value adapter used by the settings and history
// managers. Failures never escape Get/GetOr: they are logged and the caller's
// fallback is used.
type Store struct {
	backend Backend
	log     *logrus.Entry
}

// New wraps a backend.
func New(b Backend) *Store {
	return &Store{backend: b, log: logrus.WithField("component", "storage")}
}

// Open creates a Store for the named backend at path. Paths starting with ~
// are expanded to the user's home directory.
func Open(backend, path string) (*Store, error) {
	switch backend {
	case BackendJSON, "":
		b, err := NewOrExistingFileBackend(path)
		if err != nil {
			return nil, err
		}
		return New(b), nil
	case BackendSQLite:
		b, err := OpenSQLiteBackend(path)
		if err != nil {
			return nil, err
		}
		return New(b), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Get decodes the value under key into dest. It reports whether the key was present.
func (s *Store) Get(key string, dest any) (bool, error) {
	raw, found, err := s.backend.Read(key)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// GetOr returns the value stored under key, or fallback when it is missing,
// unreadable or corrupt.
func GetOr[T any](s *Store, key string, fallback T) T {
	var v T
	found, err := s.Get(key, &v)
	if err != nil {
		s.log.Errorf("Error reading from storage (key: %s): %v", key, err)
		return fallback
	}
	if !found {
		return fallback
	}
	return v
}

// Set encodes v and stores it under key.
func (s *Store) Set(key string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Errorf("Error encoding value (key: %s): %v", key, err)
		return false
	}
	if err := s.backend.Write(key, data); err != nil {
		s.log.Errorf("Error writing to storage (key: %s): %v", key, err)
		return false
	}
	return true
}

// Remove deletes key. Removing a missing key succeeds.
func (s *Store) Remove(key string) bool {
	if err := s.backend.Delete(key); err != nil {
		s.log.Errorf("Error removing from storage (key: %s): %v", key, err)
		return false
	}
	return true
}

// Clear removes every application key.
func (s *Store) Clear() bool {
	ok := true
	for _, key := range KnownKeys() {
		if !s.Remove(key) {
			ok = false
		}
	}
	return ok
}

// Export returns every present application key as one JSON object.
func (s *Store) Export() ([]byte, error) {
	out := make(map[string]json.RawMessage)
	for _, key := range KnownKeys() {
		raw, found, err := s.backend.Read(key)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", key, err)
		}
		if found {
			out[key] = json.RawMessage(raw)
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

// Import writes every key of a JSON object produced by Export.
func (s *Store) Import(data []byte) error {
	var in map[string]json.RawMessage
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	for key, raw := range in {
		if err := s.backend.Write(key, raw); err != nil {
			return fmt.Errorf("import %s: %w", key, err)
		}
	}
	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// expandTilde expands the tilde in a path to the user's home directory.
func expandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}
