package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// FileBackend keeps every key in a single JSON document on disk.
type FileBackend struct {
	Path string

	mu   sync.Mutex
	data map[string]json.RawMessage
}

// NewFileBackend creates a FileBackend and loads path if it exists. A corrupt
// file is logged and treated as empty; it is overwritten on the next write.
func NewFileBackend(path string) (*FileBackend, error) {
	expandedPath, err := expandTilde(path)
	if err != nil {
		return nil, err
	}

	f := &FileBackend{
		Path: expandedPath,
		data: make(map[string]json.RawMessage),
	}

	if err := f.Load(); err != nil {
		// If the file doesn't exist, we can ignore the error.
		if !os.IsNotExist(err) {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if !errors.As(err, &syntaxErr) && !errors.As(err, &typeErr) {
				return nil, err
			}
			logrus.Warnf("Corrupt storage file %s; starting empty: %v", f.Path, err)
			f.data = make(map[string]json.RawMessage)
		}
	}

	return f, nil
}

// NewOrExistingFileBackend returns a backend for an existing file, or creates
// the file with an empty document.
func NewOrExistingFileBackend(path string) (*FileBackend, error) {
	f, err := NewFileBackend(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(f.Path); os.IsNotExist(err) {
		if err := f.save(); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return f, nil
}

// Load reads the storage file from disk, replacing the in-memory document.
func (f *FileBackend) Load() error {
	logrus.Debug("Loading storage file from: ", f.Path)
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return err
	}
	data := make(map[string]json.RawMessage)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return err
		}
	}
	f.mu.Lock()
	f.data = data
	f.mu.Unlock()
	return nil
}

func (f *FileBackend) Read(key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (f *FileBackend) Write(key string, value []byte) error {
	f.mu.Lock()
	prev, had := f.data[key]
	f.data[key] = append(json.RawMessage(nil), value...)
	f.mu.Unlock()
	if err := f.save(); err != nil {
		f.mu.Lock()
		if had {
			f.data[key] = prev
		} else {
			delete(f.data, key)
		}
		f.mu.Unlock()
		return err
	}
	return nil
}

func (f *FileBackend) Delete(key string) error {
	f.mu.Lock()
	_, had := f.data[key]
	delete(f.data, key)
	f.mu.Unlock()
	if !had {
		return nil
	}
	return f.save()
}

func (f *FileBackend) Close() error { return nil }

// save writes the document to the file.
func (f *FileBackend) save() error {
	logrus.Debug("Saving storage file to: ", f.Path)
	// Ensure parent directory exists.
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return err
	}
	f.mu.Lock()
	data, err := json.MarshalIndent(f.data, "", "  ")
	f.mu.Unlock()
	if err != nil {
		return err
	}

	return os.WriteFile(f.Path, data, 0o600)
}
