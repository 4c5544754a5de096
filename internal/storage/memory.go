package storage

import "sync"

// MemoryBackend is a process-local backend. Setting Unavailable makes every
// operation fail, which mimics a blocked or full browser-style store.
type MemoryBackend struct {
	mu          sync.Mutex
	data        map[string][]byte
	Unavailable bool
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

// NewMemory returns a Store over a fresh MemoryBackend.
func NewMemory() *Store {
	return New(NewMemoryBackend())
}

func (m *MemoryBackend) Read(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Unavailable {
		return nil, false, ErrUnavailable
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryBackend) Write(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Unavailable {
		return ErrUnavailable
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Unavailable {
		return ErrUnavailable
	}
	delete(m.data, key)
	return nil
}

func (m *MemoryBackend) Close() error { return nil }

// SetUnavailable toggles failure injection.
func (m *MemoryBackend) SetUnavailable(v bool) {
	m.mu.Lock()
	m.Unavailable = v
	m.mu.Unlock()
}
