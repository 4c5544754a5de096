package history

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/spring-countdown/internal/storage"
)

const (
	// MaxHistory bounds the sent-comment log.
	MaxHistory = 100
	// MaxPresets bounds the user preset list.
	MaxPresets = 20
)

// Entry types.
const (
	TypeUser = "user"
	TypeAuto = "auto"
)

// Entry is one sent comment.
type Entry struct {
	Text string `json:"text"`
	Type string `json:"type"`
	// Timestamp is milliseconds since the Unix epoch.
	Timestamp int64 `json:"timestamp"`
}

// Time returns the entry timestamp as a time.Time.
func (e Entry) Time() time.Time { return time.UnixMilli(e.Timestamp) }

// Manager handles the sent-comment log and the user presets.
type Manager struct {
	store *storage.Store
	now   func() time.Time
	log   *logrus.Entry
}

// NewManager creates a Manager over store. now may be nil, in which case
// time.Now is used.
func NewManager(store *storage.Store, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	return &Manager{store: store, now: now, log: logrus.WithField("component", "history")}
}

// History returns the log, most recent first.
func (m *Manager) History() []Entry {
	return storage.GetOr(m.store, storage.KeyDanmakuHistory, []Entry{})
}

// Append records text at the head of the log, dropping the oldest entries
// beyond MaxHistory.
func (m *Manager) Append(text, typ string) bool {
	if typ == "" {
		typ = TypeUser
	}
	m.log.Debugf("Appending to history: type=%s, text=%q", typ, text)
	h := m.History()
	h = slices.Insert(h, 0, Entry{Text: text, Type: typ, Timestamp: m.now().UnixMilli()})
	if len(h) > MaxHistory {
		h = h[:MaxHistory]
	}
	return m.store.Set(storage.KeyDanmakuHistory, h)
}

// ClearHistory empties the log.
func (m *Manager) ClearHistory() bool {
	m.log.Debug("Clearing history")
	return m.store.Set(storage.KeyDanmakuHistory, []Entry{})
}

// Presets returns the user presets, newest first.
func (m *Manager) Presets() []string {
	return storage.GetOr(m.store, storage.KeyUserDanmaku, []string{})
}

// AddPreset stores text at the head of the preset list. Duplicates are
// rejected; when the list is full the oldest preset is dropped.
func (m *Manager) AddPreset(text string) bool {
	p := m.Presets()
	if slices.Contains(p, text) {
		return false
	}
	if len(p) >= MaxPresets {
		p = p[:MaxPresets-1]
	}
	p = slices.Insert(p, 0, text)
	return m.store.Set(storage.KeyUserDanmaku, p)
}

// RemovePreset deletes text from the preset list. It reports false when text
// is not a preset or the write fails.
func (m *Manager) RemovePreset(text string) bool {
	p := m.Presets()
	i := slices.Index(p, text)
	if i < 0 {
		return false
	}
	return m.store.Set(storage.KeyUserDanmaku, slices.Delete(p, i, i+1))
}

// ClearPresets empties the preset list.
func (m *Manager) ClearPresets() bool {
	m.log.Debug("Clearing presets")
	return m.store.Set(storage.KeyUserDanmaku, []string{})
}

// ViewHistory prints the log to w.
func (m *Manager) ViewHistory(w io.Writer) {
	h := m.History()
	if len(h) == 0 {
		fmt.Fprintln(w, "History is empty.")
		return
	}
	for _, e := range h {
		fmt.Fprintf(w, "%s  [%s]  %s\n", e.Time().Format(time.DateTime), e.Type, e.Text)
	}
}

// ViewPresets prints the presets to w.
func (m *Manager) ViewPresets(w io.Writer) {
	p := m.Presets()
	if len(p) == 0 {
		fmt.Fprintln(w, "No presets saved.")
		return
	}
	for i, text := range p {
		fmt.Fprintf(w, "%2d. %s\n", i+1, text)
	}
}
