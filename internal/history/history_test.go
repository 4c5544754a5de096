package history

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensigniasec/spring-countdown/internal/storage"
)

func fixedNow() func() time.Time {
	t := time.Date(2026, 2, 16, 23, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestAppend_BoundedMostRecentFirst(t *testing.T) {
	t.Parallel()

	m := NewManager(storage.NewMemory(), fixedNow())
	const extra = 7
	for i := range MaxHistory + extra {
		require.True(t, m.Append(fmt.Sprintf("msg-%d", i), TypeUser))
	}

	h := m.History()
	require.Len(t, h, MaxHistory)
	assert.Equal(t, fmt.Sprintf("msg-%d", MaxHistory+extra-1), h[0].Text)
	assert.Equal(t, fmt.Sprintf("msg-%d", extra), h[MaxHistory-1].Text)
	assert.Greater(t, h[0].Timestamp, h[1].Timestamp)
}

func TestAppend_DefaultsToUserType(t *testing.T) {
	t.Parallel()

	m := NewManager(storage.NewMemory(), nil)
	require.True(t, m.Append("hello", ""))
	require.True(t, m.Append("tick", TypeAuto))

	h := m.History()
	require.Len(t, h, 2)
	assert.Equal(t, TypeAuto, h[0].Type)
	assert.Equal(t, TypeUser, h[1].Type)
}

func TestAppend_PersistsAcrossManagers(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "storage.json")
	st, err := storage.Open(storage.BackendJSON, path)
	require.NoError(t, err)
	require.True(t, NewManager(st, nil).Append("persisted", TypeUser))

	st2, err := storage.Open(storage.BackendJSON, path)
	require.NoError(t, err)
	h := NewManager(st2, nil).History()
	require.Len(t, h, 1)
	assert.Equal(t, "persisted", h[0].Text)
}

func TestClearHistory(t *testing.T) {
	t.Parallel()

	m := NewManager(storage.NewMemory(), nil)
	require.True(t, m.Append("a", TypeUser))
	require.True(t, m.ClearHistory())
	assert.Empty(t, m.History())

	buf := &bytes.Buffer{}
	m.ViewHistory(buf)
	assert.Contains(t, buf.String(), "History is empty.")
}

func TestPresets_DedupAndCap(t *testing.T) {
	t.Parallel()

	m := NewManager(storage.NewMemory(), nil)
	require.True(t, m.AddPreset("first"))
	assert.False(t, m.AddPreset("first"), "duplicates are rejected")

	for i := range MaxPresets {
		require.True(t, m.AddPreset(fmt.Sprintf("p-%d", i)))
	}
	p := m.Presets()
	require.Len(t, p, MaxPresets)
	assert.Equal(t, fmt.Sprintf("p-%d", MaxPresets-1), p[0])
	assert.NotContains(t, p, "first", "oldest preset is dropped at the cap")
}

func TestPresets_RemoveAndClear(t *testing.T) {
	t.Parallel()

	m := NewManager(storage.NewMemory(), nil)
	require.True(t, m.AddPreset("a"))
	require.True(t, m.AddPreset("b"))

	assert.False(t, m.RemovePreset("missing"))
	require.True(t, m.RemovePreset("a"))
	assert.Equal(t, []string{"b"}, m.Presets())

	buf := &bytes.Buffer{}
	m.ViewPresets(buf)
	assert.Contains(t, buf.String(), " 1. b")

	require.True(t, m.ClearPresets())
	assert.Empty(t, m.Presets())
}

func TestHistory_UnavailableStoreFallsBack(t *testing.T) {
	t.Parallel()

	b := storage.NewMemoryBackend()
	m := NewManager(storage.New(b), nil)
	b.SetUnavailable(true)

	assert.Empty(t, m.History())
	assert.False(t, m.Append("x", TypeUser))
	assert.False(t, m.AddPreset("x"))
}
