//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackend_Persistence(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "storage.json")

	s, err := Open(BackendJSON, path)
	require.NoError(t, err)

	// File is created eagerly.
	_, err = os.Stat(path)
	require.NoError(t, err)

	require.True(t, s.Set(KeyUserDanmaku, []string{"hello", "world"}))

	// Read raw file to ensure the key is stored as JSON.
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	require.Equal(t, []any{"hello", "world"}, raw[KeyUserDanmaku])

	// Re-open and ensure persistence.
	s2, err := Open(BackendJSON, path)
	require.NoError(t, err)
	got := GetOr(s2, KeyUserDanmaku, []string{})
	require.Equal(t, []string{"hello", "world"}, got)

	require.True(t, s2.Remove(KeyUserDanmaku))
	require.True(t, s2.Remove(KeyUserDanmaku), "removing a missing key succeeds")
	assert.Equal(t, []string{"fallback"}, GetOr(s2, KeyUserDanmaku, []string{"fallback"}))
}

func TestFileBackend_CorruptFileStartsEmpty(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := Open(BackendJSON, path)
	require.NoError(t, err)
	assert.Equal(t, 7, GetOr(s, KeySettings, 7))

	require.True(t, s.Set(KeySettings, 3))
	assert.Equal(t, 3, GetOr(s, KeySettings, 7))
}

func TestGetOr_CorruptValueFallsBack(t *testing.T) {
	b := NewMemoryBackend()
	s := New(b)
	require.NoError(t, b.Write(KeyDanmakuHistory, []byte(`"a string, not a list"`)))

	got := GetOr(s, KeyDanmakuHistory, []int{1})
	assert.Equal(t, []int{1}, got)
}

func TestStore_UnavailableBackend(t *testing.T) {
	b := NewMemoryBackend()
	s := New(b)
	b.SetUnavailable(true)

	assert.False(t, s.Set(KeySettings, map[string]any{"theme": "sakura"}))
	assert.False(t, s.Remove(KeySettings))
	assert.False(t, s.Clear())
	assert.Equal(t, "default", GetOr(s, KeySettings, "default"))

	_, err := s.Get(KeySettings, new(string))
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestSQLiteBackend_RoundTrip(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "storage.db")

	s, err := Open(BackendSQLite, path)
	require.NoError(t, err)
	require.True(t, s.Set(KeySettings, map[string]any{"soundVolume": 0.5}))
	require.True(t, s.Set(KeySettings, map[string]any{"soundVolume": 0.25}))
	require.NoError(t, s.Close())

	s2, err := Open(BackendSQLite, path)
	require.NoError(t, err)
	defer s2.Close()
	got := GetOr(s2, KeySettings, map[string]float64{})
	assert.InDelta(t, 0.25, got["soundVolume"], 1e-9)

	require.True(t, s2.Remove(KeySettings))
	found, err := s2.Get(KeySettings, new(map[string]float64))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("redis", filepath.Join(t.TempDir(), "x"))
	require.ErrorIs(t, err, ErrUnknownBackend)
}

func TestExportImport(t *testing.T) {
	src := NewMemory()
	require.True(t, src.Set(KeySettings, map[string]any{"theme": "ocean"}))
	require.True(t, src.Set(KeyUserDanmaku, []string{"hi"}))

	data, err := src.Export()
	require.NoError(t, err)

	dst := NewMemory()
	require.NoError(t, dst.Import(data))
	assert.Equal(t, []string{"hi"}, GetOr(dst, KeyUserDanmaku, []string(nil)))
	assert.Equal(t, map[string]string{"theme": "ocean"}, GetOr(dst, KeySettings, map[string]string(nil)))

	require.Error(t, dst.Import([]byte("nope")))

	require.True(t, dst.Clear())
	found, err := dst.Get(KeySettings, new(map[string]string))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandTilde("~/x/y.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "y.json"), got)

	got, err = expandTilde("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", got)
}
