package blobstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	s := NewFile(path)

	_, ok, err := s.Get("k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set("k", `{"json":"blob"}`))
	require.NoError(t, s.Set("other", "plain"))

	// a fresh instance reads what the first wrote
	s2 := NewFile(path)
	v, ok, err := s2.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"json":"blob"}`, v)

	require.NoError(t, s2.Remove("k"))
	_, ok, _ = s2.Get("k")
	require.False(t, ok)
	v, ok, _ = s2.Get("other")
	require.True(t, ok)
	require.Equal(t, "plain", v)
}

func TestFile_Clear_RemovesBackingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s := NewFile(path)

	require.NoError(t, s.Clear()) // nothing to clear is fine

	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Clear())
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestFile_CorruptFileSurfacesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	s := NewFile(path)
	_, _, err := s.Get("k")
	require.Error(t, err)
	require.Error(t, s.Set("k", "v"))
}
