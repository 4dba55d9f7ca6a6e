package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingReturnsDefault(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), ".lawtext"))

	state, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), state)
	assert.Equal(t, -1, state.LastID)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".lawtext")
	s := NewStore(dir)

	want := State{LastID: 12, ShowCatalogue: false, ShowOutline: true, CatalogueWidth: 40, OutlineWidth: 28, Offset: 7}
	require.NoError(t, s.Save(want))
	assert.FileExists(t, filepath.Join(dir, FileName))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0644))

	state, err := s.Load()
	require.Error(t, err)
	assert.Equal(t, Default(), state)
}
