package worldmap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGrid(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "world.map")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadGridWorld(t *testing.T) {
	// 3x3 world, 10 m cells, blocked band across the middle
	path := writeGrid(t, "10\n...\n###\n...\n")

	m, err := LoadGridWorld(path)
	require.NoError(t, err)

	w, h := m.Extent()
	assert.Equal(t, 30.0, w)
	assert.Equal(t, 30.0, h)

	assert.False(t, m.Query(5, 5).Blocked)   // bottom row (last line)
	assert.True(t, m.Query(5, 15).Blocked)   // middle band
	assert.False(t, m.Query(25, 25).Blocked) // top row
}

func TestGridWorld_OffGridIsBlocked(t *testing.T) {
	path := writeGrid(t, "10\n...\n")
	m, err := LoadGridWorld(path)
	require.NoError(t, err)

	assert.True(t, m.Query(-1, 5).Blocked)
	assert.True(t, m.Query(35, 5).Blocked)
	assert.True(t, m.Query(5, 15).Blocked)
}

func TestLoadGridWorld_BadHeader(t *testing.T) {
	path := writeGrid(t, "not-a-number\n...\n")
	_, err := LoadGridWorld(path)
	assert.Error(t, err)
}

func TestLoad_DispatchesByName(t *testing.T) {
	path := writeGrid(t, "10\n...\n")
	m, err := Load(path, 0, 0)
	require.NoError(t, err)
	_, ok := m.(*GridWorldMap)
	assert.True(t, ok)

	_, err = Load(filepath.Join(t.TempDir(), "missing.tiff"), 0, 0)
	assert.Error(t, err)
}

func TestEmptyMap(t *testing.T) {
	var m EmptyMap
	q := m.Query(1e9, -1e9)
	assert.False(t, q.Blocked)
	assert.Zero(t, q.Cost)
}
