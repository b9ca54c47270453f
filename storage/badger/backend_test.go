package badger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackendInMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)

	assert.False(t, backend.IsClosed())
	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())
}

func TestOpenBackendCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "db")

	backend, err := OpenBackend(path, false)
	require.NoError(t, err)
	defer backend.Close()

	assert.DirExists(t, path)
}

func TestOpenBackendRejectsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := OpenBackend(file, false)
	assert.Error(t, err)
}

func TestGetSequenceMonotonic(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	seq, err := backend.GetSequence("test")
	require.NoError(t, err)
	defer seq.Release()

	prev, err := seq.Next()
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		next, err := seq.Next()
		require.NoError(t, err)
		assert.Greater(t, next, prev)
		prev = next
	}
}
