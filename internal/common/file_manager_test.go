package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileManager_WriteFileAtomic(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	require.NoError(t, fm.WriteFileAtomic(path, []byte("first"), 0644))
	require.NoError(t, fm.WriteFileAtomic(path, []byte("second"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestFileManager_ReadFile(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	path := filepath.Join(t.TempDir(), "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0644))

	data, err := fm.ReadFile(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(data))

	_, err = fm.ReadFile(path, 5)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = fm.ReadFile(filepath.Join(t.TempDir(), "missing"), 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileManager_EnsureDirectory(t *testing.T) {
	fm := NewFileManager(zerolog.Nop())
	dir := t.TempDir()

	require.NoError(t, fm.EnsureDirectory(filepath.Join(dir, "a", "b"), 0755))
	assert.True(t, fm.FileExists(filepath.Join(dir, "a", "b")))

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	assert.Error(t, fm.EnsureDirectory(file, 0755))
}
