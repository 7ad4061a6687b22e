package datastore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aleister1102/seatwatch/internal/config"
	"github.com/aleister1102/seatwatch/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStateStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewSQLiteStateStore(filepath.Join(t.TempDir(), "db", "state.db"), zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	empty, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	require.NoError(t, store.Save(ctx, sampleSnapshot()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot().Records(), loaded.Records())
}

func TestSQLiteStateStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := NewSQLiteStateStore(path, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, sampleSnapshot()))

	smaller := models.NewSnapshot()
	smaller.Set(models.NewCourseRecord("ABC123", 1))
	require.NoError(t, store.Save(ctx, smaller))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStateStore(path, zerolog.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, smaller.Records(), loaded.Records())
}

func TestSQLiteStateStore_UnreadableFileStartsFresh(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")
	garbage := []byte(strings.Repeat("this is not a sqlite database\n", 20))
	require.NoError(t, os.WriteFile(path, garbage, 0644))

	store, err := NewSQLiteStateStore(path, zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	snapshot, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, snapshot.IsEmpty())

	require.NoError(t, store.Save(ctx, sampleSnapshot()))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot().Records(), loaded.Records())

	moved, err := os.ReadFile(path + corruptSuffix)
	require.NoError(t, err)
	assert.Equal(t, garbage, moved)
}

func TestSQLiteStateStore_RequiresPath(t *testing.T) {
	_, err := NewSQLiteStateStore("", zerolog.Nop())
	assert.Error(t, err)
}

func TestNewStateStore(t *testing.T) {
	dir := t.TempDir()

	jsonStore, err := NewStateStore(config.StorageConfig{StatePath: filepath.Join(dir, "state.json")}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &JSONStateStore{}, jsonStore)
	assert.Equal(t, filepath.Join(dir, "state.json"), jsonStore.Location())

	sqliteStore, err := NewStateStore(config.StorageConfig{Backend: "SQLite", SQLitePath: filepath.Join(dir, "state.db")}, zerolog.Nop())
	require.NoError(t, err)
	defer sqliteStore.Close()
	assert.IsType(t, &SQLiteStateStore{}, sqliteStore)

	_, err = NewStateStore(config.StorageConfig{Backend: "redis"}, zerolog.Nop())
	assert.Error(t, err)
}
