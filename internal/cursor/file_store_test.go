// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cursor_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/movies-etl/internal/cursor"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func TestNewFileStore_MissingFileIsEmptyMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing_state.json")

	store, err := cursor.NewFileStore(path, discardLogger())
	require.NoError(t, err)

	snap, err := store.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap)
}

func TestNewFileStore_MalformedFileIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := cursor.NewFileStore(path, discardLogger())
	assert.Error(t, err)
}

func TestSet_PersistsAndIsReadableAfterRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	ctx := context.Background()

	store, err := cursor.NewFileStore(path, discardLogger())
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "film_work", "2024-01-01T00:00:00Z"))
	require.NoError(t, store.Set(ctx, "genre", "2024-02-01T00:00:00Z"))

	value, ok := store.Get(ctx, "film_work")
	require.True(t, ok)
	assert.Equal(t, "2024-01-01T00:00:00Z", value)

	reopened, err := cursor.NewFileStore(path, discardLogger())
	require.NoError(t, err)

	snap, err := reopened.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"film_work": "2024-01-01T00:00:00Z",
		"genre":     "2024-02-01T00:00:00Z",
	}, snap)
}

func TestGet_AbsentKeyReturnsFalse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store, err := cursor.NewFileStore(path, discardLogger())
	require.NoError(t, err)

	_, ok := store.Get(context.Background(), "person")
	assert.False(t, ok)
}

func TestSet_Monotonicity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	ctx := context.Background()

	store, err := cursor.NewFileStore(path, discardLogger())
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "film_work", "2024-01-01T00:00:00Z"))
	require.NoError(t, store.Set(ctx, "film_work", "2024-06-01T00:00:00Z"))

	value, ok := store.Get(ctx, "film_work")
	require.True(t, ok)
	assert.Equal(t, "2024-06-01T00:00:00Z", value)
}

func TestSet_NoLeftoverTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	ctx := context.Background()

	store, err := cursor.NewFileStore(path, discardLogger())
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "genre", "2024-01-01T00:00:00Z"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"state.json"}, names)
}

func TestSet_FileContainsValidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	ctx := context.Background()

	store, err := cursor.NewFileStore(path, discardLogger())
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "person", "2024-03-01T00:00:00Z"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "2024-03-01T00:00:00Z", decoded["person"])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
}
