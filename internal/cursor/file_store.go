// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cursor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/taibuivan/movies-etl/internal/platform/apperr"
)

// FileStore is the default [Store] backing: a single JSON document on
// disk mapping stream key to cursor string.
type FileStore struct {
	path   string
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]string
}

// NewFileStore loads path into an in-memory cache.
//
// A missing file is not an error — it is treated as an empty map. A file
// that exists but cannot be parsed is a fatal error: the store must
// never guess at corrupted state.
func NewFileStore(path string, logger *slog.Logger) (*FileStore, error) {
	fs := &FileStore{path: path, logger: logger, cache: map[string]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("cursor_file_absent_starting_empty", slog.String("path", path))
			return fs, nil
		}
		return nil, apperr.FatalErr("cursor:load", fmt.Errorf("cursor: cannot read %s: %w", path, err))
	}

	if len(data) == 0 {
		return fs, nil
	}

	if err := json.Unmarshal(data, &fs.cache); err != nil {
		return nil, apperr.FatalErr("cursor:load", fmt.Errorf("cursor: malformed state file %s: %w", path, err))
	}

	logger.Info("cursor_file_loaded", slog.String("path", path), slog.Int("streams", len(fs.cache)))
	return fs, nil
}

// Get returns the cursor stored for key, or ok=false if absent.
func (s *FileStore) Get(_ context.Context, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.cache[key]
	return value, ok
}

// Snapshot returns a copy of the full key→value map.
func (s *FileStore) Snapshot(_ context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := make(map[string]string, len(s.cache))
	for k, v := range s.cache {
		snap[k] = v
	}
	return snap, nil
}

// Set atomically persists value for key via temp-file-then-rename: the
// new content is written to a sibling file and renamed over the target,
// which on any POSIX filesystem (and on the same volume) is atomic — a
// crash mid-write leaves the original file untouched rather than a
// half-written one.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]string, len(s.cache)+1)
	for k, v := range s.cache {
		next[k] = v
	}
	next[key] = value

	data, err := json.Marshal(next)
	if err != nil {
		return apperr.FatalErr("cursor:set", fmt.Errorf("cursor: marshal state: %w", err))
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".cursor-*.tmp")
	if err != nil {
		return apperr.FatalErr("cursor:set", fmt.Errorf("cursor: create temp file: %w", err))
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return apperr.FatalErr("cursor:set", fmt.Errorf("cursor: write temp file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return apperr.FatalErr("cursor:set", fmt.Errorf("cursor: fsync temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return apperr.FatalErr("cursor:set", fmt.Errorf("cursor: close temp file: %w", err))
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return apperr.FatalErr("cursor:set", fmt.Errorf("cursor: rename into place: %w", err))
	}

	s.cache = next
	s.logger.Debug("cursor_advanced", slog.String("key", key), slog.String("value", value))
	return nil
}
