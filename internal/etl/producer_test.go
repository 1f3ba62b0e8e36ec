// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package etl_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/movies-etl/internal/content"
	"github.com/taibuivan/movies-etl/internal/etl"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// memStore is a minimal in-memory [cursor.Store] fixture for pipeline
// and producer tests.
type memStore struct {
	values map[string]string
}

func newMemStore() *memStore { return &memStore{values: map[string]string{}} }

func (s *memStore) Get(_ context.Context, key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *memStore) Set(_ context.Context, key, value string) error {
	s.values[key] = value
	return nil
}

func (s *memStore) Snapshot(_ context.Context) (map[string]string, error) {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out, nil
}

func TestProducer_Run_AdvancesCursorPerBatch(t *testing.T) {
	pages := [][]content.ChangedRow{
		{{ID: "a", Modified: "2024-01-01T00:00:00Z"}, {ID: "b", Modified: "2024-01-02T00:00:00Z"}},
		{{ID: "c", Modified: "2024-01-03T00:00:00Z"}},
	}

	scan := func(_ context.Context, since string, _ int, fn func([]content.ChangedRow) error) error {
		assert.Equal(t, "1700-01-01T00:00:00Z", since)
		for _, page := range pages {
			if err := fn(page); err != nil {
				return err
			}
		}
		return nil
	}

	store := newMemStore()
	var seenBatches [][]string
	p := etl.NewProducer("film_work", "1700-01-01T00:00:00Z", 100, scan, store, discardLogger())

	err := p.Run(context.Background(), func(ids []string) error {
		seenBatches = append(seenBatches, ids)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, seenBatches)

	value, ok := store.Get(context.Background(), "film_work")
	require.True(t, ok)
	assert.Equal(t, "2024-01-03T00:00:00Z", value)
}

func TestProducer_Run_UsesDefaultCursorWhenAbsent(t *testing.T) {
	scan := func(_ context.Context, since string, _ int, fn func([]content.ChangedRow) error) error {
		assert.Equal(t, "1700-01-01T00:00:00Z", since)
		return nil
	}

	p := etl.NewProducer("genre", "1700-01-01T00:00:00Z", 100, scan, newMemStore(), discardLogger())
	require.NoError(t, p.Run(context.Background(), func(ids []string) error { return nil }))
}

func TestProducer_Run_SinkFailureStopsCursorAdvance(t *testing.T) {
	pages := [][]content.ChangedRow{
		{{ID: "a", Modified: "2024-01-01T00:00:00Z"}},
		{{ID: "b", Modified: "2024-01-02T00:00:00Z"}},
	}
	sinkErr := errors.New("sink exploded")

	scan := func(_ context.Context, _ string, _ int, fn func([]content.ChangedRow) error) error {
		for _, page := range pages {
			if err := fn(page); err != nil {
				return err
			}
		}
		return nil
	}

	store := newMemStore()
	callCount := 0
	p := etl.NewProducer("person", "1700-01-01T00:00:00Z", 100, scan, store, discardLogger())

	err := p.Run(context.Background(), func(ids []string) error {
		callCount++
		if callCount == 2 {
			return sinkErr
		}
		return nil
	})

	require.ErrorIs(t, err, sinkErr)

	value, ok := store.Get(context.Background(), "person")
	require.True(t, ok)
	assert.Equal(t, "2024-01-01T00:00:00Z", value, "cursor must reflect only the accepted batch")
}

func TestProducer_Run_PreExistingCursorIsUsed(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.Set(context.Background(), "film_work", "2023-05-01T00:00:00Z"))

	scan := func(_ context.Context, since string, _ int, fn func([]content.ChangedRow) error) error {
		assert.Equal(t, "2023-05-01T00:00:00Z", since)
		return nil
	}

	p := etl.NewProducer("film_work", "1700-01-01T00:00:00Z", 100, scan, store, discardLogger())
	require.NoError(t, p.Run(context.Background(), func(ids []string) error { return nil }))
}
