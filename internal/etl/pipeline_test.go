// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package etl_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/movies-etl/internal/content"
	"github.com/taibuivan/movies-etl/internal/etl"
	"github.com/taibuivan/movies-etl/internal/searchsink"
)

// fixedClock lets tests assert exactly what gets persisted as a driver
// cursor.
type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

// fakeSink records every BulkUpsert call it receives.
type fakeSink struct {
	calls []struct {
		index string
		docs  []searchsink.Doc
	}
}

func (s *fakeSink) BulkUpsert(_ context.Context, index string, docs []searchsink.Doc) error {
	s.calls = append(s.calls, struct {
		index string
		docs  []searchsink.Doc
	}{index: index, docs: docs})
	return nil
}

// fakeGenreMerger returns one fixed row per genre ID it's asked about.
type fakeGenreMerger struct{ callCount int }

func (m *fakeGenreMerger) MergeGenreFilms(_ context.Context, genreIDs []string) ([]content.GenreFilmRow, error) {
	m.callCount++
	fw := "fw1"
	rows := make([]content.GenreFilmRow, 0, len(genreIDs))
	for _, id := range genreIDs {
		rows = append(rows, content.GenreFilmRow{GenreID: id, GenreName: "Action", FilmWorkID: &fw})
	}
	return rows, nil
}

func TestGenrePipeline_Tick_LoadsAndAdvancesDriverCursor(t *testing.T) {
	scanned := false
	scan := func(_ context.Context, _ string, _ int, fn func([]content.ChangedRow) error) error {
		if scanned {
			return nil
		}
		scanned = true
		return fn([]content.ChangedRow{{ID: "g1", Modified: "2024-01-01T00:00:00Z"}})
	}

	store := newMemStore()
	merger := &fakeGenreMerger{}
	sink := &fakeSink{}
	clock := fixedClock{at: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

	producer := etl.NewProducer("genre", "1700-01-01T00:00:00Z", 100, scan, store, discardLogger())
	loader := etl.NewLoader(sink, "genres")
	pipeline := etl.NewGenrePipeline(producer, merger, loader, store, clock, time.Millisecond, discardLogger())

	require.NoError(t, pipeline.Tick(context.Background()))

	assert.Equal(t, 1, merger.callCount)
	require.Len(t, sink.calls, 1)
	assert.Equal(t, "genres", sink.calls[0].index)
	require.Len(t, sink.calls[0].docs, 1)

	driverCursor, ok := store.Get(context.Background(), "genres_last_updated")
	require.True(t, ok)
	assert.Equal(t, clock.at.Format(time.RFC3339), driverCursor)
}

func TestGenrePipeline_Tick_SecondTickOverUnchangedSourceIsANoop(t *testing.T) {
	calls := 0
	scan := func(_ context.Context, _ string, _ int, fn func([]content.ChangedRow) error) error {
		calls++
		if calls > 1 {
			return nil
		}
		return fn([]content.ChangedRow{{ID: "g1", Modified: "2024-01-01T00:00:00Z"}})
	}

	store := newMemStore()
	merger := &fakeGenreMerger{}
	sink := &fakeSink{}
	clock := fixedClock{at: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

	producer := etl.NewProducer("genre", "1700-01-01T00:00:00Z", 100, scan, store, discardLogger())
	loader := etl.NewLoader(sink, "genres")
	pipeline := etl.NewGenrePipeline(producer, merger, loader, store, clock, time.Millisecond, discardLogger())

	require.NoError(t, pipeline.Tick(context.Background()))
	require.NoError(t, pipeline.Tick(context.Background()))

	assert.Equal(t, 1, merger.callCount, "second tick must not re-merge unchanged rows")
	assert.Len(t, sink.calls, 1, "second tick must not re-load unchanged rows")
}

func TestMoviePipeline_Tick_UnionsAllThreeProducersIntoOneMerge(t *testing.T) {
	filmWorkScan := func(_ context.Context, _ string, _ int, fn func([]content.ChangedRow) error) error {
		return fn([]content.ChangedRow{{ID: "fw1", Modified: "2024-01-01T00:00:00Z"}})
	}
	genreScan := func(_ context.Context, _ string, _ int, fn func([]content.ChangedRow) error) error {
		return fn([]content.ChangedRow{{ID: "g1", Modified: "2024-01-01T00:00:00Z"}})
	}
	personScan := func(_ context.Context, _ string, _ int, fn func([]content.ChangedRow) error) error {
		return fn([]content.ChangedRow{{ID: "p1", Modified: "2024-01-01T00:00:00Z"}})
	}

	resolveGenre := func(_ context.Context, ids []string, _ int, fn func([]string) error) error {
		return fn([]string{"fw2"})
	}
	resolvePerson := func(_ context.Context, ids []string, _ int, fn func([]string) error) error {
		return fn([]string{"fw1", "fw3"})
	}

	store := newMemStore()
	sink := &fakeSink{}
	clock := fixedClock{at: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

	filmWorkProducer := etl.NewProducer("film_work", "1700-01-01T00:00:00Z", 100, filmWorkScan, store, discardLogger())
	genreProducer := etl.NewProducer("genre", "1700-01-01T00:00:00Z", 100, genreScan, store, discardLogger())
	personProducer := etl.NewProducer("person", "1700-01-01T00:00:00Z", 100, personScan, store, discardLogger())

	genreEnricher := etl.NewEnricher(resolveGenre, 100)
	personEnricher := etl.NewEnricher(resolvePerson, 100)

	var mergedIDs []string
	merger := movieMergerFunc(func(_ context.Context, filmWorkIDs []string) ([]content.MovieJoinRow, error) {
		mergedIDs = filmWorkIDs
		rows := make([]content.MovieJoinRow, 0, len(filmWorkIDs))
		for _, id := range filmWorkIDs {
			rows = append(rows, content.MovieJoinRow{ID: id})
		}
		return rows, nil
	})

	loader := etl.NewLoader(sink, "movies")
	pipeline := etl.NewMoviePipeline(
		filmWorkProducer, genreProducer, personProducer,
		genreEnricher, personEnricher,
		merger, loader, store, clock, time.Millisecond, discardLogger(),
	)

	require.NoError(t, pipeline.Tick(context.Background()))

	assert.ElementsMatch(t, []string{"fw1", "fw2", "fw3"}, mergedIDs)
	require.Len(t, sink.calls, 1)
	assert.Len(t, sink.calls[0].docs, 3)
}

type movieMergerFunc func(ctx context.Context, filmWorkIDs []string) ([]content.MovieJoinRow, error)

func (f movieMergerFunc) MergeMovies(ctx context.Context, filmWorkIDs []string) ([]content.MovieJoinRow, error) {
	return f(ctx, filmWorkIDs)
}
