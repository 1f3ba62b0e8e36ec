// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package etl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/movies-etl/internal/content"
	"github.com/taibuivan/movies-etl/internal/cursor"
	"github.com/taibuivan/movies-etl/internal/platform/apperr"
)

// MovieMerger resolves film-work IDs into denormalised join rows. It is
// satisfied by [*content.Reader].MergeMovies.
type MovieMerger interface {
	MergeMovies(ctx context.Context, filmWorkIDs []string) ([]content.MovieJoinRow, error)
}

// MoviePipeline reindexes the movies index from changes to film_work,
// genre, or person: three producers feed a single accumulator before
// one merge/transform/load per tick.
type MoviePipeline struct {
	driverKey string

	filmWorkProducer *Producer
	genreProducer    *Producer
	personProducer   *Producer

	genreEnricher  *Enricher
	personEnricher *Enricher

	merger      MovieMerger
	loader      *Loader
	cursorStore cursor.Store
	clock       Clock
	syncDelay   time.Duration
	logger      *slog.Logger
}

// NewMoviePipeline wires a MoviePipeline from its stages.
func NewMoviePipeline(
	filmWorkProducer, genreProducer, personProducer *Producer,
	genreEnricher, personEnricher *Enricher,
	merger MovieMerger, loader *Loader,
	store cursor.Store, clock Clock, syncDelay time.Duration, logger *slog.Logger,
) *MoviePipeline {
	return &MoviePipeline{
		driverKey:        "movies_last_updated",
		filmWorkProducer: filmWorkProducer,
		genreProducer:    genreProducer,
		personProducer:   personProducer,
		genreEnricher:    genreEnricher,
		personEnricher:   personEnricher,
		merger:           merger,
		loader:           loader,
		cursorStore:      store,
		clock:            clock,
		syncDelay:        syncDelay,
		logger:           logger,
	}
}

// Tick fires the film_work, genre, and person producers in sequence,
// accumulating every film-work ID their batches surface (directly for
// film_work, via the corresponding enricher for genre and person), then
// performs exactly one merge/transform/load for the tick's union.
func (p *MoviePipeline) Tick(ctx context.Context) error {
	logDriverCursor(ctx, p.cursorStore, p.driverKey, p.logger)

	acc := &movieAccumulator{}

	if err := p.filmWorkProducer.Run(ctx, func(ids []string) error {
		acc.addFilmWork(ids)
		return nil
	}); err != nil {
		return err
	}

	if err := p.genreProducer.Run(ctx, func(ids []string) error {
		return p.genreEnricher.Resolve(ctx, ids, func(filmWorkIDs []string) error {
			acc.addGenre(filmWorkIDs)
			return nil
		})
	}); err != nil {
		return err
	}

	if err := p.personProducer.Run(ctx, func(ids []string) error {
		return p.personEnricher.Resolve(ctx, ids, func(filmWorkIDs []string) error {
			acc.addPerson(filmWorkIDs)
			return nil
		})
	}); err != nil {
		return err
	}

	union := acc.union()
	if len(union) > 0 {
		rows, err := p.merger.MergeMovies(ctx, union)
		if err != nil {
			return err
		}
		if err := p.loader.LoadMovies(ctx, TransformMovies(rows)); err != nil {
			return err
		}
	}

	if err := p.cursorStore.Set(ctx, p.driverKey, p.clock.Now().Format(time.RFC3339)); err != nil {
		return apperr.FatalErr("pipeline:movies", fmt.Errorf("movie pipeline: persist driver cursor: %w", err))
	}
	return nil
}

// Run loops Tick, sleeping syncDelay between ticks, until ctx is done or
// a tick fails.
func (p *MoviePipeline) Run(ctx context.Context) error {
	return runLoop(ctx, p.syncDelay, p.logger, p.Tick)
}
