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

// GenreMerger resolves genre IDs into (genre, film-work) join rows. It is
// satisfied by [*content.Reader].MergeGenreFilms.
type GenreMerger interface {
	MergeGenreFilms(ctx context.Context, genreIDs []string) ([]content.GenreFilmRow, error)
}

// GenrePipeline reindexes the genres index from content.genre changes.
type GenrePipeline struct {
	driverKey   string
	producer    *Producer
	merger      GenreMerger
	loader      *Loader
	cursorStore cursor.Store
	clock       Clock
	syncDelay   time.Duration
	logger      *slog.Logger
}

// NewGenrePipeline wires a GenrePipeline from its stages.
func NewGenrePipeline(producer *Producer, merger GenreMerger, loader *Loader, store cursor.Store, clock Clock, syncDelay time.Duration, logger *slog.Logger) *GenrePipeline {
	return &GenrePipeline{
		driverKey:   "genres_last_updated",
		producer:    producer,
		merger:      merger,
		loader:      loader,
		cursorStore: store,
		clock:       clock,
		syncDelay:   syncDelay,
		logger:      logger,
	}
}

// Tick fires the genre producer once; each batch of changed genre IDs is
// merged and loaded directly — the genre pipeline needs no enrichment,
// since its merger already takes genre IDs.
func (p *GenrePipeline) Tick(ctx context.Context) error {
	logDriverCursor(ctx, p.cursorStore, p.driverKey, p.logger)

	err := p.producer.Run(ctx, func(genreIDs []string) error {
		rows, err := p.merger.MergeGenreFilms(ctx, genreIDs)
		if err != nil {
			return err
		}
		return p.loader.LoadGenres(ctx, TransformGenres(rows))
	})
	if err != nil {
		return err
	}

	if err := p.cursorStore.Set(ctx, p.driverKey, p.clock.Now().Format(time.RFC3339)); err != nil {
		return apperr.FatalErr("pipeline:genres", fmt.Errorf("genre pipeline: persist driver cursor: %w", err))
	}
	return nil
}

// Run loops Tick, sleeping syncDelay between ticks, until ctx is done or
// a tick fails.
func (p *GenrePipeline) Run(ctx context.Context) error {
	return runLoop(ctx, p.syncDelay, p.logger, p.Tick)
}
