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

// PersonMerger resolves person IDs into (person, film-work, role) join
// rows. It is satisfied by [*content.Reader].MergePersonFilms.
type PersonMerger interface {
	MergePersonFilms(ctx context.Context, personIDs []string) ([]content.PersonFilmRow, error)
}

// PersonPipeline reindexes the persons index from content.person changes.
type PersonPipeline struct {
	driverKey   string
	producer    *Producer
	merger      PersonMerger
	loader      *Loader
	cursorStore cursor.Store
	clock       Clock
	syncDelay   time.Duration
	logger      *slog.Logger
}

// NewPersonPipeline wires a PersonPipeline from its stages.
func NewPersonPipeline(producer *Producer, merger PersonMerger, loader *Loader, store cursor.Store, clock Clock, syncDelay time.Duration, logger *slog.Logger) *PersonPipeline {
	return &PersonPipeline{
		driverKey:   "persons_last_updated",
		producer:    producer,
		merger:      merger,
		loader:      loader,
		cursorStore: store,
		clock:       clock,
		syncDelay:   syncDelay,
		logger:      logger,
	}
}

// Tick fires the person producer once; each batch of changed person IDs
// is merged and loaded directly.
func (p *PersonPipeline) Tick(ctx context.Context) error {
	logDriverCursor(ctx, p.cursorStore, p.driverKey, p.logger)

	err := p.producer.Run(ctx, func(personIDs []string) error {
		rows, err := p.merger.MergePersonFilms(ctx, personIDs)
		if err != nil {
			return err
		}
		return p.loader.LoadPersons(ctx, TransformPersons(rows))
	})
	if err != nil {
		return err
	}

	if err := p.cursorStore.Set(ctx, p.driverKey, p.clock.Now().Format(time.RFC3339)); err != nil {
		return apperr.FatalErr("pipeline:persons", fmt.Errorf("person pipeline: persist driver cursor: %w", err))
	}
	return nil
}

// Run loops Tick, sleeping syncDelay between ticks, until ctx is done or
// a tick fails.
func (p *PersonPipeline) Run(ctx context.Context) error {
	return runLoop(ctx, p.syncDelay, p.logger, p.Tick)
}
