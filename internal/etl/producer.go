// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package etl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/movies-etl/internal/content"
	"github.com/taibuivan/movies-etl/internal/cursor"
	"github.com/taibuivan/movies-etl/internal/platform/apperr"
)

// ScanFunc streams (id, modified) pages for a table, newest batch last,
// starting at since (an opaque cursor string). It is satisfied by
// [*content.Reader]'s StreamFilmWorkChanges/StreamGenreChanges/
// StreamPersonChanges methods; Producer depends on the func type rather
// than an interface so unit tests can supply a closure over an in-memory
// fixture without a fake Reader type.
type ScanFunc func(ctx context.Context, since string, batchLimit int, fn func([]content.ChangedRow) error) error

// Producer is the change-scan stage for one tracked table. One Producer
// exists per stream, a (pipeline, table) pair; it owns that stream's
// cursor key and advances it one page at a time.
type Producer struct {
	streamKey     string
	defaultCursor string
	batchLimit    int
	scan          ScanFunc
	cursorStore   cursor.Store
	logger        *slog.Logger
}

// NewProducer constructs a Producer for streamKey, reading pages via scan
// and tracking progress in store.
func NewProducer(streamKey, defaultCursor string, batchLimit int, scan ScanFunc, store cursor.Store, logger *slog.Logger) *Producer {
	return &Producer{
		streamKey:     streamKey,
		defaultCursor: defaultCursor,
		batchLimit:    batchLimit,
		scan:          scan,
		cursorStore:   store,
		logger:        logger,
	}
}

// Run reads this producer's cursor, streams changed IDs in pages, and
// forwards each page's IDs to sink. The cursor advances to a page's last
// row's modified value only after sink accepts that page — if sink fails
// partway through a run, pages already accepted keep their progress.
func (p *Producer) Run(ctx context.Context, sink func(ids []string) error) error {
	since, ok := p.cursorStore.Get(ctx, p.streamKey)
	if !ok {
		since = p.defaultCursor
	}

	return p.scan(ctx, since, p.batchLimit, func(rows []content.ChangedRow) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if len(rows) == 0 {
			return nil
		}

		ids := make([]string, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.ID)
		}

		if err := sink(ids); err != nil {
			return err
		}

		last := rows[len(rows)-1].Modified
		if err := p.cursorStore.Set(ctx, p.streamKey, last); err != nil {
			return apperr.FatalErr("producer:"+p.streamKey, fmt.Errorf("producer: persist cursor: %w", err))
		}
		p.logger.Debug("producer_advanced", slog.String("stream", p.streamKey), slog.Int("rows", len(rows)), slog.String("cursor", last))
		return nil
	})
}
