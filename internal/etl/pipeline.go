// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package etl composes the Producer, Enricher, Merger, Transformer, and
Loader stages into three pipeline drivers — one each for the movies,
genres, and persons indices.

Stages are plain method calls within one Tick, not goroutines or
channels: a pipeline's own ordering guarantee (producer order implies
loader order) is satisfied by a synchronous call chain, and the only
place the design needs real concurrency is between the three
independent pipelines, which is the caller's (cmd/movies-etl) concern
via errgroup.
*/
package etl

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/movies-etl/internal/cursor"
)

// runLoop calls tick repeatedly, sleeping syncDelay between calls,
// until ctx is cancelled or tick returns a non-nil error.
func runLoop(ctx context.Context, syncDelay time.Duration, logger *slog.Logger, tick func(context.Context) error) error {
	for {
		if err := tick(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(syncDelay):
		}
	}
}

// logDriverCursor reads key from store purely for observability — the
// driver cursor is never used to gate a query.
func logDriverCursor(ctx context.Context, store cursor.Store, key string, logger *slog.Logger) {
	value, ok := store.Get(ctx, key)
	if !ok {
		value = "<absent>"
	}
	logger.Debug("tick_starting", slog.String("driver_cursor_key", key), slog.String("driver_cursor", value))
}
