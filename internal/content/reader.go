// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package content implements the Source Reader and Merger stages against
the relational content store.

Schema column/table names come from [schema] constants interpolated into
hand-written SQL via fmt.Sprintf, rather than an ORM or query builder,
keeping full control over the exact joins and array aggregations the
Merger stage requires.

Reads stream from the wire via pgx's row iterator — a query is never
drained into a slice before batching starts, so the Source Reader never
materialises an entire result set in memory.
*/
package content

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/movies-etl/internal/platform/dberr"
)

// ChangedRow is one (id, modified) pair from a producer's change scan.
type ChangedRow struct {
	ID       string
	Modified string
}

// Reader executes parametrised SQL against the content store on behalf
// of the Producer, Enricher, and Merger stages.
type Reader struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewReader constructs a Reader bound to pool.
func NewReader(pool *pgxpool.Pool, logger *slog.Logger) *Reader {
	return &Reader{pool: pool, logger: logger}
}

// streamChangedIDs executes query (expected to return id, modified
// columns ordered by modified ascending) and calls fn once per
// batchLimit-sized page, plus once more for any final partial page.
// fn is never called with an empty batch; the scan returning without
// a further call is the caller's (Producer's) end-of-run signal.
func (r *Reader) streamChangedIDs(ctx context.Context, stage, query, since string, batchLimit int, fn func([]ChangedRow) error) error {
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return dberr.Classify(stage, err)
	}
	defer rows.Close()

	batch := make([]ChangedRow, 0, batchLimit)
	for rows.Next() {
		var row ChangedRow
		if err := rows.Scan(&row.ID, &row.Modified); err != nil {
			return dberr.Classify(stage, err)
		}
		if row.ID == "" {
			// Malformed source row: skip, don't abort the batch.
			r.logger.Warn("skipping_row_with_empty_id", slog.String("stage", stage))
			continue
		}

		batch = append(batch, row)
		if len(batch) == batchLimit {
			if err := fn(batch); err != nil {
				return err
			}
			batch = make([]ChangedRow, 0, batchLimit)
		}
	}
	if err := rows.Err(); err != nil {
		return dberr.Classify(stage, err)
	}

	if len(batch) > 0 {
		if err := fn(batch); err != nil {
			return err
		}
	}

	return nil
}

// StreamFilmWorkChanges scans content.film_work for rows with
// modified >= since, in ascending order, yielding batches of at most
// batchLimit rows.
func (r *Reader) StreamFilmWorkChanges(ctx context.Context, since string, batchLimit int, fn func([]ChangedRow) error) error {
	return r.streamChangedIDs(ctx, "source_reader:film_work", filmWorkChangesQuery, since, batchLimit, fn)
}

// StreamGenreChanges scans content.genre for rows with modified >=
// since, in ascending order, yielding batches of at most batchLimit rows.
func (r *Reader) StreamGenreChanges(ctx context.Context, since string, batchLimit int, fn func([]ChangedRow) error) error {
	return r.streamChangedIDs(ctx, "source_reader:genre", genreChangesQuery, since, batchLimit, fn)
}

// StreamPersonChanges scans content.person for rows with modified >=
// since, in ascending order, yielding batches of at most batchLimit rows.
func (r *Reader) StreamPersonChanges(ctx context.Context, since string, batchLimit int, fn func([]ChangedRow) error) error {
	return r.streamChangedIDs(ctx, "source_reader:person", personChangesQuery, since, batchLimit, fn)
}

// streamDistinctIDs resolves one column's worth of IDs from query, given
// an IN-list of keys, in batches. An empty keys slice short-circuits
// without a round-trip.
func (r *Reader) streamDistinctIDs(ctx context.Context, stage, query string, keys []string, batchLimit int, fn func([]string) error) error {
	if len(keys) == 0 {
		return nil
	}

	rows, err := r.pool.Query(ctx, query, keys)
	if err != nil {
		return dberr.Classify(stage, err)
	}
	defer rows.Close()

	batch := make([]string, 0, batchLimit)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return dberr.Classify(stage, err)
		}
		batch = append(batch, id)
		if len(batch) == batchLimit {
			if err := fn(batch); err != nil {
				return err
			}
			batch = make([]string, 0, batchLimit)
		}
	}
	if err := rows.Err(); err != nil {
		return dberr.Classify(stage, err)
	}

	if len(batch) > 0 {
		if err := fn(batch); err != nil {
			return err
		}
	}
	return nil
}

// ResolveFilmWorkIDsViaGenre is the Enricher for the genre pipeline:
// given genre IDs, returns the distinct film_work IDs that reference
// them via content.genre_film_work.
func (r *Reader) ResolveFilmWorkIDsViaGenre(ctx context.Context, genreIDs []string, batchLimit int, fn func([]string) error) error {
	return r.streamDistinctIDs(ctx, "enricher:genre", genreFilmWorkIDsQuery, genreIDs, batchLimit, fn)
}

// ResolveFilmWorkIDsViaPerson is the Enricher for the person pipeline:
// given person IDs, returns the distinct film_work IDs that reference
// them via content.person_film_work.
func (r *Reader) ResolveFilmWorkIDsViaPerson(ctx context.Context, personIDs []string, batchLimit int, fn func([]string) error) error {
	return r.streamDistinctIDs(ctx, "enricher:person", personFilmWorkIDsQuery, personIDs, batchLimit, fn)
}
