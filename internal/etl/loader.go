// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package etl

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/taibuivan/movies-etl/internal/etl/model"
	"github.com/taibuivan/movies-etl/internal/platform/apperr"
	"github.com/taibuivan/movies-etl/internal/searchsink"
)

// BulkUpserter is the Sink Writer surface the Loader depends on; it is
// satisfied by [*searchsink.Client].
type BulkUpserter interface {
	BulkUpsert(ctx context.Context, index string, docs []searchsink.Doc) error
}

// Loader is the final pipeline stage: it marshals Transformer output
// and hands it to the Sink Writer, one index per Loader instance.
type Loader struct {
	sink  BulkUpserter
	index string
}

// NewLoader constructs a Loader that upserts into index via sink.
func NewLoader(sink BulkUpserter, index string) *Loader {
	return &Loader{sink: sink, index: index}
}

// LoadMovies marshals docs and upserts them into the movies index.
func (l *Loader) LoadMovies(ctx context.Context, docs []model.MovieDocument) error {
	return bulkUpsert(ctx, l.sink, l.index, docs, func(d model.MovieDocument) string { return d.ID })
}

// LoadGenres marshals docs and upserts them into the genres index.
func (l *Loader) LoadGenres(ctx context.Context, docs []model.GenreDocument) error {
	return bulkUpsert(ctx, l.sink, l.index, docs, func(d model.GenreDocument) string { return d.ID })
}

// LoadPersons marshals docs and upserts them into the persons index.
func (l *Loader) LoadPersons(ctx context.Context, docs []model.PersonDocument) error {
	return bulkUpsert(ctx, l.sink, l.index, docs, func(d model.PersonDocument) string { return d.ID })
}

func bulkUpsert[T any](ctx context.Context, sink BulkUpserter, index string, docs []T, id func(T) string) error {
	if len(docs) == 0 {
		return nil
	}

	upserts := make([]searchsink.Doc, 0, len(docs))
	for _, d := range docs {
		source, err := json.Marshal(d)
		if err != nil {
			return apperr.FatalErr("loader:marshal", fmt.Errorf("loader: marshal document: %w", err))
		}
		upserts = append(upserts, searchsink.Doc{ID: id(d), Source: source})
	}

	return sink.BulkUpsert(ctx, index, upserts)
}
