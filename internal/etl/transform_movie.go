// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package etl

import (
	"strings"

	"github.com/taibuivan/movies-etl/internal/content"
	"github.com/taibuivan/movies-etl/internal/etl/model"
	"github.com/taibuivan/movies-etl/pkg/slice"
)

// TransformMovies folds Merger join rows into movies-index documents.
// Every collection field is a non-nil, deduplicated slice even when the
// source row has no credits.
func TransformMovies(rows []content.MovieJoinRow) []model.MovieDocument {
	docs := make([]model.MovieDocument, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, transformMovie(row))
	}
	return docs
}

func transformMovie(row content.MovieJoinRow) model.MovieDocument {
	genres := dedupGenreRefs(row.GenreNames)
	actors := dedupPersonRefs(row.ActorCredits())
	writers := dedupPersonRefs(row.WriterCredits())
	directors := dedupPersonRefs(row.DirectorCredits())

	return model.MovieDocument{
		ID:              row.ID,
		Title:           row.Title,
		Description:     row.Description,
		Rating:          row.Rating,
		Type:            row.Type,
		CreationDate:    row.CreationDate,
		Genres:          genres,
		Actors:          actors,
		Writers:         writers,
		Directors:       directors,
		ActorsNames:     personNames(actors),
		WritersNames:    personNames(writers),
		DirectorsNames:  personNames(directors),
	}
}

// dedupGenreRefs lowercases and deduplicates a film's genre names. A
// genre's ID isn't available at this join depth (movieMergeQuery only
// aggregates names), so the ref's ID mirrors its lowercased name — the
// genres index is the join target for resolving a genre name to its
// canonical ID.
func dedupGenreRefs(names []string) []model.GenreRef {
	lowered := make([]string, 0, len(names))
	for _, name := range names {
		lowered = append(lowered, strings.ToLower(name))
	}
	lowered = slice.DedupBy(lowered, func(s string) string { return s })

	refs := make([]model.GenreRef, 0, len(lowered))
	for _, name := range lowered {
		refs = append(refs, model.GenreRef{ID: name, Name: name})
	}
	return refs
}

func dedupPersonRefs(credits []content.PersonCredit) []model.PersonRef {
	deduped := slice.DedupBy(credits, func(c content.PersonCredit) string { return c.ID })

	refs := make([]model.PersonRef, 0, len(deduped))
	for _, c := range deduped {
		refs = append(refs, model.PersonRef{ID: c.ID, Name: strings.ToLower(c.FullName)})
	}
	return refs
}

// personNames derives a names-only list from its own role's ref slice.
// writers_names and directors_names are built the same way as
// actors_names — from their own slice, never copied from actors
// (DESIGN.md [[etl-transformer]]).
func personNames(refs []model.PersonRef) []string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}
	return names
}
