// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"

	"github.com/taibuivan/movies-etl/internal/platform/dberr"
	"github.com/taibuivan/movies-etl/pkg/slice"
)

// PersonCredit is one {id, full_name} pair, aggregated by Postgres as
// ARRAY[p.id::text, p.full_name] and decoded back into a pair here.
type PersonCredit struct {
	ID       string
	FullName string
}

// MovieJoinRow is one denormalised film, as produced by movieMergeQuery:
// scalar film_work columns plus its genre names and role-partitioned
// person credits, all pre-aggregated in SQL.
type MovieJoinRow struct {
	ID           string
	Title        string
	Description  *string
	Rating       *float64
	Type         string
	CreationDate *string

	GenreNames []string
	Actors     [][]string
	Writers    [][]string
	Directors  [][]string
}

// personCredits decodes a [][]string of [id, full_name] pairs into
// [PersonCredit] values, dropping any malformed pair rather than failing
// the whole row — a single bad join row must not abort the batch.
func personCredits(pairs [][]string) []PersonCredit {
	valid := slice.Filter(pairs, func(p []string) bool { return len(p) == 2 })
	out := slice.Map(valid, func(p []string) PersonCredit { return PersonCredit{ID: p[0], FullName: p[1]} })
	if out == nil {
		out = []PersonCredit{}
	}
	return out
}

// ActorCredits returns this row's actor credits, decoded.
func (m MovieJoinRow) ActorCredits() []PersonCredit { return personCredits(m.Actors) }

// WriterCredits returns this row's writer credits, decoded.
func (m MovieJoinRow) WriterCredits() []PersonCredit { return personCredits(m.Writers) }

// DirectorCredits returns this row's director credits, decoded.
func (m MovieJoinRow) DirectorCredits() []PersonCredit { return personCredits(m.Directors) }

// MergeMovies resolves filmWorkIDs into denormalised [MovieJoinRow]
// values in one round trip, using Postgres-side GROUP BY/array_agg
// rather than N+1 follow-up queries.
func (r *Reader) MergeMovies(ctx context.Context, filmWorkIDs []string) ([]MovieJoinRow, error) {
	if len(filmWorkIDs) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, movieMergeQuery, filmWorkIDs)
	if err != nil {
		return nil, dberr.Classify("merger:movie", err)
	}
	defer rows.Close()

	var out []MovieJoinRow
	for rows.Next() {
		var row MovieJoinRow
		if err := rows.Scan(
			&row.ID, &row.Title, &row.Description, &row.Rating, &row.Type, &row.CreationDate,
			&row.GenreNames, &row.Actors, &row.Writers, &row.Directors,
		); err != nil {
			return nil, dberr.Classify("merger:movie", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Classify("merger:movie", err)
	}
	return out, nil
}

// GenreFilmRow is one (genre, associated film-work) row, as produced by
// genreMergeQuery. FilmWorkID is nil when the genre has no film-work
// associations.
type GenreFilmRow struct {
	GenreID          string
	GenreName        string
	GenreDescription *string
	FilmWorkID       *string
}

// MergeGenreFilms resolves genreIDs into their (genre, film-work) rows.
func (r *Reader) MergeGenreFilms(ctx context.Context, genreIDs []string) ([]GenreFilmRow, error) {
	if len(genreIDs) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, genreMergeQuery, genreIDs)
	if err != nil {
		return nil, dberr.Classify("merger:genre", err)
	}
	defer rows.Close()

	var out []GenreFilmRow
	for rows.Next() {
		var row GenreFilmRow
		if err := rows.Scan(&row.GenreID, &row.GenreName, &row.GenreDescription, &row.FilmWorkID); err != nil {
			return nil, dberr.Classify("merger:genre", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Classify("merger:genre", err)
	}
	return out, nil
}

// PersonFilmRow is one (person, associated film-work, role) row, as
// produced by personMergeQuery. FilmWorkID/Role are nil when the person
// has no film-work credits.
type PersonFilmRow struct {
	PersonID   string
	FullName   string
	FilmWorkID *string
	Role       *string
}

// MergePersonFilms resolves personIDs into their (person, film-work,
// role) rows.
func (r *Reader) MergePersonFilms(ctx context.Context, personIDs []string) ([]PersonFilmRow, error) {
	if len(personIDs) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, personMergeQuery, personIDs)
	if err != nil {
		return nil, dberr.Classify("merger:person", err)
	}
	defer rows.Close()

	var out []PersonFilmRow
	for rows.Next() {
		var row PersonFilmRow
		if err := rows.Scan(&row.PersonID, &row.FullName, &row.FilmWorkID, &row.Role); err != nil {
			return nil, dberr.Classify("merger:person", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Classify("merger:person", err)
	}
	return out, nil
}
