// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ContentGenreFilmWorkTable represents the 'content.genre_film_work'
// many-to-many junction table.
type ContentGenreFilmWorkTable struct {
	Table      string
	FilmWorkID string
	GenreID    string
}

// ContentGenreFilmWork is the schema definition for content.genre_film_work.
var ContentGenreFilmWork = ContentGenreFilmWorkTable{
	Table:      "content.genre_film_work",
	FilmWorkID: "film_work_id",
	GenreID:    "genre_id",
}

func (t ContentGenreFilmWorkTable) Columns() []string {
	return []string{t.FilmWorkID, t.GenreID}
}
