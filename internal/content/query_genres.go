// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"fmt"

	"github.com/taibuivan/movies-etl/internal/platform/database/schema"
)

var genreChangesQuery = fmt.Sprintf(
	`SELECT %s, %s FROM %s WHERE %s >= $1 ORDER BY %s ASC, %s ASC`,
	schema.ContentGenre.ID,
	schema.ContentGenre.Modified,
	schema.ContentGenre.Table,
	schema.ContentGenre.Modified,
	schema.ContentGenre.Modified,
	schema.ContentGenre.ID,
)

// genreMergeQuery yields one (genre, film_work) row per association, left
// joined so a genre with no film works still produces a single row with a
// null film_work_id.
var genreMergeQuery = fmt.Sprintf(
	`SELECT g.%s, g.%s, g.%s, gfw.%s
FROM %s g
LEFT JOIN %s gfw ON gfw.%s = g.%s
WHERE g.%s = ANY($1)`,
	schema.ContentGenre.ID, schema.ContentGenre.Name, schema.ContentGenre.Description,
	schema.ContentGenreFilmWork.FilmWorkID,
	schema.ContentGenre.Table,
	schema.ContentGenreFilmWork.Table, schema.ContentGenreFilmWork.GenreID, schema.ContentGenre.ID,
	schema.ContentGenre.ID,
)
