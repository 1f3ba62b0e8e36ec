// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"fmt"

	"github.com/taibuivan/movies-etl/internal/platform/database/schema"
)

var filmWorkChangesQuery = fmt.Sprintf(
	`SELECT %s, %s FROM %s WHERE %s >= $1 ORDER BY %s ASC, %s ASC`,
	schema.ContentFilmWork.ID,
	schema.ContentFilmWork.Modified,
	schema.ContentFilmWork.Table,
	schema.ContentFilmWork.Modified,
	schema.ContentFilmWork.Modified,
	schema.ContentFilmWork.ID,
)

// movieMergeQuery denormalises a page of film_work IDs into one row per
// film, with person and genre associations pre-aggregated by Postgres
// via array_agg/FILTER, grouped by role.
var movieMergeQuery = fmt.Sprintf(`
SELECT
	fw.%s,
	fw.%s,
	fw.%s,
	fw.%s,
	fw.%s,
	fw.%s,
	COALESCE(ARRAY_AGG(DISTINCT g.%s) FILTER (WHERE g.%s IS NOT NULL), '{}') AS genre_names,
	COALESCE(ARRAY_AGG(DISTINCT ARRAY[p.%s::text, p.%s]) FILTER (WHERE pfw.%s = 'actor'), '{}') AS actors,
	COALESCE(ARRAY_AGG(DISTINCT ARRAY[p.%s::text, p.%s]) FILTER (WHERE pfw.%s = 'writer'), '{}') AS writers,
	COALESCE(ARRAY_AGG(DISTINCT ARRAY[p.%s::text, p.%s]) FILTER (WHERE pfw.%s = 'director'), '{}') AS directors
FROM %s fw
LEFT JOIN %s gfw ON gfw.%s = fw.%s
LEFT JOIN %s g ON g.%s = gfw.%s
LEFT JOIN %s pfw ON pfw.%s = fw.%s
LEFT JOIN %s p ON p.%s = pfw.%s
WHERE fw.%s = ANY($1)
GROUP BY fw.%s
`,
	schema.ContentFilmWork.ID,
	schema.ContentFilmWork.Title,
	schema.ContentFilmWork.Description,
	schema.ContentFilmWork.Rating,
	schema.ContentFilmWork.Type,
	schema.ContentFilmWork.CreationDate,

	schema.ContentGenre.Name, schema.ContentGenre.ID,

	schema.ContentPerson.ID, schema.ContentPerson.FullName, schema.ContentPersonFilmWork.Role,
	schema.ContentPerson.ID, schema.ContentPerson.FullName, schema.ContentPersonFilmWork.Role,
	schema.ContentPerson.ID, schema.ContentPerson.FullName, schema.ContentPersonFilmWork.Role,

	schema.ContentFilmWork.Table,
	schema.ContentGenreFilmWork.Table, schema.ContentGenreFilmWork.FilmWorkID, schema.ContentFilmWork.ID,
	schema.ContentGenre.Table, schema.ContentGenre.ID, schema.ContentGenreFilmWork.GenreID,
	schema.ContentPersonFilmWork.Table, schema.ContentPersonFilmWork.FilmWorkID, schema.ContentFilmWork.ID,
	schema.ContentPerson.Table, schema.ContentPerson.ID, schema.ContentPersonFilmWork.PersonID,
	schema.ContentFilmWork.ID,
	schema.ContentFilmWork.ID,
)

var genreFilmWorkIDsQuery = fmt.Sprintf(
	`SELECT DISTINCT %s FROM %s WHERE %s = ANY($1)`,
	schema.ContentGenreFilmWork.FilmWorkID,
	schema.ContentGenreFilmWork.Table,
	schema.ContentGenreFilmWork.GenreID,
)

var personFilmWorkIDsQuery = fmt.Sprintf(
	`SELECT DISTINCT %s FROM %s WHERE %s = ANY($1)`,
	schema.ContentPersonFilmWork.FilmWorkID,
	schema.ContentPersonFilmWork.Table,
	schema.ContentPersonFilmWork.PersonID,
)
