// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"fmt"

	"github.com/taibuivan/movies-etl/internal/platform/database/schema"
)

var personChangesQuery = fmt.Sprintf(
	`SELECT %s, %s FROM %s WHERE %s >= $1 ORDER BY %s ASC, %s ASC`,
	schema.ContentPerson.ID,
	schema.ContentPerson.Modified,
	schema.ContentPerson.Table,
	schema.ContentPerson.Modified,
	schema.ContentPerson.Modified,
	schema.ContentPerson.ID,
)

// personMergeQuery yields one (person, film_work, role) row per
// association, left joined so a person with no film-work credits still
// produces a single row with null film_work_id/role.
var personMergeQuery = fmt.Sprintf(
	`SELECT p.%s, p.%s, pfw.%s, pfw.%s
FROM %s p
LEFT JOIN %s pfw ON pfw.%s = p.%s
WHERE p.%s = ANY($1)`,
	schema.ContentPerson.ID, schema.ContentPerson.FullName,
	schema.ContentPersonFilmWork.FilmWorkID, schema.ContentPersonFilmWork.Role,
	schema.ContentPerson.Table,
	schema.ContentPersonFilmWork.Table, schema.ContentPersonFilmWork.PersonID, schema.ContentPerson.ID,
	schema.ContentPerson.ID,
)
