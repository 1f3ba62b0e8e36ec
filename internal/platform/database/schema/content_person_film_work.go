// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ContentPersonFilmWorkTable represents the 'content.person_film_work'
// many-to-many junction table. Unlike [ContentGenreFilmWorkTable] it
// carries an extra attribute, Role, distinguishing actor/writer/director.
type ContentPersonFilmWorkTable struct {
	Table      string
	FilmWorkID string
	PersonID   string
	Role       string
}

// ContentPersonFilmWork is the schema definition for content.person_film_work.
var ContentPersonFilmWork = ContentPersonFilmWorkTable{
	Table:      "content.person_film_work",
	FilmWorkID: "film_work_id",
	PersonID:   "person_id",
	Role:       "role",
}

func (t ContentPersonFilmWorkTable) Columns() []string {
	return []string{t.FilmWorkID, t.PersonID, t.Role}
}

// Role values for content.person_film_work.role.
const (
	RoleActor    = "actor"
	RoleWriter   = "writer"
	RoleDirector = "director"
)
