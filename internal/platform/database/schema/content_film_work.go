// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ContentFilmWorkTable represents the 'content.film_work' table.
type ContentFilmWorkTable struct {
	Table        string
	ID           string
	Title        string
	Description  string
	CreationDate string
	Rating       string
	Type         string
	Modified     string
}

// ContentFilmWork is the schema definition for content.film_work.
var ContentFilmWork = ContentFilmWorkTable{
	Table:        "content.film_work",
	ID:           "id",
	Title:        "title",
	Description:  "description",
	CreationDate: "creation_date",
	Rating:       "rating",
	Type:         "type",
	Modified:     "modified",
}

func (t ContentFilmWorkTable) Columns() []string {
	return []string{t.ID, t.Title, t.Description, t.CreationDate, t.Rating, t.Type, t.Modified}
}
