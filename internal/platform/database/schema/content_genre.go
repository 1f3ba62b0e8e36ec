// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ContentGenreTable represents the 'content.genre' table.
type ContentGenreTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	Modified    string
}

// ContentGenre is the schema definition for content.genre.
var ContentGenre = ContentGenreTable{
	Table:       "content.genre",
	ID:          "id",
	Name:        "name",
	Description: "description",
	Modified:    "modified",
}

func (t ContentGenreTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.Modified}
}
