// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ContentPersonTable represents the 'content.person' table.
type ContentPersonTable struct {
	Table     string
	ID        string
	FullName  string
	BirthDate string
	Modified  string
}

// ContentPerson is the schema definition for content.person.
var ContentPerson = ContentPersonTable{
	Table:     "content.person",
	ID:        "id",
	FullName:  "full_name",
	BirthDate: "birth_date",
	Modified:  "modified",
}

func (t ContentPersonTable) Columns() []string {
	return []string{t.ID, t.FullName, t.BirthDate, t.Modified}
}
