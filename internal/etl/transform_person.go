// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package etl

import (
	"strings"

	"github.com/taibuivan/movies-etl/internal/content"
	"github.com/taibuivan/movies-etl/internal/etl/model"
	"github.com/taibuivan/movies-etl/pkg/slice"
)

// TransformPersons folds the Merger's (person, film-work, role) rows
// into one persons-index document per distinct person, in first-seen
// order.
func TransformPersons(rows []content.PersonFilmRow) []model.PersonDocument {
	order := make([]string, 0)
	byID := make(map[string]*model.PersonDocument)

	for _, row := range rows {
		doc, ok := byID[row.PersonID]
		if !ok {
			doc = &model.PersonDocument{
				ID:       row.PersonID,
				FullName: strings.ToLower(row.FullName),
				Roles:    []string{},
				FilmIDs:  []string{},
			}
			byID[row.PersonID] = doc
			order = append(order, row.PersonID)
		}
		if row.FilmWorkID != nil && !contains(doc.FilmIDs, *row.FilmWorkID) {
			doc.FilmIDs = append(doc.FilmIDs, *row.FilmWorkID)
		}
		if row.Role != nil && !contains(doc.Roles, *row.Role) {
			doc.Roles = append(doc.Roles, *row.Role)
		}
	}

	return slice.Map(order, func(id string) model.PersonDocument { return *byID[id] })
}
