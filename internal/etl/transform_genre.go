// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package etl

import (
	"strings"

	"github.com/taibuivan/movies-etl/internal/content"
	"github.com/taibuivan/movies-etl/internal/etl/model"
	"github.com/taibuivan/movies-etl/pkg/slice"
)

// TransformGenres folds the Merger's (genre, film-work) rows into one
// genres-index document per distinct genre, in first-seen order.
func TransformGenres(rows []content.GenreFilmRow) []model.GenreDocument {
	order := make([]string, 0)
	byID := make(map[string]*model.GenreDocument)

	for _, row := range rows {
		doc, ok := byID[row.GenreID]
		if !ok {
			doc = &model.GenreDocument{
				ID:          row.GenreID,
				Name:        strings.ToLower(row.GenreName),
				Description: row.GenreDescription,
				FilmWorks:   []string{},
			}
			byID[row.GenreID] = doc
			order = append(order, row.GenreID)
		}
		if row.FilmWorkID != nil && !contains(doc.FilmWorks, *row.FilmWorkID) {
			doc.FilmWorks = append(doc.FilmWorks, *row.FilmWorkID)
		}
	}

	return slice.Map(order, func(id string) model.GenreDocument { return *byID[id] })
}

func contains(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
