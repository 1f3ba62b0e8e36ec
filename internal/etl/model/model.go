// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package model defines the denormalised document shapes the search engine
indexes and the raw join rows the Merger stage produces.

Collection-typed fields are never nil — the Transformer always allocates
an empty slice so JSON encoding emits [] rather than null. Scalar fields
the downstream schema declares nullable (description, rating) are
pointers, nil when absent at the source.
*/
package model

// PersonRef is the {id, name} shape embedded in a [MovieDocument]'s
// role lists.
type PersonRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GenreRef is the {id, name} shape embedded in a [MovieDocument]'s
// genre list.
type GenreRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MovieDocument is the movies index document.
type MovieDocument struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Description    *string     `json:"description"`
	Rating         *float64    `json:"rating"`
	Type           string      `json:"type"`
	CreationDate   *string     `json:"creation_date"`
	Genres         []GenreRef  `json:"genres"`
	Actors         []PersonRef `json:"actors"`
	Writers        []PersonRef `json:"writers"`
	Directors      []PersonRef `json:"directors"`
	ActorsNames    []string    `json:"actors_names"`
	WritersNames   []string    `json:"writers_names"`
	DirectorsNames []string    `json:"directors_names"`
}

// GenreDocument is the genres index document.
type GenreDocument struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	FilmWorks   []string `json:"film_works"`
}

// PersonDocument is the persons index document.
type PersonDocument struct {
	ID       string   `json:"id"`
	FullName string   `json:"full_name"`
	Roles    []string `json:"roles"`
	FilmIDs  []string `json:"film_ids"`
}
