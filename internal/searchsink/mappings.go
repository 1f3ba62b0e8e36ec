// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package searchsink

import _ "embed"

//go:embed mappings/movies.json
var moviesMapping []byte

//go:embed mappings/genres.json
var genresMapping []byte

//go:embed mappings/persons.json
var personsMapping []byte

// MovieMapping returns the movies index mapping document.
func MovieMapping() []byte { return moviesMapping }

// GenreMapping returns the genres index mapping document.
func GenreMapping() []byte { return genresMapping }

// PersonMapping returns the persons index mapping document.
func PersonMapping() []byte { return personsMapping }
