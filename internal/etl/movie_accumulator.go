// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package etl

import "github.com/taibuivan/movies-etl/pkg/slice"

// movieAccumulator unions the film-work IDs surfaced by the movies
// pipeline's three producers (film_work, genre, person) over one tick.
//
// A 3-input coroutine that suspends waiting for each producer to "send"
// its contribution has no direct Go equivalent that doesn't involve
// goroutines and channels for what is, structurally, just three
// sequential method calls within a single tick. This type reifies the
// same accumulation as explicit state instead (DESIGN.md [[movies-accumulator]]).
type movieAccumulator struct {
	filmWork []string
	genre    []string
	person   []string
}

func (a *movieAccumulator) addFilmWork(ids []string) { a.filmWork = append(a.filmWork, ids...) }
func (a *movieAccumulator) addGenre(ids []string)    { a.genre = append(a.genre, ids...) }
func (a *movieAccumulator) addPerson(ids []string)   { a.person = append(a.person, ids...) }

type unionAcc struct {
	seen map[string]struct{}
	out  []string
}

// union returns the deduplicated set of all film-work IDs collected so
// far, in first-seen order across filmWork, then genre, then person.
func (a *movieAccumulator) union() []string {
	groups := [][]string{a.filmWork, a.genre, a.person}
	total := len(a.filmWork) + len(a.genre) + len(a.person)
	initial := unionAcc{seen: make(map[string]struct{}, total), out: make([]string, 0, total)}

	acc := slice.Reduce(groups, initial, func(acc unionAcc, group []string) unionAcc {
		for _, id := range group {
			if _, ok := acc.seen[id]; ok {
				continue
			}
			acc.seen[id] = struct{}{}
			acc.out = append(acc.out, id)
		}
		return acc
	})
	return acc.out
}
