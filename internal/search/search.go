// Package search filters rooms by title.
package search

import (
	"sort"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/user/cardcourier/internal/types"
)

// Mode selects how a search term is matched against titles.
type Mode int

const (
	// Substring keeps rooms whose title contains the term, ignoring case,
	// in the order the API listed them.
	Substring Mode = iota
	// Fuzzy keeps rooms whose title fuzzy-matches the term and orders them
	// by match quality.
	Fuzzy
)

// Spaces returns the rooms matching term. An empty term matches everything.
func Spaces(spaces []types.Space, term string, mode Mode) []types.Space {
	pattern := strings.ToLower(strings.TrimSpace(term))
	matches := []types.Space{}
	if pattern == "" {
		return append(matches, spaces...)
	}

	if mode == Substring {
		for _, s := range spaces {
			if strings.Contains(strings.ToLower(s.Title), pattern) {
				matches = append(matches, s)
			}
		}
		return matches
	}

	type scored struct {
		space types.Space
		score int
	}
	var ranked []scored
	slab := util.MakeSlab(100*1024, 2048)
	runes := []rune(pattern)
	for _, s := range spaces {
		if score := fuzzyScore(s.Title, runes, slab); score > 0 {
			ranked = append(ranked, scored{space: s, score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	for _, r := range ranked {
		matches = append(matches, r.space)
	}
	return matches
}

// fuzzyScore returns the fzf score of pattern against text, or 0 when
// there is no match. pattern must already be lowercase.
func fuzzyScore(text string, pattern []rune, slab *util.Slab) int {
	chars := util.ToChars([]byte(text))
	result, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, slab)
	if result.Start < 0 {
		return 0
	}
	return result.Score
}

// Favorites converts matched rooms into favorites entries, the shape
// favorites.json stores.
func Favorites(spaces []types.Space) []types.FavoriteEntry {
	entries := make([]types.FavoriteEntry, len(spaces))
	for i, s := range spaces {
		entries[i] = types.FavoriteEntry{Name: s.Title, Value: s.ID}
	}
	return entries
}
