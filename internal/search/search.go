// Package search provides client-side fuzzy filtering over already-fetched
// lists (library, history). Remote search is a catalog endpoint; this is only
// for narrowing what is already on screen.
package search

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Match is one filtered row: the index into the source slice and its rank
// (lower is better).
type Match struct {
	Index int
	Rank  int
}

// FilterTitles returns the indexes of titles fuzzily matching query, best
// first. Matching is case- and diacritic-insensitive. An empty query matches
// nothing.
func FilterTitles(query string, titles []string) []Match {
	if query == "" {
		return nil
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	matches := make([]Match, 0, len(ranks))
	for _, r := range ranks {
		matches = append(matches, Match{Index: r.OriginalIndex, Rank: r.Distance})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Rank < matches[j].Rank
	})
	return matches
}
