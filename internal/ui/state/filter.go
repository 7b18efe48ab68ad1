// Package state holds UI-side state helpers for the ring shell. The
// filter does not remove items from a ring (that would change its
// geometry mid-hover); it steers the hover to the best fuzzy match.
package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// BestMatchIndex returns the index of the best fuzzy match for the
// query among names, or -1 when nothing matches.
func BestMatchIndex(names []string, query string) int {
	query = strings.TrimSpace(query)
	if query == "" {
		return -1
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return best.OriginalIndex
}

// MatchIndices returns the set of indices whose names fuzzy-match the
// query. An empty query matches everything.
func MatchIndices(names []string, query string) map[int]struct{} {
	matches := make(map[int]struct{}, len(names))
	query = strings.TrimSpace(query)
	if query == "" {
		for i := range names {
			matches[i] = struct{}{}
		}
		return matches
	}
	for _, r := range fuzzy.RankFindNormalizedFold(query, names) {
		matches[r.OriginalIndex] = struct{}{}
	}
	return matches
}
