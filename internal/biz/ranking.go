package biz

import (
	"cmp"
	"slices"
)

// compareRating orders absent ratings below every present rating.
func compareRating(a, b *Movie) int {
	switch {
	case a.Rating == nil && b.Rating == nil:
		return 0
	case a.Rating == nil:
		return -1
	case b.Rating == nil:
		return 1
	default:
		return cmp.Compare(*a.Rating, *b.Rating)
	}
}

// AssignRankings sorts movies ascending by rating (stable, absent first) and
// numbers them in that order: the worst rated movie gets 1 and the best rated
// gets len(movies).
// The returned map holds the new ranking of every movie keyed by id.
func AssignRankings(movies []*Movie) map[int64]int {
	slices.SortStableFunc(movies, compareRating)

	rankings := make(map[int64]int, len(movies))
	for i, m := range movies {
		rank := i + 1
		m.Ranking = &rank
		rankings[m.ID] = rank
	}
	return rankings
}
