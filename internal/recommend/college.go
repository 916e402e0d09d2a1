package recommend

import (
	"slices"

	"github.com/mind-engage/mindengage-guidance/internal/catalog"
)

const (
	// DefaultMaxColleges is the shortlist size when the caller sets none.
	DefaultMaxColleges = 5
	// LegacyMaxColleges is the shortlist size of the old stage-three endpoint.
	LegacyMaxColleges = 10
)

// RankColleges keeps the colleges of stream that offer subject, orders them
// by ascending distance and returns at most limit of them. Equal distances
// keep table order. limit <= 0 means DefaultMaxColleges. The result is never nil.
func RankColleges(colleges []catalog.College, stream catalog.Stream, subject string, limit int) []catalog.College {
	if limit <= 0 {
		limit = DefaultMaxColleges
	}
	out := make([]catalog.College, 0, len(colleges))
	for _, c := range colleges {
		if c.Stream == stream && c.Offers(subject) {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b catalog.College) int {
		switch {
		case a.DistanceKM < b.DistanceKM:
			return -1
		case a.DistanceKM > b.DistanceKM:
			return 1
		default:
			return 0
		}
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
