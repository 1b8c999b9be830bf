package filter

import (
	"github.com/joshua-simon/gig-fort-v2/internal/domain"
	"github.com/joshua-simon/gig-fort-v2/internal/geo"
)

// WithinProximity reports whether the gig lies within radiusKm of the user.
// A gig without a coordinate is unfilterable by proximity and is excluded.
func WithinProximity(g domain.Gig, user domain.Coordinate, radiusKm float64) bool {
	if g.Location == nil {
		return false
	}
	return geo.Distance(*g.Location, user) <= radiusKm
}

// GenreMatches reports whether the gig's genre set intersects the selection.
// Callers must skip this predicate entirely when the selection is empty; an
// empty selection means "no restriction", not "match nothing".
func GenreMatches(g domain.Gig, selected []string) bool {
	if len(selected) == 0 {
		return false
	}
	want := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		want[s] = struct{}{}
	}
	for _, tag := range g.GenreSet() {
		if _, ok := want[tag]; ok {
			return true
		}
	}
	return false
}

func applyPredicate(gigs []domain.Gig, keep func(domain.Gig) bool) []domain.Gig {
	out := make([]domain.Gig, 0, len(gigs))
	for _, g := range gigs {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}
