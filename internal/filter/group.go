package filter

import (
	"sort"
	"time"

	"github.com/joshua-simon/gig-fort-v2/internal/domain"
)

// GroupByDay sorts gigs by ascending start time and partitions them into
// day-labelled groups. Group order follows first insertion, so the earliest
// day comes first and flattening the groups reproduces the sorted input.
func GroupByDay(gigs []domain.Gig, loc *time.Location) []domain.DayGroup {
	sorted := make([]domain.Gig, len(gigs))
	copy(sorted, gigs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartsAt.Before(sorted[j].StartsAt)
	})

	groups := make([]domain.DayGroup, 0)
	index := make(map[string]int)
	for _, g := range sorted {
		label := DayLabel(g.StartsAt, loc)
		i, ok := index[label]
		if !ok {
			groups = append(groups, domain.DayGroup{Label: label})
			i = len(groups) - 1
			index[label] = i
		}
		groups[i].Gigs = append(groups[i].Gigs, g)
	}
	return groups
}
