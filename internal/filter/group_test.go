package filter

import (
	"sort"
	"testing"
	"time"

	"github.com/joshua-simon/gig-fort-v2/internal/domain"
)

func TestGroupByDay(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 3, 8, 18, 0, 0, 0, time.UTC)
	gigs := []domain.Gig{
		gigAt("c", base.Add(50*time.Hour)),
		gigAt("a", base),
		gigAt("d", base.Add(52*time.Hour)),
		gigAt("b", base.Add(3*time.Hour)),
	}

	groups := GroupByDay(gigs, time.UTC)

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Label != "Fri Mar 8th 2024" || groups[1].Label != "Sun Mar 10th 2024" {
		t.Fatalf("unexpected labels: %q, %q", groups[0].Label, groups[1].Label)
	}

	t.Run("flattened output equals sorted input", func(t *testing.T) {
		var flat []domain.Gig
		for _, grp := range groups {
			flat = append(flat, grp.Gigs...)
		}

		want := make([]domain.Gig, len(gigs))
		copy(want, gigs)
		sort.SliceStable(want, func(i, j int) bool {
			return want[i].StartsAt.Before(want[j].StartsAt)
		})

		if len(flat) != len(want) {
			t.Fatalf("expected %d gigs after flatten, got %d", len(want), len(flat))
		}
		for i := range want {
			if flat[i].ID != want[i].ID {
				t.Fatalf("position %d: got %q, want %q", i, flat[i].ID, want[i].ID)
			}
		}
	})

	t.Run("input left untouched", func(t *testing.T) {
		if gigs[0].ID != "c" {
			t.Fatalf("GroupByDay reordered its input")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := GroupByDay(nil, time.UTC); len(got) != 0 {
			t.Fatalf("expected no groups, got %+v", got)
		}
	})
}
