package filter

import (
	"testing"
	"time"

	"github.com/joshua-simon/gig-fort-v2/internal/clock"
	"github.com/joshua-simon/gig-fort-v2/internal/domain"
)

func TestEngine(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	user := domain.Coordinate{Latitude: -41.29, Longitude: 174.78}

	cbdJazz := domain.Gig{
		ID:       "cbd-jazz",
		Genre:    "Jazz",
		StartsAt: now.Add(10 * time.Minute),
		Location: &domain.Coordinate{Latitude: -41.29, Longitude: 174.78},
	}
	suburbRock := domain.Gig{
		ID:       "suburb-rock",
		Genre:    "Rock",
		StartsAt: now.Add(10 * time.Minute),
		Location: &domain.Coordinate{Latitude: -41.40, Longitude: 174.78},
	}
	laterJazz := domain.Gig{
		ID:       "later-jazz",
		Genre:    "Jazz",
		StartsAt: now.Add(2 * time.Hour),
		Location: &domain.Coordinate{Latitude: -41.30, Longitude: 174.79},
	}
	nowhere := domain.Gig{
		ID:       "nowhere",
		Genre:    "Jazz",
		StartsAt: now.Add(20 * time.Minute),
	}
	snapshot := []domain.Gig{cbdJazz, suburbRock, laterJazz, nowhere}

	newEngine := func() *Engine {
		e := NewEngine(clock.NewFixed(now, time.UTC))
		e.SetSnapshot(snapshot)
		return e
	}

	ids := func(gigs []domain.Gig) []string {
		out := make([]string, len(gigs))
		for i, g := range gigs {
			out[i] = g.ID
		}
		return out
	}

	assertVisible := func(t *testing.T, e *Engine, want ...string) {
		t.Helper()
		visible, _ := e.Visible()
		got := ids(visible)
		if len(got) != len(want) {
			t.Fatalf("visible = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("visible = %v, want %v", got, want)
			}
		}
	}

	t.Run("unfiltered shows full snapshot", func(t *testing.T) {
		e := newEngine()
		assertVisible(t, e, "cbd-jazz", "suburb-rock", "later-jazz", "nowhere")
	})

	t.Run("proximity toggle with location", func(t *testing.T) {
		e := newEngine()
		e.SetLocation(user)
		e.ToggleProximity()

		// Suburb gig ~12km out, coordinate-less gig unfilterable.
		assertVisible(t, e, "cbd-jazz")

		_, prox := e.Visible()
		if !prox.Requested || !prox.Applied || prox.Reason != "" {
			t.Fatalf("unexpected proximity status: %+v", prox)
		}
	})

	t.Run("proximity without location fails open", func(t *testing.T) {
		e := newEngine()
		e.ToggleProximity()

		assertVisible(t, e, "cbd-jazz", "suburb-rock", "later-jazz", "nowhere")

		_, prox := e.Visible()
		if !prox.Requested || prox.Applied {
			t.Fatalf("expected requested-but-unapplied proximity, got %+v", prox)
		}
		if prox.Reason != domain.ReasonNoLocation {
			t.Fatalf("expected reason %q, got %q", domain.ReasonNoLocation, prox.Reason)
		}
	})

	t.Run("double toggle restores original state", func(t *testing.T) {
		e := newEngine()
		e.SetLocation(user)
		e.ToggleProximity()
		e.ToggleProximity()

		mode, simple, _ := e.Mode()
		if mode != domain.ModeUnfiltered || simple.NearMe {
			t.Fatalf("expected unfiltered after double toggle, got mode=%v simple=%+v", mode, simple)
		}
		assertVisible(t, e, "cbd-jazz", "suburb-rock", "later-jazz", "nowhere")
	})

	t.Run("starting soon toggle", func(t *testing.T) {
		e := newEngine()
		e.ToggleStartingSoon()

		// 30-minute default window: the 2h gig drops out.
		assertVisible(t, e, "cbd-jazz", "suburb-rock", "nowhere")
	})

	t.Run("simple toggles compose by AND", func(t *testing.T) {
		e := newEngine()
		e.SetLocation(user)
		e.ToggleProximity()
		e.ToggleStartingSoon()

		assertVisible(t, e, "cbd-jazz")

		mode, simple, _ := e.Mode()
		if mode != domain.ModeSimple || !simple.NearMe || !simple.StartingSoon {
			t.Fatalf("expected both simple toggles on, got mode=%v simple=%+v", mode, simple)
		}
	})

	t.Run("custom filters clear simple toggles", func(t *testing.T) {
		e := newEngine()
		e.SetLocation(user)
		e.ToggleProximity()

		if err := e.ApplyCustomFilters(domain.CustomFilters{Genres: []string{"Rock"}}); err != nil {
			t.Fatalf("apply custom: %v", err)
		}

		mode, simple, _ := e.Mode()
		if mode != domain.ModeCustom || simple.NearMe {
			t.Fatalf("expected custom mode with cleared toggles, got mode=%v simple=%+v", mode, simple)
		}
		assertVisible(t, e, "suburb-rock")
	})

	t.Run("simple toggle clears custom filters", func(t *testing.T) {
		e := newEngine()
		if err := e.ApplyCustomFilters(domain.CustomFilters{Genres: []string{"Rock"}}); err != nil {
			t.Fatalf("apply custom: %v", err)
		}
		e.ToggleStartingSoon()

		mode, _, custom := e.Mode()
		if mode != domain.ModeSimple || len(custom.Genres) != 0 {
			t.Fatalf("expected simple mode with cleared custom set, got mode=%v custom=%+v", mode, custom)
		}
	})

	t.Run("all-zero custom set is inert", func(t *testing.T) {
		e := newEngine()
		if err := e.ApplyCustomFilters(domain.CustomFilters{}); err != nil {
			t.Fatalf("apply custom: %v", err)
		}
		assertVisible(t, e, "cbd-jazz", "suburb-rock", "later-jazz", "nowhere")
	})

	t.Run("custom distance and genre, zero time interval inactive", func(t *testing.T) {
		e := newEngine()
		e.SetLocation(user)
		if err := e.ApplyCustomFilters(domain.CustomFilters{
			DistanceKm: 5,
			Genres:     []string{"Jazz"},
		}); err != nil {
			t.Fatalf("apply custom: %v", err)
		}

		// Within 5km AND tagged Jazz; the 2h jazz gig stays because the
		// time sub-filter is inactive at zero.
		assertVisible(t, e, "cbd-jazz", "later-jazz")
	})

	t.Run("negative criteria rejected", func(t *testing.T) {
		e := newEngine()
		if err := e.ApplyCustomFilters(domain.CustomFilters{DistanceKm: -1}); err != domain.ErrInvalidCriteria {
			t.Fatalf("expected ErrInvalidCriteria, got %v", err)
		}
	})

	t.Run("reset reverts to full collection", func(t *testing.T) {
		e := newEngine()
		e.SetLocation(user)
		e.ToggleProximity()
		e.ResetFilters()

		mode, _, _ := e.Mode()
		if mode != domain.ModeUnfiltered {
			t.Fatalf("expected unfiltered mode after reset, got %v", mode)
		}
		assertVisible(t, e, "cbd-jazz", "suburb-rock", "later-jazz", "nowhere")
	})

	t.Run("snapshot replacement recomputes under active filter", func(t *testing.T) {
		e := newEngine()
		e.SetLocation(user)
		e.ToggleProximity()
		assertVisible(t, e, "cbd-jazz")

		e.SetSnapshot([]domain.Gig{suburbRock, laterJazz})
		assertVisible(t, e, "later-jazz")
	})

	t.Run("losing location mid-filter fails open", func(t *testing.T) {
		e := newEngine()
		e.SetLocation(user)
		e.ToggleProximity()
		assertVisible(t, e, "cbd-jazz")

		e.ClearLocation()
		assertVisible(t, e, "cbd-jazz", "suburb-rock", "later-jazz", "nowhere")
		_, prox := e.Visible()
		if prox.Applied || prox.Reason != domain.ReasonNoLocation {
			t.Fatalf("expected fail-open status, got %+v", prox)
		}
	})
}
