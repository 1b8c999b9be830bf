package app

import (
	"context"
	"testing"
	"time"

	"github.com/joshua-simon/gig-fort-v2/internal/clock"
	"github.com/joshua-simon/gig-fort-v2/internal/domain"
	"github.com/joshua-simon/gig-fort-v2/internal/filter"
)

func TestGigService_Views(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)
	clk := clock.NewFixed(now, time.UTC)

	tonight := domain.Gig{ID: "tonight", Name: "Tonight", StartsAt: now.Add(2 * time.Hour)}
	earlier := domain.Gig{ID: "earlier", Name: "Earlier", StartsAt: now.Add(-3 * time.Hour)}
	wednesday := domain.Gig{ID: "wed", Name: "Wednesday", StartsAt: now.Add(48 * time.Hour)}
	nextMonth := domain.Gig{ID: "next-month", Name: "Next month", StartsAt: now.Add(31 * 24 * time.Hour)}

	engine := filter.NewEngine(clk)
	engine.SetSnapshot([]domain.Gig{tonight, earlier, wednesday, nextMonth})

	feed := &fakeFeedStatus{}
	svc := NewGigService(newFakeGigRepo(), engine, feed, clk)

	t.Run("visible carries feed error alongside stale list", func(t *testing.T) {
		res := svc.Visible()
		if len(res.Gigs) != 4 {
			t.Fatalf("expected 4 visible gigs, got %d", len(res.Gigs))
		}
		if res.FeedError != nil {
			t.Fatalf("expected no feed error, got %v", res.FeedError)
		}

		feed.err = context.DeadlineExceeded
		res = svc.Visible()
		if res.FeedError == nil {
			t.Fatalf("expected feed error surfaced")
		}
		if len(res.Gigs) != 4 {
			t.Fatalf("feed error must not clear the visible list")
		}
		feed.err = nil
	})

	t.Run("today includes started gigs, excludes other days", func(t *testing.T) {
		today := svc.Today()
		if len(today) != 2 {
			t.Fatalf("expected 2 gigs today, got %d", len(today))
		}
	})

	t.Run("this week groups by day ascending", func(t *testing.T) {
		groups := svc.ThisWeek()
		if len(groups) != 2 {
			t.Fatalf("expected 2 day groups, got %d", len(groups))
		}
		if groups[0].Gigs[0].ID != "tonight" || groups[1].Gigs[0].ID != "wed" {
			t.Fatalf("unexpected grouping: %+v", groups)
		}
	})
}

func TestGigService_CreateGig(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewFixed(now, time.UTC)

	newSvc := func() (*GigService, *fakeGigRepo) {
		repo := newFakeGigRepo()
		engine := filter.NewEngine(clk)
		svc := NewGigService(repo, engine, nil, clk)
		return svc, repo
	}

	t.Run("creates gig with defaults for optional fields", func(t *testing.T) {
		svc, repo := newSvc()

		gig, err := svc.CreateGig(context.Background(), CreateGigInput{
			Name:     "Night Owls",
			Venue:    "San Fran",
			StartsAt: now.Add(24 * time.Hour),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gig.ID == "" {
			t.Fatalf("expected generated id")
		}
		if gig.Location != nil {
			t.Fatalf("expected nil location when no coordinate supplied")
		}
		if gig.GenreTags == nil {
			t.Fatalf("missing tag set must default to empty, not nil")
		}
		if len(repo.gigs) != 1 {
			t.Fatalf("expected 1 gig stored, got %d", len(repo.gigs))
		}
	})

	t.Run("stores coordinate when both halves present", func(t *testing.T) {
		svc, _ := newSvc()
		lat, lon := -41.29, 174.78

		gig, err := svc.CreateGig(context.Background(), CreateGigInput{
			Name:      "Harbour Sessions",
			Venue:     "Rogue & Vagabond",
			StartsAt:  now.Add(time.Hour),
			Latitude:  &lat,
			Longitude: &lon,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gig.Location == nil || gig.Location.Latitude != lat {
			t.Fatalf("expected coordinate stored, got %+v", gig.Location)
		}
	})

	t.Run("half a coordinate is dropped, not stored", func(t *testing.T) {
		svc, _ := newSvc()
		lat := -41.29

		gig, err := svc.CreateGig(context.Background(), CreateGigInput{
			Name:     "No Fixed Abode",
			Venue:    "Valhalla",
			StartsAt: now.Add(time.Hour),
			Latitude: &lat,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if gig.Location != nil {
			t.Fatalf("expected nil location for partial coordinate")
		}
	})

	t.Run("name required", func(t *testing.T) {
		svc, _ := newSvc()
		_, err := svc.CreateGig(context.Background(), CreateGigInput{
			Venue:    "Meow",
			StartsAt: now,
		})
		if err != domain.ErrGigNameRequired {
			t.Fatalf("expected ErrGigNameRequired, got %v", err)
		}
	})

	t.Run("out-of-range latitude rejected", func(t *testing.T) {
		svc, _ := newSvc()
		lat, lon := 123.0, 174.78
		_, err := svc.CreateGig(context.Background(), CreateGigInput{
			Name:      "Broken Pin",
			Venue:     "Meow",
			StartsAt:  now.Add(time.Hour),
			Latitude:  &lat,
			Longitude: &lon,
		})
		if err != domain.ErrInvalidCriteria {
			t.Fatalf("expected ErrInvalidCriteria, got %v", err)
		}
	})
}

type fakeFeedStatus struct {
	err error
}

func (f *fakeFeedStatus) Status() error { return f.err }

type fakeGigRepo struct {
	gigs map[string]domain.Gig
}

func newFakeGigRepo(seed ...domain.Gig) *fakeGigRepo {
	repo := &fakeGigRepo{gigs: make(map[string]domain.Gig)}
	for _, g := range seed {
		repo.gigs[g.ID] = g
	}
	return repo
}

func (f *fakeGigRepo) CreateGig(_ context.Context, gig domain.Gig) error {
	f.gigs[gig.ID] = gig
	return nil
}

func (f *fakeGigRepo) GetGig(_ context.Context, id string) (domain.Gig, error) {
	gig, ok := f.gigs[id]
	if !ok {
		return domain.Gig{}, domain.ErrGigNotFound
	}
	return gig, nil
}

func (f *fakeGigRepo) ListGigs(_ context.Context) ([]domain.Gig, error) {
	out := make([]domain.Gig, 0, len(f.gigs))
	for _, g := range f.gigs {
		out = append(out, g)
	}
	return out, nil
}
