package feed

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/joshua-simon/gig-fort-v2/internal/domain"
	"github.com/joshua-simon/gig-fort-v2/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type fakeSource struct {
	gigs []domain.Gig
	err  error
}

func (f *fakeSource) Fetch(ctx context.Context) ([]domain.Gig, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.gigs, nil
}

func newTestHub(source Source) *Hub {
	logger := log.New(io.Discard, "", 0)
	return NewHub(source, logger, metrics.New(prometheus.NewRegistry()))
}

func TestHub(t *testing.T) {
	t.Parallel()

	gigA := domain.Gig{ID: "a"}
	gigB := domain.Gig{ID: "b"}

	t.Run("delivers snapshot to subscribers", func(t *testing.T) {
		source := &fakeSource{gigs: []domain.Gig{gigA}}
		hub := newTestHub(source)

		var got []domain.Gig
		hub.Subscribe(func(gigs []domain.Gig) { got = gigs })

		if err := hub.Refresh(context.Background()); err != nil {
			t.Fatalf("refresh: %v", err)
		}
		if len(got) != 1 || got[0].ID != "a" {
			t.Fatalf("expected snapshot [a], got %+v", got)
		}
	})

	t.Run("replays current snapshot on subscribe", func(t *testing.T) {
		source := &fakeSource{gigs: []domain.Gig{gigA, gigB}}
		hub := newTestHub(source)
		if err := hub.Refresh(context.Background()); err != nil {
			t.Fatalf("refresh: %v", err)
		}

		var got []domain.Gig
		hub.Subscribe(func(gigs []domain.Gig) { got = gigs })
		if len(got) != 2 {
			t.Fatalf("expected replayed snapshot of 2 gigs, got %+v", got)
		}
	})

	t.Run("keeps last-known-good on source error", func(t *testing.T) {
		source := &fakeSource{gigs: []domain.Gig{gigA}}
		hub := newTestHub(source)

		deliveries := 0
		var got []domain.Gig
		hub.Subscribe(func(gigs []domain.Gig) {
			deliveries++
			got = gigs
		})

		if err := hub.Refresh(context.Background()); err != nil {
			t.Fatalf("refresh: %v", err)
		}

		source.err = errors.New("source down")
		if err := hub.Refresh(context.Background()); err == nil {
			t.Fatalf("expected refresh error")
		}

		if deliveries != 1 {
			t.Fatalf("failed refresh must not deliver, got %d deliveries", deliveries)
		}
		if len(got) != 1 || got[0].ID != "a" {
			t.Fatalf("stale-but-valid snapshot expected, got %+v", got)
		}
		if hub.Status() == nil {
			t.Fatalf("expected error state after failed refresh")
		}

		snapshot, ok := hub.Snapshot()
		if !ok || len(snapshot) != 1 {
			t.Fatalf("expected last-known-good snapshot, got ok=%v %+v", ok, snapshot)
		}

		// Recovery clears the error state.
		source.err = nil
		source.gigs = []domain.Gig{gigA, gigB}
		if err := hub.Refresh(context.Background()); err != nil {
			t.Fatalf("refresh after recovery: %v", err)
		}
		if hub.Status() != nil {
			t.Fatalf("expected error state cleared after recovery")
		}
		if len(got) != 2 {
			t.Fatalf("expected fresh snapshot after recovery, got %+v", got)
		}
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		source := &fakeSource{gigs: []domain.Gig{gigA}}
		hub := newTestHub(source)

		deliveries := 0
		unsubscribe := hub.Subscribe(func(gigs []domain.Gig) { deliveries++ })

		if err := hub.Refresh(context.Background()); err != nil {
			t.Fatalf("refresh: %v", err)
		}
		unsubscribe()
		if err := hub.Refresh(context.Background()); err != nil {
			t.Fatalf("refresh: %v", err)
		}

		if deliveries != 1 {
			t.Fatalf("expected exactly 1 delivery after unsubscribe, got %d", deliveries)
		}
	})
}
