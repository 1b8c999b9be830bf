package feed

import (
	"context"
	"log"
	"sync"

	"github.com/joshua-simon/gig-fort-v2/internal/domain"
	"github.com/joshua-simon/gig-fort-v2/internal/metrics"
)

// Source produces a full snapshot of the raw gig collection.
type Source interface {
	Fetch(ctx context.Context) ([]domain.Gig, error)
}

// Subscriber receives every delivered snapshot as a full replacement.
type Subscriber func(gigs []domain.Gig)

// Hub connects a snapshot source to its subscribers. A failed refresh keeps
// the last-known-good snapshot and records the error; subscribers never see
// the visible collection cleared by a source failure.
type Hub struct {
	source  Source
	logger  *log.Logger
	metrics *metrics.Metrics

	mu          sync.Mutex
	subs        map[int]Subscriber
	nextID      int
	last        []domain.Gig
	hasSnapshot bool
	lastErr     error
}

func NewHub(source Source, logger *log.Logger, m *metrics.Metrics) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		source:  source,
		logger:  logger,
		metrics: m,
		subs:    make(map[int]Subscriber),
	}
}

// Subscribe registers fn and immediately replays the current snapshot when
// one exists. The returned function unsubscribes; after it returns, fn is
// never called again.
func (h *Hub) Subscribe(fn Subscriber) (unsubscribe func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	replay := h.hasSnapshot
	snapshot := h.last
	h.mu.Unlock()

	if replay {
		fn(snapshot)
	}

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// Refresh fetches a fresh snapshot and fans it out. On source error the
// previous snapshot stays in place and the error is retained for Status.
func (h *Hub) Refresh(ctx context.Context) error {
	gigs, err := h.source.Fetch(ctx)

	h.mu.Lock()
	if err != nil {
		h.lastErr = err
		h.mu.Unlock()
		if h.metrics != nil {
			h.metrics.FeedErrorsTotal.Inc()
		}
		h.logger.Printf("WARN: gig feed refresh failed, keeping previous snapshot: %v", err)
		return err
	}
	h.lastErr = nil
	h.last = gigs
	h.hasSnapshot = true
	subs := make([]Subscriber, 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.SnapshotsTotal.Inc()
		h.metrics.GigsInSnapshot.Set(float64(len(gigs)))
	}
	for _, fn := range subs {
		fn(gigs)
	}
	return nil
}

// Snapshot returns the last-known-good collection and whether one exists.
func (h *Hub) Snapshot() ([]domain.Gig, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last, h.hasSnapshot
}

// Status reports the error from the most recent refresh, if it failed.
func (h *Hub) Status() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastErr
}
