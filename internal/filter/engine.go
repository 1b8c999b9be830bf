package filter

import (
	"sync"

	"github.com/joshua-simon/gig-fort-v2/internal/clock"
	"github.com/joshua-simon/gig-fort-v2/internal/domain"
)

// Engine holds the active filter configuration and derives the visible gig
// list from the latest snapshot. Each mutation recomputes synchronously; a
// recompute builds a fresh list and never edits shared state in place.
//
// Snapshots arrive from the feed goroutine while HTTP handlers read, so the
// engine is guarded by a mutex even though each recompute is a cheap pass.
type Engine struct {
	mu sync.Mutex

	clock       clock.Clock
	radiusKm    float64
	soonMinutes int

	mode   domain.FilterMode
	simple domain.SimpleFilters
	custom domain.CustomFilters

	location *domain.Coordinate

	snapshot []domain.Gig
	visible  []domain.Gig
	prox     domain.ProximityStatus
}

type EngineOption func(*Engine)

// WithRadiusKm overrides the near-me toggle's radius.
func WithRadiusKm(km float64) EngineOption {
	return func(e *Engine) {
		if km > 0 {
			e.radiusKm = km
		}
	}
}

// WithStartingSoonMinutes overrides the starting-soon toggle's look-ahead.
func WithStartingSoonMinutes(minutes int) EngineOption {
	return func(e *Engine) {
		if minutes > 0 {
			e.soonMinutes = minutes
		}
	}
}

func NewEngine(clk clock.Clock, opts ...EngineOption) *Engine {
	e := &Engine{
		clock:       clk,
		radiusKm:    domain.DefaultRadiusKm,
		soonMinutes: domain.DefaultStartingSoonMinutes,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetSnapshot replaces the raw gig collection wholesale and recomputes.
func (e *Engine) SetSnapshot(gigs []domain.Gig) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.snapshot = gigs
	e.recompute()
}

// SetLocation records the user's current coordinates and recomputes.
func (e *Engine) SetLocation(c domain.Coordinate) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.location = &c
	e.recompute()
}

// ClearLocation marks the user's location unknown. An active proximity
// filter fails open from here on.
func (e *Engine) ClearLocation() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.location = nil
	e.recompute()
}

// ToggleProximity flips the near-me toggle. Any active custom criteria set
// is discarded.
func (e *Engine) ToggleProximity() {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.simple
	if e.mode == domain.ModeCustom {
		prev = domain.SimpleFilters{}
	}
	prev.NearMe = !prev.NearMe
	e.setSimple(prev)
	e.recompute()
}

// ToggleStartingSoon flips the starting-soon toggle. Any active custom
// criteria set is discarded.
func (e *Engine) ToggleStartingSoon() {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev := e.simple
	if e.mode == domain.ModeCustom {
		prev = domain.SimpleFilters{}
	}
	prev.StartingSoon = !prev.StartingSoon
	e.setSimple(prev)
	e.recompute()
}

// ApplyCustomFilters installs a full custom criteria set, clearing the
// simple toggles. A fully zero-valued set is equivalent to no filtering but
// still counts as the active mode until reset.
func (e *Engine) ApplyCustomFilters(c domain.CustomFilters) error {
	if c.DistanceKm < 0 || c.TimeIntervalMinutes < 0 {
		return domain.ErrInvalidCriteria
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = domain.ModeCustom
	e.simple = domain.SimpleFilters{}
	e.custom = c
	e.recompute()
	return nil
}

// ResetFilters clears every flag and criteria set; the visible list reverts
// to the full raw collection.
func (e *Engine) ResetFilters() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = domain.ModeUnfiltered
	e.simple = domain.SimpleFilters{}
	e.custom = domain.CustomFilters{}
	e.recompute()
}

// Visible returns the current filtered list and the proximity status of the
// last recompute.
func (e *Engine) Visible() ([]domain.Gig, domain.ProximityStatus) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visible, e.prox
}

// Mode reports the active filter mode and its criteria.
func (e *Engine) Mode() (domain.FilterMode, domain.SimpleFilters, domain.CustomFilters) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode, e.simple, e.custom
}

func (e *Engine) setSimple(s domain.SimpleFilters) {
	e.custom = domain.CustomFilters{}
	e.simple = s
	if s.NearMe || s.StartingSoon {
		e.mode = domain.ModeSimple
	} else {
		e.mode = domain.ModeUnfiltered
	}
}

// recompute re-derives the visible list from the snapshot and criteria.
// Callers must hold e.mu.
func (e *Engine) recompute() {
	now := e.clock.Now()
	result := e.snapshot
	e.prox = domain.ProximityStatus{}

	switch e.mode {
	case domain.ModeSimple:
		if e.simple.NearMe {
			result = e.filterProximity(result, e.radiusKm)
		}
		if e.simple.StartingSoon {
			result = applyPredicate(result, func(g domain.Gig) bool {
				return StartsWithin(g, now, e.soonMinutes)
			})
		}
	case domain.ModeCustom:
		if e.custom.DistanceKm > 0 {
			result = e.filterProximity(result, e.custom.DistanceKm)
		}
		if e.custom.TimeIntervalMinutes > 0 {
			minutes := e.custom.TimeIntervalMinutes
			result = applyPredicate(result, func(g domain.Gig) bool {
				return StartsWithin(g, now, minutes)
			})
		}
		if len(e.custom.Genres) > 0 {
			genres := e.custom.Genres
			result = applyPredicate(result, func(g domain.Gig) bool {
				return GenreMatches(g, genres)
			})
		}
	}

	e.visible = result
}

// filterProximity applies the proximity predicate, failing open when no
// location is known and recording why.
func (e *Engine) filterProximity(gigs []domain.Gig, radiusKm float64) []domain.Gig {
	e.prox.Requested = true
	if e.location == nil {
		e.prox.Applied = false
		e.prox.Reason = domain.ReasonNoLocation
		return gigs
	}
	e.prox.Applied = true
	user := *e.location
	return applyPredicate(gigs, func(g domain.Gig) bool {
		return WithinProximity(g, user, radiusKm)
	})
}
