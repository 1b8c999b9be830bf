package feed

import (
	"context"

	"github.com/joshua-simon/gig-fort-v2/internal/domain"
)

// GigLister is the slice of the gig repository the feed needs.
type GigLister interface {
	ListGigs(ctx context.Context) ([]domain.Gig, error)
}

// StoreSource adapts a gig repository into a snapshot source.
type StoreSource struct {
	repo GigLister
}

func NewStoreSource(repo GigLister) *StoreSource {
	return &StoreSource{repo: repo}
}

func (s *StoreSource) Fetch(ctx context.Context) ([]domain.Gig, error) {
	return s.repo.ListGigs(ctx)
}
