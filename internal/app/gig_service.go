package app

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/joshua-simon/gig-fort-v2/internal/clock"
	"github.com/joshua-simon/gig-fort-v2/internal/domain"
	"github.com/joshua-simon/gig-fort-v2/internal/filter"
)

type GigRepository interface {
	CreateGig(ctx context.Context, gig domain.Gig) error
	GetGig(ctx context.Context, id string) (domain.Gig, error)
	ListGigs(ctx context.Context) ([]domain.Gig, error)
}

// FeedStatus reports the health of the realtime gig source.
type FeedStatus interface {
	Status() error
}

// GigService serves the filtered/grouped gig views and admin gig creation.
// The filter engine owns the visible list; the service layers the today /
// this-week groupings on top of it.
type GigService struct {
	repo     GigRepository
	engine   *filter.Engine
	feed     FeedStatus
	clock    clock.Clock
	validate *validator.Validate
}

func NewGigService(repo GigRepository, engine *filter.Engine, feed FeedStatus, clk clock.Clock) *GigService {
	return &GigService{
		repo:     repo,
		engine:   engine,
		feed:     feed,
		clock:    clk,
		validate: validator.New(),
	}
}

// VisibleResult is the filtered view plus the degraded-mode signals callers
// need to render honestly: a stale list is served with its feed error, and
// an unapplied proximity filter says why.
type VisibleResult struct {
	Gigs      []domain.Gig
	Proximity domain.ProximityStatus
	FeedError error
}

func (s *GigService) Visible() VisibleResult {
	gigs, prox := s.engine.Visible()
	var feedErr error
	if s.feed != nil {
		feedErr = s.feed.Status()
	}
	return VisibleResult{Gigs: gigs, Proximity: prox, FeedError: feedErr}
}

// Today returns the visible gigs starting on the current calendar day,
// including any that already started.
func (s *GigService) Today() []domain.Gig {
	gigs, _ := s.engine.Visible()
	return filter.GigsToday(gigs, s.clock.Now(), s.clock.Location())
}

// ThisWeek returns the visible gigs over the next seven days, day-grouped
// and chronologically ordered.
func (s *GigService) ThisWeek() []domain.DayGroup {
	gigs, _ := s.engine.Visible()
	return filter.GigsThisWeek(gigs, s.clock.Now(), s.clock.Location())
}

func (s *GigService) GetGig(ctx context.Context, id string) (domain.Gig, error) {
	if id == "" {
		return domain.Gig{}, domain.ErrInvalidID
	}
	return s.repo.GetGig(ctx, id)
}

func (s *GigService) ListGigs(ctx context.Context) ([]domain.Gig, error) {
	return s.repo.ListGigs(ctx)
}

type CreateGigInput struct {
	Name        string    `validate:"required"`
	SubHeader   string    `validate:"-"`
	Venue       string    `validate:"required"`
	Blurb       string    `validate:"-"`
	Address     string    `validate:"-"`
	City        string    `validate:"-"`
	StartsAt    time.Time `validate:"required"`
	Latitude    *float64  `validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64  `validate:"omitempty,gte=-180,lte=180"`
	Genre       string    `validate:"-"`
	GenreTags   []string  `validate:"dive,required"`
	IsFree      bool
	TicketPrice string `validate:"-"`
	TicketURL   string `validate:"omitempty,url"`
	ImageURL    string `validate:"omitempty,url"`
}

// CreateGig validates and persists a new gig. Optional fields default
// rather than reject: a missing tag set becomes empty, a coordinate is only
// stored when both halves are present.
func (s *GigService) CreateGig(ctx context.Context, in CreateGigInput) (domain.Gig, error) {
	if in.Name == "" {
		return domain.Gig{}, domain.ErrGigNameRequired
	}
	if in.Venue == "" {
		return domain.Gig{}, domain.ErrVenueRequired
	}
	if err := s.validate.Struct(in); err != nil {
		return domain.Gig{}, domain.ErrInvalidCriteria
	}

	var loc *domain.Coordinate
	if in.Latitude != nil && in.Longitude != nil {
		loc = &domain.Coordinate{Latitude: *in.Latitude, Longitude: *in.Longitude}
	}

	tags := in.GenreTags
	if tags == nil {
		tags = []string{}
	}

	gig := domain.Gig{
		ID:          newID(),
		Name:        in.Name,
		SubHeader:   in.SubHeader,
		Venue:       in.Venue,
		Blurb:       in.Blurb,
		Address:     in.Address,
		City:        in.City,
		StartsAt:    in.StartsAt,
		Location:    loc,
		Genre:       in.Genre,
		GenreTags:   tags,
		IsFree:      in.IsFree,
		TicketPrice: in.TicketPrice,
		TicketURL:   in.TicketURL,
		ImageURL:    in.ImageURL,
	}

	if err := s.repo.CreateGig(ctx, gig); err != nil {
		return domain.Gig{}, err
	}
	return gig, nil
}
