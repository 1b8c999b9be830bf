package app

import (
	"context"
	"time"

	"github.com/joshua-simon/gig-fort-v2/internal/clock"
	"github.com/joshua-simon/gig-fort-v2/internal/domain"
)

type ReminderRepository interface {
	CreateReminder(ctx context.Context, rem domain.Reminder) error
	FindReminder(ctx context.Context, userID, gigID string) (*domain.Reminder, error)
	DueReminders(ctx context.Context, now time.Time) ([]domain.Reminder, error)
	MarkReminderSent(ctx context.Context, id string) error
	CancelReminder(ctx context.Context, userID, gigID string) error
}

// Notifier is the boundary to the external notification scheduler. The
// service computes absolute fire times; delivery is someone else's problem.
type Notifier interface {
	Notify(ctx context.Context, rem domain.Reminder, gig domain.Gig) error
}

type GigGetter interface {
	GetGig(ctx context.Context, id string) (domain.Gig, error)
}

const maxLeadMinutes = 24 * 60

type ReminderService struct {
	repo     ReminderRepository
	gigs     GigGetter
	notifier Notifier
	clock    clock.Clock
}

func NewReminderService(repo ReminderRepository, gigs GigGetter, notifier Notifier, clk clock.Clock) *ReminderService {
	return &ReminderService{
		repo:     repo,
		gigs:     gigs,
		notifier: notifier,
		clock:    clk,
	}
}

type ScheduleReminderInput struct {
	UserID      string
	GigID       string
	LeadMinutes int
}

// Schedule registers a reminder firing leadMinutes before the gig starts.
// The fire time must still be in the future.
func (s *ReminderService) Schedule(ctx context.Context, in ScheduleReminderInput) (domain.Reminder, error) {
	if in.UserID == "" {
		return domain.Reminder{}, domain.ErrUserIDRequired
	}
	if in.GigID == "" {
		return domain.Reminder{}, domain.ErrInvalidID
	}
	if in.LeadMinutes < 0 || in.LeadMinutes > maxLeadMinutes {
		return domain.Reminder{}, domain.ErrInvalidLeadTime
	}

	gig, err := s.gigs.GetGig(ctx, in.GigID)
	if err != nil {
		return domain.Reminder{}, err
	}

	now := s.clock.Now()
	fireAt := gig.StartsAt.Add(-time.Duration(in.LeadMinutes) * time.Minute)
	if !fireAt.After(now) {
		return domain.Reminder{}, domain.ErrReminderInPast
	}

	if existing, err := s.repo.FindReminder(ctx, in.UserID, in.GigID); err != nil {
		return domain.Reminder{}, err
	} else if existing != nil && existing.Status == domain.ReminderStatusPending {
		return domain.Reminder{}, domain.ErrReminderExists
	}

	rem := domain.Reminder{
		ID:          newID(),
		UserID:      in.UserID,
		GigID:       in.GigID,
		LeadMinutes: in.LeadMinutes,
		FireAt:      fireAt,
		Status:      domain.ReminderStatusPending,
		CreatedAt:   now,
	}
	if err := s.repo.CreateReminder(ctx, rem); err != nil {
		return domain.Reminder{}, err
	}
	return rem, nil
}

// Cancel removes a pending reminder.
func (s *ReminderService) Cancel(ctx context.Context, userID, gigID string) error {
	if userID == "" {
		return domain.ErrUserIDRequired
	}
	if gigID == "" {
		return domain.ErrInvalidID
	}
	return s.repo.CancelReminder(ctx, userID, gigID)
}

// DispatchDue hands every due pending reminder to the notifier and marks it
// sent. One failed dispatch does not block the rest; the first error is
// returned after the pass completes.
func (s *ReminderService) DispatchDue(ctx context.Context) (int, error) {
	now := s.clock.Now()
	due, err := s.repo.DueReminders(ctx, now)
	if err != nil {
		return 0, err
	}

	dispatched := 0
	var firstErr error
	for _, rem := range due {
		gig, err := s.gigs.GetGig(ctx, rem.GigID)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if err := s.notifier.Notify(ctx, rem, gig); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if err := s.repo.MarkReminderSent(ctx, rem.ID); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		dispatched++
	}
	return dispatched, firstErr
}
