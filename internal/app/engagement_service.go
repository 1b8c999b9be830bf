package app

import (
	"context"

	"github.com/joshua-simon/gig-fort-v2/internal/domain"
)

type EngagementRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GigExists(ctx context.Context, gigID string) (bool, error)
	HasLike(ctx context.Context, userID, gigID string) (bool, error)
	InsertLike(ctx context.Context, userID, gigID string) error
	DeleteLike(ctx context.Context, userID, gigID string) error
	AdjustLikes(ctx context.Context, gigID string, delta int) error
	HasSave(ctx context.Context, userID, gigID string) (bool, error)
	InsertSave(ctx context.Context, userID, gigID string) error
	DeleteSave(ctx context.Context, userID, gigID string) error
	ListSavedGigs(ctx context.Context, userID string) ([]domain.Gig, error)
}

// EngagementService handles per-user like and save toggles. Toggles are
// idempotent per state: liking an already-liked gig unlikes it, and the
// like counter never goes below zero.
type EngagementService struct {
	repo EngagementRepository
}

func NewEngagementService(repo EngagementRepository) *EngagementService {
	return &EngagementService{repo: repo}
}

// ToggleLike flips the user's like on a gig and returns the new state.
func (s *EngagementService) ToggleLike(ctx context.Context, userID, gigID string) (bool, error) {
	if userID == "" {
		return false, domain.ErrUserIDRequired
	}
	if gigID == "" {
		return false, domain.ErrInvalidID
	}

	var liked bool
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		exists, err := s.repo.GigExists(txCtx, gigID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrGigNotFound
		}

		has, err := s.repo.HasLike(txCtx, userID, gigID)
		if err != nil {
			return err
		}
		if has {
			if err := s.repo.DeleteLike(txCtx, userID, gigID); err != nil {
				return err
			}
			liked = false
			return s.repo.AdjustLikes(txCtx, gigID, -1)
		}
		if err := s.repo.InsertLike(txCtx, userID, gigID); err != nil {
			return err
		}
		liked = true
		return s.repo.AdjustLikes(txCtx, gigID, 1)
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

// ToggleSave flips the user's saved state for a gig and returns the new state.
func (s *EngagementService) ToggleSave(ctx context.Context, userID, gigID string) (bool, error) {
	if userID == "" {
		return false, domain.ErrUserIDRequired
	}
	if gigID == "" {
		return false, domain.ErrInvalidID
	}

	var saved bool
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		exists, err := s.repo.GigExists(txCtx, gigID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrGigNotFound
		}

		has, err := s.repo.HasSave(txCtx, userID, gigID)
		if err != nil {
			return err
		}
		if has {
			saved = false
			return s.repo.DeleteSave(txCtx, userID, gigID)
		}
		saved = true
		return s.repo.InsertSave(txCtx, userID, gigID)
	})
	if err != nil {
		return false, err
	}
	return saved, nil
}

// SavedGigs lists the gigs a user has saved.
func (s *EngagementService) SavedGigs(ctx context.Context, userID string) ([]domain.Gig, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}
	return s.repo.ListSavedGigs(ctx, userID)
}
