package domain

import "errors"

var (
	ErrGigNotFound         = errors.New("gig not found")
	ErrGigNameRequired     = errors.New("gig name required")
	ErrVenueRequired       = errors.New("venue required")
	ErrUserIDRequired      = errors.New("user id required")
	ErrInvalidID           = errors.New("invalid id")
	ErrInvalidLeadTime     = errors.New("invalid lead time")
	ErrReminderInPast      = errors.New("reminder fire time already passed")
	ErrReminderExists      = errors.New("reminder already scheduled")
	ErrReminderNotFound    = errors.New("reminder not found")
	ErrInvalidCriteria     = errors.New("invalid filter criteria")
	ErrLocationUnavailable = errors.New("coordinates unavailable")
)
