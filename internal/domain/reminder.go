package domain

import "time"

type ReminderStatus string

const (
	ReminderStatusPending   ReminderStatus = "pending"
	ReminderStatusSent      ReminderStatus = "sent"
	ReminderStatusCancelled ReminderStatus = "cancelled"
)

// Reminder is a scheduled per-user notification for a gig. FireAt is the
// absolute dispatch time: the gig's start minus the lead time.
type Reminder struct {
	ID          string
	UserID      string
	GigID       string
	LeadMinutes int
	FireAt      time.Time
	Status      ReminderStatus
	CreatedAt   time.Time
}
