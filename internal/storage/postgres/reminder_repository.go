package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joshua-simon/gig-fort-v2/internal/domain"
)

type ReminderRepository struct {
	pool *pgxpool.Pool
}

func NewReminderRepository(pool *pgxpool.Pool) *ReminderRepository {
	return &ReminderRepository{pool: pool}
}

func (r *ReminderRepository) CreateReminder(ctx context.Context, rem domain.Reminder) error {
	const stmt = `
INSERT INTO reminders (id, user_id, gig_id, lead_minutes, fire_at, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt,
		rem.ID,
		rem.UserID,
		rem.GigID,
		rem.LeadMinutes,
		rem.FireAt,
		rem.Status,
		rem.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrReminderExists
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

func (r *ReminderRepository) FindReminder(ctx context.Context, userID, gigID string) (*domain.Reminder, error) {
	const query = `
SELECT id, user_id, gig_id, lead_minutes, fire_at, status, created_at
FROM reminders
WHERE user_id = $1 AND gig_id = $2 AND status = 'pending'`

	var rem domain.Reminder
	err := r.queryRow(ctx, query, userID, gigID).
		Scan(&rem.ID, &rem.UserID, &rem.GigID, &rem.LeadMinutes, &rem.FireAt, &rem.Status, &rem.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find reminder: %w", err)
	}
	return &rem, nil
}

func (r *ReminderRepository) DueReminders(ctx context.Context, now time.Time) ([]domain.Reminder, error) {
	const query = `
SELECT id, user_id, gig_id, lead_minutes, fire_at, status, created_at
FROM reminders
WHERE status = 'pending' AND fire_at <= $1
ORDER BY fire_at, id`

	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("due reminders: %w", err)
	}
	defer rows.Close()

	reminders := make([]domain.Reminder, 0)
	for rows.Next() {
		var rem domain.Reminder
		if err := rows.Scan(&rem.ID, &rem.UserID, &rem.GigID, &rem.LeadMinutes, &rem.FireAt, &rem.Status, &rem.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("due reminders: %w", err)
	}
	return reminders, nil
}

func (r *ReminderRepository) MarkReminderSent(ctx context.Context, id string) error {
	const stmt = `UPDATE reminders SET status = 'sent' WHERE id = $1 AND status = 'pending'`
	tag, err := r.exec(ctx, stmt, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

func (r *ReminderRepository) CancelReminder(ctx context.Context, userID, gigID string) error {
	const stmt = `UPDATE reminders SET status = 'cancelled' WHERE user_id = $1 AND gig_id = $2 AND status = 'pending'`
	tag, err := r.exec(ctx, stmt, userID, gigID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("cancel reminder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReminderNotFound
	}
	return nil
}

func (r *ReminderRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ReminderRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
