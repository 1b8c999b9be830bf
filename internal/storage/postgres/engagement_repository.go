package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joshua-simon/gig-fort-v2/internal/domain"
)

type EngagementRepository struct {
	pool *pgxpool.Pool
}

func NewEngagementRepository(pool *pgxpool.Pool) *EngagementRepository {
	return &EngagementRepository{pool: pool}
}

func (r *EngagementRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *EngagementRepository) GigExists(ctx context.Context, gigID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM gigs WHERE id = $1)`
	var exists bool
	if err := r.queryRow(ctx, query, gigID).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("gig exists: %w", err)
	}
	return exists, nil
}

func (r *EngagementRepository) HasLike(ctx context.Context, userID, gigID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM gig_likes WHERE user_id = $1 AND gig_id = $2)`
	var exists bool
	if err := r.queryRow(ctx, query, userID, gigID).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("has like: %w", err)
	}
	return exists, nil
}

func (r *EngagementRepository) InsertLike(ctx context.Context, userID, gigID string) error {
	const stmt = `INSERT INTO gig_likes (user_id, gig_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.exec(ctx, stmt, userID, gigID); err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("insert like: %w", err)
	}
	return nil
}

func (r *EngagementRepository) DeleteLike(ctx context.Context, userID, gigID string) error {
	const stmt = `DELETE FROM gig_likes WHERE user_id = $1 AND gig_id = $2`
	if _, err := r.exec(ctx, stmt, userID, gigID); err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete like: %w", err)
	}
	return nil
}

// AdjustLikes moves the denormalized like counter, clamped at zero.
func (r *EngagementRepository) AdjustLikes(ctx context.Context, gigID string, delta int) error {
	const stmt = `UPDATE gigs SET likes = GREATEST(likes + $2, 0) WHERE id = $1`
	tag, err := r.exec(ctx, stmt, gigID, delta)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("adjust likes: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGigNotFound
	}
	return nil
}

func (r *EngagementRepository) HasSave(ctx context.Context, userID, gigID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM saved_gigs WHERE user_id = $1 AND gig_id = $2)`
	var exists bool
	if err := r.queryRow(ctx, query, userID, gigID).Scan(&exists); err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("has save: %w", err)
	}
	return exists, nil
}

func (r *EngagementRepository) InsertSave(ctx context.Context, userID, gigID string) error {
	const stmt = `INSERT INTO saved_gigs (user_id, gig_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.exec(ctx, stmt, userID, gigID); err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("insert save: %w", err)
	}
	return nil
}

func (r *EngagementRepository) DeleteSave(ctx context.Context, userID, gigID string) error {
	const stmt = `DELETE FROM saved_gigs WHERE user_id = $1 AND gig_id = $2`
	if _, err := r.exec(ctx, stmt, userID, gigID); err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete save: %w", err)
	}
	return nil
}

func (r *EngagementRepository) ListSavedGigs(ctx context.Context, userID string) ([]domain.Gig, error) {
	const query = `
SELECT g.id, g.name, g.sub_header, g.venue, g.blurb, g.address, g.city, g.starts_at, g.latitude, g.longitude, g.genre, g.genre_tags, g.is_free, g.ticket_price, g.ticket_url, g.image_url, g.likes
FROM gigs g
JOIN saved_gigs s ON s.gig_id = g.id
WHERE s.user_id = $1
ORDER BY g.starts_at, g.id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved gigs: %w", err)
	}
	defer rows.Close()

	gigs := make([]domain.Gig, 0)
	for rows.Next() {
		gig, err := scanGig(rows)
		if err != nil {
			return nil, fmt.Errorf("scan saved gig: %w", err)
		}
		gigs = append(gigs, gig)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list saved gigs: %w", err)
	}
	return gigs, nil
}

func (r *EngagementRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *EngagementRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
