package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joshua-simon/gig-fort-v2/internal/domain"
)

type GigRepository struct {
	pool *pgxpool.Pool
}

func NewGigRepository(pool *pgxpool.Pool) *GigRepository {
	return &GigRepository{pool: pool}
}

const gigColumns = `id, name, sub_header, venue, blurb, address, city, starts_at, latitude, longitude, genre, genre_tags, is_free, ticket_price, ticket_url, image_url, likes`

func (r *GigRepository) CreateGig(ctx context.Context, gig domain.Gig) error {
	const stmt = `
INSERT INTO gigs (id, name, sub_header, venue, blurb, address, city, starts_at, latitude, longitude, genre, genre_tags, is_free, ticket_price, ticket_url, image_url, likes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	var lat, lon *float64
	if gig.Location != nil {
		lat = &gig.Location.Latitude
		lon = &gig.Location.Longitude
	}

	_, err := r.exec(ctx, stmt,
		gig.ID,
		gig.Name,
		gig.SubHeader,
		gig.Venue,
		gig.Blurb,
		gig.Address,
		gig.City,
		gig.StartsAt,
		lat,
		lon,
		gig.Genre,
		gig.GenreTags,
		gig.IsFree,
		gig.TicketPrice,
		gig.TicketURL,
		gig.ImageURL,
		gig.Likes,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create gig: %w", err)
	}
	return nil
}

func (r *GigRepository) GetGig(ctx context.Context, id string) (domain.Gig, error) {
	query := `SELECT ` + gigColumns + ` FROM gigs WHERE id = $1`

	gig, err := scanGig(r.queryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Gig{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Gig{}, domain.ErrGigNotFound
		}
		return domain.Gig{}, fmt.Errorf("get gig: %w", err)
	}
	return gig, nil
}

func (r *GigRepository) ListGigs(ctx context.Context) ([]domain.Gig, error) {
	query := `SELECT ` + gigColumns + ` FROM gigs ORDER BY starts_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list gigs: %w", err)
	}
	defer rows.Close()

	gigs := make([]domain.Gig, 0)
	for rows.Next() {
		gig, err := scanGig(rows)
		if err != nil {
			return nil, fmt.Errorf("scan gig: %w", err)
		}
		gigs = append(gigs, gig)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list gigs: %w", err)
	}
	return gigs, nil
}

func scanGig(row pgx.Row) (domain.Gig, error) {
	var (
		g        domain.Gig
		lat, lon *float64
	)
	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.SubHeader,
		&g.Venue,
		&g.Blurb,
		&g.Address,
		&g.City,
		&g.StartsAt,
		&lat,
		&lon,
		&g.Genre,
		&g.GenreTags,
		&g.IsFree,
		&g.TicketPrice,
		&g.TicketURL,
		&g.ImageURL,
		&g.Likes,
	)
	if err != nil {
		return domain.Gig{}, err
	}
	if lat != nil && lon != nil {
		g.Location = &domain.Coordinate{Latitude: *lat, Longitude: *lon}
	}
	if g.GenreTags == nil {
		g.GenreTags = []string{}
	}
	return g, nil
}

func (r *GigRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *GigRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
