package postgres

import (
	"context"
	"database/sql"
	"errors"

	"bitevents/internal/domain"
)

type venueRepository struct {
	DB *sql.DB
}

func NewVenueRepository(db *sql.DB) domain.VenueRepository {
	return &venueRepository{
		DB: db,
	}
}

const venueColumns = `id, owner_id, name, address, city, latitude, longitude, map_url, created_at`

func (r *venueRepository) Create(ctx context.Context, v *domain.Venue) error {
	query := `
		INSERT INTO venues (owner_id, name, address, city, latitude, longitude, map_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return q(ctx, r.DB).QueryRowContext(ctx, query,
		v.OwnerID, v.Name, v.Address, v.City, v.Latitude, v.Longitude, v.MapURL, v.CreatedAt,
	).Scan(&v.ID)
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`
	v, err := scanVenue(q(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *venueRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := q(ctx, r.DB).QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *venueRepository) Update(ctx context.Context, v *domain.Venue) error {
	query := `
		UPDATE venues
		SET name = $1, address = $2, city = $3, latitude = $4, longitude = $5, map_url = $6
		WHERE id = $7
	`
	result, err := q(ctx, r.DB).ExecContext(ctx, query,
		v.Name, v.Address, v.City, v.Latitude, v.Longitude, v.MapURL, v.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *venueRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM venues WHERE id = $1`
	result, err := q(ctx, r.DB).ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *venueRepository) CountByOwnerID(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := q(ctx, r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM venues WHERE owner_id = $1`, ownerID).Scan(&count)
	return count, err
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (*domain.Venue, error) {
	v := &domain.Venue{}
	var ownerNull, mapURLNull sql.NullString
	var latNull, lngNull sql.NullFloat64
	err := row.Scan(&v.ID, &ownerNull, &v.Name, &v.Address, &v.City,
		&latNull, &lngNull, &mapURLNull, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	if ownerNull.Valid {
		v.OwnerID = &ownerNull.String
	}
	if latNull.Valid {
		v.Latitude = &latNull.Float64
	}
	if lngNull.Valid {
		v.Longitude = &lngNull.Float64
	}
	if mapURLNull.Valid {
		v.MapURL = &mapURLNull.String
	}
	return v, nil
}
