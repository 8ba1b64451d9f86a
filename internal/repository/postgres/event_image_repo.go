package postgres

import (
	"context"
	"database/sql"
	"errors"

	"bitevents/internal/domain"
)

type eventImageRepository struct {
	DB *sql.DB
}

func NewEventImageRepository(db *sql.DB) domain.EventImageRepository {
	return &eventImageRepository{
		DB: db,
	}
}

func (r *eventImageRepository) Create(ctx context.Context, image *domain.EventImage) error {
	query := `
		INSERT INTO event_images (event_id, image_url, is_primary, display_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return q(ctx, r.DB).QueryRowContext(ctx, query,
		image.EventID, image.ImageURL, image.IsPrimary, image.DisplayOrder,
	).Scan(&image.ID)
}

func (r *eventImageRepository) GetByID(ctx context.Context, id string) (*domain.EventImage, error) {
	query := `SELECT id, event_id, image_url, is_primary, display_order FROM event_images WHERE id = $1`
	img := &domain.EventImage{}
	err := q(ctx, r.DB).QueryRowContext(ctx, query, id).Scan(
		&img.ID, &img.EventID, &img.ImageURL, &img.IsPrimary, &img.DisplayOrder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return img, nil
}

func (r *eventImageRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventImage, error) {
	query := `
		SELECT id, event_id, image_url, is_primary, display_order
		FROM event_images
		WHERE event_id = $1
		ORDER BY display_order ASC, id ASC
	`
	rows, err := q(ctx, r.DB).QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make([]*domain.EventImage, 0)
	for rows.Next() {
		img := &domain.EventImage{}
		if err := rows.Scan(&img.ID, &img.EventID, &img.ImageURL, &img.IsPrimary, &img.DisplayOrder); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// SetPrimary clears the event's current primary flag and sets the new one in
// a single transaction, keeping the partial unique index satisfied.
func (r *eventImageRepository) SetPrimary(ctx context.Context, eventID, imageID string) error {
	return withTx(ctx, r.DB, func(ctx context.Context) error {
		clear := `UPDATE event_images SET is_primary = FALSE WHERE event_id = $1 AND is_primary`
		if _, err := q(ctx, r.DB).ExecContext(ctx, clear, eventID); err != nil {
			return err
		}
		set := `UPDATE event_images SET is_primary = TRUE WHERE id = $1 AND event_id = $2`
		result, err := q(ctx, r.DB).ExecContext(ctx, set, imageID, eventID)
		if err != nil {
			return err
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *eventImageRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM event_images WHERE id = $1`
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

func (r *eventImageRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	var count int
	err := q(ctx, r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM event_images WHERE event_id = $1`, eventID).Scan(&count)
	return count, err
}
