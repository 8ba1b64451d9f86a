package postgres

import (
	"context"
	"database/sql"

	"bitevents/internal/domain"
)

type savedEventRepository struct {
	DB *sql.DB
}

func NewSavedEventRepository(db *sql.DB) domain.SavedEventRepository {
	return &savedEventRepository{
		DB: db,
	}
}

func (r *savedEventRepository) Create(ctx context.Context, saved *domain.SavedEvent) error {
	query := `
		INSERT INTO saved_events (user_id, event_id, saved_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := q(ctx, r.DB).QueryRowContext(ctx, query, saved.UserID, saved.EventID, saved.SavedAt).Scan(&saved.ID)
	if err != nil {
		if isUniqueViolation(err, "saved_events_user_event_key") {
			return domain.ErrAlreadySaved
		}
		return err
	}
	return nil
}

// Delete is idempotent: removing an absent bookmark is not an error.
func (r *savedEventRepository) Delete(ctx context.Context, userID, eventID string) error {
	query := `DELETE FROM saved_events WHERE user_id = $1 AND event_id = $2`
	_, err := q(ctx, r.DB).ExecContext(ctx, query, userID, eventID)
	return err
}

func (r *savedEventRepository) Exists(ctx context.Context, userID, eventID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM saved_events WHERE user_id = $1 AND event_id = $2)`
	var exists bool
	err := q(ctx, r.DB).QueryRowContext(ctx, query, userID, eventID).Scan(&exists)
	return exists, err
}

func (r *savedEventRepository) ListEventsByUserID(ctx context.Context, userID string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM saved_events s
		JOIN events e ON e.id = s.event_id
		WHERE s.user_id = $1
		ORDER BY s.saved_at DESC
	`
	rows, err := q(ctx, r.DB).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
