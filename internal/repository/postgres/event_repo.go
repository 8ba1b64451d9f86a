package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"bitevents/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `e.id, e.organizer_id, e.venue_id, e.name, e.description, e.event_type,
	e.created_at, e.start_time, e.end_time, e.capacity, e.price, e.image_url, e.status`

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (organizer_id, venue_id, name, description, event_type, created_at,
			start_time, end_time, capacity, price, image_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	return q(ctx, r.DB).QueryRowContext(ctx, query,
		e.OrganizerID, e.VenueID, e.Name, e.Description, e.EventType, e.CreatedAt,
		e.StartTime, e.EndTime, e.Capacity, e.Price, e.ImageURL, e.Status,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.id = $1`
	e, err := scanEvent(q(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET organizer_id = $1, venue_id = $2, name = $3, description = $4, event_type = $5,
			start_time = $6, end_time = $7, capacity = $8, price = $9, image_url = $10, status = $11
		WHERE id = $12
	`
	result, err := q(ctx, r.DB).ExecContext(ctx, query,
		e.OrganizerID, e.VenueID, e.Name, e.Description, e.EventType,
		e.StartTime, e.EndTime, e.Capacity, e.Price, e.ImageURL, e.Status, e.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search filters are optional and combine with AND: case-insensitive substring
// on name or description, venue city membership, exact event type. Results are
// ordered by start time ascending.
func (r *eventRepository) Search(ctx context.Context, filter domain.EventSearchFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	where := []string{}
	args := []interface{}{}
	n := 1
	if s := strings.TrimSpace(filter.Query); s != "" {
		where = append(where, fmt.Sprintf("(e.name ILIKE $%d OR e.description ILIKE $%d)", n, n))
		args = append(args, "%"+s+"%")
		n++
	}
	if len(filter.Cities) > 0 {
		where = append(where, fmt.Sprintf("v.city = ANY($%d)", n))
		args = append(args, pq.Array(filter.Cities))
		n++
	}
	if filter.EventType != "" {
		where = append(where, fmt.Sprintf("e.event_type = $%d", n))
		args = append(args, filter.EventType)
		n++
	}
	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM events e
		JOIN venues v ON v.id = e.venue_id
		%s
	`, whereClause)
	var total int
	if err := q(ctx, r.DB).QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM events e
		JOIN venues v ON v.id = e.venue_id
		%s
		ORDER BY e.start_time ASC
		LIMIT $%d OFFSET $%d
	`, eventColumns, whereClause, n, n+1)
	args = append(args, params.PageSize, params.Offset())

	rows, err := q(ctx, r.DB).QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events e WHERE e.organizer_id = $1 ORDER BY e.start_time ASC`
	rows, err := q(ctx, r.DB).QueryContext(ctx, query, organizerID)
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

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
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

func (r *eventRepository) CountByOrganizerID(ctx context.Context, organizerID string) (int, error) {
	var count int
	err := q(ctx, r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE organizer_id = $1`, organizerID).Scan(&count)
	return count, err
}

func (r *eventRepository) CountByVenueID(ctx context.Context, venueID string) (int, error) {
	var count int
	err := q(ctx, r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE venue_id = $1`, venueID).Scan(&count)
	return count, err
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var endNull sql.NullTime
	var capNull sql.NullInt64
	var imageNull sql.NullString
	err := row.Scan(&e.ID, &e.OrganizerID, &e.VenueID, &e.Name, &e.Description, &e.EventType,
		&e.CreatedAt, &e.StartTime, &endNull, &capNull, &e.Price, &imageNull, &e.Status)
	if err != nil {
		return nil, err
	}
	if endNull.Valid {
		e.EndTime = &endNull.Time
	}
	if capNull.Valid {
		c := int(capNull.Int64)
		e.Capacity = &c
	}
	if imageNull.Valid {
		e.ImageURL = &imageNull.String
	}
	return e, nil
}
