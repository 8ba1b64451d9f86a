package postgres

import (
	"context"
	"database/sql"
	"errors"

	"bitevents/internal/domain"
)

type eventRegistrationRepository struct {
	DB *sql.DB
}

func NewEventRegistrationRepository(db *sql.DB) domain.EventRegistrationRepository {
	return &eventRegistrationRepository{
		DB: db,
	}
}

const registrationColumns = `id, event_id, user_id, registered_at, status, ticket_code, notes`

func (r *eventRegistrationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.DB, fn)
}

// GetEventCapacityForUpdate locks the event row for the rest of the
// transaction, serializing concurrent registrations for the same event.
func (r *eventRegistrationRepository) GetEventCapacityForUpdate(ctx context.Context, eventID string) (*int, error) {
	query := `SELECT capacity FROM events WHERE id = $1 FOR UPDATE`
	var capNull sql.NullInt64
	err := q(ctx, r.DB).QueryRowContext(ctx, query, eventID).Scan(&capNull)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if !capNull.Valid {
		return nil, nil
	}
	c := int(capNull.Int64)
	return &c, nil
}

func (r *eventRegistrationRepository) Create(ctx context.Context, reg *domain.EventRegistration) error {
	query := `
		INSERT INTO event_registrations (event_id, user_id, registered_at, status, ticket_code, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := q(ctx, r.DB).QueryRowContext(ctx, query,
		reg.EventID, reg.UserID, reg.RegisteredAt, reg.Status, reg.TicketCode, reg.Notes,
	).Scan(&reg.ID)
	if err != nil {
		if isUniqueViolation(err, "event_registrations_active_pair_key") {
			return domain.ErrAlreadyRegistered
		}
		if isUniqueViolation(err, "event_registrations_ticket_code_key") {
			return domain.ErrTicketCodeTaken
		}
		return err
	}
	return nil
}

func (r *eventRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.EventRegistration, error) {
	query := `SELECT ` + registrationColumns + ` FROM event_registrations WHERE id = $1`
	reg, err := scanRegistration(q(ctx, r.DB).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *eventRegistrationRepository) GetConfirmedByEventAndUser(ctx context.Context, eventID, userID string) (*domain.EventRegistration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM event_registrations
		WHERE event_id = $1 AND user_id = $2 AND status = $3
	`
	reg, err := scanRegistration(q(ctx, r.DB).QueryRowContext(ctx, query,
		eventID, userID, domain.RegistrationStatusConfirmed))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *eventRegistrationRepository) CountConfirmedByEventID(ctx context.Context, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM event_registrations WHERE event_id = $1 AND status = $2`
	var count int
	err := q(ctx, r.DB).QueryRowContext(ctx, query, eventID, domain.RegistrationStatusConfirmed).Scan(&count)
	return count, err
}

func (r *eventRegistrationRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE event_registrations SET status = $1 WHERE id = $2`
	result, err := q(ctx, r.DB).ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRegistrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.EventRegistration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM event_registrations
		WHERE user_id = $1
		ORDER BY registered_at ASC
	`
	return r.list(ctx, query, userID)
}

func (r *eventRegistrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventRegistration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM event_registrations
		WHERE event_id = $1
		ORDER BY registered_at ASC
	`
	return r.list(ctx, query, eventID)
}

func (r *eventRegistrationRepository) list(ctx context.Context, query string, arg any) ([]*domain.EventRegistration, error) {
	rows, err := q(ctx, r.DB).QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := make([]*domain.EventRegistration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func scanRegistration(row rowScanner) (*domain.EventRegistration, error) {
	reg := &domain.EventRegistration{}
	var notesNull sql.NullString
	err := row.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.RegisteredAt,
		&reg.Status, &reg.TicketCode, &notesNull)
	if err != nil {
		return nil, err
	}
	if notesNull.Valid {
		reg.Notes = &notesNull.String
	}
	return reg, nil
}
