package domain

import (
	"context"
	"errors"
	"time"
)

// Registration status values. A registration is "active" while Confirmed.
const (
	RegistrationStatusConfirmed = "Confirmed"
	RegistrationStatusCancelled = "Cancelled"
)

// Sentinel errors for registration operations.
var (
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrEventFull         = errors.New("event is full")
	ErrAlreadyCancelled  = errors.New("registration already cancelled")
	// ErrTicketCodeTaken signals a ticket code unique-constraint hit. The
	// service retries with a fresh code; it never reaches callers.
	ErrTicketCodeTaken = errors.New("ticket code already taken")
)

// EventRegistration represents a user's registration for an event.
// swagger:model EventRegistration
type EventRegistration struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	UserID       string    `json:"user_id"`
	RegisteredAt time.Time `json:"registered_at"`
	Status       string    `json:"status"`
	TicketCode   string    `json:"ticket_code"`
	Notes        *string   `json:"notes"`
}

// Active reports whether the registration counts against capacity.
func (r *EventRegistration) Active() bool {
	return r.Status == RegistrationStatusConfirmed
}

// NewEventRegistration creates a Confirmed registration. ID is typically set by the repository on create.
func NewEventRegistration(eventID, userID, ticketCode string, registeredAt time.Time) *EventRegistration {
	return &EventRegistration{
		EventID:      eventID,
		UserID:       userID,
		RegisteredAt: registeredAt,
		Status:       RegistrationStatusConfirmed,
		TicketCode:   ticketCode,
	}
}

// EventRegistrationRepository defines storage operations for registrations.
//
// Register must run its existence check, capacity count, and insert inside a
// single transaction so two concurrent registrations for the last open slot
// cannot both succeed. The partial unique index on (event_id, user_id) for
// Confirmed rows backs the duplicate check; the row lock on the event backs
// the capacity count.
type EventRegistrationRepository interface {
	// WithTx runs fn inside a transaction. Repository calls made through the
	// returned context join the transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	// GetEventCapacityForUpdate locks the event row and returns its capacity
	// (nil for unlimited). ErrNotFound when the event does not exist.
	GetEventCapacityForUpdate(ctx context.Context, eventID string) (*int, error)
	Create(ctx context.Context, reg *EventRegistration) error
	GetByID(ctx context.Context, id string) (*EventRegistration, error)
	GetConfirmedByEventAndUser(ctx context.Context, eventID, userID string) (*EventRegistration, error)
	CountConfirmedByEventID(ctx context.Context, eventID string) (int, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ListByUserID(ctx context.Context, userID string) ([]*EventRegistration, error)
	ListByEventID(ctx context.Context, eventID string) ([]*EventRegistration, error)
}

// RegistrationService defines the registration lifecycle operations.
//
// Cancellation is always a soft status transition Confirmed -> Cancelled,
// reachable both by registration id and by (event, user) pair. Re-registering
// after a cancellation creates a fresh registration with a new ticket code.
type RegistrationService interface {
	Register(ctx context.Context, eventID, userID string) (*EventRegistration, error)
	CancelByID(ctx context.Context, registrationID, callerID string) error
	CancelByEventAndUser(ctx context.Context, eventID, userID string) error
	ListByUser(ctx context.Context, userID string) ([]*EventRegistration, error)
	ListByEvent(ctx context.Context, eventID string) ([]*EventRegistration, error)
	CountActive(ctx context.Context, eventID string) (int, error)
	IsRegistered(ctx context.Context, eventID, userID string) (bool, error)
}
