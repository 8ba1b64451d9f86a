package domain

import (
	"context"
	"time"
)

// Event status values.
const (
	EventStatusUpcoming  = "Upcoming"
	EventStatusCancelled = "Cancelled"
	EventStatusPostponed = "Postponed"
	EventStatusSoldOut   = "Sold Out"
	EventStatusCompleted = "Completed"
)

// ValidEventStatus reports whether s is one of the known event statuses.
func ValidEventStatus(s string) bool {
	switch s {
	case EventStatusUpcoming, EventStatusCancelled, EventStatusPostponed,
		EventStatusSoldOut, EventStatusCompleted:
		return true
	}
	return false
}

// Event represents a published event. Capacity is nil for unlimited events.
// swagger:model Event
type Event struct {
	ID          string     `json:"id"`
	OrganizerID string     `json:"organizer_id"`
	VenueID     string     `json:"venue_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	EventType   string     `json:"event_type"`
	CreatedAt   time.Time  `json:"created_at"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Capacity    *int       `json:"capacity"`
	Price       float64    `json:"price"`
	ImageURL    *string    `json:"image_url"`
	Status      string     `json:"status"`
}

// EventInput carries the caller-supplied event fields for create and update.
// Price defaults to 0 and Status to Upcoming when absent.
type EventInput struct {
	OrganizerID string
	VenueID     string
	Name        string
	Description string
	EventType   string
	StartTime   time.Time
	EndTime     *time.Time
	Capacity    *int
	Price       *float64
	ImageURL    *string
	Status      string
}

// EventSearchFilter holds the optional search filters. All filters combine
// with AND; zero values mean "no filter".
type EventSearchFilter struct {
	Query     string
	Cities    []string
	EventType string
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, event *Event) error
	// Search returns matching events ordered by start time ascending, plus the
	// total match count before pagination.
	Search(ctx context.Context, filter EventSearchFilter, params PaginationParams) ([]*Event, int, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Event, error)
	// Delete removes the event; registrations, saved events, and images cascade
	// at the storage layer.
	Delete(ctx context.Context, id string) error
	CountByOrganizerID(ctx context.Context, organizerID string) (int, error)
	CountByVenueID(ctx context.Context, venueID string) (int, error)
}

// EventService defines the event catalog operations.
type EventService interface {
	CreateEvent(ctx context.Context, input EventInput) (*Event, error)
	UpdateEvent(ctx context.Context, eventID, callerID string, input EventInput) (*Event, error)
	GetByID(ctx context.Context, eventID string) (*Event, error)
	Search(ctx context.Context, filter EventSearchFilter, params PaginationParams) ([]*Event, int, error)
	DeleteEvent(ctx context.Context, eventID, callerID string) error
}

// OwnershipGuard verifies that a caller owns the resource they are mutating.
// Predicates are side-effect-free; a missing event or venue propagates as
// ErrNotFound.
type OwnershipGuard interface {
	IsEventOwner(ctx context.Context, eventID, userID string) (bool, error)
	IsVenueOwner(ctx context.Context, venueID, userID string) (bool, error)
}
