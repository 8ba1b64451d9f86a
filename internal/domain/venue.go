package domain

import (
	"context"
	"errors"
	"time"
)

// ErrVenueInUse is returned when deleting a venue that still has events
// referencing it.
var ErrVenueInUse = errors.New("venue has events referencing it")

// Venue represents a place where events are held. OwnerID is nullable:
// pre-existing venues may lack an owner.
// swagger:model Venue
type Venue struct {
	ID        string    `json:"id"`
	OwnerID   *string   `json:"owner_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	MapURL    *string   `json:"map_url"`
	CreatedAt time.Time `json:"created_at"`
}

// NewVenue returns a new Venue with the given fields. ID is typically set by the repository on create.
func NewVenue(ownerID *string, name, address, city string, createdAt time.Time) *Venue {
	return &Venue{
		OwnerID:   ownerID,
		Name:      name,
		Address:   address,
		City:      city,
		CreatedAt: createdAt,
	}
}

// VenueRepository defines the interface for venue storage
type VenueRepository interface {
	Create(ctx context.Context, venue *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Venue, error)
	Update(ctx context.Context, venue *Venue) error
	Delete(ctx context.Context, id string) error
	CountByOwnerID(ctx context.Context, ownerID string) (int, error)
}

// VenueInput carries the mutable venue fields for create and update.
type VenueInput struct {
	Name      string
	Address   string
	City      string
	Latitude  *float64
	Longitude *float64
	MapURL    *string
}

// VenueService defines venue management operations.
type VenueService interface {
	CreateVenue(ctx context.Context, ownerID string, input VenueInput) (*Venue, error)
	GetByID(ctx context.Context, id string) (*Venue, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Venue, error)
	UpdateVenue(ctx context.Context, venueID, callerID string, input VenueInput) (*Venue, error)
	// DeleteVenue fails with ErrVenueInUse while events reference the venue.
	DeleteVenue(ctx context.Context, venueID, callerID string) error
}
