package services

import (
	"context"
	"errors"
	"fmt"

	"bitevents/internal/domain"
)

// ownershipGuard answers "does this user own this event/venue". It is the
// single authorization predicate consumed by the catalog, the registration
// statistics, and the controllers; services never re-implement the check.
type ownershipGuard struct {
	eventRepo domain.EventRepository
	venueRepo domain.VenueRepository
}

// NewOwnershipGuard creates an OwnershipGuard backed by the given repositories.
func NewOwnershipGuard(eventRepo domain.EventRepository, venueRepo domain.VenueRepository) domain.OwnershipGuard {
	return &ownershipGuard{
		eventRepo: eventRepo,
		venueRepo: venueRepo,
	}
}

func (g *ownershipGuard) IsEventOwner(ctx context.Context, eventID, userID string) (bool, error) {
	event, err := g.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("get event: %w", err)
	}
	return event.OrganizerID == userID, nil
}

func (g *ownershipGuard) IsVenueOwner(ctx context.Context, venueID, userID string) (bool, error) {
	venue, err := g.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("get venue: %w", err)
	}
	return venue.OwnerID != nil && *venue.OwnerID == userID, nil
}
