package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bitevents/internal/domain"
)

type venueService struct {
	venueRepo domain.VenueRepository
	eventRepo domain.EventRepository
	guard     domain.OwnershipGuard
}

// NewVenueService creates the venue catalog service.
func NewVenueService(venueRepo domain.VenueRepository, eventRepo domain.EventRepository, guard domain.OwnershipGuard) domain.VenueService {
	return &venueService{
		venueRepo: venueRepo,
		eventRepo: eventRepo,
		guard:     guard,
	}
}

func (s *venueService) CreateVenue(ctx context.Context, ownerID string, input domain.VenueInput) (*domain.Venue, error) {
	if err := validateVenueInput(input); err != nil {
		return nil, err
	}

	venue := domain.NewVenue(&ownerID, input.Name, input.Address, input.City, time.Now())
	venue.Latitude = input.Latitude
	venue.Longitude = input.Longitude
	venue.MapURL = input.MapURL

	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Venue, error) {
	venues, err := s.venueRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	if venues == nil {
		venues = []*domain.Venue{}
	}
	return venues, nil
}

func (s *venueService) UpdateVenue(ctx context.Context, venueID, callerID string, input domain.VenueInput) (*domain.Venue, error) {
	owner, err := s.guard.IsVenueOwner(ctx, venueID, callerID)
	if err != nil {
		return nil, err
	}
	if !owner {
		return nil, domain.ErrForbidden
	}
	if err := validateVenueInput(input); err != nil {
		return nil, err
	}

	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	venue.Name = input.Name
	venue.Address = input.Address
	venue.City = input.City
	venue.Latitude = input.Latitude
	venue.Longitude = input.Longitude
	venue.MapURL = input.MapURL

	if err := s.venueRepo.Update(ctx, venue); err != nil {
		return nil, fmt.Errorf("update venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) DeleteVenue(ctx context.Context, venueID, callerID string) error {
	owner, err := s.guard.IsVenueOwner(ctx, venueID, callerID)
	if err != nil {
		return err
	}
	if !owner {
		return domain.ErrForbidden
	}

	// Referential integrity with events: deletion is rejected, not cascaded.
	count, err := s.eventRepo.CountByVenueID(ctx, venueID)
	if err != nil {
		return fmt.Errorf("count events: %w", err)
	}
	if count > 0 {
		return domain.ErrVenueInUse
	}

	if err := s.venueRepo.Delete(ctx, venueID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete venue: %w", err)
	}
	return nil
}

func validateVenueInput(input domain.VenueInput) error {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.City) == "" {
		return domain.ErrInvalidInput
	}
	if input.Latitude != nil && (*input.Latitude < -90 || *input.Latitude > 90) {
		return domain.ErrInvalidInput
	}
	if input.Longitude != nil && (*input.Longitude < -180 || *input.Longitude > 180) {
		return domain.ErrInvalidInput
	}
	return nil
}
