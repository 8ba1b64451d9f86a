package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitevents/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	venueRepo      domain.VenueRepository
	userRepo       domain.UserRepository
	imageRepo      domain.EventImageRepository
	files          domain.FileStore
	guard          domain.OwnershipGuard
	contextTimeout time.Duration
}

// NewEventService creates the event catalog service.
func NewEventService(eventRepo domain.EventRepository,
	venueRepo domain.VenueRepository,
	userRepo domain.UserRepository,
	imageRepo domain.EventImageRepository,
	files domain.FileStore,
	guard domain.OwnershipGuard,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		venueRepo:      venueRepo,
		userRepo:       userRepo,
		imageRepo:      imageRepo,
		files:          files,
		guard:          guard,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, input domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := time.Now()
	if err := validateEventInput(input, now); err != nil {
		return nil, err
	}

	organizer, err := s.userRepo.GetByID(ctx, input.OrganizerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get organizer: %w", err)
	}
	if !organizer.IsOrganizer {
		return nil, domain.ErrForbidden
	}
	if _, err := s.venueRepo.GetByID(ctx, input.VenueID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}

	event := &domain.Event{
		OrganizerID: input.OrganizerID,
		VenueID:     input.VenueID,
		Name:        input.Name,
		Description: input.Description,
		EventType:   input.EventType,
		CreatedAt:   now,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Capacity:    input.Capacity,
		ImageURL:    input.ImageURL,
		Status:      input.Status,
	}
	if input.Price != nil {
		event.Price = *input.Price
	}
	if event.Status == "" {
		event.Status = domain.EventStatusUpcoming
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, callerID string, input domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	owner, err := s.guard.IsEventOwner(ctx, eventID, callerID)
	if err != nil {
		return nil, err
	}
	if !owner {
		return nil, domain.ErrForbidden
	}

	if err := validateTimeRange(input.StartTime, input.EndTime); err != nil {
		return nil, err
	}
	if input.Capacity != nil && *input.Capacity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.Price != nil && *input.Price < 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.Status != "" && !domain.ValidEventStatus(input.Status) {
		return nil, domain.ErrInvalidInput
	}

	// Re-resolve the organizer and venue only when the reference changes.
	if input.OrganizerID != "" && input.OrganizerID != event.OrganizerID {
		newOrganizer, err := s.userRepo.GetByID(ctx, input.OrganizerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get new organizer: %w", err)
		}
		if !newOrganizer.IsOrganizer {
			return nil, domain.ErrForbidden
		}
		event.OrganizerID = input.OrganizerID
	}
	if input.VenueID != "" && input.VenueID != event.VenueID {
		if _, err := s.venueRepo.GetByID(ctx, input.VenueID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get new venue: %w", err)
		}
		event.VenueID = input.VenueID
	}

	event.Name = input.Name
	event.Description = input.Description
	event.EventType = input.EventType
	event.StartTime = input.StartTime
	event.EndTime = input.EndTime
	event.Capacity = input.Capacity
	event.ImageURL = input.ImageURL
	event.Price = 0
	if input.Price != nil {
		event.Price = *input.Price
	}
	if input.Status != "" {
		event.Status = input.Status
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) Search(ctx context.Context, filter domain.EventSearchFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.Search(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("search events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	owner, err := s.guard.IsEventOwner(ctx, eventID, callerID)
	if err != nil {
		return err
	}
	if !owner {
		return domain.ErrForbidden
	}

	images, err := s.imageRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("list event images: %w", err)
	}

	// Registrations, saved events, and image rows cascade at the storage layer.
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}

	// Stored image files are removed best effort; the rows are already gone.
	for _, img := range images {
		_ = s.files.Remove(ctx, img.ImageURL)
	}
	return nil
}

func validateEventInput(input domain.EventInput, now time.Time) error {
	if input.Name == "" || input.OrganizerID == "" || input.VenueID == "" {
		return domain.ErrInvalidInput
	}
	if err := validateTimeRange(input.StartTime, input.EndTime); err != nil {
		return err
	}
	if !input.StartTime.After(now) {
		return domain.ErrInvalidInput
	}
	if input.Capacity != nil && *input.Capacity < 0 {
		return domain.ErrInvalidInput
	}
	if input.Price != nil && *input.Price < 0 {
		return domain.ErrInvalidInput
	}
	if input.Status != "" && !domain.ValidEventStatus(input.Status) {
		return domain.ErrInvalidInput
	}
	return nil
}

func validateTimeRange(start time.Time, end *time.Time) error {
	if start.IsZero() {
		return domain.ErrInvalidInput
	}
	if end != nil && !end.After(start) {
		return domain.ErrInvalidInput
	}
	return nil
}
