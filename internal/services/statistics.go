package services

import (
	"context"
	"fmt"

	"bitevents/internal/domain"
)

// statisticsService derives per-event and per-organizer counts by composing
// catalog and registration reads. It holds no state of its own.
type statisticsService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.EventRegistrationRepository
	guard            domain.OwnershipGuard
}

// NewStatisticsService creates the read-only statistics aggregator.
func NewStatisticsService(
	eventRepo domain.EventRepository,
	registrationRepo domain.EventRegistrationRepository,
	guard domain.OwnershipGuard,
) domain.StatisticsService {
	return &statisticsService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		guard:            guard,
	}
}

func (s *statisticsService) EventStatistics(ctx context.Context, eventID, callerID string) (*domain.EventStatistics, error) {
	owner, err := s.guard.IsEventOwner(ctx, eventID, callerID)
	if err != nil {
		return nil, err
	}
	if !owner {
		return nil, domain.ErrForbidden
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}

	active, err := s.registrationRepo.CountConfirmedByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	regs, err := s.registrationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if regs == nil {
		regs = []*domain.EventRegistration{}
	}

	stats := &domain.EventStatistics{
		EventID:            eventID,
		TotalRegistrations: active,
		Capacity:           event.Capacity,
		Registrations:      regs,
	}
	if event.Capacity != nil {
		available := *event.Capacity - active
		stats.AvailableSpots = &available
	}
	return stats, nil
}

func (s *statisticsService) OrganizerDashboard(ctx context.Context, organizerID string) (*domain.OrganizerDashboard, error) {
	events, err := s.eventRepo.ListByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}

	totalRegistrations := 0
	for _, event := range events {
		active, err := s.registrationRepo.CountConfirmedByEventID(ctx, event.ID)
		if err != nil {
			return nil, fmt.Errorf("count registrations for event %s: %w", event.ID, err)
		}
		totalRegistrations += active
	}

	return &domain.OrganizerDashboard{
		OrganizerID:        organizerID,
		TotalEvents:        len(events),
		TotalRegistrations: totalRegistrations,
		Events:             events,
	}, nil
}
