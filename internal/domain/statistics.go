package domain

import "context"

// EventStatistics summarizes registrations for a single event.
// AvailableSpots is nil when the event has no capacity limit.
// swagger:model EventStatistics
type EventStatistics struct {
	EventID            string               `json:"event_id"`
	TotalRegistrations int                  `json:"total_registrations"`
	Capacity           *int                 `json:"capacity"`
	AvailableSpots     *int                 `json:"available_spots"`
	Registrations      []*EventRegistration `json:"registrations"`
}

// OrganizerDashboard aggregates counts over all events owned by an organizer.
// swagger:model OrganizerDashboard
type OrganizerDashboard struct {
	OrganizerID        string   `json:"organizer_id"`
	TotalEvents        int      `json:"total_events"`
	TotalRegistrations int      `json:"total_registrations"`
	Events             []*Event `json:"events"`
}

// StatisticsService is a read-only composition over the event catalog and the
// registration engine. It holds no state of its own.
type StatisticsService interface {
	// EventStatistics is organizer-only; callers who do not own the event get
	// ErrForbidden.
	EventStatistics(ctx context.Context, eventID, callerID string) (*EventStatistics, error)
	OrganizerDashboard(ctx context.Context, organizerID string) (*OrganizerDashboard, error)
}
