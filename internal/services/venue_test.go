package services

import (
	"context"
	"errors"
	"testing"

	"bitevents/internal/domain"
)

func venueFixture() (*mockVenueRepository, *mockEventRepository, domain.VenueService) {
	venueRepo := &mockVenueRepository{venues: map[string]*domain.Venue{}}
	eventRepo := &mockEventRepository{events: map[string]*domain.Event{}}
	guard := NewOwnershipGuard(eventRepo, venueRepo)
	return venueRepo, eventRepo, NewVenueService(venueRepo, eventRepo, guard)
}

func floatPtr(v float64) *float64 { return &v }

func TestVenueService_CreateVenue(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   domain.VenueInput
		wantErr error
	}{
		{
			name:  "valid venue with coordinates",
			input: domain.VenueInput{Name: "Main Hall", City: "Berlin", Latitude: floatPtr(52.52), Longitude: floatPtr(13.405)},
		},
		{
			name:    "missing name",
			input:   domain.VenueInput{City: "Berlin"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "missing city",
			input:   domain.VenueInput{Name: "Main Hall"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "latitude out of range",
			input:   domain.VenueInput{Name: "Main Hall", City: "Berlin", Latitude: floatPtr(91)},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "longitude out of range",
			input:   domain.VenueInput{Name: "Main Hall", City: "Berlin", Longitude: floatPtr(-181)},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, svc := venueFixture()
			venue, err := svc.CreateVenue(ctx, "owner-1", tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if venue.OwnerID == nil || *venue.OwnerID != "owner-1" {
				t.Fatalf("expected owner set, got %+v", venue.OwnerID)
			}
		})
	}
}

func TestVenueService_DeleteVenue(t *testing.T) {
	ctx := context.Background()

	t.Run("rejected while events reference the venue", func(t *testing.T) {
		venueRepo, eventRepo, svc := venueFixture()
		venue, err := svc.CreateVenue(ctx, "owner-1", domain.VenueInput{Name: "Main Hall", City: "Berlin"})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		eventRepo.countByVenue = map[string]int{venue.ID: 3}

		if err := svc.DeleteVenue(ctx, venue.ID, "owner-1"); !errors.Is(err, domain.ErrVenueInUse) {
			t.Fatalf("expected ErrVenueInUse, got %v", err)
		}
		if _, err := venueRepo.GetByID(ctx, venue.ID); err != nil {
			t.Fatalf("venue should still exist: %v", err)
		}
	})

	t.Run("owner deletes an unused venue", func(t *testing.T) {
		venueRepo, _, svc := venueFixture()
		venue, err := svc.CreateVenue(ctx, "owner-1", domain.VenueInput{Name: "Main Hall", City: "Berlin"})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if err := svc.DeleteVenue(ctx, venue.ID, "owner-1"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := venueRepo.GetByID(ctx, venue.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected venue gone, got %v", err)
		}
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		_, _, svc := venueFixture()
		venue, err := svc.CreateVenue(ctx, "owner-1", domain.VenueInput{Name: "Main Hall", City: "Berlin"})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if err := svc.DeleteVenue(ctx, venue.ID, "intruder"); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})
}

func TestVenueService_UpdateVenue(t *testing.T) {
	ctx := context.Background()
	_, _, svc := venueFixture()

	venue, err := svc.CreateVenue(ctx, "owner-1", domain.VenueInput{Name: "Main Hall", City: "Berlin"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.UpdateVenue(ctx, venue.ID, "owner-1", domain.VenueInput{Name: "Side Hall", City: "Munich"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Side Hall" || updated.City != "Munich" {
		t.Fatalf("update not applied: %+v", updated)
	}

	if _, err := svc.UpdateVenue(ctx, venue.ID, "intruder", domain.VenueInput{Name: "X", City: "Y"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
