package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitevents/internal/domain"
)

type savedEventService struct {
	savedRepo domain.SavedEventRepository
	eventRepo domain.EventRepository
	userRepo  domain.UserRepository
}

// NewSavedEventService creates the saved-events ledger.
func NewSavedEventService(
	savedRepo domain.SavedEventRepository,
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
) domain.SavedEventService {
	return &savedEventService{
		savedRepo: savedRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
}

func (s *savedEventService) Save(ctx context.Context, eventID, userID string) (*domain.SavedEvent, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	saved := domain.NewSavedEvent(userID, eventID, time.Now())
	if err := s.savedRepo.Create(ctx, saved); err != nil {
		if errors.Is(err, domain.ErrAlreadySaved) {
			return nil, domain.ErrAlreadySaved
		}
		return nil, fmt.Errorf("save event: %w", err)
	}
	return saved, nil
}

func (s *savedEventService) Unsave(ctx context.Context, eventID, userID string) error {
	if err := s.savedRepo.Delete(ctx, userID, eventID); err != nil {
		return fmt.Errorf("unsave event: %w", err)
	}
	return nil
}

func (s *savedEventService) ListSaved(ctx context.Context, userID string) ([]*domain.Event, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	events, err := s.savedRepo.ListEventsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *savedEventService) IsSaved(ctx context.Context, eventID, userID string) (bool, error) {
	saved, err := s.savedRepo.Exists(ctx, userID, eventID)
	if err != nil {
		return false, fmt.Errorf("check saved event: %w", err)
	}
	return saved, nil
}
