package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"path"

	"bitevents/internal/domain"
)

type eventImageService struct {
	imageRepo domain.EventImageRepository
	files     domain.FileStore
	guard     domain.OwnershipGuard
}

// NewEventImageService creates the event gallery service.
func NewEventImageService(imageRepo domain.EventImageRepository, files domain.FileStore, guard domain.OwnershipGuard) domain.EventImageService {
	return &eventImageService{
		imageRepo: imageRepo,
		files:     files,
		guard:     guard,
	}
}

func (s *eventImageService) AddImage(ctx context.Context, eventID, callerID, filename string, data []byte) (*domain.EventImage, error) {
	owner, err := s.guard.IsEventOwner(ctx, eventID, callerID)
	if err != nil {
		return nil, err
	}
	if !owner {
		return nil, domain.ErrForbidden
	}
	if len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}

	key, err := imageKey(eventID, filename)
	if err != nil {
		return nil, fmt.Errorf("build image key: %w", err)
	}
	url, err := s.files.Save(ctx, key, data)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	count, err := s.imageRepo.CountByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count images: %w", err)
	}
	image := &domain.EventImage{
		EventID:      eventID,
		ImageURL:     url,
		IsPrimary:    count == 0, // the first image becomes the primary one
		DisplayOrder: count,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		_ = s.files.Remove(ctx, url)
		return nil, fmt.Errorf("create image: %w", err)
	}
	return image, nil
}

func (s *eventImageService) ListByEvent(ctx context.Context, eventID string) ([]*domain.EventImage, error) {
	images, err := s.imageRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	if images == nil {
		images = []*domain.EventImage{}
	}
	return images, nil
}

func (s *eventImageService) SetPrimary(ctx context.Context, eventID, imageID, callerID string) error {
	owner, err := s.guard.IsEventOwner(ctx, eventID, callerID)
	if err != nil {
		return err
	}
	if !owner {
		return domain.ErrForbidden
	}
	if err := s.imageRepo.SetPrimary(ctx, eventID, imageID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("set primary image: %w", err)
	}
	return nil
}

func (s *eventImageService) DeleteImage(ctx context.Context, eventID, imageID, callerID string) error {
	owner, err := s.guard.IsEventOwner(ctx, eventID, callerID)
	if err != nil {
		return err
	}
	if !owner {
		return domain.ErrForbidden
	}

	image, err := s.imageRepo.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get image: %w", err)
	}
	if image.EventID != eventID {
		return domain.ErrNotFound
	}

	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete image: %w", err)
	}
	_ = s.files.Remove(ctx, image.ImageURL)
	return nil
}

// imageKey namespaces stored files by event and prefixes a random token so
// uploads with the same filename never collide.
func imageKey(eventID, filename string) (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return path.Join(eventID, hex.EncodeToString(buf)+"_"+path.Base(filename)), nil
}
