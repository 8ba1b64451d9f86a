package domain

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadySaved is returned when saving an event the user already saved.
var ErrAlreadySaved = errors.New("event already saved")

// SavedEvent is a bookmark relating a user to an event. Independent of
// registration and capacity logic.
// swagger:model SavedEvent
type SavedEvent struct {
	ID      string    `json:"id"`
	UserID  string    `json:"user_id"`
	EventID string    `json:"event_id"`
	SavedAt time.Time `json:"saved_at"`
}

// NewSavedEvent returns a new SavedEvent. ID is typically set by the repository on create.
func NewSavedEvent(userID, eventID string, savedAt time.Time) *SavedEvent {
	return &SavedEvent{
		UserID:  userID,
		EventID: eventID,
		SavedAt: savedAt,
	}
}

// SavedEventRepository defines storage operations for saved-event bookmarks.
type SavedEventRepository interface {
	Create(ctx context.Context, saved *SavedEvent) error
	// Delete removes the bookmark; removing an absent bookmark is a no-op.
	Delete(ctx context.Context, userID, eventID string) error
	Exists(ctx context.Context, userID, eventID string) (bool, error)
	// ListEventsByUserID returns the saved events ordered by save time descending.
	ListEventsByUserID(ctx context.Context, userID string) ([]*Event, error)
}

// SavedEventService defines the bookmark operations.
type SavedEventService interface {
	Save(ctx context.Context, eventID, userID string) (*SavedEvent, error)
	// Unsave is idempotent: unsaving a never-saved event succeeds.
	Unsave(ctx context.Context, eventID, userID string) error
	ListSaved(ctx context.Context, userID string) ([]*Event, error)
	IsSaved(ctx context.Context, eventID, userID string) (bool, error)
}
