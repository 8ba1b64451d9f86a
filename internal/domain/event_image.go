package domain

import "context"

// EventImage is gallery metadata for an event. At most one image per event is
// primary.
// swagger:model EventImage
type EventImage struct {
	ID           string `json:"id"`
	EventID      string `json:"event_id"`
	ImageURL     string `json:"image_url"`
	IsPrimary    bool   `json:"is_primary"`
	DisplayOrder int    `json:"display_order"`
}

// EventImageRepository defines storage operations for event images.
type EventImageRepository interface {
	Create(ctx context.Context, image *EventImage) error
	GetByID(ctx context.Context, id string) (*EventImage, error)
	ListByEventID(ctx context.Context, eventID string) ([]*EventImage, error)
	// SetPrimary marks the image primary and clears the flag on the event's
	// other images in the same transaction.
	SetPrimary(ctx context.Context, eventID, imageID string) error
	Delete(ctx context.Context, id string) error
	CountByEventID(ctx context.Context, eventID string) (int, error)
}

// FileStore stores binary blobs by key and returns a retrievable URL.
type FileStore interface {
	Save(ctx context.Context, key string, data []byte) (url string, err error)
	Remove(ctx context.Context, key string) error
}

// EventImageService defines event gallery management. All mutations are
// organizer-only.
type EventImageService interface {
	AddImage(ctx context.Context, eventID, callerID, filename string, data []byte) (*EventImage, error)
	ListByEvent(ctx context.Context, eventID string) ([]*EventImage, error)
	SetPrimary(ctx context.Context, eventID, imageID, callerID string) error
	DeleteImage(ctx context.Context, eventID, imageID, callerID string) error
}
