package controllers

import (
	"log/slog"
	"net/http"

	"bitevents/internal/delivery/http/helpers"
	"bitevents/internal/delivery/http/middleware"
	"bitevents/internal/domain"
)

type SavedEventController struct {
	Logger  *slog.Logger
	Service domain.SavedEventService
}

func NewSavedEventController(logger *slog.Logger, svc domain.SavedEventService) *SavedEventController {
	return &SavedEventController{
		Logger:  logger,
		Service: svc,
	}
}

// SaveEvent godoc
// @Summary Bookmark an event
// @Description Saving the same event twice returns 409.
// @Tags saved-events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 201 {object} helpers.APIResponse "data contains the saved-event entry"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already saved)"
// @Router /events/{eventID}/save [post]
func (c *SavedEventController) SaveEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	saved, err := c.Service.Save(r.Context(), eventID, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, saved)
}

// UnsaveEvent removes the bookmark. Unsaving an event that was never saved
// still succeeds.
func (c *SavedEventController) UnsaveEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Unsave(r.Context(), eventID, userID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "event unsaved"})
}

// ListSavedEvents returns the caller's bookmarked events, most recently
// saved first.
func (c *SavedEventController) ListSavedEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	events, err := c.Service.ListSaved(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// SavedStatus reports whether the caller has bookmarked the event.
func (c *SavedEventController) SavedStatus(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	saved, err := c.Service.IsSaved(r.Context(), eventID, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"saved": saved})
}
