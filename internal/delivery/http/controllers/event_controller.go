package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bitevents/internal/delivery/http/helpers"
	"bitevents/internal/delivery/http/middleware"
	"bitevents/internal/domain"
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// EventRequest is the request body for event create and update.
type EventRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	EventType   string     `json:"event_type"`
	VenueID     string     `json:"venue_id"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Capacity    *int       `json:"capacity"`
	Price       *float64   `json:"price"`
	ImageURL    *string    `json:"image_url"`
	Status      string     `json:"status"`
}

// Validate implements Validator. The service re-checks semantic rules (time
// ordering, venue existence); this catches shape errors before the round trip.
func (e EventRequest) Validate() []string {
	var errs []string
	if e.Name == "" {
		errs = append(errs, "name is required")
	}
	if !uuidRegex.MatchString(e.VenueID) {
		errs = append(errs, "venue_id must be a valid UUID")
	}
	if e.StartTime.IsZero() {
		errs = append(errs, "start_time is required")
	}
	if e.Capacity != nil && *e.Capacity < 0 {
		errs = append(errs, "capacity must not be negative")
	}
	if e.Price != nil && *e.Price < 0 {
		errs = append(errs, "price must not be negative")
	}
	if e.Status != "" && !domain.ValidEventStatus(e.Status) {
		errs = append(errs, "status is not a valid event status")
	}
	return errs
}

func (e EventRequest) toInput(organizerID string) domain.EventInput {
	return domain.EventInput{
		OrganizerID: organizerID,
		VenueID:     e.VenueID,
		Name:        e.Name,
		Description: e.Description,
		EventType:   e.EventType,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Capacity:    e.Capacity,
		Price:       e.Price,
		ImageURL:    e.ImageURL,
		Status:      e.Status,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event organized by the authenticated user. The user must be an organizer.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body EventRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (caller is not an organizer)"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), req.toInput(userID))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEventByID godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [get]
func (c *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	event, err := c.Service.GetByID(r.Context(), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

type eventSearchResponse struct {
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// SearchEvents godoc
// @Summary Search events
// @Description Lists events ordered by start time ascending. Filters: free-text q over name and description, comma-separated city list, exact type.
// @Tags events
// @Produce json
// @Param q query string false "Free-text query"
// @Param city query string false "Comma-separated city names"
// @Param type query string false "Event type"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains events and pagination"
// @Router /events [get]
func (c *EventController) SearchEvents(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	filter := domain.EventSearchFilter{
		Query:     strings.TrimSpace(r.URL.Query().Get("q")),
		EventType: strings.TrimSpace(r.URL.Query().Get("type")),
	}
	if raw := r.URL.Query().Get("city"); raw != "" {
		for _, city := range strings.Split(raw, ",") {
			if city = strings.TrimSpace(city); city != "" {
				filter.Cities = append(filter.Cities, city)
			}
		}
	}
	events, total, err := c.Service.Search(r.Context(), filter, params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, eventSearchResponse{
		Events:     events,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// UpdateEvent replaces the mutable fields of an owned event.
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, userID, req.toInput(userID))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an owned event
// @Description Deletes the event together with its registrations, saved-event entries, and images.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID, userID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "event deleted"})
}
