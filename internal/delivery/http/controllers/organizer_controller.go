package controllers

import (
	"log/slog"
	"net/http"

	"bitevents/internal/delivery/http/helpers"
	"bitevents/internal/delivery/http/middleware"
	"bitevents/internal/domain"
)

// OrganizerController exposes the organizer-facing views: attendee lists and
// registration statistics for owned events.
type OrganizerController struct {
	Logger        *slog.Logger
	Registrations domain.RegistrationService
	Statistics    domain.StatisticsService
	Guard         domain.OwnershipGuard
}

func NewOrganizerController(logger *slog.Logger, regs domain.RegistrationService, stats domain.StatisticsService, guard domain.OwnershipGuard) *OrganizerController {
	return &OrganizerController{
		Logger:        logger,
		Registrations: regs,
		Statistics:    stats,
		Guard:         guard,
	}
}

// ListEventRegistrations godoc
// @Summary List registrations for an owned event
// @Description Returns every registration for the event, cancelled rows included. Only the event's organizer may call this.
// @Tags organizer
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the registrations"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/attendees [get]
func (c *OrganizerController) ListEventRegistrations(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	owner, err := c.Guard.IsEventOwner(r.Context(), eventID, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if !owner {
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the event organizer may view its registrations")
		return
	}
	registrations, err := c.Registrations.ListByEvent(r.Context(), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if registrations == nil {
		registrations = []*domain.EventRegistration{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, registrations)
}

// EventStatistics godoc
// @Summary Registration statistics for an owned event
// @Description Active registration count, capacity, and remaining spots. Only the event's organizer may call this.
// @Tags organizer
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the statistics"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/statistics [get]
func (c *OrganizerController) EventStatistics(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	stats, err := c.Statistics.EventStatistics(r.Context(), eventID, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}

// Dashboard aggregates registration totals across all events organized by the
// caller.
func (c *OrganizerController) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	dashboard, err := c.Statistics.OrganizerDashboard(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, dashboard)
}
