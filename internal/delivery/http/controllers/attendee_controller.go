package controllers

import (
	"log/slog"
	"net/http"

	"bitevents/internal/delivery/http/helpers"
	"bitevents/internal/delivery/http/middleware"
	"bitevents/internal/domain"
)

// AttendeeController exposes the attendee-facing registration operations:
// registering for events, cancelling, and listing one's own tickets.
type AttendeeController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewAttendeeController(logger *slog.Logger, svc domain.RegistrationService) *AttendeeController {
	return &AttendeeController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register for an event
// @Description Issues a confirmed registration with a fresh ticket code. Fails with 409 when the caller already holds an active registration or the event is at capacity.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 201 {object} helpers.APIResponse "data contains the registration"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already registered or event full)"
// @Router /events/{eventID}/registrations [post]
func (c *AttendeeController) Register(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	registration, err := c.Service.Register(r.Context(), eventID, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, registration)
}

// CancelRegistration godoc
// @Summary Cancel a registration by ID
// @Description Soft-cancels the registration. Only the registrant may cancel; the row is kept with status Cancelled.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already cancelled)"
// @Router /registrations/{registrationID} [delete]
func (c *AttendeeController) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	registrationID, ok := pathUUID(w, r, "registrationID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.CancelByID(r.Context(), registrationID, userID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "registration cancelled"})
}

// CancelByEvent cancels the caller's active registration for the event.
func (c *AttendeeController) CancelByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.CancelByEventAndUser(r.Context(), eventID, userID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "registration cancelled"})
}

// ListMyRegistrations returns every registration of the caller, cancelled
// rows included, newest first.
func (c *AttendeeController) ListMyRegistrations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	registrations, err := c.Service.ListByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if registrations == nil {
		registrations = []*domain.EventRegistration{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, registrations)
}

// RegistrationStatus reports whether the caller holds an active registration
// for the event.
func (c *AttendeeController) RegistrationStatus(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathUUID(w, r, "eventID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	registered, err := c.Service.IsRegistered(r.Context(), eventID, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"registered": registered})
}
