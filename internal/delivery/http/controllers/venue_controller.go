package controllers

import (
	"log/slog"
	"net/http"

	"bitevents/internal/delivery/http/helpers"
	"bitevents/internal/delivery/http/middleware"
	"bitevents/internal/domain"
)

type VenueController struct {
	Logger  *slog.Logger
	Service domain.VenueService
}

func NewVenueController(logger *slog.Logger, svc domain.VenueService) *VenueController {
	return &VenueController{
		Logger:  logger,
		Service: svc,
	}
}

// VenueRequest is the request body for venue create and update.
type VenueRequest struct {
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	MapURL    *string  `json:"map_url"`
}

// Validate implements Validator. Coordinate bounds: lat -90..90, lng -180..180.
func (v VenueRequest) Validate() []string {
	var errs []string
	if v.Name == "" {
		errs = append(errs, "name is required")
	}
	if v.City == "" {
		errs = append(errs, "city is required")
	}
	if v.Latitude != nil && (*v.Latitude < -90 || *v.Latitude > 90) {
		errs = append(errs, "latitude must be between -90 and 90")
	}
	if v.Longitude != nil && (*v.Longitude < -180 || *v.Longitude > 180) {
		errs = append(errs, "longitude must be between -180 and 180")
	}
	return errs
}

func (v VenueRequest) toInput() domain.VenueInput {
	return domain.VenueInput{
		Name:      v.Name,
		Address:   v.Address,
		City:      v.City,
		Latitude:  v.Latitude,
		Longitude: v.Longitude,
		MapURL:    v.MapURL,
	}
}

// CreateVenue godoc
// @Summary Create a venue
// @Description Creates a venue owned by the authenticated user.
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venue body VenueRequest true "Venue data"
// @Success 201 {object} helpers.APIResponse "data contains the created venue"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /venues [post]
func (c *VenueController) CreateVenue(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req VenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	venue, err := c.Service.CreateVenue(r.Context(), userID, req.toInput())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, venue)
}

// GetVenueByID returns a single venue.
func (c *VenueController) GetVenueByID(w http.ResponseWriter, r *http.Request) {
	venueID, ok := pathUUID(w, r, "venueID")
	if !ok {
		return
	}
	venue, err := c.Service.GetByID(r.Context(), venueID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venue)
}

// ListMyVenues returns the venues owned by the authenticated user.
func (c *VenueController) ListMyVenues(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	venues, err := c.Service.ListByOwner(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venues)
}

// UpdateVenue replaces the mutable fields of an owned venue.
func (c *VenueController) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	venueID, ok := pathUUID(w, r, "venueID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req VenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	venue, err := c.Service.UpdateVenue(r.Context(), venueID, userID, req.toInput())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venue)
}

// DeleteVenue godoc
// @Summary Delete an owned venue
// @Description Deletion is rejected with 409 while events still reference the venue.
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (venue in use)"
// @Router /venues/{venueID} [delete]
func (c *VenueController) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	venueID, ok := pathUUID(w, r, "venueID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteVenue(r.Context(), venueID, userID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "venue deleted"})
}
