package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"bitevents/internal/delivery/http/controllers"
	"bitevents/internal/delivery/http/middleware"
	"bitevents/internal/domain"
)

// Controllers bundles the per-resource controllers the router wires up.
type Controllers struct {
	Auth       *controllers.AuthController
	User       *controllers.UserController
	Venue      *controllers.VenueController
	Event      *controllers.EventController
	Attendee   *controllers.AttendeeController
	SavedEvent *controllers.SavedEventController
	Organizer  *controllers.OrganizerController
	Image      *controllers.ImageController
}

// NewRouter initializes the HTTP router with all application routes.
// uploadDir, when non-empty, is served under /uploads/ for locally stored
// event images.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger, uploadDir string) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Auth
	mux.HandleFunc("POST /auth/signup", c.Auth.SignUp)
	mux.HandleFunc("POST /auth/login", c.Auth.Login)

	// Current user
	mux.HandleFunc("GET /users/me", auth(c.User.GetMe))
	mux.HandleFunc("PUT /users/me", auth(c.User.UpdateProfile))
	mux.HandleFunc("PUT /users/me/password", auth(c.User.ChangePassword))
	mux.HandleFunc("DELETE /users/me", auth(c.User.DeleteAccount))

	// Venues
	mux.HandleFunc("POST /venues", auth(c.Venue.CreateVenue))
	mux.HandleFunc("GET /venues/me", auth(c.Venue.ListMyVenues))
	mux.HandleFunc("GET /venues/{venueID}", c.Venue.GetVenueByID)
	mux.HandleFunc("PUT /venues/{venueID}", auth(c.Venue.UpdateVenue))
	mux.HandleFunc("DELETE /venues/{venueID}", auth(c.Venue.DeleteVenue))

	// Events
	mux.HandleFunc("POST /events", auth(c.Event.CreateEvent))
	mux.HandleFunc("GET /events", c.Event.SearchEvents)
	mux.HandleFunc("GET /events/{eventID}", c.Event.GetEventByID)
	mux.HandleFunc("PUT /events/{eventID}", auth(c.Event.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(c.Event.DeleteEvent))

	// Registrations
	mux.HandleFunc("POST /events/{eventID}/registrations", auth(c.Attendee.Register))
	mux.HandleFunc("DELETE /events/{eventID}/registrations", auth(c.Attendee.CancelByEvent))
	mux.HandleFunc("GET /events/{eventID}/registrations/me", auth(c.Attendee.RegistrationStatus))
	mux.HandleFunc("GET /registrations/me", auth(c.Attendee.ListMyRegistrations))
	mux.HandleFunc("DELETE /registrations/{registrationID}", auth(c.Attendee.CancelRegistration))

	// Saved events
	mux.HandleFunc("POST /events/{eventID}/save", auth(c.SavedEvent.SaveEvent))
	mux.HandleFunc("DELETE /events/{eventID}/save", auth(c.SavedEvent.UnsaveEvent))
	mux.HandleFunc("GET /events/{eventID}/save", auth(c.SavedEvent.SavedStatus))
	mux.HandleFunc("GET /saved-events", auth(c.SavedEvent.ListSavedEvents))

	// Organizer views
	mux.HandleFunc("GET /events/{eventID}/attendees", auth(c.Organizer.ListEventRegistrations))
	mux.HandleFunc("GET /events/{eventID}/statistics", auth(c.Organizer.EventStatistics))
	mux.HandleFunc("GET /organizer/dashboard", auth(c.Organizer.Dashboard))

	// Event images
	mux.HandleFunc("POST /events/{eventID}/images", auth(c.Image.UploadImage))
	mux.HandleFunc("GET /events/{eventID}/images", c.Image.ListImages)
	mux.HandleFunc("PUT /events/{eventID}/images/{imageID}/primary", auth(c.Image.SetPrimaryImage))
	mux.HandleFunc("DELETE /events/{eventID}/images/{imageID}", auth(c.Image.DeleteImage))

	// Locally stored image files
	if uploadDir != "" {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
