package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"bitevents/config"
	"bitevents/internal/adapters/auth"
	"bitevents/internal/adapters/email"
	"bitevents/internal/adapters/storage"
	delivery "bitevents/internal/delivery/http"
	"bitevents/internal/delivery/http/controllers"
	"bitevents/internal/delivery/http/middleware"
	"bitevents/internal/repository/postgres"
	"bitevents/internal/services"
	"bitevents/migrations"
)

const (
	serviceTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// @title bitevents API
// @version 1.0
// @description Event registration and capacity management backend.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(startupCtx); err != nil {
		logger.Error("database ping", "err", err)
		os.Exit(1)
	}
	if err := migrations.Apply(startupCtx, db); err != nil {
		logger.Error("apply migrations", "err", err)
		os.Exit(1)
	}

	userRepo := postgres.NewUserRepository(db)
	venueRepo := postgres.NewVenueRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewEventRegistrationRepository(db)
	savedEventRepo := postgres.NewSavedEventRepository(db)
	imageRepo := postgres.NewEventImageRepository(db)

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)
	fileStore := storage.NewLocalStore(cfg.UploadDir, "/uploads")
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailerProvider,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKey,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}

	guard := services.NewOwnershipGuard(eventRepo, venueRepo)
	userSvc := services.NewUserService(userRepo, venueRepo, eventRepo, hasher, tokenIssuer, cfg.TokenExpiry, serviceTimeout)
	venueSvc := services.NewVenueService(venueRepo, eventRepo, guard)
	eventSvc := services.NewEventService(eventRepo, venueRepo, userRepo, imageRepo, fileStore, guard, serviceTimeout)
	registrationSvc := services.NewRegistrationService(registrationRepo, eventRepo, userRepo, mailer, logger)
	savedEventSvc := services.NewSavedEventService(savedEventRepo, eventRepo, userRepo)
	statisticsSvc := services.NewStatisticsService(eventRepo, registrationRepo, guard)
	imageSvc := services.NewEventImageService(imageRepo, fileStore, guard)

	router := delivery.NewRouter(delivery.Controllers{
		Auth:       controllers.NewAuthController(logger, userSvc),
		User:       controllers.NewUserController(logger, userSvc),
		Venue:      controllers.NewVenueController(logger, venueSvc),
		Event:      controllers.NewEventController(logger, eventSvc),
		Attendee:   controllers.NewAttendeeController(logger, registrationSvc),
		SavedEvent: controllers.NewSavedEventController(logger, savedEventSvc),
		Organizer:  controllers.NewOrganizerController(logger, registrationSvc, statisticsSvc, guard),
		Image:      controllers.NewImageController(logger, imageSvc),
	}, tokenVerifier, logger, cfg.UploadDir)

	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSOrigins, router))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
	logger.Info("server stopped")
}
