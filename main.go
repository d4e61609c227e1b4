// File: oraculo/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/mongo/mongodriver"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	goauth2 "google.golang.org/api/oauth2/v2"

	"oraculo/config"
	"oraculo/cron"
	"oraculo/database"
	slotRepoPkg "oraculo/database/repository/slot"
	userRepoPkg "oraculo/database/repository/user"
	"oraculo/handlers"
	"oraculo/middleware"
	"oraculo/routes"
	"oraculo/seeder"
	"oraculo/services/booking"
	"oraculo/services/calendar"
	"oraculo/services/notification"
	"oraculo/utils"
)

const sessionMaxAge = 7 * 24 * 60 * 60 // seconds

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// repositories.
	slotRepo := slotRepoPkg.NewMongoSlotRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	if err := slotRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure slot indexes: %v", err)
	}
	if err := userRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure user indexes: %v", err)
	}

	// Google OAuth2 client configuration. Credential contexts are minted
	// per call from stored refresh tokens; this config itself is immutable.
	oauthCfg := &oauth2.Config{
		ClientID:     config.AppConfig.GoogleClientID,
		ClientSecret: config.AppConfig.GoogleClientSecret,
		RedirectURL:  config.AppConfig.GoogleRedirectURI,
		Scopes: []string{
			gcal.CalendarScope,
			goauth2.UserinfoEmailScope,
			goauth2.UserinfoProfileScope,
		},
		Endpoint: google.Endpoint,
	}

	calendarGateway := calendar.NewDefaultGateway(userRepo, oauthCfg)

	// services.
	var sender notification.Sender = notification.LogSender{}
	if sg := notification.NewSendGridSender(config.AppConfig.SendGridAPIKey, config.AppConfig.NotifyEmail); sg != nil {
		sender = sg
	}

	dispatcher := cron.NewDispatcher()
	cron.InitWorker(sender, slotRepo)

	bookingService := &booking.DefaultBookingService{
		Slots:      slotRepo,
		Users:      userRepo,
		Calendar:   calendarGateway,
		Mail:       dispatcher,
		Cache:      utils.GetCacheClient(),
		OwnerEmail: config.AppConfig.NotifyEmail,
		CalendarID: config.AppConfig.GoogleCalendarID,
	}

	if config.AppConfig.SeedOnStart {
		go func() {
			if err := seeder.Run(context.Background(), slotRepo); err != nil {
				logger.Sugar().Errorf("main: slot seeding failed: %v", err)
			}
		}()
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Server-side session persisted in MongoDB, 7-day expiry.
	sessionStore := mongodriver.NewStore(
		database.DB().Collection("sessions"),
		sessionMaxAge,
		true,
		[]byte(config.AppConfig.SessionSecret),
	)
	router.Use(sessions.Sessions("oraculo_session", sessionStore))

	// handlers.
	slotHandler := handlers.NewSlotHandler(bookingService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	calendarHandler := handlers.NewCalendarHandler(calendarGateway)
	authHandler := handlers.NewAuthHandler(userRepo, oauthCfg)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		GetAvailableDatesHandler: slotHandler.GetAvailableDatesHandler,
		GetAvailableSlotsHandler: slotHandler.GetAvailableSlotsHandler,

		AgendarHandler: bookingHandler.AgendarHandler,

		GetEventHandler:       calendarHandler.GetEventHandler,
		CreateEventHandler:    calendarHandler.CreateEventHandler,
		UpdateEventHandler:    calendarHandler.UpdateEventHandler,
		DeleteEventHandler:    calendarHandler.DeleteEventHandler,
		EventAuthMiddleware:   middleware.EventAuthorization(calendarGateway),
		SessionAuthMiddleware: middleware.SessionAuthMiddleware(),

		GoogleLoginHandler:    authHandler.GoogleLoginHandler,
		GoogleCallbackHandler: authHandler.GoogleCallbackHandler,
		LogoutHandler:         authHandler.LogoutHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
