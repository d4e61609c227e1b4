package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"oraculo/config"
	"oraculo/handlers"
	"oraculo/utils"
)

// RegisterSlotRoutes registers the public availability endpoints.
func RegisterSlotRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/slots")
	{
		// Naming is historical: /available serves the distinct dates and
		// /available-dates serves the full slot list.
		api.GET("/available", hb.GetAvailableDatesHandler)
		api.GET("/available-dates", hb.GetAvailableSlotsHandler)
	}
}

// RegisterClientRoutes registers the client booking endpoint.
func RegisterClientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/client")
	{
		api.POST("/agendar", hb.AgendarHandler)
	}
}

// RegisterCalendarRoutes registers session-guarded event management.
func RegisterCalendarRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/calendar")
	{
		api.Use(hb.SessionAuthMiddleware)
		api.GET("/evento/:id", hb.GetEventHandler)
		api.POST("/evento", hb.CreateEventHandler)

		// Mutations additionally require the caller to be an attendee or
		// the organizer of the existing event.
		api.PUT("/evento/:id", hb.EventAuthMiddleware, hb.UpdateEventHandler)
		api.DELETE("/evento/:id", hb.EventAuthMiddleware, hb.DeleteEventHandler)
	}
}

// RegisterAuthRoutes registers the Google OAuth endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.GET("/google", hb.GoogleLoginHandler)
		api.GET("/google/callback", hb.GoogleCallbackHandler)
		api.GET("/logout", hb.LogoutHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppConfig.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSlotRoutes(r, hb)
	RegisterClientRoutes(r, hb)
	RegisterCalendarRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterHealthRoute(r)
}
