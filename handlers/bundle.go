package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups every route handler wired in main.
type HandlerBundle struct {
	// Availability endpoints.
	GetAvailableDatesHandler gin.HandlerFunc
	GetAvailableSlotsHandler gin.HandlerFunc

	// Client booking endpoint.
	AgendarHandler gin.HandlerFunc

	// Calendar event management (session-guarded).
	GetEventHandler       gin.HandlerFunc
	CreateEventHandler    gin.HandlerFunc
	UpdateEventHandler    gin.HandlerFunc
	DeleteEventHandler    gin.HandlerFunc
	EventAuthMiddleware   gin.HandlerFunc
	SessionAuthMiddleware gin.HandlerFunc

	// OAuth endpoints.
	GoogleLoginHandler    gin.HandlerFunc
	GoogleCallbackHandler gin.HandlerFunc
	LogoutHandler         gin.HandlerFunc
}
