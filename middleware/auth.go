package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys set by the OAuth callback and read by guarded routes.
const (
	SessionKeyUserID        = "userId"
	SessionKeyUserName      = "userName"
	SessionKeyUserEmail     = "userEmail"
	SessionKeyAuthenticated = "isAuthenticated"
)

// Context keys populated for downstream handlers.
const (
	CtxUserID    = "userId"
	CtxUserEmail = "userEmail"
)

// SessionAuthMiddleware guards routes that require a signed-in calendar
// owner. The session lives in MongoDB and is keyed by the cookie.
func SessionAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		userID, _ := session.Get(SessionKeyUserID).(string)
		authenticated, _ := session.Get(SessionKeyAuthenticated).(bool)
		if userID == "" || !authenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado. Por favor, faça login."})
			return
		}

		c.Set(CtxUserID, userID)
		if email, ok := session.Get(SessionKeyUserEmail).(string); ok {
			c.Set(CtxUserEmail, email)
		}
		c.Next()
	}
}
