package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"oraculo/services/calendar"
)

// Context keys set after a successful event authorization.
const (
	CtxExistingEvent = "existingEvent"
	CtxClientEmail   = "clientEmail"
)

type eventAuthPayload struct {
	CalendarID  string `json:"calendarId"`
	ClientEmail string `json:"clientEmail"`
	Attendees   []struct {
		Email string `json:"email"`
	} `json:"attendees"`
}

// EventAuthorization verifies that the caller may modify or cancel the event
// named in the path: either the client email is an attendee of the existing
// event, or the session user is its organizer. The body is bound with
// ShouldBindBodyWith so the handler can bind it again.
func EventAuthorization(gw calendar.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID := c.Param("id")
		userID := c.GetString(CtxUserID)

		var payload eventAuthPayload
		if err := c.ShouldBindBodyWith(&payload, binding.JSON); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido.", "details": err.Error()})
			return
		}
		if payload.CalendarID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "O ID do calendário (calendarId) é obrigatório para esta operação."})
			return
		}

		clientEmail := payload.ClientEmail
		if clientEmail == "" && len(payload.Attendees) > 0 {
			clientEmail = payload.Attendees[0].Email
		}
		if clientEmail == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "E-mail do cliente (do campo clientEmail ou primeiro participante) é obrigatório para esta operação."})
			return
		}

		existing, err := gw.GetEventByID(c.Request.Context(), userID, payload.CalendarID, eventID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Erro durante a verificação de autorização.", "details": err.Error()})
			return
		}
		if existing == nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Evento não encontrado para verificação de autorização no calendário especificado."})
			return
		}

		isAttendee := false
		for _, attendee := range existing.Attendees {
			if attendee != nil && attendee.Email == clientEmail {
				isAttendee = true
				break
			}
		}
		isOrganizer := existing.Organizer != nil && existing.Organizer.Self &&
			existing.Organizer.Email == c.GetString(CtxUserEmail)

		if !isAttendee && !isOrganizer {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Acesso negado. Você não tem permissão para modificar/cancelar este evento."})
			return
		}

		c.Set(CtxExistingEvent, existing)
		c.Set(CtxClientEmail, clientEmail)
		c.Next()
	}
}
