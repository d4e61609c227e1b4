package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"oraculo/config"
	"oraculo/services/booking"
	"oraculo/services/calendar"
)

// respondError translates workflow and gateway failures into status codes
// and a user-facing {error} body. Diagnostic detail is attached only
// outside production.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Erro interno do servidor."

	var bookingErr *booking.BookingError
	var conflictErr *calendar.ConflictError

	switch {
	case errors.As(err, &bookingErr):
		message = bookingErr.Message
		switch bookingErr.Code {
		case booking.CodeBadRequest:
			status = http.StatusBadRequest
		case booking.CodeNotFound:
			status = http.StatusNotFound
		case booking.CodeSlotTaken:
			status = http.StatusConflict
		}
	case errors.As(err, &conflictErr):
		status = http.StatusConflict
		message = conflictErr.Error()
	case errors.Is(err, calendar.ErrAuthExpired):
		status = http.StatusUnauthorized
		message = "Credencial do calendário expirada. O consultor precisa autenticar novamente."
	case errors.Is(err, calendar.ErrRemoteUnavailable):
		message = "Serviço de calendário indisponível. Tente novamente mais tarde."
	}

	body := gin.H{"error": message}
	if status == http.StatusInternalServerError && !config.IsProduction() {
		body["details"] = err.Error()
	}
	c.JSON(status, body)
}
