package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	gcal "google.golang.org/api/calendar/v3"

	"oraculo/middleware"
	"oraculo/services/calendar"
)

// CalendarHandler exposes session-guarded event management for the calendar
// owner.
type CalendarHandler struct {
	Gateway calendar.Gateway
}

func NewCalendarHandler(gw calendar.Gateway) *CalendarHandler {
	return &CalendarHandler{Gateway: gw}
}

// eventInput is the wire shape for create/update. CalendarID travels in the
// body; the remaining fields map onto the remote event.
type eventInput struct {
	CalendarID  string                `json:"calendarId"`
	ClientEmail string                `json:"clientEmail"`
	Summary     string                `json:"summary"`
	Description string                `json:"description"`
	Location    string                `json:"location"`
	Start       *gcal.EventDateTime   `json:"start"`
	End         *gcal.EventDateTime   `json:"end"`
	Attendees   []*gcal.EventAttendee `json:"attendees"`
}

func (in eventInput) toEvent() *gcal.Event {
	return &gcal.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Location:    in.Location,
		Start:       in.Start,
		End:         in.End,
		Attendees:   in.Attendees,
	}
}

// GetEventHandler fetches one event: GET /api/calendar/evento/:id?calendarId=.
func (h *CalendarHandler) GetEventHandler(c *gin.Context) {
	calendarID := c.Query("calendarId")
	if calendarID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "O ID do calendário (calendarId) é obrigatório como parâmetro de query (?calendarId=...)."})
		return
	}

	event, err := h.Gateway.GetEventByID(c.Request.Context(), c.GetString(middleware.CtxUserID), calendarID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if event == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Evento não encontrado no calendário especificado."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "event": event})
}

// CreateEventHandler creates an event: POST /api/calendar/evento.
func (h *CalendarHandler) CreateEventHandler(c *gin.Context) {
	var input eventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido.", "details": err.Error()})
		return
	}
	if input.CalendarID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "O ID do calendário (calendarId) é obrigatório no corpo da requisição."})
		return
	}

	event, err := h.Gateway.CreateEvent(c.Request.Context(), c.GetString(middleware.CtxUserID), input.CalendarID, input.toEvent())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Evento criado com sucesso!", "event": event})
}

// UpdateEventHandler rewrites an event: PUT /api/calendar/evento/:id. The
// EventAuthorization middleware has already verified the caller and bound
// the body once.
func (h *CalendarHandler) UpdateEventHandler(c *gin.Context) {
	var input eventInput
	if err := c.ShouldBindBodyWith(&input, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido.", "details": err.Error()})
		return
	}

	patch := input.toEvent()
	if patch.Summary == "" && patch.Description == "" && patch.Location == "" && patch.Start == nil && len(patch.Attendees) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhum campo de atualização fornecido no corpo da requisição (excluindo calendarId, clientEmail)."})
		return
	}

	updated, err := h.Gateway.UpdateEvent(c.Request.Context(), c.GetString(middleware.CtxUserID), input.CalendarID, c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Evento atualizado com sucesso!", "event": updated})
}

// DeleteEventHandler cancels an event: DELETE /api/calendar/evento/:id.
func (h *CalendarHandler) DeleteEventHandler(c *gin.Context) {
	var input eventInput
	if err := c.ShouldBindBodyWith(&input, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido.", "details": err.Error()})
		return
	}

	status, err := h.Gateway.DeleteEvent(c.Request.Context(), c.GetString(middleware.CtxUserID), input.CalendarID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Evento cancelado com sucesso!", "status": status})
}
