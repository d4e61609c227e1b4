package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"oraculo/models"
	"oraculo/services/booking"
)

// BookingHandler exposes the client-facing scheduling endpoint.
type BookingHandler struct {
	Booking booking.Service
}

func NewBookingHandler(svc booking.Service) *BookingHandler {
	return &BookingHandler{Booking: svc}
}

// agendarInput accepts both wire shapes the front end has used: a combined
// RFC3339 dateTime, or separate date and time fields; and nome or name.
type agendarInput struct {
	Nome     string `json:"nome"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	DateTime string `json:"dateTime"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	TimeZone string `json:"timeZone"`
	SlotID   string `json:"slotId"`
}

func (in agendarInput) toRequest() (models.BookingRequest, error) {
	req := models.BookingRequest{
		Name:     in.Name,
		Email:    in.Email,
		Date:     in.Date,
		Time:     in.Time,
		TimeZone: in.TimeZone,
		SlotID:   in.SlotID,
	}
	if req.Name == "" {
		req.Name = in.Nome
	}
	if in.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, in.DateTime)
		if err != nil {
			return req, err
		}
		if in.TimeZone != "" {
			if loc, locErr := time.LoadLocation(in.TimeZone); locErr == nil {
				parsed = parsed.In(loc)
			}
		}
		req.Date = parsed.Format("2006-01-02")
		req.Time = parsed.Format("15:04")
	}
	return req, nil
}

// AgendarHandler books a slot: POST /api/client/agendar.
func (h *BookingHandler) AgendarHandler(c *gin.Context) {
	var input agendarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido.", "details": err.Error()})
		return
	}

	req, err := input.toRequest()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Data/hora em formato inválido."})
		return
	}

	res, err := h.Booking.Book(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
