package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"oraculo/services/booking"
)

// SlotHandler serves the public availability endpoints the scheduling form
// consumes.
type SlotHandler struct {
	Booking booking.Service
}

func NewSlotHandler(svc booking.Service) *SlotHandler {
	return &SlotHandler{Booking: svc}
}

// GetAvailableDatesHandler returns the sorted distinct dates with at least
// one open slot within the next 7 days.
func (h *SlotHandler) GetAvailableDatesHandler(c *gin.Context) {
	dates, err := h.Booking.AvailableDates(c.Request.Context(), 0)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dates)
}

// GetAvailableSlotsHandler returns every unbooked slot ordered by date and
// time. The front end derives the pickable times from this list.
func (h *SlotHandler) GetAvailableSlotsHandler(c *gin.Context) {
	slots, err := h.Booking.AvailableSlots(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}
