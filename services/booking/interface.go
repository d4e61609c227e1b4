package booking

import (
	"context"

	"github.com/go-redis/redis/v8"

	slotRepo "oraculo/database/repository/slot"
	userRepo "oraculo/database/repository/user"
	"oraculo/models"
	"oraculo/services/calendar"
	"oraculo/services/notification"
)

// Service orchestrates slot reservation, remote event creation and the
// confirmation emails.
type Service interface {
	Book(ctx context.Context, req models.BookingRequest) (*models.BookingResponse, error)
	AvailableSlots(ctx context.Context) ([]models.Slot, error)
	AvailableDates(ctx context.Context, withinDays int) ([]string, error)
}

// DefaultBookingService wires the slot store, the calendar gateway and the
// mail queue. OwnerEmail identifies the calendar owner whose refresh token
// authenticates event creation; CalendarID is the target calendar.
type DefaultBookingService struct {
	Slots      slotRepo.SlotRepository
	Users      userRepo.UserRepository
	Calendar   calendar.Gateway
	Mail       notification.Dispatcher
	Cache      *redis.Client
	OwnerEmail string
	CalendarID string
}
