// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"oraculo/database"
	"oraculo/models"
)

var (
	// ErrNotFound is returned when no slot matches the given id.
	ErrNotFound = errors.New("slot not found")
	// ErrSlotTaken is returned when a reservation races a prior booking.
	ErrSlotTaken = errors.New("slot already booked")
)

type SlotRepository interface {
	UpsertMany(ctx context.Context, slots []models.Slot) (int, error)
	GetByID(ctx context.Context, id string) (*models.Slot, error)
	GetAvailable(ctx context.Context, withinDays int) ([]models.Slot, error)
	GetAvailableDates(ctx context.Context, withinDays int) ([]string, error)
	Reserve(ctx context.Context, id string, identity *models.BookingIdentity, timeZone string) (*models.Slot, error)
	Release(ctx context.Context, id string) error
	EnsureIndexes() error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	return &mongoSlotRepo{
		coll: database.DB().Collection("slots"),
	}
}
