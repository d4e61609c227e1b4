// File: database/repository/slot/crud.go
package slotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"oraculo/models"
)

// UpsertMany inserts slots keyed on (date, time). Existing pairs are left
// untouched, so re-running the seeder never creates a second row.
func (r *mongoSlotRepo) UpsertMany(ctx context.Context, slots []models.Slot) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	now := time.Now()
	writes := make([]mongo.WriteModel, 0, len(slots))
	for _, slot := range slots {
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		slot.CreatedAt = now
		slot.UpdatedAt = now
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"date": slot.Date, "time": slot.Time}).
			SetUpdate(bson.M{"$setOnInsert": slot}).
			SetUpsert(true))
	}
	if len(writes) == 0 {
		return 0, nil
	}

	res, err := r.coll.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("failed to upsert slots: %w", err)
	}
	return int(res.UpsertedCount), nil
}

func (r *mongoSlotRepo) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.Slot
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&slot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slot %s: %w", id, err)
	}
	return &slot, nil
}

// Reserve flips an unbooked slot to booked in a single conditional update.
// The isBooked:false filter makes the reservation linearizable per slot id:
// of two concurrent attempts, exactly one matches.
func (r *mongoSlotRepo) Reserve(ctx context.Context, id string, identity *models.BookingIdentity, timeZone string) (*models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"isBooked":    true,
		"bookedBy":    identity,
		"bookedEmail": identity.Email,
		"timeZone":    timeZone,
		"bookedAt":    now,
		"updatedAt":   now,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var slot models.Slot
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id, "isBooked": false}, update, opts).Decode(&slot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Either the slot does not exist or it lost the race.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reserve slot %s: %w", id, err)
	}
	return &slot, nil
}

// Release is the compensation step of the booking saga: it puts a slot back
// on the market after the remote calendar rejected the event.
func (r *mongoSlotRepo) Release(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set":   bson.M{"isBooked": false, "updatedAt": time.Now()},
		"$unset": bson.M{"bookedBy": "", "bookedEmail": "", "timeZone": "", "bookedAt": ""},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id, "isBooked": true}, update)
	if err != nil {
		return fmt.Errorf("failed to release slot %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
