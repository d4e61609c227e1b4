// File: database/repository/slot/queries.go
package slotRepo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"oraculo/config"
	"oraculo/models"
)

// availableFilter matches unbooked slots, optionally restricted to the
// window [today, today+withinDays] in the service timezone.
func availableFilter(withinDays int) bson.M {
	filter := bson.M{"isBooked": false}
	if withinDays > 0 {
		loc, err := time.LoadLocation(config.AppConfig.ServiceTimezone)
		if err != nil {
			loc = time.Local
		}
		today := time.Now().In(loc)
		filter["date"] = bson.M{
			"$gte": today.Format("2006-01-02"),
			"$lte": today.AddDate(0, 0, withinDays).Format("2006-01-02"),
		}
	}
	return filter
}

func (r *mongoSlotRepo) GetAvailable(ctx context.Context, withinDays int) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cursor, err := r.coll.Find(ctx, availableFilter(withinDays), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch available slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding slots: %w", err)
	}
	return slots, nil
}

func (r *mongoSlotRepo) GetAvailableDates(ctx context.Context, withinDays int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	raw, err := r.coll.Distinct(ctx, "date", availableFilter(withinDays))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch available dates: %w", err)
	}

	dates := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			dates = append(dates, s)
		}
	}
	sort.Strings(dates)
	return dates, nil
}
