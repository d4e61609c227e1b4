// Package seeder enumerates the bookable consultation windows and tops up
// the slots collection. Working days are Monday through Saturday, 13:00 to
// 20:00 service-local time, in fixed 90-minute windows, over a 90-day
// horizon. Re-running is safe: existing (date, time) pairs are absorbed.
package seeder

import (
	"context"
	"time"

	"go.uber.org/zap"

	"oraculo/config"
	slotRepo "oraculo/database/repository/slot"
	"oraculo/models"
	"oraculo/utils"
)

const (
	// DaysAhead is the seeding horizon.
	DaysAhead = 90

	workStartHour = 13
	workEndHour   = 20
)

// Generate enumerates the slots for `days` days starting at `from`,
// interpreted in `loc`. Pure: no I/O.
func Generate(from time.Time, days int, loc *time.Location) []models.Slot {
	var slots []models.Slot
	slotLen := models.ConsultationMinutes * time.Minute

	for i := 0; i < days; i++ {
		day := from.In(loc).AddDate(0, 0, i)
		if day.Weekday() == time.Sunday {
			continue
		}

		cur := time.Date(day.Year(), day.Month(), day.Day(), workStartHour, 0, 0, 0, loc)
		end := time.Date(day.Year(), day.Month(), day.Day(), workEndHour, 0, 0, 0, loc)

		for !cur.Add(slotLen).After(end) {
			slots = append(slots, models.Slot{
				Date:     cur.Format("2006-01-02"),
				Time:     cur.Format("15:04"),
				IsBooked: false,
			})
			cur = cur.Add(slotLen)
		}
	}
	return slots
}

// Run seeds the slot store from today over the configured horizon.
func Run(ctx context.Context, repo slotRepo.SlotRepository) error {
	loc, err := time.LoadLocation(config.AppConfig.ServiceTimezone)
	if err != nil {
		return err
	}

	slots := Generate(time.Now().In(loc), DaysAhead, loc)
	added, err := repo.UpsertMany(ctx, slots)
	if err != nil {
		return err
	}

	utils.GetLogger().Info("slot seeding finished",
		zap.Int("generated", len(slots)), zap.Int("added", added))
	return nil
}
