package seeder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func TestGenerateWorkingDayWindows(t *testing.T) {
	loc := mustLocation(t)
	// 2025-07-21 is a Monday.
	from := time.Date(2025, 7, 21, 0, 0, 0, 0, loc)

	slots := Generate(from, 1, loc)
	require.Len(t, slots, 4)

	var times []string
	for _, s := range slots {
		assert.Equal(t, "2025-07-21", s.Date)
		assert.False(t, s.IsBooked)
		times = append(times, s.Time)
	}
	// 90-minute windows from 13:00; 19:00 would end past 20:00.
	assert.Equal(t, []string{"13:00", "14:30", "16:00", "17:30"}, times)
}

func TestGenerateSkipsSundays(t *testing.T) {
	loc := mustLocation(t)
	// 2025-07-20 is a Sunday.
	from := time.Date(2025, 7, 20, 0, 0, 0, 0, loc)

	slots := Generate(from, 2, loc)
	require.Len(t, slots, 4)
	for _, s := range slots {
		assert.Equal(t, "2025-07-21", s.Date)
	}
}

func TestGenerateHorizon(t *testing.T) {
	loc := mustLocation(t)
	from := time.Date(2025, 7, 21, 0, 0, 0, 0, loc)

	slots := Generate(from, 14, loc)
	// Two full weeks starting on a Monday: 12 working days, 4 slots each.
	assert.Len(t, slots, 48)

	seen := make(map[string]bool, len(slots))
	for _, s := range slots {
		key := s.Date + " " + s.Time
		assert.False(t, seen[key], "duplicate slot %s", key)
		seen[key] = true
	}
}
