package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"
)

func TestApplyConsultationWindowForcesEnd(t *testing.T) {
	event := &gcal.Event{
		Start: &gcal.EventDateTime{
			DateTime: "2025-07-21T14:00:00-03:00",
			TimeZone: "America/Sao_Paulo",
		},
		// Caller-supplied end must be overwritten.
		End: &gcal.EventDateTime{DateTime: "2025-07-21T23:00:00-03:00"},
	}

	start, end, err := applyConsultationWindow(event)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, end.Sub(start))
	assert.Equal(t, start.Add(ConsultationDuration).Format(time.RFC3339), event.End.DateTime)
	assert.Equal(t, "America/Sao_Paulo", event.End.TimeZone)
}

func TestApplyConsultationWindowRejectsIncompleteStart(t *testing.T) {
	cases := []struct {
		name  string
		event *gcal.Event
	}{
		{"nil event", nil},
		{"nil start", &gcal.Event{}},
		{"missing dateTime", &gcal.Event{Start: &gcal.EventDateTime{TimeZone: "America/Sao_Paulo"}}},
		{"missing timeZone", &gcal.Event{Start: &gcal.EventDateTime{DateTime: "2025-07-21T14:00:00-03:00"}}},
		{"bad dateTime", &gcal.Event{Start: &gcal.EventDateTime{DateTime: "21/07/2025", TimeZone: "America/Sao_Paulo"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := applyConsultationWindow(tc.event)
			assert.Error(t, err)
		})
	}
}

func TestFirstConflictSkipsCancelledAndExcluded(t *testing.T) {
	items := []*gcal.Event{
		nil,
		{Id: "ev-cancelled", Status: "cancelled"},
		{Id: "ev-self", Status: "confirmed"},
		{Id: "ev-other", Status: "confirmed", Summary: "Consulta com Maria"},
	}

	conflict := firstConflict(items, "ev-self")
	require.NotNil(t, conflict)
	assert.Equal(t, "ev-other", conflict.Id)
}

func TestFirstConflictNeverReportsExcludedEvent(t *testing.T) {
	items := []*gcal.Event{
		{Id: "ev-self", Status: "confirmed"},
	}
	assert.Nil(t, firstConflict(items, "ev-self"))
}

func TestFirstConflictEmpty(t *testing.T) {
	assert.Nil(t, firstConflict(nil, ""))
	assert.Nil(t, firstConflict([]*gcal.Event{{Id: "x", Status: "cancelled"}}, ""))
}

func TestConsultationReminders(t *testing.T) {
	reminders := consultationReminders()
	require.NotNil(t, reminders)
	assert.False(t, reminders.UseDefault)
	require.Len(t, reminders.Overrides, 2)
	assert.Equal(t, "email", reminders.Overrides[0].Method)
	assert.Equal(t, int64(24*60), reminders.Overrides[0].Minutes)
	assert.Equal(t, "popup", reminders.Overrides[1].Method)
	assert.Equal(t, int64(60), reminders.Overrides[1].Minutes)
}
