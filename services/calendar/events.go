package calendar

import (
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
)

// applyConsultationWindow validates the event start and forces the end to
// start + ConsultationDuration, replacing whatever the caller supplied.
func applyConsultationWindow(event *gcal.Event) (start, end time.Time, err error) {
	if event == nil || event.Start == nil || event.Start.DateTime == "" || event.Start.TimeZone == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("event start dateTime and timeZone are required")
	}
	start, err = time.Parse(time.RFC3339, event.Start.DateTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start dateTime %q: %w", event.Start.DateTime, err)
	}
	end = start.Add(ConsultationDuration)
	event.End = &gcal.EventDateTime{
		DateTime: end.Format(time.RFC3339),
		TimeZone: event.Start.TimeZone,
	}
	return start, end, nil
}

// firstConflict returns the first listed event that still counts as a
// conflict: cancelled events never conflict, and the event identified by
// excludeID never conflicts with itself.
func firstConflict(items []*gcal.Event, excludeID string) *gcal.Event {
	for _, event := range items {
		if event == nil || event.Status == "cancelled" {
			continue
		}
		if excludeID != "" && event.Id == excludeID {
			continue
		}
		return event
	}
	return nil
}

// consultationReminders disables calendar defaults in favour of an email
// 24 hours before and a popup 1 hour before the consultation.
func consultationReminders() *gcal.EventReminders {
	return &gcal.EventReminders{
		UseDefault: false,
		Overrides: []*gcal.EventReminder{
			{Method: "email", Minutes: 24 * 60},
			{Method: "popup", Minutes: 60},
		},
		ForceSendFields: []string{"UseDefault"},
	}
}

func conflictErrorFor(conflict *gcal.Event, requested *gcal.Event) *ConflictError {
	ce := &ConflictError{
		Summary: conflict.Summary,
		EventID: conflict.Id,
	}
	if requested != nil && requested.Start != nil {
		ce.Start = requested.Start.DateTime
	}
	if requested != nil && requested.End != nil {
		ce.End = requested.End.DateTime
	}
	return ce
}
