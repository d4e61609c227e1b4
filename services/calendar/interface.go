package calendar

import (
	"context"
	"time"

	gcal "google.golang.org/api/calendar/v3"
)

// Gateway is the integration boundary to the remote calendar service. Every
// method authenticates as the stored calendar owner identified by userID,
// minting a fresh per-call credential from the owner's refresh token.
type Gateway interface {
	CheckConflict(ctx context.Context, userID, calendarID string, start, end time.Time, excludeEventID string) (*gcal.Event, error)
	CreateEvent(ctx context.Context, userID, calendarID string, event *gcal.Event) (*gcal.Event, error)
	GetEventByID(ctx context.Context, userID, calendarID, eventID string) (*gcal.Event, error)
	UpdateEvent(ctx context.Context, userID, calendarID, eventID string, patch *gcal.Event) (*gcal.Event, error)
	DeleteEvent(ctx context.Context, userID, calendarID, eventID string) (string, error)
}
