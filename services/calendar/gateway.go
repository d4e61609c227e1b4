package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	userRepo "oraculo/database/repository/user"
	"oraculo/models"
	"oraculo/utils"
)

// ConsultationDuration is the fixed length of every calendar event.
const ConsultationDuration = models.ConsultationMinutes * time.Minute

const callTimeout = 15 * time.Second

// DefaultGateway talks to Google Calendar on behalf of stored calendar users.
type DefaultGateway struct {
	Users userRepo.UserRepository
	OAuth *oauth2.Config
}

// NewDefaultGateway constructs the gateway.
func NewDefaultGateway(users userRepo.UserRepository, oauthCfg *oauth2.Config) *DefaultGateway {
	return &DefaultGateway{Users: users, OAuth: oauthCfg}
}

// serviceForUser exchanges the user's stored refresh token for a live access
// token and returns a calendar client bound to it. The credential context is
// built per call; nothing shared is mutated, so concurrent refreshes for the
// same user are safe (redundant, not racy).
func (g *DefaultGateway) serviceForUser(ctx context.Context, userID string) (*gcal.Service, error) {
	user, err := g.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("calendar owner lookup failed: %w", err)
	}
	if user.RefreshToken == "" {
		return nil, ErrAuthExpired
	}

	src := g.OAuth.TokenSource(ctx, &oauth2.Token{RefreshToken: user.RefreshToken})
	token, err := src.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			utils.GetLogger().Warn("refresh token rejected",
				zap.String("userId", userID), zap.Error(err))
			return nil, ErrAuthExpired
		}
		return nil, fmt.Errorf("%w: token refresh: %v", ErrRemoteUnavailable, err)
	}

	svc, err := gcal.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(token)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	return svc, nil
}

// CheckConflict lists events overlapping [start, end) on the calendar and
// returns the first one that is neither cancelled nor the excluded event.
// A nil event means the window is free.
func (g *DefaultGateway) CheckConflict(ctx context.Context, userID, calendarID string, start, end time.Time, excludeEventID string) (*gcal.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	svc, err := g.serviceForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	res, err := svc.Events.List(calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).Do()
	if err != nil {
		return nil, classifyRemoteError("list events", err)
	}

	return firstConflict(res.Items, excludeEventID), nil
}

// CreateEvent inserts a consultation event. The end time is always computed
// as start + ConsultationDuration; any caller-supplied end is overwritten.
// Default reminders are replaced by an email 24h before and a popup 1h
// before, and the remote service notifies all attendees.
func (g *DefaultGateway) CreateEvent(ctx context.Context, userID, calendarID string, event *gcal.Event) (*gcal.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	start, end, err := applyConsultationWindow(event)
	if err != nil {
		return nil, err
	}

	conflict, err := g.CheckConflict(ctx, userID, calendarID, start, end, "")
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, conflictErrorFor(conflict, event)
	}

	event.Reminders = consultationReminders()

	svc, err := g.serviceForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	created, err := svc.Events.Insert(calendarID, event).
		SendUpdates("all").
		Context(ctx).Do()
	if err != nil {
		return nil, classifyRemoteError("insert event", err)
	}

	attendee := ""
	if len(event.Attendees) > 0 {
		attendee = event.Attendees[0].Email
	}
	utils.GetLogger().Info("calendar event scheduled",
		zap.String("eventId", created.Id),
		zap.String("summary", event.Summary),
		zap.String("attendee", attendee),
		zap.String("start", event.Start.DateTime),
		zap.String("link", created.HtmlLink),
	)
	return created, nil
}

// GetEventByID fetches one event. A remote 404 yields (nil, nil), not an
// error, matching how callers probe for existence.
func (g *DefaultGateway) GetEventByID(ctx context.Context, userID, calendarID, eventID string) (*gcal.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	svc, err := g.serviceForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	event, err := svc.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
			return nil, nil
		}
		return nil, classifyRemoteError("get event", err)
	}
	return event, nil
}

// UpdateEvent rewrites an existing event. When the patch moves the start,
// the end is recomputed as start + ConsultationDuration; otherwise the
// stored window is kept. The conflict check excludes the event itself.
func (g *DefaultGateway) UpdateEvent(ctx context.Context, userID, calendarID, eventID string, patch *gcal.Event) (*gcal.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	var start, end time.Time
	if patch.Start != nil && patch.Start.DateTime != "" {
		var err error
		start, end, err = applyConsultationWindow(patch)
		if err != nil {
			return nil, err
		}
	} else {
		existing, err := g.GetEventByID(ctx, userID, calendarID, eventID)
		if err != nil {
			return nil, err
		}
		if existing == nil || existing.Start == nil || existing.End == nil {
			return nil, fmt.Errorf("cannot determine the existing event window for update")
		}
		start, err = time.Parse(time.RFC3339, existing.Start.DateTime)
		if err != nil {
			return nil, fmt.Errorf("invalid stored start time: %w", err)
		}
		end, err = time.Parse(time.RFC3339, existing.End.DateTime)
		if err != nil {
			return nil, fmt.Errorf("invalid stored end time: %w", err)
		}
	}

	conflict, err := g.CheckConflict(ctx, userID, calendarID, start, end, eventID)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, conflictErrorFor(conflict, patch)
	}

	svc, err := g.serviceForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated, err := svc.Events.Update(calendarID, eventID, patch).
		SendUpdates("all").
		Context(ctx).Do()
	if err != nil {
		return nil, classifyRemoteError("update event", err)
	}

	utils.GetLogger().Info("calendar event updated",
		zap.String("eventId", eventID),
		zap.String("start", start.Format(time.RFC3339)),
	)
	return updated, nil
}

// DeleteEvent cancels an event without hard-deleting it: the status flips
// to "cancelled" via an update, which preserves history and still fires
// attendee notifications. Returns the terminal status.
func (g *DefaultGateway) DeleteEvent(ctx context.Context, userID, calendarID, eventID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	existing, err := g.GetEventByID(ctx, userID, calendarID, eventID)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return "", fmt.Errorf("event not found for cancellation")
	}

	existing.Status = "cancelled"

	svc, err := g.serviceForUser(ctx, userID)
	if err != nil {
		return "", err
	}
	cancelled, err := svc.Events.Update(calendarID, eventID, existing).
		SendUpdates("all").
		Context(ctx).Do()
	if err != nil {
		return "", classifyRemoteError("cancel event", err)
	}

	utils.GetLogger().Info("calendar event cancelled", zap.String("eventId", eventID))
	return cancelled.Status, nil
}

func classifyRemoteError(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && (apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden) {
		return ErrAuthExpired
	}
	return fmt.Errorf("%w: %s: %v", ErrRemoteUnavailable, op, err)
}
