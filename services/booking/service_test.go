package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"

	slotRepo "oraculo/database/repository/slot"
	userRepo "oraculo/database/repository/user"
	"oraculo/models"
	"oraculo/services/calendar"
	"oraculo/services/notification"
)

// fakeSlotRepo is an in-memory SlotRepository with the same conditional
// reservation semantics as the Mongo implementation.
type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[string]*models.Slot
}

func newFakeSlotRepo(slots ...models.Slot) *fakeSlotRepo {
	r := &fakeSlotRepo{slots: make(map[string]*models.Slot)}
	for i := range slots {
		s := slots[i]
		r.slots[s.ID] = &s
	}
	return r
}

func (r *fakeSlotRepo) UpsertMany(_ context.Context, slots []models.Slot) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	added := 0
	for i := range slots {
		s := slots[i]
		exists := false
		for _, stored := range r.slots {
			if stored.Date == s.Date && stored.Time == s.Time {
				exists = true
				break
			}
		}
		if !exists {
			r.slots[s.ID] = &s
			added++
		}
	}
	return added, nil
}

func (r *fakeSlotRepo) GetByID(_ context.Context, id string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSlotRepo) GetAvailable(_ context.Context, _ int) ([]models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Slot
	for _, s := range r.slots {
		if !s.IsBooked {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) GetAvailableDates(_ context.Context, _ int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]bool{}
	var dates []string
	for _, s := range r.slots {
		if !s.IsBooked && !seen[s.Date] {
			seen[s.Date] = true
			dates = append(dates, s.Date)
		}
	}
	return dates, nil
}

func (r *fakeSlotRepo) Reserve(_ context.Context, id string, identity *models.BookingIdentity, timeZone string) (*models.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrNotFound
	}
	if s.IsBooked {
		return nil, slotRepo.ErrSlotTaken
	}
	now := time.Now()
	s.IsBooked = true
	s.BookedBy = identity
	s.BookedEmail = identity.Email
	s.TimeZone = timeZone
	s.BookedAt = &now
	copied := *s
	return &copied, nil
}

func (r *fakeSlotRepo) Release(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok || !s.IsBooked {
		return slotRepo.ErrNotFound
	}
	s.IsBooked = false
	s.BookedBy = nil
	s.BookedEmail = ""
	s.TimeZone = ""
	s.BookedAt = nil
	return nil
}

func (r *fakeSlotRepo) EnsureIndexes() error { return nil }

type fakeUserRepo struct {
	owner *models.CalendarUser
}

func (r *fakeUserRepo) UpsertByGoogleID(_ context.Context, user models.CalendarUser) (*models.CalendarUser, error) {
	return &user, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.CalendarUser, error) {
	if r.owner != nil && r.owner.ID == id {
		return r.owner, nil
	}
	return nil, userRepo.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.CalendarUser, error) {
	if r.owner != nil && r.owner.Email == email {
		return r.owner, nil
	}
	return nil, userRepo.ErrNotFound
}

func (r *fakeUserRepo) EnsureIndexes() error { return nil }

// fakeGateway records created events and can be primed to fail.
type fakeGateway struct {
	mu        sync.Mutex
	created   []*gcal.Event
	createErr error
}

func (g *fakeGateway) CheckConflict(_ context.Context, _, _ string, _, _ time.Time, _ string) (*gcal.Event, error) {
	return nil, nil
}

func (g *fakeGateway) CreateEvent(_ context.Context, _, _ string, event *gcal.Event) (*gcal.Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.createErr != nil {
		return nil, g.createErr
	}
	created := *event
	created.Id = "ev-123"
	created.HtmlLink = "https://calendar.google.com/event?eid=ev-123"
	g.created = append(g.created, &created)
	return &created, nil
}

func (g *fakeGateway) GetEventByID(_ context.Context, _, _, _ string) (*gcal.Event, error) {
	return nil, nil
}

func (g *fakeGateway) UpdateEvent(_ context.Context, _, _, _ string, patch *gcal.Event) (*gcal.Event, error) {
	return patch, nil
}

func (g *fakeGateway) DeleteEvent(_ context.Context, _, _, _ string) (string, error) {
	return "cancelled", nil
}

type fakeDispatcher struct {
	mu     sync.Mutex
	queued []notification.Email
}

func (d *fakeDispatcher) EnqueueEmail(_ context.Context, email notification.Email) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queued = append(d.queued, email)
	return nil
}

func validRequest(slotID string) models.BookingRequest {
	return models.BookingRequest{
		Name:     "João",
		Email:    "joao@example.com",
		Date:     "2025-07-21",
		Time:     "14:00",
		TimeZone: "America/Sao_Paulo",
		SlotID:   slotID,
	}
}

func newService(slots *fakeSlotRepo, gw *fakeGateway, mail *fakeDispatcher) *DefaultBookingService {
	return &DefaultBookingService{
		Slots:      slots,
		Users:      &fakeUserRepo{owner: &models.CalendarUser{ID: "owner-1", Email: "consultora@example.com", RefreshToken: "rt"}},
		Calendar:   gw,
		Mail:       mail,
		OwnerEmail: "consultora@example.com",
		CalendarID: "primary",
	}
}

func TestBookSuccess(t *testing.T) {
	slots := newFakeSlotRepo(models.Slot{ID: "slot-1", Date: "2025-07-21", Time: "14:00"})
	gw := &fakeGateway{}
	mail := &fakeDispatcher{}
	svc := newService(slots, gw, mail)

	res, err := svc.Book(context.Background(), validRequest("slot-1"))
	require.NoError(t, err)

	assert.Equal(t, "Agendamento realizado com sucesso!", res.Message)
	assert.Equal(t, "ev-123", res.EventID)
	assert.NotEmpty(t, res.EventLink)
	require.NotNil(t, res.Slot)
	assert.True(t, res.Slot.IsBooked)
	require.NotNil(t, res.Slot.BookedBy)
	assert.Equal(t, models.IdentityKindGuest, res.Slot.BookedBy.Kind)
	assert.Equal(t, "joao@example.com", res.Slot.BookedEmail)

	require.Len(t, gw.created, 1)
	assert.Equal(t, "Consulta com João", gw.created[0].Summary)
	require.Len(t, gw.created[0].Attendees, 1)
	assert.Equal(t, "joao@example.com", gw.created[0].Attendees[0].Email)

	// Provider notification plus client confirmation.
	require.Len(t, mail.queued, 2)
	assert.Equal(t, "consultora@example.com", mail.queued[0].To)
	assert.Equal(t, "joao@example.com", mail.queued[1].To)

	// The booked slot no longer shows as available.
	dates, err := svc.AvailableDates(context.Background(), 7)
	require.NoError(t, err)
	assert.NotContains(t, dates, "2025-07-21")
}

func TestBookMissingFields(t *testing.T) {
	svc := newService(newFakeSlotRepo(), &fakeGateway{}, &fakeDispatcher{})

	req := validRequest("slot-1")
	req.Email = ""
	_, err := svc.Book(context.Background(), req)

	var bookingErr *BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, CodeBadRequest, bookingErr.Code)
}

func TestBookUnknownSlot(t *testing.T) {
	svc := newService(newFakeSlotRepo(), &fakeGateway{}, &fakeDispatcher{})

	_, err := svc.Book(context.Background(), validRequest("missing"))

	var bookingErr *BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, CodeNotFound, bookingErr.Code)
}

func TestBookAlreadyBookedSlot(t *testing.T) {
	slots := newFakeSlotRepo(models.Slot{ID: "slot-1", Date: "2025-07-21", Time: "14:00", IsBooked: true})
	svc := newService(slots, &fakeGateway{}, &fakeDispatcher{})

	_, err := svc.Book(context.Background(), validRequest("slot-1"))

	var bookingErr *BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, CodeSlotTaken, bookingErr.Code)
}

func TestBookDateTimeMismatch(t *testing.T) {
	slots := newFakeSlotRepo(models.Slot{ID: "slot-1", Date: "2025-07-21", Time: "16:00"})
	svc := newService(slots, &fakeGateway{}, &fakeDispatcher{})

	_, err := svc.Book(context.Background(), validRequest("slot-1"))

	var bookingErr *BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, CodeBadRequest, bookingErr.Code)
}

func TestBookReleasesSlotOnCalendarConflict(t *testing.T) {
	slots := newFakeSlotRepo(models.Slot{ID: "slot-1", Date: "2025-07-21", Time: "14:00"})
	gw := &fakeGateway{createErr: &calendar.ConflictError{Summary: "Consulta com Maria", EventID: "ev-9"}}
	mail := &fakeDispatcher{}
	svc := newService(slots, gw, mail)

	_, err := svc.Book(context.Background(), validRequest("slot-1"))

	var conflictErr *calendar.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "ev-9", conflictErr.EventID)

	// Compensation: the slot is back on the market and no mail went out.
	slot, getErr := slots.GetByID(context.Background(), "slot-1")
	require.NoError(t, getErr)
	assert.False(t, slot.IsBooked)
	assert.Empty(t, mail.queued)
}

func TestBookPropagatesAuthExpired(t *testing.T) {
	slots := newFakeSlotRepo(models.Slot{ID: "slot-1", Date: "2025-07-21", Time: "14:00"})
	gw := &fakeGateway{createErr: calendar.ErrAuthExpired}
	svc := newService(slots, gw, &fakeDispatcher{})

	_, err := svc.Book(context.Background(), validRequest("slot-1"))
	assert.True(t, errors.Is(err, calendar.ErrAuthExpired))
}

func TestConcurrentBookingsSingleWinner(t *testing.T) {
	slots := newFakeSlotRepo(models.Slot{ID: "slot-1", Date: "2025-07-21", Time: "14:00"})
	gw := &fakeGateway{}
	svc := newService(slots, gw, &fakeDispatcher{})

	const attempts = 16
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Book(context.Background(), validRequest("slot-1"))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
			continue
		}
		var bookingErr *BookingError
		require.ErrorAs(t, err, &bookingErr)
		assert.Equal(t, CodeSlotTaken, bookingErr.Code)
	}
	assert.Equal(t, 1, winners)
	assert.Len(t, gw.created, 1)
}
