package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"

	slotRepo "oraculo/database/repository/slot"
	"oraculo/models"
	"oraculo/services/notification"
	"oraculo/utils"
)

const availableDatesCacheKey = "slots:available-dates"
const availableDatesCacheTTL = 60 * time.Second

// availableWindowDays is the horizon shown on the scheduling form.
const availableWindowDays = 7

// Book runs the booking saga: validate, reserve the slot optimistically via
// a conditional update, create the remote calendar event, and compensate by
// releasing the slot if the remote side refuses. The slot store is the
// authority on availability; the remote conflict check is a safety net.
func (s *DefaultBookingService) Book(ctx context.Context, req models.BookingRequest) (*models.BookingResponse, error) {
	logger := utils.GetLogger()

	start, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	slot, err := s.Slots.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrNotFound) {
			return nil, NewNotFound("Slot não encontrado.")
		}
		return nil, fmt.Errorf("slot lookup failed: %w", err)
	}
	if slot.IsBooked {
		return nil, NewSlotTaken("Este horário já foi agendado.")
	}
	if slot.Date != req.Date || slot.Time != req.Time {
		return nil, NewBadRequest("Inconsistência de dados: data ou hora do slot não corresponde.")
	}

	owner, err := s.Users.GetByEmail(ctx, s.OwnerEmail)
	if err != nil {
		return nil, NewInternal("O calendário do consultor ainda não está conectado.")
	}

	identity := models.GuestIdentity(req.Name, req.Email)
	reserved, err := s.Slots.Reserve(ctx, req.SlotID, identity, req.TimeZone)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotTaken) {
			return nil, NewSlotTaken("Este horário já foi agendado.")
		}
		if errors.Is(err, slotRepo.ErrNotFound) {
			return nil, NewNotFound("Slot não encontrado.")
		}
		return nil, fmt.Errorf("slot reservation failed: %w", err)
	}

	event := buildConsultationEvent(req, start)
	created, err := s.Calendar.CreateEvent(ctx, owner.ID, s.CalendarID, event)
	if err != nil {
		// Compensation: the slot was reserved but the remote event never
		// materialized, so put the slot back on the market.
		if relErr := s.Slots.Release(context.WithoutCancel(ctx), req.SlotID); relErr != nil {
			logger.Error("failed to release slot after calendar error",
				zap.String("slotId", req.SlotID), zap.Error(relErr))
		}
		return nil, err
	}

	s.invalidateDatesCache(ctx)
	s.enqueueConfirmation(ctx, req)

	logger.Info("booking confirmed",
		zap.String("slotId", reserved.ID),
		zap.String("eventId", created.Id),
		zap.String("client", req.Email),
	)

	return &models.BookingResponse{
		Message:   "Agendamento realizado com sucesso!",
		EventID:   created.Id,
		EventLink: created.HtmlLink,
		Slot:      reserved,
	}, nil
}

// AvailableSlots returns every unbooked slot ordered by (date, time).
func (s *DefaultBookingService) AvailableSlots(ctx context.Context) ([]models.Slot, error) {
	return s.Slots.GetAvailable(ctx, 0)
}

// AvailableDates returns the distinct sorted dates with at least one open
// slot inside the booking window. The result is briefly cached in redis.
func (s *DefaultBookingService) AvailableDates(ctx context.Context, withinDays int) ([]string, error) {
	if withinDays <= 0 {
		withinDays = availableWindowDays
	}

	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, availableDatesCacheKey).Result(); err == nil {
			var dates []string
			if json.Unmarshal([]byte(cached), &dates) == nil {
				return dates, nil
			}
		}
	}

	dates, err := s.Slots.GetAvailableDates(ctx, withinDays)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if payload, err := json.Marshal(dates); err == nil {
			if err := s.Cache.Set(ctx, availableDatesCacheKey, payload, availableDatesCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("failed to cache available dates", zap.Error(err))
			}
		}
	}
	return dates, nil
}

func (s *DefaultBookingService) invalidateDatesCache(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, availableDatesCacheKey).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate dates cache", zap.Error(err))
	}
}

func (s *DefaultBookingService) enqueueConfirmation(ctx context.Context, req models.BookingRequest) {
	if s.Mail == nil {
		return
	}
	for _, email := range notification.BookingEmails(req, s.OwnerEmail) {
		if err := s.Mail.EnqueueEmail(ctx, email); err != nil {
			// Mail failures never fail a booking.
			utils.GetLogger().Warn("failed to enqueue confirmation email",
				zap.String("to", email.To), zap.Error(err))
		}
	}
}

// validateRequest checks field presence and resolves the requested start
// instant in the client's timezone.
func validateRequest(req models.BookingRequest) (time.Time, error) {
	if req.Name == "" || req.Email == "" || req.Date == "" || req.Time == "" || req.TimeZone == "" || req.SlotID == "" {
		return time.Time{}, NewBadRequest("Nome, e-mail, data/hora, fuso horário e ID do slot são obrigatórios.")
	}
	loc, err := time.LoadLocation(req.TimeZone)
	if err != nil {
		return time.Time{}, NewBadRequest("Fuso horário inválido.")
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.Time, loc)
	if err != nil {
		return time.Time{}, NewBadRequest("Data ou hora em formato inválido.")
	}
	return start, nil
}

func buildConsultationEvent(req models.BookingRequest, start time.Time) *gcal.Event {
	return &gcal.Event{
		Summary:     fmt.Sprintf("Consulta com %s", req.Name),
		Description: fmt.Sprintf("Consulta espiritual agendada por %s (%s).", req.Name, req.Email),
		Start: &gcal.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: req.TimeZone,
		},
		Attendees: []*gcal.EventAttendee{
			{Email: req.Email},
		},
	}
}
