package notification

import (
	"fmt"

	"oraculo/models"
)

// BookingEmails composes the two confirmation messages a successful booking
// produces: one to the service provider's notification address and one to
// the client.
func BookingEmails(req models.BookingRequest, notifyEmail string) []Email {
	provider := Email{
		To:      notifyEmail,
		Subject: "Nova consulta agendada",
		Body: fmt.Sprintf(
			"Cliente: %s\nEmail: %s\nData: %s\nHorário: %s (%s)",
			req.Name, req.Email, req.Date, req.Time, req.TimeZone,
		),
	}
	client := Email{
		To:      req.Email,
		ToName:  req.Name,
		Subject: "Consulta agendada com sucesso!",
		Body: fmt.Sprintf(
			"Olá %s,\n\nSua consulta espiritual foi confirmada para %s às %s (%s).\n\nAté breve!",
			req.Name, req.Date, req.Time, req.TimeZone,
		),
	}
	return []Email{provider, client}
}
