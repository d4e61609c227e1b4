package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oraculo/models"
)

func TestBookingEmails(t *testing.T) {
	req := models.BookingRequest{
		Name:     "João",
		Email:    "joao@example.com",
		Date:     "2025-07-21",
		Time:     "14:00",
		TimeZone: "America/Sao_Paulo",
	}

	emails := BookingEmails(req, "consultora@example.com")
	require.Len(t, emails, 2)

	provider, client := emails[0], emails[1]

	assert.Equal(t, "consultora@example.com", provider.To)
	assert.Equal(t, "Nova consulta agendada", provider.Subject)
	assert.Contains(t, provider.Body, "joao@example.com")
	assert.Contains(t, provider.Body, "2025-07-21")

	assert.Equal(t, "joao@example.com", client.To)
	assert.Equal(t, "João", client.ToName)
	assert.Equal(t, "Consulta agendada com sucesso!", client.Subject)
	assert.Contains(t, client.Body, "14:00")
}
