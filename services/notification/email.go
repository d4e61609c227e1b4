package notification

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"oraculo/utils"
)

const senderName = "Agendamento Espiritual"

// SendGridSender sends emails via the SendGrid API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
}

// NewSendGridSender creates a SendGrid-backed sender. Returns nil when no
// API key is configured so callers can fall back to the logging stub.
func NewSendGridSender(apiKey, fromEmail string) *SendGridSender {
	if apiKey == "" {
		return nil
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
	}
}

func (s *SendGridSender) Send(ctx context.Context, email Email) error {
	from := mail.NewEmail(senderName, s.fromEmail)
	to := mail.NewEmail(email.ToName, email.To)
	message := mail.NewSingleEmail(from, email.Subject, to, email.Body, email.Body)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	utils.GetLogger().Info("email sent",
		zap.String("to", email.To), zap.String("subject", email.Subject))
	return nil
}

// LogSender is a no-op sender for development and tests.
type LogSender struct{}

func (LogSender) Send(_ context.Context, email Email) error {
	utils.GetLogger().Sugar().Infof("stub mail sender: would send %q to %s", email.Subject, email.To)
	return nil
}
