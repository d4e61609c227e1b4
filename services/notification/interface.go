package notification

import "context"

// Email is one transactional message.
type Email struct {
	To      string `json:"to"`
	ToName  string `json:"toName,omitempty"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Sender delivers transactional emails. Implementations can be swapped
// (SendGrid, SMTP, logging stub) without changing callers.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

// Dispatcher hands an email to the background queue instead of sending it
// inline. Booking confirmations go through here so a slow mail provider
// never holds a booking response.
type Dispatcher interface {
	EnqueueEmail(ctx context.Context, email Email) error
}
