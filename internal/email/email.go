package email

import (
	"context"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/rs/zerolog/log"
)

// Sender delivers transactional email. Delivery failures are logged, not
// surfaced to API callers.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// MailgunSender implements Sender using the Mailgun API
type MailgunSender struct {
	mg   *mailgun.MailgunImpl
	from string
}

// NewMailgunSender creates a new MailgunSender
func NewMailgunSender(domain, apiKey, from string) *MailgunSender {
	return &MailgunSender{
		mg:   mailgun.NewMailgun(domain, apiKey),
		from: from,
	}
}

// Send sends a plain-text message
func (s *MailgunSender) Send(ctx context.Context, to, subject, body string) error {
	message := s.mg.NewMessage(s.from, subject, body, to)
	_, _, err := s.mg.Send(ctx, message)
	if err != nil {
		log.Error().Err(err).Str("to", to).Msg("failed to send email")
	}
	return err
}

// NoopSender discards all mail; used when Mailgun is not configured
type NoopSender struct{}

// Send logs and drops the message
func (NoopSender) Send(_ context.Context, to, subject, _ string) error {
	log.Debug().Str("to", to).Str("subject", subject).Msg("email sending disabled, dropping message")
	return nil
}
