// Package mailer sends transactional email.
package mailer

import (
	"context"
	"log/slog"
)

// Message is one outbound email.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Sender delivers a single message synchronously.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the log instead of sending them.
// It is used when no provider API key is configured.
type LogSender struct{}

// Send logs the recipients and subject.
func (LogSender) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "email delivery disabled, message dropped", "to", msg.To, "subject", msg.Subject)
	return nil
}
