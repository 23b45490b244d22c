package adapters

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"codex_backend/internal/feature/auth/usecase"
	"codex_backend/internal/platform/mailer"
)

// ResetEmailSubject is the subject line of the password reset email.
const ResetEmailSubject = "Reset Your GetGeeky Codex Password"

var resetEmailTemplate = template.Must(template.New("reset").Parse(`<h2>Reset Your GetGeeky Codex Password</h2>
{{if .Name}}<p>Hi {{.Name}},</p>
{{end}}<p>Click the link below to reset your password:</p>
<a href="{{.URL}}">{{.URL}}</a>
<p>This link expires in 1 hour.</p>
`))

// MessageDispatcher queues an email without waiting for delivery.
type MessageDispatcher interface {
	Dispatch(msg mailer.Message)
}

// ResetMailer renders the reset email and hands it to the dispatcher.
type ResetMailer struct {
	dispatcher MessageDispatcher
}

var _ usecase.ResetNotifier = (*ResetMailer)(nil)

// NewResetMailer creates a ResetMailer.
func NewResetMailer(dispatcher MessageDispatcher) *ResetMailer {
	return &ResetMailer{dispatcher: dispatcher}
}

// NotifyPasswordReset returns once the message is queued. Delivery errors are logged by the dispatcher.
func (m *ResetMailer) NotifyPasswordReset(ctx context.Context, email, name, resetURL string) error {
	var body bytes.Buffer
	if err := resetEmailTemplate.Execute(&body, struct {
		Name string
		URL  string
	}{Name: name, URL: resetURL}); err != nil {
		return fmt.Errorf("render reset email: %w", err)
	}

	m.dispatcher.Dispatch(mailer.Message{
		To:      []string{email},
		Subject: ResetEmailSubject,
		HTML:    body.String(),
	})
	return nil
}
