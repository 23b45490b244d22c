package di

import (
	"log/slog"

	"codex_backend/internal/platform/config"
	infrahttp "codex_backend/internal/platform/http"
	"codex_backend/internal/platform/mailer"
)

// NewMailSender returns a Resend sender when an API key is set.
// Otherwise messages are only logged.
func NewMailSender(cfg config.MailConfig) mailer.Sender {
	if cfg.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY is not set. Emails will be logged instead of sent.")
		return mailer.LogSender{}
	}
	return mailer.NewResendSender(cfg.ResendAPIKey, cfg.From, infrahttp.NewHTTPClient(cfg.SendTimeout))
}
