package di

import (
	"log/slog"
	"time"

	"codex_backend/internal/platform/config"
	"codex_backend/internal/platform/externalapi/stripecheckout"
	infrahttp "codex_backend/internal/platform/http"
)

const stripeTimeout = 30 * time.Second

// NewPaymentProvider creates a Stripe Checkout provider.
func NewPaymentProvider(cfg config.StripeConfig) *stripecheckout.Provider {
	if cfg.SecretKey == "" {
		slog.Warn("STRIPE_API_KEY is not set. Checkout requests will fail.")
	}
	if cfg.WebhookSecret == "" {
		slog.Warn("STRIPE_WEBHOOK_SECRET is not set. Webhooks will be rejected.")
	}
	return stripecheckout.NewProvider(stripecheckout.Config{
		SecretKey:     cfg.SecretKey,
		WebhookSecret: cfg.WebhookSecret,
	}, infrahttp.NewHTTPClient(stripeTimeout))
}
