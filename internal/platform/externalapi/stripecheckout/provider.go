// Package stripecheckout はStripe Checkoutを使ったPaymentProvider実装を提供します。
package stripecheckout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"codex_backend/internal/feature/payments/domain/entity"
	"codex_backend/internal/feature/payments/usecase"
)

// Config はStripeクライアントの設定です。
type Config struct {
	SecretKey     string
	WebhookSecret string
	// BaseURL はテストでAPIの向き先を差し替えるときだけ指定します。
	BaseURL string
}

// Provider はStripe CheckoutのPaymentProvider実装です。
type Provider struct {
	api           *client.API
	webhookSecret string
}

var _ usecase.PaymentProvider = (*Provider)(nil)

// NewProvider は指定されたHTTPクライアントを使うStripe APIクライアントを生成します。
// ネットワークリトライは行いません。セッション作成の重複はIdempotency-Keyで防ぎます。
func NewProvider(cfg Config, httpClient *http.Client) *Provider {
	backendCfg := &stripe.BackendConfig{
		HTTPClient:        httpClient,
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}
	if cfg.BaseURL != "" {
		backendCfg.URL = stripe.String(cfg.BaseURL)
	}
	api := &client.API{}
	api.Init(cfg.SecretKey, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendCfg),
	})
	return &Provider{api: api, webhookSecret: cfg.WebhookSecret}
}

// CreateCheckoutSession は1明細の支払いモードのセッションを作成します。
// Webhook URLはセッション単位で指定できないため、メタデータとして記録します。
func (p *Provider) CreateCheckoutSession(ctx context.Context, req entity.CheckoutRequest) (*entity.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.ProductName),
					},
					UnitAmount: stripe.Int64(req.Amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.WebhookURL != "" {
		params.AddMetadata("webhook_url", req.WebhookURL)
	}
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	s, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create checkout session: %w", err)
	}
	return &entity.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// GetCheckoutStatus はセッションの状態を取得します。
func (p *Provider) GetCheckoutStatus(ctx context.Context, sessionID string) (*entity.CheckoutStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	s, err := p.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe get checkout session %s: %w", sessionID, err)
	}
	return toStatus(s), nil
}

// ParseWebhook はStripe-Signatureヘッダーを検証し、checkout.session.* イベントからセッションIDを取り出します。
func (p *Provider) ParseWebhook(payload []byte, signature string) (*entity.WebhookEvent, error) {
	ev, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", usecase.ErrBadWebhookSignature, err)
	}

	out := &entity.WebhookEvent{ID: ev.ID, Type: string(ev.Type)}
	if ev.Data == nil || len(ev.Data.Raw) == 0 {
		return out, nil
	}
	var obj struct {
		ID     string `json:"id"`
		Object string `json:"object"`
	}
	if err := json.Unmarshal(ev.Data.Raw, &obj); err != nil {
		return nil, fmt.Errorf("decode webhook object: %w", err)
	}
	if obj.Object == "checkout.session" {
		out.SessionID = obj.ID
	}
	return out, nil
}

func toStatus(s *stripe.CheckoutSession) *entity.CheckoutStatus {
	md := s.Metadata
	if md == nil {
		md = map[string]string{}
	}
	return &entity.CheckoutStatus{
		SessionID:     s.ID,
		Status:        string(s.Status),
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		Metadata:      md,
	}
}
