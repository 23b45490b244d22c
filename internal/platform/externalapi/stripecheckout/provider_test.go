package stripecheckout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76/webhook"

	"codex_backend/internal/feature/payments/domain/entity"
	"codex_backend/internal/feature/payments/usecase"
)

const testWebhookSecret = "whsec_test"

func newTestProvider(t *testing.T, h http.HandlerFunc) *Provider {
	t.Helper()

	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return NewProvider(Config{
		SecretKey:     "sk_test_123",
		WebhookSecret: testWebhookSecret,
		BaseURL:       server.URL,
	}, server.Client())
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestProvider_CreateCheckoutSession(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "idem-1", r.Header.Get("Idempotency-Key"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "999", r.PostForm.Get("line_items[0][price_data][unit_amount]"))
		assert.Equal(t, "usd", r.PostForm.Get("line_items[0][price_data][currency]"))
		assert.Equal(t, "1", r.PostForm.Get("line_items[0][quantity]"))
		assert.Equal(t, "u1", r.PostForm.Get("metadata[user_id]"))
		assert.Equal(t, "https://api.example.com/api/webhook/stripe", r.PostForm.Get("metadata[webhook_url]"))

		writeJSON(t, w, http.StatusOK, map[string]any{
			"id":     "cs_test_1",
			"object": "checkout.session",
			"url":    "https://checkout.stripe.com/c/pay/cs_test_1",
			"status": "open",
		})
	})

	session, err := p.CreateCheckoutSession(context.Background(), entity.CheckoutRequest{
		Amount:         999,
		Currency:       "usd",
		ProductName:    "Codex monthly subscription",
		SuccessURL:     "https://app.example.com/subscription-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:      "https://app.example.com/profile",
		WebhookURL:     "https://api.example.com/api/webhook/stripe",
		IdempotencyKey: "idem-1",
		Metadata:       map[string]string{"user_id": "u1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "cs_test_1", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_1", session.URL)
}

func TestProvider_GetCheckoutStatus(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/checkout/sessions/cs_test_1", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"id":             "cs_test_1",
			"object":         "checkout.session",
			"status":         "complete",
			"payment_status": "paid",
			"amount_total":   999,
			"currency":       "usd",
			"metadata":       map[string]string{"user_id": "u1"},
		})
	})

	status, err := p.GetCheckoutStatus(context.Background(), "cs_test_1")

	require.NoError(t, err)
	assert.True(t, status.Paid())
	assert.Equal(t, entity.CheckoutComplete, status.Status)
	assert.Equal(t, int64(999), status.AmountTotal)
	assert.Equal(t, "usd", status.Currency)
	assert.Equal(t, "u1", status.Metadata["user_id"])
}

func TestProvider_GetCheckoutStatus_Error(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]any{
			"error": map[string]any{
				"type":    "invalid_request_error",
				"message": "No such checkout.session: cs_missing",
			},
		})
	})

	_, err := p.GetCheckoutStatus(context.Background(), "cs_missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cs_missing")
}

func signedPayload(t *testing.T, payload []byte, secret string) string {
	t.Helper()

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: time.Now(),
	})
	return signed.Header
}

func TestProvider_ParseWebhook(t *testing.T) {
	t.Parallel()

	p := NewProvider(Config{SecretKey: "sk_test_123", WebhookSecret: testWebhookSecret}, http.DefaultClient)

	sessionEvent := []byte(`{"id":"evt_1","object":"event","type":"checkout.session.completed","api_version":"2020-08-27","data":{"object":{"id":"cs_test_1","object":"checkout.session"}}}`)
	invoiceEvent := []byte(`{"id":"evt_2","object":"event","type":"invoice.paid","api_version":"2020-08-27","data":{"object":{"id":"in_1","object":"invoice"}}}`)

	tests := []struct {
		name        string
		payload     []byte
		secret      string
		wantErr     error
		wantType    string
		wantSession string
	}{
		{name: "checkout session event", payload: sessionEvent, secret: testWebhookSecret, wantType: "checkout.session.completed", wantSession: "cs_test_1"},
		{name: "other event has no session", payload: invoiceEvent, secret: testWebhookSecret, wantType: "invoice.paid"},
		{name: "wrong secret", payload: sessionEvent, secret: "whsec_other", wantErr: usecase.ErrBadWebhookSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ev, err := p.ParseWebhook(tt.payload, signedPayload(t, tt.payload, tt.secret))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, ev.Type)
			assert.Equal(t, tt.wantSession, ev.SessionID)
		})
	}
}

func TestProvider_ParseWebhook_MissingHeader(t *testing.T) {
	t.Parallel()

	p := NewProvider(Config{WebhookSecret: testWebhookSecret}, http.DefaultClient)

	_, err := p.ParseWebhook([]byte(`{}`), "")

	assert.ErrorIs(t, err, usecase.ErrBadWebhookSignature)
}
