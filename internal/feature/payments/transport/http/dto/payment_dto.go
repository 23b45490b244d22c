// Package dto はpaymentsフィーチャーのリクエスト・レスポンス型を定義します。
package dto

import (
	"time"

	"codex_backend/internal/feature/payments/domain/entity"
	"codex_backend/internal/feature/payments/usecase"
)

// CheckoutSessionReq はチェックアウト開始リクエストです。planは省略時monthlyです。
type CheckoutSessionReq struct {
	OriginURL string `json:"origin_url"`
	Plan      string `json:"plan"`
}

// CheckoutSessionResponse はプロバイダーのチェックアウトURLとセッションIDです。
type CheckoutSessionResponse struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id"`
}

// CheckoutStatusResponse は照合後のセッション状態です。
type CheckoutStatusResponse struct {
	SessionID     string            `json:"session_id"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency"`
	Metadata      map[string]string `json:"metadata"`
}

func NewCheckoutStatusResponse(s *entity.CheckoutStatus) CheckoutStatusResponse {
	md := s.Metadata
	if md == nil {
		md = map[string]string{}
	}
	return CheckoutStatusResponse{
		SessionID:     s.SessionID,
		Status:        s.Status,
		PaymentStatus: s.PaymentStatus,
		AmountTotal:   s.AmountTotal,
		Currency:      s.Currency,
		Metadata:      md,
	}
}

// WebhookResponse はWebhookの受理応答です。
type WebhookResponse struct {
	Status string `json:"status"`
	Event  string `json:"event"`
}

// SubscriptionRecord はサブスクリプション記録のJSON表現です。
type SubscriptionRecord struct {
	ID        string    `json:"id"`
	Plan      string    `json:"plan"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"start_date"`
	SessionID string    `json:"session_id"`
}

// SubscriptionResponse は GET /user/subscription のレスポンスです。
type SubscriptionResponse struct {
	Plan         string              `json:"plan"`
	Subscription *SubscriptionRecord `json:"subscription"`
}

func newSubscriptionRecord(s *entity.Subscription) *SubscriptionRecord {
	if s == nil {
		return nil
	}
	return &SubscriptionRecord{
		ID:        s.ID,
		Plan:      string(s.Plan),
		Status:    s.Status,
		StartDate: s.StartDate,
		SessionID: s.SessionID,
	}
}

func NewSubscriptionResponse(v *usecase.SubscriptionView) SubscriptionResponse {
	return SubscriptionResponse{
		Plan:         string(v.Plan),
		Subscription: newSubscriptionRecord(v.Subscription),
	}
}

// GrantReq は管理者によるサブスクリプション付与リクエストです。
type GrantReq struct {
	UserID string `json:"user_id" binding:"required"`
	Plan   string `json:"plan"`
}

// RevokeReq は管理者によるサブスクリプション取り消しリクエストです。
type RevokeReq struct {
	UserID string `json:"user_id" binding:"required"`
}

// GrantResponse は付与されたサブスクリプションを返します。
type GrantResponse struct {
	Message      string              `json:"message"`
	Subscription *SubscriptionRecord `json:"subscription"`
}

func NewGrantResponse(s *entity.Subscription) GrantResponse {
	return GrantResponse{Message: "Subscription granted", Subscription: newSubscriptionRecord(s)}
}
