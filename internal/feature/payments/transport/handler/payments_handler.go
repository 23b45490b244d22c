// Package handler はpaymentsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"codex_backend/internal/api"
	authentity "codex_backend/internal/feature/auth/domain/entity"
	"codex_backend/internal/feature/payments/domain/entity"
	"codex_backend/internal/feature/payments/transport/http/dto"
	"codex_backend/internal/feature/payments/usecase"
	jwtmw "codex_backend/internal/platform/jwt"
)

// WebhookPath はStripe WebhookのAPIパスです。
const WebhookPath = "/api/webhook/stripe"

// maxWebhookBytes はWebhook本文の上限です。
const maxWebhookBytes = 64 << 10

// PaymentsUsecase は決済のユースケースを定義します。
type PaymentsUsecase interface {
	OpenCheckout(ctx context.Context, user *authentity.User, plan, originURL, webhookURL string) (*entity.CheckoutSession, error)
	Status(ctx context.Context, user *authentity.User, sessionID string) (*usecase.ReconcileResult, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) (*usecase.WebhookResult, error)
	CurrentSubscription(ctx context.Context, user *authentity.User) (*usecase.SubscriptionView, error)
	Grant(ctx context.Context, userID, plan string) (*entity.Subscription, error)
	Revoke(ctx context.Context, userID string) error
}

// PaymentsHandler は決済関連のHTTPリクエストを処理します。
type PaymentsHandler struct {
	uc PaymentsUsecase
	// publicBaseURL が空の場合、Webhook URLはリクエストのscheme/hostから組み立てます。
	publicBaseURL string
}

// NewPaymentsHandler はPaymentsHandlerを生成します。
func NewPaymentsHandler(uc PaymentsUsecase, publicBaseURL string) *PaymentsHandler {
	return &PaymentsHandler{uc: uc, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// CreateCheckoutSession はチェックアウトセッションを開始します。
//
// エンドポイント例:
// POST /api/payments/checkout/session {"origin_url": "https://app.example.com", "plan": "monthly"}
func (h *PaymentsHandler) CreateCheckoutSession(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CheckoutSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.InvalidRequest())
		return
	}
	session, err := h.uc.OpenCheckout(c.Request.Context(), user, req.Plan, req.OriginURL, h.webhookURL(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CheckoutSessionResponse{URL: session.URL, SessionID: session.ID})
}

// CheckoutStatus はセッションの状態を取得し、必要なら支払い完了を反映します。
//
// エンドポイント例:
// GET /api/payments/checkout/status/cs_test_123
func (h *PaymentsHandler) CheckoutStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	res, err := h.uc.Status(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCheckoutStatusResponse(res.Checkout))
}

// StripeWebhook はStripeからのイベントを受け取ります。
// 失敗はすべて4xxで返し、再送はプロバイダーに任せます。
func (h *PaymentsHandler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.InvalidRequest())
		return
	}
	res, err := h.uc.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBadWebhookSignature):
			slog.Warn("webhook signature rejected", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid signature", Code: api.CodeBadWebhookSignature})
		case errors.Is(err, usecase.ErrProviderFailure):
			slog.Error("webhook reconciliation failed", "error", err)
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "payment provider unavailable", Code: api.CodeProviderFailure})
		default:
			writeError(c, err)
		}
		return
	}
	if res.Ignored {
		slog.Info("webhook ignored", "event", res.EventType, "session_id", res.SessionID)
	}
	c.JSON(http.StatusOK, dto.WebhookResponse{Status: "success", Event: res.EventType})
}

// Subscription は現在のプランと最新のサブスクリプション記録を返します。
//
// エンドポイント例:
// GET /api/user/subscription
func (h *PaymentsHandler) Subscription(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	view, err := h.uc.CurrentSubscription(c.Request.Context(), user)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSubscriptionResponse(view))
}

// Grant はサポート操作としてユーザーにサブスクリプションを付与します（管理者のみ）。
func (h *PaymentsHandler) Grant(c *gin.Context) {
	var req dto.GrantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.InvalidRequest())
		return
	}
	sub, err := h.uc.Grant(c.Request.Context(), req.UserID, req.Plan)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewGrantResponse(sub))
}

// Revoke はユーザーのプランをfreeに戻します（管理者のみ）。
func (h *PaymentsHandler) Revoke(c *gin.Context) {
	var req dto.RevokeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.InvalidRequest())
		return
	}
	if err := h.uc.Revoke(c.Request.Context(), req.UserID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Subscription revoked"})
}

func (h *PaymentsHandler) webhookURL(c *gin.Context) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL + WebhookPath
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	// プロキシが複数段の場合は先頭の値を使う。http/https以外は無視する
	fwd, _, _ := strings.Cut(c.GetHeader("X-Forwarded-Proto"), ",")
	switch fwd = strings.ToLower(strings.TrimSpace(fwd)); fwd {
	case "http", "https":
		scheme = fwd
	}
	return scheme + "://" + c.Request.Host + WebhookPath
}

func currentUser(c *gin.Context) (*authentity.User, bool) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required", Code: api.CodeInvalidToken})
		return nil, false
	}
	return user, true
}
