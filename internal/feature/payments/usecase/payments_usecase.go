// Package usecase はpaymentsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	authentity "codex_backend/internal/feature/auth/domain/entity"
	"codex_backend/internal/feature/payments/domain/entity"
)

// ManualSessionPrefix はサポートによる手動付与のSubscription.SessionIDに付く接頭辞です。
const ManualSessionPrefix = "manual:"

// PlanPrices はプランごとの価格（USDセント）です。
var PlanPrices = map[entity.BillingPlan]int64{
	entity.PlanMonthly: 999,
	entity.PlanYearly:  9999,
}

// PaymentProvider は外部決済プロバイダーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, req entity.CheckoutRequest) (*entity.CheckoutSession, error)
	GetCheckoutStatus(ctx context.Context, sessionID string) (*entity.CheckoutStatus, error)
	// ParseWebhook は署名を検証してイベントを返します。検証失敗時はErrBadWebhookSignatureを返します。
	ParseWebhook(payload []byte, signature string) (*entity.WebhookEvent, error)
}

// Ledger は決済記録とサブスクリプション状態の永続化層を抽象化します。
type Ledger interface {
	CreateTransaction(ctx context.Context, tx *entity.PaymentTransaction) error
	// FindTransaction は存在しない場合にErrTransactionNotFoundを返します。
	FindTransaction(ctx context.Context, sessionID string) (*entity.PaymentTransaction, error)
	// CompletePayment は1つのDBトランザクションで決済をpaidにし、ユーザーのプランをpaidにし、
	// サブスクリプションを追加します。既にpaidの場合は何もせずfalseを返します。
	CompletePayment(ctx context.Context, sessionID string, sub *entity.Subscription, now time.Time) (bool, error)
	// MarkFailed はpendingの決済をfailedにします。
	MarkFailed(ctx context.Context, sessionID string, now time.Time) (bool, error)
	// LatestSubscription は存在しない場合にErrSubscriptionNotFoundを返します。
	LatestSubscription(ctx context.Context, userID string) (*entity.Subscription, error)
	// SetPlan はユーザーのプランを変更し、subがnilでなければ追加します。
	SetPlan(ctx context.Context, userID string, plan authentity.Plan, sub *entity.Subscription) error
}

// IDGenerator は新しいIDを生成します。
type IDGenerator func() string

// ReconcileResult は照合の結果です。
type ReconcileResult struct {
	Checkout *entity.CheckoutStatus
	// Applied はこの呼び出しで初めて支払い完了を反映した場合にtrueです。
	Applied bool
}

// WebhookResult はWebhook処理の結果です。
type WebhookResult struct {
	EventType string
	SessionID string
	Ignored   bool
}

// SubscriptionView は現在のプランと最新のサブスクリプション記録です。
type SubscriptionView struct {
	Plan         authentity.Plan
	Subscription *entity.Subscription
}

type paymentsUsecase struct {
	provider PaymentProvider
	ledger   Ledger
	currency string
	newID    IDGenerator
	now      func() time.Time
}

// NewPaymentsUsecase はpaymentsUsecaseを生成します。
func NewPaymentsUsecase(provider PaymentProvider, ledger Ledger, currency string, newID IDGenerator) *paymentsUsecase {
	if currency == "" {
		currency = "usd"
	}
	return &paymentsUsecase{
		provider: provider,
		ledger:   ledger,
		currency: currency,
		newID:    newID,
		now:      time.Now,
	}
}

// ParseBillingPlan は空文字をmonthlyとして扱い、未知のプランにErrInvalidPlanを返します。
func ParseBillingPlan(s string) (entity.BillingPlan, error) {
	if s == "" {
		return entity.PlanMonthly, nil
	}
	p := entity.BillingPlan(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := PlanPrices[p]; !ok {
		return "", ErrInvalidPlan
	}
	return p, nil
}

// OpenCheckout はチェックアウトセッションを作成し、pendingのトランザクションを記録します。
func (u *paymentsUsecase) OpenCheckout(ctx context.Context, user *authentity.User, plan, originURL, webhookURL string) (*entity.CheckoutSession, error) {
	origin := strings.TrimRight(strings.TrimSpace(originURL), "/")
	if origin == "" {
		return nil, ErrMissingOriginURL
	}
	billing, err := ParseBillingPlan(plan)
	if err != nil {
		return nil, err
	}
	amount := PlanPrices[billing]

	session, err := u.provider.CreateCheckoutSession(ctx, entity.CheckoutRequest{
		Amount:         amount,
		Currency:       u.currency,
		ProductName:    "Codex " + string(billing) + " subscription",
		SuccessURL:     origin + "/subscription-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:      origin + "/profile",
		WebhookURL:     webhookURL,
		CustomerEmail:  user.Email,
		IdempotencyKey: u.newID(),
		Metadata:       map[string]string{"user_id": user.ID, "plan": string(billing)},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderFailure, err)
	}

	now := u.now().UTC()
	err = u.ledger.CreateTransaction(ctx, &entity.PaymentTransaction{
		SessionID:     session.ID,
		UserID:        user.ID,
		Amount:        amount,
		Currency:      u.currency,
		Plan:          billing,
		PaymentStatus: entity.PaymentPending,
		Status:        entity.TransactionInitiated,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, fmt.Errorf("record transaction %s: %w", session.ID, err)
	}
	slog.Info("checkout session opened", "session_id", session.ID, "user_id", user.ID, "plan", billing, "amount", amount)
	return session, nil
}

// Status は呼び出し元ユーザーのセッションであることを確認してから照合します。
func (u *paymentsUsecase) Status(ctx context.Context, user *authentity.User, sessionID string) (*ReconcileResult, error) {
	tx, err := u.ledger.FindTransaction(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if tx.UserID != user.ID {
		return nil, ErrTransactionNotFound
	}
	return u.reconcile(ctx, tx)
}

// Reconcile はプロバイダーの状態をローカルの記録に反映します。
// 支払い完了の反映は最初の観測でのみ行われ、何度呼ばれても結果は同じです。
func (u *paymentsUsecase) Reconcile(ctx context.Context, sessionID string) (*ReconcileResult, error) {
	tx, err := u.ledger.FindTransaction(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return u.reconcile(ctx, tx)
}

func (u *paymentsUsecase) reconcile(ctx context.Context, tx *entity.PaymentTransaction) (*ReconcileResult, error) {
	status, err := u.provider.GetCheckoutStatus(ctx, tx.SessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderFailure, err)
	}
	now := u.now().UTC()
	res := &ReconcileResult{Checkout: status}

	switch {
	case status.Paid() && tx.PaymentStatus != entity.PaymentPaid:
		applied, err := u.ledger.CompletePayment(ctx, tx.SessionID, &entity.Subscription{
			ID:        u.newID(),
			UserID:    tx.UserID,
			Plan:      tx.Plan,
			Status:    entity.SubscriptionActive,
			StartDate: now,
			SessionID: tx.SessionID,
		}, now)
		if err != nil {
			return nil, fmt.Errorf("complete payment %s: %w", tx.SessionID, err)
		}
		res.Applied = applied
		if applied {
			slog.Info("payment completed", "session_id", tx.SessionID, "user_id", tx.UserID, "plan", tx.Plan)
		}
	case status.Status == entity.CheckoutExpired && tx.PaymentStatus == entity.PaymentPending:
		if _, err := u.ledger.MarkFailed(ctx, tx.SessionID, now); err != nil {
			return nil, fmt.Errorf("mark payment failed %s: %w", tx.SessionID, err)
		}
	}
	return res, nil
}

// HandleWebhook は署名を検証し、checkout.session.* イベントを照合に渡します。
// 未知のセッションやその他のイベントは受理して無視します。
func (u *paymentsUsecase) HandleWebhook(ctx context.Context, payload []byte, signature string) (*WebhookResult, error) {
	ev, err := u.provider.ParseWebhook(payload, signature)
	if err != nil {
		return nil, err
	}
	res := &WebhookResult{EventType: ev.Type, SessionID: ev.SessionID}
	if !strings.HasPrefix(ev.Type, "checkout.session.") || ev.SessionID == "" {
		res.Ignored = true
		return res, nil
	}

	if _, err := u.Reconcile(ctx, ev.SessionID); err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			slog.Warn("webhook for unknown session", "session_id", ev.SessionID, "event", ev.Type)
			res.Ignored = true
			return res, nil
		}
		return nil, err
	}
	return res, nil
}

// CurrentSubscription は現在のプランと最新のサブスクリプション記録を返します。
func (u *paymentsUsecase) CurrentSubscription(ctx context.Context, user *authentity.User) (*SubscriptionView, error) {
	view := &SubscriptionView{Plan: user.SubscriptionPlan}
	sub, err := u.ledger.LatestSubscription(ctx, user.ID)
	switch {
	case err == nil:
		view.Subscription = sub
	case errors.Is(err, ErrSubscriptionNotFound):
	default:
		return nil, fmt.Errorf("latest subscription: %w", err)
	}
	return view, nil
}

// Grant はサポート操作としてユーザーをpaidにし、manual:<id> のサブスクリプションを追加します。
func (u *paymentsUsecase) Grant(ctx context.Context, userID, plan string) (*entity.Subscription, error) {
	billing, err := ParseBillingPlan(plan)
	if err != nil {
		return nil, err
	}
	sub := &entity.Subscription{
		ID:        u.newID(),
		UserID:    userID,
		Plan:      billing,
		Status:    entity.SubscriptionActive,
		StartDate: u.now().UTC(),
		SessionID: ManualSessionPrefix + u.newID(),
	}
	if err := u.ledger.SetPlan(ctx, userID, authentity.PlanPaid, sub); err != nil {
		return nil, err
	}
	slog.Info("subscription granted", "user_id", userID, "plan", billing)
	return sub, nil
}

// Revoke はユーザーのプランをfreeに戻します。
func (u *paymentsUsecase) Revoke(ctx context.Context, userID string) error {
	if err := u.ledger.SetPlan(ctx, userID, authentity.PlanFree, nil); err != nil {
		return err
	}
	slog.Info("subscription revoked", "user_id", userID)
	return nil
}
