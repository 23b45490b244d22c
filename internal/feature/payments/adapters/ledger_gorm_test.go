package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentity "codex_backend/internal/feature/auth/domain/entity"
	authusecase "codex_backend/internal/feature/auth/usecase"
	"codex_backend/internal/feature/payments/domain/entity"
	"codex_backend/internal/feature/payments/usecase"
)

func subFor(id, userID, sessionID string, start time.Time) *entity.Subscription {
	return &entity.Subscription{
		ID:        id,
		UserID:    userID,
		Plan:      entity.PlanMonthly,
		Status:    entity.SubscriptionActive,
		StartDate: start,
		SessionID: sessionID,
	}
}

func TestLedger_CreateAndFindTransaction(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewLedger(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateTransaction(ctx, pendingTransaction("cs_1", "u1")))

	got, err := repo.FindTransaction(ctx, "cs_1")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, int64(999), got.Amount)
	assert.Equal(t, entity.PaymentPending, got.PaymentStatus)
	assert.Equal(t, entity.TransactionInitiated, got.Status)

	_, err = repo.FindTransaction(ctx, "cs_missing")
	assert.ErrorIs(t, err, usecase.ErrTransactionNotFound)
}

func TestLedger_CompletePaymentOnlyOnce(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedUser(t, db, "u1")
	repo := NewLedger(db)
	ctx := context.Background()
	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.CreateTransaction(ctx, pendingTransaction("cs_1", "u1")))

	applied, err := repo.CompletePayment(ctx, "cs_1", subFor("sub-1", "u1", "cs_1", now), now)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = repo.CompletePayment(ctx, "cs_1", subFor("sub-2", "u1", "cs_1", now), now)
	require.NoError(t, err)
	assert.False(t, applied)

	var count int64
	require.NoError(t, db.Model(&SubscriptionModel{}).Where("session_id = ?", "cs_1").Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, string(authentity.PlanPaid), userPlan(t, db, "u1"))

	tx, err := repo.FindTransaction(ctx, "cs_1")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, tx.PaymentStatus)
	assert.Equal(t, entity.TransactionCompleted, tx.Status)
}

func TestLedger_CompletePaymentRollsBackForUnknownUser(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewLedger(db)
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, repo.CreateTransaction(ctx, pendingTransaction("cs_1", "ghost")))

	_, err := repo.CompletePayment(ctx, "cs_1", subFor("sub-1", "ghost", "cs_1", now), now)
	assert.ErrorIs(t, err, authusecase.ErrUserNotFound)

	tx, err := repo.FindTransaction(ctx, "cs_1")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPending, tx.PaymentStatus, "transaction update must be rolled back")
}

func TestLedger_MarkFailed(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedUser(t, db, "u1")
	repo := NewLedger(db)
	ctx := context.Background()
	now := time.Now().UTC()
	require.NoError(t, repo.CreateTransaction(ctx, pendingTransaction("cs_pending", "u1")))
	require.NoError(t, repo.CreateTransaction(ctx, pendingTransaction("cs_paid", "u1")))
	_, err := repo.CompletePayment(ctx, "cs_paid", subFor("sub-1", "u1", "cs_paid", now), now)
	require.NoError(t, err)

	changed, err := repo.MarkFailed(ctx, "cs_pending", now)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.MarkFailed(ctx, "cs_paid", now)
	require.NoError(t, err)
	assert.False(t, changed, "paid never goes back")

	tx, err := repo.FindTransaction(ctx, "cs_paid")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, tx.PaymentStatus)
}

func TestLedger_LatestSubscriptionAndSetPlan(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	seedUser(t, db, "u1")
	repo := NewLedger(db)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := repo.LatestSubscription(ctx, "u1")
	assert.ErrorIs(t, err, usecase.ErrSubscriptionNotFound)

	require.NoError(t, repo.SetPlan(ctx, "u1", authentity.PlanPaid, subFor("sub-old", "u1", "manual:a", base)))
	require.NoError(t, repo.SetPlan(ctx, "u1", authentity.PlanPaid, subFor("sub-new", "u1", "manual:b", base.Add(time.Hour))))

	latest, err := repo.LatestSubscription(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "sub-new", latest.ID)
	assert.Equal(t, string(authentity.PlanPaid), userPlan(t, db, "u1"))

	require.NoError(t, repo.SetPlan(ctx, "u1", authentity.PlanFree, nil))
	assert.Equal(t, string(authentity.PlanFree), userPlan(t, db, "u1"))

	err = repo.SetPlan(ctx, "nobody", authentity.PlanPaid, nil)
	assert.ErrorIs(t, err, authusecase.ErrUserNotFound)
}
