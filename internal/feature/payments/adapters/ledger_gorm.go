package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	authadapters "codex_backend/internal/feature/auth/adapters"
	authentity "codex_backend/internal/feature/auth/domain/entity"
	authusecase "codex_backend/internal/feature/auth/usecase"
	"codex_backend/internal/feature/payments/domain/entity"
	"codex_backend/internal/feature/payments/usecase"
)

// ledgerGorm はLedgerのGORM実装です。
// usersテーブルのプラン変更も同じトランザクションで行うため、authのUserModelを参照します。
type ledgerGorm struct {
	db *gorm.DB
}

var _ usecase.Ledger = (*ledgerGorm)(nil)

// NewLedger はledgerGormを生成します。
func NewLedger(db *gorm.DB) *ledgerGorm {
	return &ledgerGorm{db: db}
}

func (r *ledgerGorm) CreateTransaction(ctx context.Context, tx *entity.PaymentTransaction) error {
	return r.db.WithContext(ctx).Create(transactionModelFromEntity(tx)).Error
}

func (r *ledgerGorm) FindTransaction(ctx context.Context, sessionID string) (*entity.PaymentTransaction, error) {
	var m TransactionModel
	if err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTransactionNotFound
		}
		return nil, err
	}
	return m.ToEntity()
}

// CompletePayment は payment_status <> 'paid' を条件に更新し、
// 更新できた呼び出しだけがプラン変更とサブスクリプション追加を行います。
func (r *ledgerGorm) CompletePayment(ctx context.Context, sessionID string, sub *entity.Subscription, now time.Time) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&TransactionModel{}).
			Where("session_id = ? AND payment_status <> ?", sessionID, string(entity.PaymentPaid)).
			Updates(map[string]any{
				"payment_status": string(entity.PaymentPaid),
				"status":         string(entity.TransactionCompleted),
				"updated_at":     now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := setPlan(tx, sub.UserID, authentity.PlanPaid, now); err != nil {
			return err
		}
		if err := tx.Create(subscriptionModelFromEntity(sub)).Error; err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

// MarkFailed はpendingの場合のみfailedにします。
func (r *ledgerGorm) MarkFailed(ctx context.Context, sessionID string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&TransactionModel{}).
		Where("session_id = ? AND payment_status = ?", sessionID, string(entity.PaymentPending)).
		Updates(map[string]any{
			"payment_status": string(entity.PaymentFailed),
			"updated_at":     now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ledgerGorm) LatestSubscription(ctx context.Context, userID string) (*entity.Subscription, error) {
	var m SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSubscriptionNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// SetPlan はユーザーが存在しない場合にauthのErrUserNotFoundを返します。
func (r *ledgerGorm) SetPlan(ctx context.Context, userID string, plan authentity.Plan, sub *entity.Subscription) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := setPlan(tx, userID, plan, time.Now()); err != nil {
			return err
		}
		if sub == nil {
			return nil
		}
		return tx.Create(subscriptionModelFromEntity(sub)).Error
	})
}

func setPlan(tx *gorm.DB, userID string, plan authentity.Plan, now time.Time) error {
	res := tx.Model(&authadapters.UserModel{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"subscription_plan": string(plan),
			"updated_at":        now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return authusecase.ErrUserNotFound
	}
	return nil
}
