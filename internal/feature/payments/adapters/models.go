// Package adapters はpaymentsフィーチャーの永続化実装を提供します。
package adapters

import (
	"fmt"
	"time"

	"codex_backend/internal/feature/payments/domain/entity"
)

// TransactionModel はpayment_transactionsテーブルのGORMモデルです。
type TransactionModel struct {
	SessionID     string `gorm:"primaryKey;size:255"`
	UserID        string `gorm:"size:36;not null;index"`
	Amount        int64  `gorm:"not null"`
	Currency      string `gorm:"size:8;not null"`
	Plan          string `gorm:"size:16;not null"`
	PaymentStatus string `gorm:"size:16;not null;index"`
	Status        string `gorm:"size:16;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (TransactionModel) TableName() string {
	return "payment_transactions"
}

// ToEntity は未知のステータス値を拒否します。
func (m *TransactionModel) ToEntity() (*entity.PaymentTransaction, error) {
	ps, err := entity.ParsePaymentStatus(m.PaymentStatus)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", m.SessionID, err)
	}
	st, err := entity.ParseTransactionStatus(m.Status)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", m.SessionID, err)
	}
	return &entity.PaymentTransaction{
		SessionID:     m.SessionID,
		UserID:        m.UserID,
		Amount:        m.Amount,
		Currency:      m.Currency,
		Plan:          entity.BillingPlan(m.Plan),
		PaymentStatus: ps,
		Status:        st,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

func transactionModelFromEntity(tx *entity.PaymentTransaction) *TransactionModel {
	return &TransactionModel{
		SessionID:     tx.SessionID,
		UserID:        tx.UserID,
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		Plan:          string(tx.Plan),
		PaymentStatus: string(tx.PaymentStatus),
		Status:        string(tx.Status),
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
}

// SubscriptionModel はsubscriptionsテーブルのGORMモデルです。
// session_idの一意制約により、同じ決済から2件目のサブスクリプションは作られません。
type SubscriptionModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"size:36;not null;index:idx_subscriptions_user_start,priority:1"`
	Plan      string    `gorm:"size:16;not null"`
	Status    string    `gorm:"size:16;not null"`
	StartDate time.Time `gorm:"not null;index:idx_subscriptions_user_start,priority:2"`
	SessionID string    `gorm:"size:255;not null;uniqueIndex"`
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

func (m *SubscriptionModel) ToEntity() *entity.Subscription {
	return &entity.Subscription{
		ID:        m.ID,
		UserID:    m.UserID,
		Plan:      entity.BillingPlan(m.Plan),
		Status:    m.Status,
		StartDate: m.StartDate,
		SessionID: m.SessionID,
	}
}

func subscriptionModelFromEntity(s *entity.Subscription) *SubscriptionModel {
	return &SubscriptionModel{
		ID:        s.ID,
		UserID:    s.UserID,
		Plan:      string(s.Plan),
		Status:    s.Status,
		StartDate: s.StartDate,
		SessionID: s.SessionID,
	}
}
