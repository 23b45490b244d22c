// Package entity はpaymentsフィーチャーのドメインエンティティを定義します。
package entity

import (
	"fmt"
	"time"
)

// PaymentStatus は決済の状態です。paidから他の状態へは戻りません。
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// ParsePaymentStatus は保存値を検証して変換します。
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return PaymentStatus(s), nil
	}
	return "", fmt.Errorf("unknown payment status %q", s)
}

// TransactionStatus はトランザクション処理の状態です。
type TransactionStatus string

const (
	TransactionInitiated TransactionStatus = "initiated"
	TransactionCompleted TransactionStatus = "completed"
)

// ParseTransactionStatus は保存値を検証して変換します。
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	switch TransactionStatus(s) {
	case TransactionInitiated, TransactionCompleted:
		return TransactionStatus(s), nil
	}
	return "", fmt.Errorf("unknown transaction status %q", s)
}

// BillingPlan は購入可能なプランです。
type BillingPlan string

const (
	PlanMonthly BillingPlan = "monthly"
	PlanYearly  BillingPlan = "yearly"
)

// PaymentTransaction はチェックアウトセッション1件に対応する決済記録です。
type PaymentTransaction struct {
	SessionID     string
	UserID        string
	Amount        int64 // 最小通貨単位（USDならセント）
	Currency      string
	Plan          BillingPlan
	PaymentStatus PaymentStatus
	Status        TransactionStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Subscription は有効化されたサブスクリプションの記録です。追記のみで更新しません。
type Subscription struct {
	ID        string
	UserID    string
	Plan      BillingPlan
	Status    string
	StartDate time.Time
	SessionID string
}

// SubscriptionActive はSubscription.Statusの値です。
const SubscriptionActive = "active"
