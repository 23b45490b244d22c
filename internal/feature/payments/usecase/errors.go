package usecase

import "errors"

var (
	// ErrMissingOriginURL はorigin_urlが指定されていない場合に返されます。
	ErrMissingOriginURL = errors.New("origin_url required")
	// ErrInvalidPlan は未知のプランが指定された場合に返されます。
	ErrInvalidPlan = errors.New("invalid plan")
	// ErrTransactionNotFound はセッションに対応するトランザクションがない場合に返されます。
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrSubscriptionNotFound はユーザーにサブスクリプション記録がない場合に返されます。
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrProviderFailure は決済プロバイダーの呼び出しに失敗した場合に返されます。
	ErrProviderFailure = errors.New("payment provider failure")
	// ErrBadWebhookSignature はWebhookの署名検証に失敗した場合に返されます。
	ErrBadWebhookSignature = errors.New("invalid webhook signature")
)
