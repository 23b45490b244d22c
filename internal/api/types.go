// Package api はHTTPレスポンスの共通エンベロープを定義します。
package api

// ErrorResponse はすべてのエラーレスポンスで返すボディです。
// Code は機械可読なエラー種別（例: INVALID_TOKEN）です。
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// MessageResponse は本文を持たない成功レスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}

// Error codes shared by every feature handler.
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"
	CodeExpiredToken          = "EXPIRED_TOKEN"
	CodeInvalidToken          = "INVALID_TOKEN"
	CodeUserNotFound          = "USER_NOT_FOUND"
	CodeNotAdmin              = "NOT_ADMIN"
	CodeEmailAlreadyExists    = "EMAIL_ALREADY_REGISTERED"
	CodeWeakPassword          = "WEAK_PASSWORD"
	CodeInvalidOrExpiredToken = "INVALID_OR_EXPIRED_TOKEN"
	CodeInsightNotFound       = "INSIGHT_NOT_FOUND"
	CodeTransactionNotFound   = "TRANSACTION_NOT_FOUND"
	CodeNoFieldsToUpdate      = "NO_FIELDS_TO_UPDATE"
	CodeMissingOriginURL      = "MISSING_ORIGIN_URL"
	CodeInvalidPlan           = "INVALID_PLAN"
	CodeInvalidDate           = "INVALID_DATE"
	CodeProviderFailure       = "PROVIDER_FAILURE"
	CodeBadWebhookSignature   = "BAD_WEBHOOK_SIGNATURE"
	CodeInternal              = "INTERNAL"
)

// Internal は詳細を隠した500レスポンスを返します。詳細はログにのみ出力します。
func Internal() ErrorResponse {
	return ErrorResponse{Error: "internal server error", Code: CodeInternal}
}

// InvalidRequest はバインディング失敗時の400レスポンスです。
func InvalidRequest() ErrorResponse {
	return ErrorResponse{Error: "invalid request", Code: CodeInvalidRequest}
}
