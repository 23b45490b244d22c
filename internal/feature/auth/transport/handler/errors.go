package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"codex_backend/internal/api"
	"codex_backend/internal/feature/auth/usecase"
)

// writeError はusecaseのエラーをHTTPステータスとエラーコードに変換して返却します。
// 想定外のエラーは詳細をログにのみ出力し、500を返します。
func writeError(c *gin.Context, err error) {
	var (
		status int
		body   api.ErrorResponse
	)
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		status, body = http.StatusUnauthorized, api.ErrorResponse{Error: "invalid email or password", Code: api.CodeInvalidCredentials}
	case errors.Is(err, usecase.ErrUserNotFound):
		status, body = http.StatusUnauthorized, api.ErrorResponse{Error: "user not found", Code: api.CodeUserNotFound}
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		status, body = http.StatusBadRequest, api.ErrorResponse{Error: "email already registered", Code: api.CodeEmailAlreadyExists}
	case errors.Is(err, usecase.ErrWeakPassword):
		status, body = http.StatusBadRequest, api.ErrorResponse{Error: err.Error(), Code: api.CodeWeakPassword}
	case errors.Is(err, usecase.ErrInvalidOrExpiredToken):
		status, body = http.StatusBadRequest, api.ErrorResponse{Error: "invalid or expired token", Code: api.CodeInvalidOrExpiredToken}
	default:
		slog.Error("request failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
		status, body = http.StatusInternalServerError, api.Internal()
	}
	c.JSON(status, body)
}
