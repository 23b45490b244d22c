package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"codex_backend/internal/api"
	authusecase "codex_backend/internal/feature/auth/usecase"
	"codex_backend/internal/feature/payments/usecase"
)

// writeError はユーザー向けルートのエラーを書き込みます。
// プロバイダー障害は502です（Webhookでは400、webhook_handler.go参照）。
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrMissingOriginURL):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "origin_url required", Code: api.CodeMissingOriginURL})
	case errors.Is(err, usecase.ErrInvalidPlan):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid plan", Code: api.CodeInvalidPlan})
	case errors.Is(err, usecase.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "transaction not found", Code: api.CodeTransactionNotFound})
	case errors.Is(err, authusecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "user not found", Code: api.CodeUserNotFound})
	case errors.Is(err, usecase.ErrProviderFailure):
		slog.Error("payment provider call failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "payment provider unavailable", Code: api.CodeProviderFailure})
	default:
		slog.Error("request failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.Internal())
	}
}
