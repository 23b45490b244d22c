package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"codex_backend/internal/api"
	"codex_backend/internal/feature/auth/transport/http/dto"
)

// forgotPasswordMessage はメールアドレスの存在有無にかかわらず同じ応答です。
const forgotPasswordMessage = "If email exists, reset link has been sent"

// PasswordResetUsecase はパスワードリセットのユースケースを定義します。
type PasswordResetUsecase interface {
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// PasswordHandler はパスワードリセットのHTTPリクエストを処理します。
type PasswordHandler struct {
	reset PasswordResetUsecase
}

// NewPasswordHandler はPasswordHandlerを生成します。
func NewPasswordHandler(reset PasswordResetUsecase) *PasswordHandler {
	return &PasswordHandler{reset: reset}
}

// ForgotPassword はリセットリンクの送信を受け付けます。
func (h *PasswordHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.InvalidRequest())
		return
	}
	if err := h.reset.RequestReset(c.Request.Context(), req.Email); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: forgotPasswordMessage})
}

// ResetPassword はトークンを消費して新しいパスワードを設定します。
func (h *PasswordHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.InvalidRequest())
		return
	}
	if err := h.reset.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		slog.Warn("password reset failed", "error", err, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Password reset successful"})
}
