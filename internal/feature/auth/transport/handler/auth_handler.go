// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"codex_backend/internal/api"
	"codex_backend/internal/feature/auth/domain/entity"
	"codex_backend/internal/feature/auth/transport/http/dto"
	"codex_backend/internal/feature/auth/usecase"
	jwtmw "codex_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Signup は新規ユーザーを登録し、セッショントークンを返します。
	Signup(ctx context.Context, email, password, name string) (*usecase.AuthResult, error)
	// Login はユーザーを認証し、成功時にセッショントークンを返します。
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	// UpdateInterests は興味カテゴリを保存し、保存後の値を返します。
	UpdateInterests(ctx context.Context, userID string, interests []string) ([]string, error)
}

// AuthHandler は認証とプロフィール操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup はユーザー登録APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - メール重複・弱いパスワードは400を返却
// - 成功時はトークンとユーザー情報付きで201を返却
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("signup validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.InvalidRequest())
		return
	}
	res, err := h.auth.Signup(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		slog.Warn("signup failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("user signup successful", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthResponse{Token: res.Token, User: dto.NewUserSummary(res.User)})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - 認証失敗時はユーザー存在有無を区別せず401を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.InvalidRequest())
		return
	}
	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		writeError(c, err)
		return
	}
	slog.Info("user login successful", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthResponse{Token: res.Token, User: dto.NewUserSummary(res.User)})
}

// Verify はAuthRequiredを通過したユーザーの情報を返します。
func (h *AuthHandler) Verify(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.VerifyResponse{User: dto.NewUserSummary(user)})
}

// Profile は現在のユーザーのプロフィールを返します。
func (h *AuthHandler) Profile(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileResponse(user))
}

// UpdateInterests は興味カテゴリを更新し、オンボーディングを完了扱いにします。
func (h *AuthHandler) UpdateInterests(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	var req dto.UpdateInterestsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update interests validation failed", "error", err, "user_id", user.ID)
		c.JSON(http.StatusBadRequest, api.InvalidRequest())
		return
	}
	interests, err := h.auth.UpdateInterests(c.Request.Context(), user.ID, req.Interests)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UpdateInterestsResponse{Message: "Interests updated", Interests: interests})
}

// mustUser はコンテキストのユーザーを取り出します。存在しない場合は401を書き込みます。
func mustUser(c *gin.Context) (*entity.User, bool) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required", Code: api.CodeInvalidToken})
		return nil, false
	}
	return user, true
}
