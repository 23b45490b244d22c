// Package handler はinsightsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"codex_backend/internal/api"
	authentity "codex_backend/internal/feature/auth/domain/entity"
	"codex_backend/internal/feature/insights/transport/http/dto"
	"codex_backend/internal/feature/insights/usecase"
	jwtmw "codex_backend/internal/platform/jwt"
)

// DailyHitUsecase はDailyHitのユースケースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type DailyHitUsecase interface {
	GetToday(ctx context.Context, user *authentity.User) (*usecase.DailyHitBundle, error)
	Override(ctx context.Context, userID string, insightIDs []string, date string) error
}

// DailyHitHandler はDailyHitのHTTPリクエストを処理します。
type DailyHitHandler struct {
	uc DailyHitUsecase
}

// NewDailyHitHandler はDailyHitHandlerを生成します。
func NewDailyHitHandler(uc DailyHitUsecase) *DailyHitHandler {
	return &DailyHitHandler{uc: uc}
}

// GetDailyHit は今日のバンドルを返します。
//
// エンドポイント例:
// GET /api/insights/daily-hit
func (h *DailyHitHandler) GetDailyHit(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	bundle, err := h.uc.GetToday(c.Request.Context(), user)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DailyHitResponse{
		Insights: dto.NewInsightResponses(bundle.Insights),
		Date:     bundle.Date,
	})
}

// Override は指定ユーザー・日付のバンドルを上書きします（管理者のみ）。
func (h *DailyHitHandler) Override(c *gin.Context) {
	var req dto.OverrideDailyHitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.InvalidRequest())
		return
	}
	if err := h.uc.Override(c.Request.Context(), req.UserID, req.InsightIDs, req.Date); err != nil {
		writeError(c, err)
		return
	}
	admin, _ := jwtmw.CurrentUser(c)
	if admin != nil {
		slog.Info("daily hit overridden", "admin_id", admin.ID, "user_id", req.UserID, "date", req.Date)
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Daily hit overridden"})
}
