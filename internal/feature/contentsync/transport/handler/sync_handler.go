// Package handler はcontentsyncフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"codex_backend/internal/api"
	"codex_backend/internal/feature/contentsync/domain/entity"
	"codex_backend/internal/feature/contentsync/transport/http/dto"
	"codex_backend/internal/feature/contentsync/usecase"
	jwtmw "codex_backend/internal/platform/jwt"
)

// SyncUsecase はブログ同期のユースケースを定義します。
type SyncUsecase interface {
	Sync(ctx context.Context, adminID string) (*entity.SyncReport, error)
}

// SyncHandler はブログ同期のHTTPリクエストを処理します。
type SyncHandler struct {
	uc SyncUsecase
}

// NewSyncHandler はSyncHandlerを生成します。
func NewSyncHandler(uc SyncUsecase) *SyncHandler {
	return &SyncHandler{uc: uc}
}

// SyncBlog はGitHub上のブログ記事をインサイトに取り込みます（管理者のみ）。
//
// エンドポイント例:
// POST /api/admin/sync-blog
func (h *SyncHandler) SyncBlog(c *gin.Context) {
	admin, ok := jwtmw.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required", Code: api.CodeInvalidToken})
		return
	}
	report, err := h.uc.Sync(c.Request.Context(), admin.ID)
	if err != nil {
		if errors.Is(err, usecase.ErrSourceUnavailable) {
			slog.Error("blog sync failed", "error", err)
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to fetch from GitHub", Code: api.CodeProviderFailure})
			return
		}
		slog.Error("blog sync failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.Internal())
		return
	}
	c.JSON(http.StatusOK, dto.NewSyncResponse(report))
}
