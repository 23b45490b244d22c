package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"codex_backend/internal/api"
	authentity "codex_backend/internal/feature/auth/domain/entity"
	"codex_backend/internal/feature/insights/domain/entity"
	"codex_backend/internal/feature/insights/transport/http/dto"
	"codex_backend/internal/feature/insights/usecase"
	jwtmw "codex_backend/internal/platform/jwt"
)

// InsightsUsecase はライブラリ・インタラクション・管理操作を定義します。
type InsightsUsecase interface {
	Library(ctx context.Context, user *authentity.User, q usecase.LibraryQuery) (*usecase.LibraryPage, error)
	ToggleLike(ctx context.Context, userID, insightID string) (bool, error)
	ToggleSave(ctx context.Context, userID, insightID string) (bool, error)
	Saved(ctx context.Context, userID string) ([]entity.Insight, error)
	ListAll(ctx context.Context) ([]entity.Insight, error)
	Create(ctx context.Context, adminID string, in entity.Insight) (string, error)
	Update(ctx context.Context, id string, patch entity.InsightPatch) error
	Delete(ctx context.Context, id string) error
	Analytics(ctx context.Context) (*entity.Analytics, error)
}

// InsightsHandler はインサイトのHTTPリクエストを処理します。
type InsightsHandler struct {
	uc InsightsUsecase
}

// NewInsightsHandler はInsightsHandlerを生成します。
func NewInsightsHandler(uc InsightsUsecase) *InsightsHandler {
	return &InsightsHandler{uc: uc}
}

// Library はライブラリを検索します。
//
// エンドポイント例:
// GET /api/insights/library?category=Geek%20Science&search=quantum&page=1&limit=20
func (h *InsightsHandler) Library(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var q dto.LibraryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, api.InvalidRequest())
		return
	}
	page, err := h.uc.Library(c.Request.Context(), user, usecase.LibraryQuery{
		Category: q.Category,
		Search:   q.Search,
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LibraryResponse{
		Insights: dto.NewInsightResponses(page.Insights),
		Total:    page.Total,
		Page:     page.Page,
		Limit:    page.Limit,
	})
}

// Like はlike状態を反転します。
func (h *InsightsHandler) Like(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	liked, err := h.uc.ToggleLike(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LikeResponse{Liked: liked})
}

// Save はsave状態を反転します。
func (h *InsightsHandler) Save(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	saved, err := h.uc.ToggleSave(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SaveResponse{Saved: saved})
}

// Saved は保存済みインサイトを返します。
func (h *InsightsHandler) Saved(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	items, err := h.uc.Saved(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.InsightListResponse{Insights: dto.NewInsightResponses(items)})
}

// AdminList は全インサイトを返します。
func (h *InsightsHandler) AdminList(c *gin.Context) {
	items, err := h.uc.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.InsightListResponse{Insights: dto.NewInsightResponses(items)})
}

// AdminCreate はインサイトを作成します。
func (h *InsightsHandler) AdminCreate(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.CreateInsightReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.InvalidRequest())
		return
	}
	id, err := h.uc.Create(c.Request.Context(), admin.ID, entity.Insight{
		Title:       req.Title,
		Category:    req.Category,
		Tags:        req.Tags,
		MainText:    req.MainText,
		SourceURL:   req.SourceURL,
		PremiumOnly: req.PremiumOnly,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	slog.Info("insight created", "insight_id", id, "admin_id", admin.ID)
	c.JSON(http.StatusOK, dto.CreateInsightResponse{Message: "Insight created", ID: id})
}

// AdminUpdate は指定フィールドのみ更新します。
func (h *InsightsHandler) AdminUpdate(c *gin.Context) {
	var req dto.UpdateInsightReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.InvalidRequest())
		return
	}
	if err := h.uc.Update(c.Request.Context(), c.Param("id"), req.Patch()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Insight updated"})
}

// AdminDelete はインサイトを削除します。
func (h *InsightsHandler) AdminDelete(c *gin.Context) {
	if err := h.uc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Insight deleted"})
}

// Analytics は管理画面向けの集計を返します。
func (h *InsightsHandler) Analytics(c *gin.Context) {
	a, err := h.uc.Analytics(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAnalyticsResponse(a))
}

func currentUser(c *gin.Context) (*authentity.User, bool) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required", Code: api.CodeInvalidToken})
		return nil, false
	}
	return user, true
}
