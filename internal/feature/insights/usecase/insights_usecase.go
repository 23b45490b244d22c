package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	authentity "codex_backend/internal/feature/auth/domain/entity"
	"codex_backend/internal/feature/insights/domain/entity"
)

const (
	// DefaultLibraryLimit はライブラリ一覧のデフォルト件数です。
	DefaultLibraryLimit = 20
	// MaxLibraryLimit はライブラリ一覧の最大件数です。
	MaxLibraryLimit = 100
)

// InteractionField はトグル対象の列です。
type InteractionField string

const (
	FieldLiked InteractionField = "liked"
	FieldSaved InteractionField = "saved"
)

// LibraryQuery はライブラリ一覧の検索条件です。
type LibraryQuery struct {
	Category     string
	Search       string
	Page         int
	Limit        int
	AllowPremium bool
}

// LibraryPage はライブラリ一覧の1ページ分です。
type LibraryPage struct {
	Insights []entity.Insight
	Total    int64
	Page     int
	Limit    int
}

// InsightRepository はインサイトの永続化層を抽象化します。
type InsightRepository interface {
	InsightReader
	FindByID(ctx context.Context, id string) (*entity.Insight, error)
	List(ctx context.Context, q LibraryQuery) ([]entity.Insight, int64, error)
	ListAll(ctx context.Context) ([]entity.Insight, error)
	Create(ctx context.Context, in *entity.Insight) error
	Update(ctx context.Context, id string, patch entity.InsightPatch) error
	Delete(ctx context.Context, id string) error
}

// InteractionRepository はlike/save状態の永続化層を抽象化します。
type InteractionRepository interface {
	// Toggle は指定列を反転し、反転後の値を返します。初回は値をtrueとして作成します。
	Toggle(ctx context.Context, userID, insightID string, field InteractionField, now time.Time) (bool, error)
	// SavedInsightIDs は保存済みのインサイトIDを返します。
	SavedInsightIDs(ctx context.Context, userID string) ([]string, error)
}

// AnalyticsRepository は集計クエリを抽象化します。
type AnalyticsRepository interface {
	Rollup(ctx context.Context, today string, activeSince time.Time) (*entity.Analytics, error)
}

type insightsUsecase struct {
	insights     InsightRepository
	interactions InteractionRepository
	analytics    AnalyticsRepository
	now          func() time.Time
}

// NewInsightsUsecase はライブラリ・インタラクション・管理操作のユースケースを生成します。
func NewInsightsUsecase(insights InsightRepository, interactions InteractionRepository, analytics AnalyticsRepository) *insightsUsecase {
	return &insightsUsecase{
		insights:     insights,
		interactions: interactions,
		analytics:    analytics,
		now:          time.Now,
	}
}

// Library は作成日時の新しい順にインサイトを返します。無料ユーザーにはプレミアム限定を含めません。
func (u *insightsUsecase) Library(ctx context.Context, user *authentity.User, q LibraryQuery) (*LibraryPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLibraryLimit
	}
	if q.Limit > MaxLibraryLimit {
		q.Limit = MaxLibraryLimit
	}
	q.Search = strings.TrimSpace(q.Search)
	q.AllowPremium = user.IsPaid()

	items, total, err := u.insights.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list library: %w", err)
	}
	return &LibraryPage{Insights: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

// ToggleLike はlike状態を反転します。
func (u *insightsUsecase) ToggleLike(ctx context.Context, userID, insightID string) (bool, error) {
	return u.toggle(ctx, userID, insightID, FieldLiked)
}

// ToggleSave はsave状態を反転します。
func (u *insightsUsecase) ToggleSave(ctx context.Context, userID, insightID string) (bool, error) {
	return u.toggle(ctx, userID, insightID, FieldSaved)
}

func (u *insightsUsecase) toggle(ctx context.Context, userID, insightID string, field InteractionField) (bool, error) {
	if _, err := u.insights.FindByID(ctx, insightID); err != nil {
		return false, err
	}
	v, err := u.interactions.Toggle(ctx, userID, insightID, field, u.now().UTC())
	if err != nil {
		return false, fmt.Errorf("toggle %s: %w", field, err)
	}
	return v, nil
}

// Saved は保存済みインサイトを返します。
func (u *insightsUsecase) Saved(ctx context.Context, userID string) ([]entity.Insight, error) {
	ids, err := u.interactions.SavedInsightIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved ids: %w", err)
	}
	if len(ids) == 0 {
		return []entity.Insight{}, nil
	}
	return u.insights.FindByIDs(ctx, ids)
}

// ListAll は全インサイトを新しい順に返します（管理者向け）。
func (u *insightsUsecase) ListAll(ctx context.Context) ([]entity.Insight, error) {
	return u.insights.ListAll(ctx)
}

// Create はインサイトを作成し、採番したIDを返します。
func (u *insightsUsecase) Create(ctx context.Context, adminID string, in entity.Insight) (string, error) {
	in.ID = uuid.NewString()
	in.CreatedBy = adminID
	in.CreatedAt = u.now().UTC()
	if in.Tags == nil {
		in.Tags = []string{}
	}
	if err := u.insights.Create(ctx, &in); err != nil {
		return "", fmt.Errorf("create insight: %w", err)
	}
	return in.ID, nil
}

// Update は指定されたフィールドのみ更新します。
func (u *insightsUsecase) Update(ctx context.Context, id string, patch entity.InsightPatch) error {
	if patch.IsEmpty() {
		return ErrNoFieldsToUpdate
	}
	return u.insights.Update(ctx, id, patch)
}

// Delete はインサイトを削除します。
func (u *insightsUsecase) Delete(ctx context.Context, id string) error {
	return u.insights.Delete(ctx, id)
}

// Analytics は管理画面向けの集計を返します。アクティブユーザーは直近24時間です。
func (u *insightsUsecase) Analytics(ctx context.Context) (*entity.Analytics, error) {
	now := u.now().UTC()
	a, err := u.analytics.Rollup(ctx, now.Format(entity.DateLayout), now.Add(-24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("analytics rollup: %w", err)
	}
	return a, nil
}
