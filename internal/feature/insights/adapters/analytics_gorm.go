package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"

	authadapters "codex_backend/internal/feature/auth/adapters"
	authentity "codex_backend/internal/feature/auth/domain/entity"
	"codex_backend/internal/feature/insights/domain/entity"
	"codex_backend/internal/feature/insights/usecase"
)

type analyticsGorm struct {
	db *gorm.DB
}

var _ usecase.AnalyticsRepository = (*analyticsGorm)(nil)

// NewAnalyticsRepository は集計クエリのGORM実装を生成します。
func NewAnalyticsRepository(db *gorm.DB) *analyticsGorm {
	return &analyticsGorm{db: db}
}

// Rollup は管理画面向けの件数を集計します。
func (r *analyticsGorm) Rollup(ctx context.Context, today string, activeSince time.Time) (*entity.Analytics, error) {
	db := r.db.WithContext(ctx)
	var a entity.Analytics

	if err := db.Model(&authadapters.UserModel{}).Where("role = ?", string(authentity.RoleUser)).Count(&a.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&InsightModel{}).Count(&a.TotalInsights).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&DailyHitModel{}).Where("date = ?", today).Count(&a.DailyHitsSentToday).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&DailyHitModel{}).Where("created_at >= ?", activeSince).Distinct("user_id").Count(&a.DailyActiveUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&authadapters.UserModel{}).Where("subscription_plan = ?", string(authentity.PlanPaid)).Count(&a.PaidSubscribers).Error; err != nil {
		return nil, err
	}
	return &a, nil
}
