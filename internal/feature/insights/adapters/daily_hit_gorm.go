package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"codex_backend/internal/feature/insights/domain/entity"
	"codex_backend/internal/feature/insights/usecase"
)

type dailyHitGorm struct {
	db *gorm.DB
}

var _ usecase.DailyHitRepository = (*dailyHitGorm)(nil)

// NewDailyHitRepository はDailyHitRepositoryのGORM実装を生成します。
func NewDailyHitRepository(db *gorm.DB) *dailyHitGorm {
	return &dailyHitGorm{db: db}
}

var dailyHitKey = []clause.Column{{Name: "user_id"}, {Name: "date"}}

// Find は (userID, date) のエントリを取得します。
func (r *dailyHitGorm) Find(ctx context.Context, userID, date string) (*entity.DailyHit, error) {
	var m DailyHitModel
	err := r.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrDailyHitNotFound
		}
		return nil, err
	}
	return m.ToEntity()
}

// InsertIfAbsent は INSERT ... ON CONFLICT (user_id, date) DO NOTHING を実行し、
// 保存されている行を読み直して返します。競合に負けた場合は勝者の行が返ります。
func (r *dailyHitGorm) InsertIfAbsent(ctx context.Context, hit *entity.DailyHit) (*entity.DailyHit, error) {
	m := dailyHitModelFromEntity(hit)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: dailyHitKey, DoNothing: true}).
		Create(m).Error
	if err != nil {
		return nil, err
	}
	return r.Find(ctx, hit.UserID, hit.Date)
}

// Override は選択とステータスをupsertします。作成日時は最初の挿入時の値を保持します。
func (r *dailyHitGorm) Override(ctx context.Context, hit *entity.DailyHit) error {
	m := dailyHitModelFromEntity(hit)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   dailyHitKey,
			DoUpdates: clause.AssignmentColumns([]string{"insight_ids", "status"}),
		}).
		Create(m).Error
}
