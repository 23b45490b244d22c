package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"codex_backend/internal/feature/insights/usecase"
)

type interactionGorm struct {
	db *gorm.DB
}

var _ usecase.InteractionRepository = (*interactionGorm)(nil)

// NewInteractionRepository はInteractionRepositoryのGORM実装を生成します。
func NewInteractionRepository(db *gorm.DB) *interactionGorm {
	return &interactionGorm{db: db}
}

// Toggle は1つのトランザクション内で列を反転し、反転後の値を返します。
// 行が存在しない場合は対象列をtrueとして作成します。
func (r *interactionGorm) Toggle(ctx context.Context, userID, insightID string, field usecase.InteractionField, now time.Time) (bool, error) {
	column, err := interactionColumn(field)
	if err != nil {
		return false, err
	}

	var result bool
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&InteractionModel{}).
			Where("user_id = ? AND insight_id = ?", userID, insightID).
			Updates(map[string]any{column: gorm.Expr("NOT " + column), "viewed_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			m := InteractionModel{UserID: userID, InsightID: insightID, ViewedAt: now}
			if field == usecase.FieldLiked {
				m.Liked = true
			} else {
				m.Saved = true
			}
			result = true
			return tx.Create(&m).Error
		}

		var m InteractionModel
		if err := tx.Where("user_id = ? AND insight_id = ?", userID, insightID).First(&m).Error; err != nil {
			return err
		}
		if field == usecase.FieldLiked {
			result = m.Liked
		} else {
			result = m.Saved
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// 同時に初回作成された場合は、作成済みの行に対してもう一度反転する
		return r.Toggle(ctx, userID, insightID, field, now)
	}
	if err != nil {
		return false, err
	}
	return result, nil
}

// SavedInsightIDs は保存済みのインサイトIDを返します。
func (r *interactionGorm) SavedInsightIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&InteractionModel{}).
		Where("user_id = ? AND saved = ?", userID, true).
		Order("viewed_at DESC").
		Pluck("insight_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func interactionColumn(field usecase.InteractionField) (string, error) {
	switch field {
	case usecase.FieldLiked:
		return "liked", nil
	case usecase.FieldSaved:
		return "saved", nil
	}
	return "", fmt.Errorf("unknown interaction field %q", field)
}
