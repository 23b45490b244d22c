// Package adapters はinsightsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"codex_backend/internal/feature/insights/domain/entity"
	"codex_backend/internal/feature/insights/usecase"
)

type insightGorm struct {
	db *gorm.DB
}

var _ usecase.InsightRepository = (*insightGorm)(nil)

// NewInsightRepository はInsightRepositoryのGORM実装を生成します。
func NewInsightRepository(db *gorm.DB) *insightGorm {
	return &insightGorm{db: db}
}

// Sample は条件に一致するインサイトを最大n件ランダムに返します。
// RANDOM() はPostgreSQLとSQLiteの両方で使えます。
func (r *insightGorm) Sample(ctx context.Context, filter entity.VisibilityFilter, n int) ([]entity.Insight, error) {
	if n <= 0 || len(filter.Categories) == 0 {
		return []entity.Insight{}, nil
	}
	q := r.db.WithContext(ctx).Where("category IN ?", filter.Categories)
	if !filter.AllowPremium {
		q = q.Where("premium_only = ?", false)
	}
	var rows []InsightModel
	if err := q.Order("RANDOM()").Limit(n).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// FindByIDs はidsの順序でインサイトを返します。削除済みのIDは含まれません。
func (r *insightGorm) FindByIDs(ctx context.Context, ids []string) ([]entity.Insight, error) {
	if len(ids) == 0 {
		return []entity.Insight{}, nil
	}
	var rows []InsightModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]InsightModel, len(rows))
	for _, m := range rows {
		byID[m.ID] = m
	}
	out := make([]entity.Insight, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m.ToEntity())
		}
	}
	return out, nil
}

// FindByID はIDでインサイトを取得します。存在しない場合はusecase.ErrInsightNotFoundを返します。
func (r *insightGorm) FindByID(ctx context.Context, id string) (*entity.Insight, error) {
	var m InsightModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrInsightNotFound
		}
		return nil, err
	}
	e := m.ToEntity()
	return &e, nil
}

// FindExisting はタイトルまたはソースURLが一致するインサイトを返します。
// どちらも一致しない場合はusecase.ErrInsightNotFoundを返します。
func (r *insightGorm) FindExisting(ctx context.Context, title, sourceURL string) (*entity.Insight, error) {
	var m InsightModel
	q := r.db.WithContext(ctx).Where("title = ?", title)
	if sourceURL != "" {
		q = q.Or("source_url = ?", sourceURL)
	}
	if err := q.Order("created_at").First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrInsightNotFound
		}
		return nil, err
	}
	e := m.ToEntity()
	return &e, nil
}

// List はライブラリ検索の結果と総件数を返します。並び順は作成日時の降順です。
func (r *insightGorm) List(ctx context.Context, q usecase.LibraryQuery) ([]entity.Insight, int64, error) {
	scope := libraryScope(q)

	var total int64
	if err := r.db.WithContext(ctx).Model(&InsightModel{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []InsightModel
	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order("created_at DESC").Order("id").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return toEntities(rows), total, nil
}

// ListAll は全件を作成日時の降順で返します。
func (r *insightGorm) ListAll(ctx context.Context) ([]entity.Insight, error) {
	var rows []InsightModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// Create はインサイトを追加します。
func (r *insightGorm) Create(ctx context.Context, in *entity.Insight) error {
	return r.db.WithContext(ctx).Create(InsightModelFromEntity(in)).Error
}

// Update はpatchで指定された列だけを更新します。
func (r *insightGorm) Update(ctx context.Context, id string, patch entity.InsightPatch) error {
	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Tags != nil {
		tags := *patch.Tags
		if tags == nil {
			tags = []string{}
		}
		updates["tags"] = datatypes.JSONSlice[string](tags)
	}
	if patch.MainText != nil {
		updates["main_text"] = *patch.MainText
	}
	if patch.SourceURL != nil {
		updates["source_url"] = *patch.SourceURL
	}
	if patch.PremiumOnly != nil {
		updates["premium_only"] = *patch.PremiumOnly
	}
	if len(updates) == 0 {
		return usecase.ErrNoFieldsToUpdate
	}

	res := r.db.WithContext(ctx).Model(&InsightModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrInsightNotFound
	}
	return nil
}

// Delete はインサイトを削除します。存在しない場合はusecase.ErrInsightNotFoundを返します。
func (r *insightGorm) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&InsightModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrInsightNotFound
	}
	return nil
}

// libraryScope builds the shared WHERE clause for List and its count.
func libraryScope(q usecase.LibraryQuery) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if q.Category != "" {
			tx = tx.Where("category = ?", q.Category)
		}
		if q.Search != "" {
			pattern := "%" + escapeLike(strings.ToLower(q.Search)) + "%"
			tx = tx.Where(
				`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(main_text) LIKE ? ESCAPE '\' OR LOWER(CAST(tags AS TEXT)) LIKE ? ESCAPE '\')`,
				pattern, pattern, pattern,
			)
		}
		if !q.AllowPremium {
			tx = tx.Where("premium_only = ?", false)
		}
		return tx
	}
}

// escapeLike escapes LIKE wildcards so that user input matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

func toEntities(rows []InsightModel) []entity.Insight {
	out := make([]entity.Insight, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToEntity())
	}
	return out
}
