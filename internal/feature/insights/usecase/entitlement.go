package usecase

import (
	authentity "codex_backend/internal/feature/auth/domain/entity"
	"codex_backend/internal/feature/insights/domain/entity"
)

// DefaultCategories は興味カテゴリ未設定のユーザーに使うカテゴリです。
var DefaultCategories = []string{"AI Unleashed", "Dark Psychology", "Conspiracy Vault", "Geek Science"}

// VisibilityFilter はユーザーの興味とプランから表示条件を計算します。
func VisibilityFilter(u *authentity.User) entity.VisibilityFilter {
	categories := u.Interests
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	return entity.VisibilityFilter{
		Categories:   append([]string(nil), categories...),
		AllowPremium: u.IsPaid(),
	}
}
