package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	insightsadapters "codex_backend/internal/feature/insights/adapters"
	"codex_backend/internal/feature/insights/usecase"
	"codex_backend/internal/platform/cache"
)

// NewDailyHitRepository creates a DailyHitRepository implementation.
// If Redis is available, the database repository is wrapped with a read-through cache.
// Otherwise, it reads PostgreSQL directly.
func NewDailyHitRepository(rdb *redis.Client, db *gorm.DB, namespace string) usecase.DailyHitRepository {
	repo := insightsadapters.NewDailyHitRepository(db)
	if rdb != nil {
		return cache.NewCachingDailyHitRepository(rdb, repo, namespace)
	}
	return repo
}
