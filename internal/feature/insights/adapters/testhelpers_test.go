package adapters

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authadapters "codex_backend/internal/feature/auth/adapters"
	"codex_backend/internal/feature/insights/domain/entity"
)

// setupTestDB prepares an isolated in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(&authadapters.UserModel{}, &InsightModel{}, &DailyHitModel{}, &InteractionModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// seedInsight inserts an insight and returns its entity.
func seedInsight(t *testing.T, db *gorm.DB, id, category string, premium bool, createdAt time.Time) entity.Insight {
	t.Helper()

	in := entity.Insight{
		ID:          id,
		Title:       "Title " + id,
		Category:    category,
		Tags:        []string{"tag-" + id},
		MainText:    "Body of " + id,
		PremiumOnly: premium,
		CreatedBy:   "admin-1",
		CreatedAt:   createdAt,
	}
	require.NoError(t, db.Create(InsightModelFromEntity(&in)).Error, "failed to seed insight")
	return in
}
