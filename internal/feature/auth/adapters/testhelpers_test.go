package adapters

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"codex_backend/internal/feature/auth/domain/entity"
)

// setupTestDB prepares an isolated in-memory SQLite database for testing.
// A named shared-cache database lets several goroutines use the same data.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(&UserModel{}, &PasswordResetTokenModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// seedUser inserts a user row and returns its entity.
func seedUser(t *testing.T, db *gorm.DB, id, email string) *entity.User {
	t.Helper()

	u := &entity.User{
		ID:               id,
		Email:            email,
		Name:             "Test User",
		PasswordHash:     "old-hash",
		Role:             entity.RoleUser,
		Interests:        []string{},
		SubscriptionPlan: entity.PlanFree,
		CreatedAt:        time.Now(),
	}
	require.NoError(t, db.Create(UserModelFromEntity(u)).Error, "failed to seed user")
	return u
}
