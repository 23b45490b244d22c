package adapters

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authadapters "codex_backend/internal/feature/auth/adapters"
	authentity "codex_backend/internal/feature/auth/domain/entity"
	"codex_backend/internal/feature/payments/domain/entity"
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

	err = db.AutoMigrate(&authadapters.UserModel{}, &TransactionModel{}, &SubscriptionModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string) {
	t.Helper()

	u := &authentity.User{
		ID:               id,
		Email:            id + "@example.com",
		Name:             "Buyer",
		PasswordHash:     "hash",
		Role:             authentity.RoleUser,
		SubscriptionPlan: authentity.PlanFree,
		CreatedAt:        time.Now(),
	}
	require.NoError(t, db.Create(authadapters.UserModelFromEntity(u)).Error, "failed to seed user")
}

func userPlan(t *testing.T, db *gorm.DB, id string) string {
	t.Helper()

	var m authadapters.UserModel
	require.NoError(t, db.Where("id = ?", id).First(&m).Error)
	return m.SubscriptionPlan
}

func pendingTransaction(sessionID, userID string) *entity.PaymentTransaction {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &entity.PaymentTransaction{
		SessionID:     sessionID,
		UserID:        userID,
		Amount:        999,
		Currency:      "usd",
		Plan:          entity.PlanMonthly,
		PaymentStatus: entity.PaymentPending,
		Status:        entity.TransactionInitiated,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
