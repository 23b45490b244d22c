package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codex_backend/internal/feature/auth/domain/entity"
	"codex_backend/internal/feature/auth/usecase"
)

func TestNewUserRepository(t *testing.T) {
	db := setupTestDB(t)

	repo := NewUserRepository(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestUserGorm_Create(t *testing.T) {
	t.Parallel()

	t.Run("successful user creation", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		repo := NewUserRepository(db)

		user := &entity.User{
			ID:               "user-1",
			Email:            "test@example.com",
			Name:             "Test",
			PasswordHash:     "hashed_password",
			Role:             entity.RoleUser,
			SubscriptionPlan: entity.PlanFree,
		}

		err := repo.Create(context.Background(), user)

		require.NoError(t, err, "failed to create user")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")

		found, err := repo.FindByID(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, "test@example.com", found.Email)
		assert.Equal(t, []string{}, found.Interests)
	})

	t.Run("duplicate email error", func(t *testing.T) {
		t.Parallel()
		db := setupTestDB(t)
		repo := NewUserRepository(db)
		seedUser(t, db, "user-1", "dup@example.com")

		err := repo.Create(context.Background(), &entity.User{
			ID:               "user-2",
			Email:            "dup@example.com",
			PasswordHash:     "x",
			Role:             entity.RoleUser,
			SubscriptionPlan: entity.PlanFree,
		})

		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)
	})
}

func TestUserGorm_Find(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	seedUser(t, db, "user-1", "alice@example.com")

	tests := []struct {
		name    string
		find    func() (*entity.User, error)
		wantID  string
		wantErr error
	}{
		{
			name:   "by email",
			find:   func() (*entity.User, error) { return repo.FindByEmail(context.Background(), "alice@example.com") },
			wantID: "user-1",
		},
		{
			name:    "by email missing",
			find:    func() (*entity.User, error) { return repo.FindByEmail(context.Background(), "bob@example.com") },
			wantErr: usecase.ErrUserNotFound,
		},
		{
			name:   "by id",
			find:   func() (*entity.User, error) { return repo.FindByID(context.Background(), "user-1") },
			wantID: "user-1",
		},
		{
			name:    "by id missing",
			find:    func() (*entity.User, error) { return repo.FindByID(context.Background(), "nope") },
			wantErr: usecase.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.find()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestUserGorm_FindRejectsUnknownRole(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	seedUser(t, db, "user-1", "alice@example.com")
	require.NoError(t, db.Model(&UserModel{}).Where("id = ?", "user-1").Update("role", "superuser").Error)

	_, err := repo.FindByID(context.Background(), "user-1")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, usecase.ErrUserNotFound)
}

func TestUserGorm_UpdateInterests(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	seedUser(t, db, "user-1", "alice@example.com")

	err := repo.UpdateInterests(context.Background(), "user-1", []string{"Geek Science", "AI Unleashed"})
	require.NoError(t, err)

	got, err := repo.FindByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Geek Science", "AI Unleashed"}, got.Interests)
	assert.True(t, got.OnboardingCompleted)

	err = repo.UpdateInterests(context.Background(), "missing", []string{"x"})
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}
