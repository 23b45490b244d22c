package usecase

import (
	"context"

	"codex_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
type mockUserRepository struct {
	CreateFunc          func(ctx context.Context, user *entity.User) error
	FindByEmailFunc     func(ctx context.Context, email string) (*entity.User, error)
	FindByIDFunc        func(ctx context.Context, id string) (*entity.User, error)
	UpdateInterestsFunc func(ctx context.Context, id string, interests []string) error
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) UpdateInterests(ctx context.Context, id string, interests []string) error {
	if m.UpdateInterestsFunc != nil {
		return m.UpdateInterestsFunc(ctx, id, interests)
	}
	return nil
}

// mockTokenIssuer is a mock implementation of the TokenIssuer interface.
type mockTokenIssuer struct {
	IssueFunc func(userID, email string, role entity.Role) (string, error)
	ParseFunc func(token string) (*entity.SessionClaims, error)
}

func (m *mockTokenIssuer) Issue(userID, email string, role entity.Role) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(userID, email, role)
	}
	return "mock-jwt-token", nil
}

func (m *mockTokenIssuer) Parse(token string) (*entity.SessionClaims, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(token)
	}
	return nil, ErrInvalidToken
}

// mockResetTokenRepository is a mock implementation of the ResetTokenRepository interface.
type mockResetTokenRepository struct {
	CreateFunc     func(ctx context.Context, token *entity.PasswordResetToken) error
	FindUnusedFunc func(ctx context.Context, token string) (*entity.PasswordResetToken, error)
	RedeemFunc     func(ctx context.Context, token, userID, passwordHash string) error
}

func (m *mockResetTokenRepository) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	return nil
}

func (m *mockResetTokenRepository) FindUnused(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	if m.FindUnusedFunc != nil {
		return m.FindUnusedFunc(ctx, token)
	}
	return nil, ErrInvalidOrExpiredToken
}

func (m *mockResetTokenRepository) Redeem(ctx context.Context, token, userID, passwordHash string) error {
	if m.RedeemFunc != nil {
		return m.RedeemFunc(ctx, token, userID, passwordHash)
	}
	return nil
}

// mockNotifier records reset notifications.
type mockNotifier struct {
	NotifyFunc func(ctx context.Context, email, name, resetURL string) error
	calls      int
}

func (m *mockNotifier) NotifyPasswordReset(ctx context.Context, email, name, resetURL string) error {
	m.calls++
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, email, name, resetURL)
	}
	return nil
}

func fixedID(id string) IDGenerator {
	return func() string { return id }
}
