package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"codex_backend/internal/feature/auth/domain/entity"
	"codex_backend/internal/feature/auth/usecase"
)

// resetTokenGorm is a GORM implementation of the ResetTokenRepository interface.
type resetTokenGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure resetTokenGorm implements ResetTokenRepository.
var _ usecase.ResetTokenRepository = (*resetTokenGorm)(nil)

// NewResetTokenRepository creates a new instance of resetTokenGorm.
func NewResetTokenRepository(db *gorm.DB) *resetTokenGorm {
	return &resetTokenGorm{db: db}
}

// Create persists a new reset token.
func (r *resetTokenGorm) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(PasswordResetTokenModelFromEntity(token)).Error
}

// FindUnused retrieves a token that has not been redeemed yet.
// Expiry is left to the caller so that the clock stays in one place.
func (r *resetTokenGorm) FindUnused(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	var m PasswordResetTokenModel
	if err := r.db.WithContext(ctx).
		Where("token = ? AND used = ?", token, false).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrInvalidOrExpiredToken
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// Redeem flips used from false to true and updates the user's password hash in one transaction.
// Only one concurrent caller can win the compare-and-set; the others get usecase.ErrTokenAlreadyUsed.
func (r *resetTokenGorm) Redeem(ctx context.Context, token, userID, passwordHash string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&PasswordResetTokenModel{}).
			Where("token = ? AND used = ?", token, false).
			Update("used", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrTokenAlreadyUsed
		}

		res = tx.Model(&UserModel{}).
			Where("id = ?", userID).
			Update("password_hash", passwordHash)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrUserNotFound
		}
		return nil
	})
}
