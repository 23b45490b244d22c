package adapters

import (
	"time"

	"codex_backend/internal/feature/auth/domain/entity"
)

// PasswordResetTokenModel is the GORM model for the password_reset_tokens table.
type PasswordResetTokenModel struct {
	Token     string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"index;size:36;not null"`
	Email     string    `gorm:"size:255;not null"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Used      bool      `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (PasswordResetTokenModel) TableName() string {
	return "password_reset_tokens"
}

// ToEntity converts the GORM model to a domain entity.
func (m *PasswordResetTokenModel) ToEntity() *entity.PasswordResetToken {
	return &entity.PasswordResetToken{
		Token:     m.Token,
		UserID:    m.UserID,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
		Used:      m.Used,
	}
}

// PasswordResetTokenModelFromEntity converts a domain entity to a GORM model.
func PasswordResetTokenModelFromEntity(t *entity.PasswordResetToken) *PasswordResetTokenModel {
	return &PasswordResetTokenModel{
		Token:     t.Token,
		UserID:    t.UserID,
		Email:     t.Email,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
		Used:      t.Used,
	}
}
