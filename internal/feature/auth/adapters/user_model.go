package adapters

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"codex_backend/internal/feature/auth/domain/entity"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID                  string                      `gorm:"primaryKey;size:36"`
	Email               string                      `gorm:"uniqueIndex;size:255;not null"`
	Name                string                      `gorm:"size:255;not null"`
	PasswordHash        string                      `gorm:"size:255;not null"`
	Role                string                      `gorm:"size:16;not null;index"`
	Interests           datatypes.JSONSlice[string] `gorm:"not null"`
	SubscriptionPlan    string                      `gorm:"size:16;not null;index"`
	OnboardingCompleted bool                        `gorm:"not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName returns the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts the GORM model to a domain entity.
// Unknown role or plan values are rejected.
func (m *UserModel) ToEntity() (*entity.User, error) {
	role, err := entity.ParseRole(m.Role)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", m.ID, err)
	}
	plan, err := entity.ParsePlan(m.SubscriptionPlan)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", m.ID, err)
	}
	interests := []string(m.Interests)
	if interests == nil {
		interests = []string{}
	}
	return &entity.User{
		ID:                  m.ID,
		Email:               m.Email,
		Name:                m.Name,
		PasswordHash:        m.PasswordHash,
		Role:                role,
		Interests:           interests,
		SubscriptionPlan:    plan,
		OnboardingCompleted: m.OnboardingCompleted,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}, nil
}

// UserModelFromEntity converts a domain entity to a GORM model.
func UserModelFromEntity(u *entity.User) *UserModel {
	interests := u.Interests
	if interests == nil {
		interests = []string{}
	}
	return &UserModel{
		ID:                  u.ID,
		Email:               u.Email,
		Name:                u.Name,
		PasswordHash:        u.PasswordHash,
		Role:                string(u.Role),
		Interests:           datatypes.JSONSlice[string](interests),
		SubscriptionPlan:    string(u.SubscriptionPlan),
		OnboardingCompleted: u.OnboardingCompleted,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}
