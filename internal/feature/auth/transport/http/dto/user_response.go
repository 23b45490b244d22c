package dto

import "codex_backend/internal/feature/auth/domain/entity"

// UserSummary is the public view of a user returned by auth endpoints.
type UserSummary struct {
	ID                  string `json:"id"`
	Email               string `json:"email"`
	Name                string `json:"name"`
	Role                string `json:"role"`
	OnboardingCompleted bool   `json:"onboarding_completed"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// VerifyResponse is returned by /auth/verify.
type VerifyResponse struct {
	User UserSummary `json:"user"`
}

// ProfileResponse is returned by /user/profile.
type ProfileResponse struct {
	ID                  string   `json:"id"`
	Email               string   `json:"email"`
	Name                string   `json:"name"`
	Role                string   `json:"role"`
	Interests           []string `json:"interests"`
	SubscriptionPlan    string   `json:"subscription_plan"`
	OnboardingCompleted bool     `json:"onboarding_completed"`
}

// UpdateInterestsReq represents the request body for PUT /user/interests.
type UpdateInterestsReq struct {
	Interests []string `json:"interests" binding:"required,max=32,dive,max=64"`
}

// UpdateInterestsResponse echoes the stored interests.
type UpdateInterestsResponse struct {
	Message   string   `json:"message"`
	Interests []string `json:"interests"`
}

// NewUserSummary converts a user entity.
func NewUserSummary(u *entity.User) UserSummary {
	return UserSummary{
		ID:                  u.ID,
		Email:               u.Email,
		Name:                u.Name,
		Role:                string(u.Role),
		OnboardingCompleted: u.OnboardingCompleted,
	}
}

// NewProfileResponse converts a user entity.
func NewProfileResponse(u *entity.User) ProfileResponse {
	interests := u.Interests
	if interests == nil {
		interests = []string{}
	}
	return ProfileResponse{
		ID:                  u.ID,
		Email:               u.Email,
		Name:                u.Name,
		Role:                string(u.Role),
		Interests:           interests,
		SubscriptionPlan:    string(u.SubscriptionPlan),
		OnboardingCompleted: u.OnboardingCompleted,
	}
}
