// Package entity defines the domain entities for the auth feature.
package entity

import (
	"fmt"
	"time"
)

// Role is the authorization level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole validates a stored role value.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleUser, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Plan is the subscription tier that decides premium entitlement.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPaid Plan = "paid"
)

// ParsePlan validates a stored plan value.
func ParsePlan(s string) (Plan, error) {
	switch p := Plan(s); p {
	case PlanFree, PlanPaid:
		return p, nil
	default:
		return "", fmt.Errorf("unknown subscription plan %q", s)
	}
}

// User represents a registered account.
type User struct {
	ID    string
	Email string
	Name  string

	// PasswordHash is the bcrypt hash. Plaintext is never stored.
	PasswordHash string

	Role Role

	// Interests is an ordered list of category names without duplicates.
	Interests []string

	SubscriptionPlan    Plan
	OnboardingCompleted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the user may call admin operations.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsPaid reports whether the user holds a paid plan.
func (u *User) IsPaid() bool { return u.SubscriptionPlan == PlanPaid }
