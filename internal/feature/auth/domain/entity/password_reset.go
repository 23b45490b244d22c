package entity

import "time"

// PasswordResetToken is a single-use credential that authorizes one password change.
type PasswordResetToken struct {
	Token     string
	UserID    string
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
}

// Redeemable reports whether the token is unused and not yet expired at now.
func (t *PasswordResetToken) Redeemable(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
