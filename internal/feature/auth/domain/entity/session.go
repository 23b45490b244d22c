package entity

import "time"

// SessionClaims is the verified content of a session token.
type SessionClaims struct {
	UserID    string
	Email     string
	Role      Role
	ExpiresAt time.Time
}
