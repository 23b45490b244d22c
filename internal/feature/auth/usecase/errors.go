// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrInvalidCredentials is returned by Login for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrWeakPassword is returned when a password does not meet the minimum length.
	ErrWeakPassword = errors.New("password must be at least 8 characters long")

	// ErrExpiredToken is returned when a session token's expiry has passed.
	ErrExpiredToken = errors.New("token has expired")

	// ErrInvalidToken is returned for a malformed, tampered or wrongly signed session token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidOrExpiredToken is returned for any reset token that cannot be redeemed.
	// Unknown, used and expired tokens are deliberately indistinguishable.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")

	// ErrTokenAlreadyUsed is returned by the storage layer when a concurrent redemption won.
	ErrTokenAlreadyUsed = errors.New("reset token already used")
)
