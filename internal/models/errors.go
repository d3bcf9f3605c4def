package models

import "errors"

// Domain errors shared by services and repositories. Handlers map these
// to HTTP status codes; everything else surfaces as a 500.
var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so that login responses do not reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateUser is returned when a register hits the unique
	// constraint on username or email.
	ErrDuplicateUser = errors.New("username or email already exists")

	// ErrInvalidRefreshToken covers a refresh token that was never
	// issued, has already been rotated, belongs to another user, is
	// expired, or fails signature verification.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")

	ErrUserNotFound    = errors.New("user not found")
	ErrAccountNotFound = errors.New("account not found")

	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInsufficientFunds = errors.New("insufficient funds")
)
