package auth

import (
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailExists signals a duplicate email registration.
	ErrEmailExists = errors.New("email already registered")
	// ErrTokenInvalid means a supplied token cannot be validated.
	ErrTokenInvalid = errors.New("token invalid or expired")
	// ErrUserNotFound indicates missing user.
	ErrUserNotFound = errors.New("user not found")
	// ErrPasswordMismatch indicates the current password is incorrect.
	ErrPasswordMismatch = errors.New("current password does not match")
	// ErrPasswordUnchanged indicates the new password matches the current one.
	ErrPasswordUnchanged = errors.New("new password must be different from current password")
)

// User models the authentication entity persisted in storage. RoleName is
// resolved from the roles table when the user is loaded; a user without an
// assigned role carries an empty RoleName and is treated as "Common" at
// token mint time.
type User struct {
	ID           int64
	Email        string
	Name         string
	RoleID       int64
	RoleName     string
	PasswordHash string
	Removed      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Credentials captures raw credential input for login.
type Credentials struct {
	Email    string
	Password string
}
