package domain

import (
	"errors"
	"time"
)

// AdminUser models an administrator account. Both secrets are stored as
// bcrypt hashes; plaintext never leaves the login/change handlers.
type AdminUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"display_name,omitempty"`
	PasswordHash string    `json:"-"`
	PinHash      string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrOldSecretMismatch = errors.New("old secret incorrect")
