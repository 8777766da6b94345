package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/aldodev/portfolio-api/internal/core/domain"
	"github.com/aldodev/portfolio-api/internal/core/ports"
)

// AuthService implements the two-factor (password + PIN) authenticator on
// top of a CredentialStore and a SessionRegistry. It is the only writer to
// the registry.
type AuthService struct {
	creds    ports.CredentialStore
	sessions ports.SessionRegistry
}

func NewAuthService(creds ports.CredentialStore, sessions ports.SessionRegistry) *AuthService {
	return &AuthService{creds: creds, sessions: sessions}
}

// lookup resolves the account for a login attempt. An empty username means a
// single-admin deployment: fall back to the first record.
func (s *AuthService) lookup(ctx context.Context, username string) (*domain.AdminUser, error) {
	if username == "" {
		return s.creds.FindDefault(ctx)
	}
	return s.creds.FindByUsername(ctx, username)
}

// ValidateCredentials checks the password factor only. It never creates a
// session; the login UI uses it for step one, and the settings UI reuses it
// to confirm the current password.
func (s *AuthService) ValidateCredentials(ctx context.Context, username, password string) error {
	user, err := s.lookup(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidCredentials
		}
		return fmt.Errorf("validate credentials: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// Login checks both factors and mints a session token when both pass.
// Both hashes are always compared so a failed attempt costs the same
// regardless of which factor was wrong, and the caller only ever sees
// ErrInvalidCredentials — never which factor failed or whether the account
// exists.
func (s *AuthService) Login(ctx context.Context, username, password, pin string) (string, error) {
	user, err := s.lookup(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: %w", err)
	}

	passwordOK := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
	pinOK := bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(pin)) == nil
	if !passwordOK || !pinOK {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.Username)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

// Logout revokes the session. Unknown tokens revoke cleanly.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// ChangePassword re-validates the old password before accepting the new one.
// A mismatch returns ErrOldSecretMismatch, deliberately more specific than a
// login failure: the caller already holds a valid session.
func (s *AuthService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	user, err := s.lookup(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("change password: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrOldSecretMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.creds.UpdatePasswordHash(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("persist password: %w", err)
	}
	return nil
}

// ChangePin is symmetric to ChangePassword, operating on the PIN hash.
func (s *AuthService) ChangePin(ctx context.Context, username, oldPin, newPin string) error {
	user, err := s.lookup(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("change pin: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(oldPin)) != nil {
		return domain.ErrOldSecretMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPin), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash pin: %w", err)
	}
	if err := s.creds.UpdatePinHash(ctx, user.ID, string(hash)); err != nil {
		return fmt.Errorf("persist pin: %w", err)
	}
	return nil
}
