package ports

import "context"

// AuthService is the two-step authenticator. ValidateCredentials checks the
// password factor only and never mints a session; Login checks both factors
// and does.
type AuthService interface {
	ValidateCredentials(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password, pin string) (string, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
	ChangePin(ctx context.Context, username, oldPin, newPin string) error
}
