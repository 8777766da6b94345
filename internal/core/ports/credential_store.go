package ports

import (
	"context"

	"github.com/aldodev/portfolio-api/internal/core/domain"
)

// CredentialStore is the persistence contract for admin accounts. Hash
// updates are only ever invoked after the AuthService has re-verified the
// corresponding old secret.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
	// FindDefault returns the first admin record. Single-admin deployments
	// log in without a username; this is their lookup path.
	FindDefault(ctx context.Context) (*domain.AdminUser, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	UpdatePinHash(ctx context.Context, id, hash string) error
}
