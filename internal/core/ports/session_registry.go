package ports

import "context"

// SessionRegistry owns the token → session mapping. Expiry is lazy: entries
// are checked and discarded on Touch, never swept in the background.
type SessionRegistry interface {
	// Create mints a fresh opaque token for identity and records it with
	// last activity = now.
	Create(ctx context.Context, identity string) (string, error)
	// Touch validates the token. Unknown tokens return
	// domain.ErrSessionInvalid; entries idle past the timeout are deleted
	// and return domain.ErrSessionExpired. A valid entry has its activity
	// timestamp refreshed (rolling expiry) and yields the owning identity.
	Touch(ctx context.Context, token string) (string, error)
	// Revoke removes the entry. Revoking an unknown token is not an error.
	Revoke(ctx context.Context, token string) error
}
