package session

import (
	"context"
	"sync"
	"time"

	"github.com/aldodev/portfolio-api/internal/core/domain"
)

// MemoryRegistry keeps sessions in process memory behind a mutex. Expiry is
// lazy: stale entries are removed by the Touch that discovers them, never by
// a background sweep. Sessions do not survive a restart; deployments that
// need that swap in the Redis registry.
type MemoryRegistry struct {
	mu          sync.Mutex
	entries     map[string]domain.Session
	idleTimeout time.Duration
	now         func() time.Time
}

func NewMemoryRegistry(idleTimeout time.Duration) *MemoryRegistry {
	if idleTimeout <= 0 {
		idleTimeout = domain.DefaultIdleTimeout
	}
	return &MemoryRegistry{
		entries:     make(map[string]domain.Session),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// NewMemoryRegistryWithClock lets tests drive the clock.
func NewMemoryRegistryWithClock(idleTimeout time.Duration, now func() time.Time) *MemoryRegistry {
	r := NewMemoryRegistry(idleTimeout)
	r.now = now
	return r
}

func (r *MemoryRegistry) Create(_ context.Context, identity string) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.entries[token] = domain.Session{Identity: identity, LastActivity: r.now()}
	r.mu.Unlock()
	return token, nil
}

func (r *MemoryRegistry) Touch(_ context.Context, token string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[token]
	if !ok {
		return "", domain.ErrSessionInvalid
	}

	now := r.now()
	if now.Sub(entry.LastActivity) > r.idleTimeout {
		delete(r.entries, token)
		return "", domain.ErrSessionExpired
	}

	entry.LastActivity = now
	r.entries[token] = entry
	return entry.Identity, nil
}

func (r *MemoryRegistry) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	delete(r.entries, token)
	r.mu.Unlock()
	return nil
}

// Len reports the number of live entries, expired or not.
func (r *MemoryRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
