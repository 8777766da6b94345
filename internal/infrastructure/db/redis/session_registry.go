package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aldodev/portfolio-api/internal/core/domain"
	"github.com/aldodev/portfolio-api/internal/infrastructure/session"
)

// Key format: session:<token> → hash {identity, last_activity}.
const sessionKeyPrefix = "session:"

// safetyTTL garbage-collects hashes whose owner never came back. Validity is
// still decided by the last_activity comparison, not by Redis expiry, so an
// idle-expired session is reported as expired rather than silently unknown.
const safetyTTL = 24 * time.Hour

// SessionRegistry stores sessions in Redis with the same lazy rolling-expiry
// contract as the in-memory registry. It is the swap-in for deployments that
// want sessions to survive restarts.
type SessionRegistry struct {
	client      *redis.Client
	idleTimeout time.Duration
	now         func() time.Time
}

func NewSessionRegistry(client *redis.Client, idleTimeout time.Duration) *SessionRegistry {
	if idleTimeout <= 0 {
		idleTimeout = domain.DefaultIdleTimeout
	}
	return &SessionRegistry{client: client, idleTimeout: idleTimeout, now: time.Now}
}

func (r *SessionRegistry) Create(ctx context.Context, identity string) (string, error) {
	token, err := session.NewToken()
	if err != nil {
		return "", err
	}

	key := sessionKeyPrefix + token
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key,
		"identity", identity,
		"last_activity", strconv.FormatInt(r.now().Unix(), 10),
	)
	pipe.Expire(ctx, key, safetyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (r *SessionRegistry) Touch(ctx context.Context, token string) (string, error) {
	key := sessionKeyPrefix + token

	fields, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}
	if len(fields) == 0 {
		return "", domain.ErrSessionInvalid
	}

	last, err := strconv.ParseInt(fields["last_activity"], 10, 64)
	if err != nil {
		// Corrupt entry: drop it rather than trust it.
		_ = r.client.Del(ctx, key).Err()
		return "", domain.ErrSessionInvalid
	}

	now := r.now()
	if now.Sub(time.Unix(last, 0)) > r.idleTimeout {
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return "", fmt.Errorf("expire session: %w", err)
		}
		return "", domain.ErrSessionExpired
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, "last_activity", strconv.FormatInt(now.Unix(), 10))
	pipe.Expire(ctx, key, safetyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("refresh session: %w", err)
	}
	return fields["identity"], nil
}

func (r *SessionRegistry) Revoke(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
