package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:v1:"

// RevocationRegistry tracks tokens invalidated before their natural expiry.
// Revoke is idempotent and a revoked token never becomes valid again within
// the registry's lifetime.
type RevocationRegistry interface {
	Revoke(ctx context.Context, token string) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// RedisRegistry stores revoked tokens in Redis so revocation is visible
// across instances. Entries expire with the access token TTL, which bounds
// the set without ever resurrecting a token that is still otherwise valid.
type RedisRegistry struct {
	cache *redis.Client
	ttl   time.Duration
}

// NewRedisRegistry builds a Redis-backed revocation registry.
func NewRedisRegistry(cache *redis.Client, ttl time.Duration) *RedisRegistry {
	return &RedisRegistry{cache: cache, ttl: ttl}
}

// Revoke marks the token invalid.
func (r *RedisRegistry) Revoke(ctx context.Context, token string) error {
	return r.cache.Set(ctx, revokedKeyPrefix+token, "1", r.ttl).Err()
}

// IsRevoked reports whether the token has been revoked.
func (r *RedisRegistry) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.cache.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
