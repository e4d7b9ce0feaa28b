package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevoker remembers tokens that were logged out before their natural expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// RedisRevoker stores revoked tokens in Redis with a TTL matching the token expiry.
type RedisRevoker struct {
	rc redis.Cmdable
}

// NewRedisRevoker wraps a Redis client.
func NewRedisRevoker(rc redis.Cmdable) *RedisRevoker {
	return &RedisRevoker{rc: rc}
}

func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "jwt:revoked:" + hex.EncodeToString(sum[:])
}

// Revoke marks token as revoked until expiresAt. Already expired tokens are ignored.
func (r *RedisRevoker) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.rc.Set(ctx, revokedKey(token), "1", ttl).Err()
}

// IsRevoked reports whether token was revoked.
func (r *RedisRevoker) IsRevoked(ctx context.Context, token string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	n, err := r.rc.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
