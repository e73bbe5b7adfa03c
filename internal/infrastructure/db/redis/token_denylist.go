package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/relaycrm/crm-system/internal/core/ports"
)

// TokenDenylist records revoked token ids in Redis.
// Key format: revoked:<jti>
type TokenDenylist struct {
	client redis.Cmdable
}

func NewTokenDenylist(client redis.Cmdable) *TokenDenylist {
	return &TokenDenylist{client: client}
}

var _ ports.TokenDenylist = (*TokenDenylist)(nil)

// Revoke marks the token as revoked for ttl. A non-positive ttl is a no-op
// since the token has already expired.
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Set(ctx, key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}

func key(tokenID string) string {
	return "revoked:" + tokenID
}
