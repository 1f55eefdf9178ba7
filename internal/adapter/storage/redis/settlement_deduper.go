package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// SettlementDeduper implements ports.SettlementDeduper using Redis SET NX.
type SettlementDeduper struct {
	client goredis.Cmdable
	prefix string
}

// NewSettlementDeduper creates a Redis-backed settlement deduper.
func NewSettlementDeduper(client goredis.Cmdable) *SettlementDeduper {
	return &SettlementDeduper{
		client: client,
		prefix: keyPrefix + "settlement:",
	}
}

// Claim marks key as seen for ttl.
// Returns true if the key was free, false if a settlement already holds it.
func (s *SettlementDeduper) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	result, err := s.client.SetArgs(ctx, s.prefix+key, time.Now().UTC().Unix(), goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis settlement claim: %w", err)
	}
	return result == "OK", nil
}

// Release frees a claim so a failed settlement can be retried.
func (s *SettlementDeduper) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis settlement release: %w", err)
	}
	return nil
}
