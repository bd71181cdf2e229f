package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// =====================================================
// IN-PROGRESS GUARD
// =====================================================
// InProgressGuard is a best-effort advisory lock over Redis. It stops two
// concurrent charge creations for the same order from hitting the gateway
// twice; correctness does not depend on it (the unique payment_id index is
// the hard guarantee).
type InProgressGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewInProgressGuard(client *redis.Client, ttl time.Duration) *InProgressGuard {
	return &InProgressGuard{client: client, ttl: ttl}
}

func (g *InProgressGuard) key(ref string) string {
	return fmt.Sprintf("checkout:in_progress:%s", ref)
}

// Acquire returns false when another request already holds the key. Redis
// unavailability degrades to acquired, not to a hard failure.
func (g *InProgressGuard) Acquire(ctx context.Context, ref string) (bool, error) {
	if g == nil || g.client == nil {
		return true, nil
	}

	ok, err := g.client.SetNX(ctx, g.key(ref), "1", g.ttl).Result()
	if err != nil {
		return true, fmt.Errorf("in-progress guard unavailable: %w", err)
	}
	return ok, nil
}

func (g *InProgressGuard) Release(ctx context.Context, ref string) {
	if g == nil || g.client == nil {
		return
	}
	g.client.Del(ctx, g.key(ref))
}
