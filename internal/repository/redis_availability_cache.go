package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SimplyHuzu/body-works-gym-rep/internal/domain"
	pkgredis "github.com/SimplyHuzu/body-works-gym-rep/pkg/redis"
)

// AvailabilityCache caches per-resource, per-day availability snapshots for
// display reads. The reservation engine never reads it: conflict checks always
// go to the reservation store. Every successful commit or cancel must
// invalidate the affected resource so stale snapshots can only be as old as
// the TTL and never survive a write.
type AvailabilityCache interface {
	Get(ctx context.Context, resourceID string, date time.Time) ([]domain.AvailabilitySlot, bool)
	Set(ctx context.Context, resourceID string, date time.Time, slots []domain.AvailabilitySlot)
	Invalidate(ctx context.Context, resourceID string)
}

const (
	availabilityKeyPrefix  = "availability:"
	defaultAvailabilityTTL = 30 * time.Second
)

// RedisAvailabilityCache implements AvailabilityCache using Redis
type RedisAvailabilityCache struct {
	client *pkgredis.Client
	ttl    time.Duration
}

// NewRedisAvailabilityCache creates a new RedisAvailabilityCache
func NewRedisAvailabilityCache(client *pkgredis.Client, ttl time.Duration) *RedisAvailabilityCache {
	if ttl <= 0 {
		ttl = defaultAvailabilityTTL
	}
	return &RedisAvailabilityCache{client: client, ttl: ttl}
}

func availabilityKey(resourceID string, date time.Time) string {
	return fmt.Sprintf("%s%s:%s", availabilityKeyPrefix, resourceID, date.Format("2006-01-02"))
}

// Get returns a cached snapshot if present
func (c *RedisAvailabilityCache) Get(ctx context.Context, resourceID string, date time.Time) ([]domain.AvailabilitySlot, bool) {
	raw, err := c.client.Client().Get(ctx, availabilityKey(resourceID, date)).Bytes()
	if err != nil {
		// A miss and cache trouble both degrade to a recompute
		return nil, false
	}

	var slots []domain.AvailabilitySlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

// Set stores a snapshot with the cache TTL
func (c *RedisAvailabilityCache) Set(ctx context.Context, resourceID string, date time.Time, slots []domain.AvailabilitySlot) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	_ = c.client.Client().Set(ctx, availabilityKey(resourceID, date), raw, c.ttl).Err()
}

// Invalidate drops all cached days for a resource
func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, resourceID string) {
	pattern := availabilityKeyPrefix + resourceID + ":*"
	iter := c.client.Client().Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		_ = c.client.Client().Del(ctx, iter.Val()).Err()
	}
}
