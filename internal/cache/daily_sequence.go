package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SequenceAllocator hands out daily ticket sequence numbers. Numbers only
// feed the human-readable segment of a ticket code; uniqueness is still
// enforced by the store's unique index, so a duplicated sequence is ugly
// but harmless.
type SequenceAllocator interface {
	// ReserveRange atomically reserves count consecutive sequence numbers
	// for the given day and returns the first one (1-based).
	ReserveRange(ctx context.Context, day time.Time, count int) (int, error)
}

// sequence keys expire two days after first use; the day segment of the key
// keeps concurrent days separate around midnight
const sequenceKeyTTL = 48 * time.Hour

type RedisSequenceAllocator struct {
	client *redis.Client
}

func NewRedisSequenceAllocator(client *redis.Client) SequenceAllocator {
	return &RedisSequenceAllocator{client: client}
}

func (a *RedisSequenceAllocator) sequenceKey(day time.Time) string {
	return fmt.Sprintf("tickets:seq:%s", day.Format("20060102"))
}

func (a *RedisSequenceAllocator) ReserveRange(ctx context.Context, day time.Time, count int) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("invalid reserve count: %d", count)
	}

	key := a.sequenceKey(day)
	end, err := a.client.IncrBy(ctx, key, int64(count)).Result()
	if err != nil {
		return 0, fmt.Errorf("reserve sequence range: %w", err)
	}

	// fresh key: set the TTL once
	if end == int64(count) {
		if err := a.client.Expire(ctx, key, sequenceKeyTTL).Err(); err != nil {
			return 0, fmt.Errorf("set sequence key ttl: %w", err)
		}
	}

	return int(end) - count + 1, nil
}
