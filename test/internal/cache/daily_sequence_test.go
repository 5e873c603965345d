package cache

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mumtazka/kolam-sub000/internal/cache"
)

func TestRedisSequenceAllocator_ReserveRange(t *testing.T) {
	ctx := context.Background()
	clearRedis(ctx)

	allocator := cache.NewRedisSequenceAllocator(getTestRdb())
	day := time.Date(2025, 7, 14, 10, 0, 0, 0, time.Local)

	first, err := allocator.ReserveRange(ctx, day, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := allocator.ReserveRange(ctx, day, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, second)

	third, err := allocator.ReserveRange(ctx, day, 10)
	require.NoError(t, err)
	assert.Equal(t, 6, third)
}

func TestRedisSequenceAllocator_DaysAreIndependent(t *testing.T) {
	ctx := context.Background()
	clearRedis(ctx)

	allocator := cache.NewRedisSequenceAllocator(getTestRdb())
	monday := time.Date(2025, 7, 14, 23, 59, 0, 0, time.Local)
	tuesday := time.Date(2025, 7, 15, 0, 1, 0, 0, time.Local)

	first, err := allocator.ReserveRange(ctx, monday, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	// the next day starts back at 1
	next, err := allocator.ReserveRange(ctx, tuesday, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
}

func TestRedisSequenceAllocator_RejectsNonPositiveCount(t *testing.T) {
	ctx := context.Background()
	clearRedis(ctx)

	allocator := cache.NewRedisSequenceAllocator(getTestRdb())

	_, err := allocator.ReserveRange(ctx, time.Now(), 0)
	assert.Error(t, err)

	_, err = allocator.ReserveRange(ctx, time.Now(), -2)
	assert.Error(t, err)
}

func TestRedisSequenceAllocator_SetsKeyTTL(t *testing.T) {
	ctx := context.Background()
	clearRedis(ctx)

	allocator := cache.NewRedisSequenceAllocator(getTestRdb())
	day := time.Date(2025, 7, 14, 10, 0, 0, 0, time.Local)

	_, err := allocator.ReserveRange(ctx, day, 2)
	require.NoError(t, err)

	ttl, err := getTestRdb().TTL(ctx, "tickets:seq:20250714").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, 48*time.Hour)
}

// Concurrent registers must never receive overlapping blocks.
func TestRedisSequenceAllocator_ConcurrentReservations(t *testing.T) {
	ctx := context.Background()
	clearRedis(ctx)

	allocator := cache.NewRedisSequenceAllocator(getTestRdb())
	day := time.Now()

	const workers = 10
	const blockSize = 5

	var wg sync.WaitGroup
	var mu sync.Mutex
	starts := make([]int, 0, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start, err := allocator.ReserveRange(ctx, day, blockSize)
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			starts = append(starts, start)
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, starts, workers)
	sort.Ints(starts)
	for i, start := range starts {
		assert.Equal(t, i*blockSize+1, start)
	}
}
