package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mumtazka/kolam-sub000/internal/model"
	"github.com/mumtazka/kolam-sub000/internal/queue"
)

func cleanupStream(ctx context.Context, t *testing.T) {
	t.Helper()
	_ = testRdb.Del(ctx, queue.StreamKey).Err()
}

func sampleScanLog(code string) *model.ScanLog {
	return &model.ScanLog{
		TicketID:      1,
		TicketCode:    code,
		CategoryName:  "Umum",
		PoolID:        "pool-1",
		Shift:         "PAGI",
		ScannedBy:     "staff-1",
		ScannedByName: "Budi",
		ScannedAt:     time.Now().Truncate(time.Second),
	}
}

func TestNewRedisStreamScanQueue(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	t.Run("success", func(t *testing.T) {
		q, err := queue.NewRedisStreamScanQueue(testRdb, "test-consumer", nil)
		require.NoError(t, err)
		require.NotNil(t, q)
	})

	t.Run("empty_consumer_id_generates_uuid", func(t *testing.T) {
		cleanupStream(ctx, t)
		q, err := queue.NewRedisStreamScanQueue(testRdb, "", nil)
		require.NoError(t, err)
		require.NotNil(t, q)
	})
}

func TestRedisStreamScanQueue_PublishScan(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamScanQueue(testRdb, "pub-test", nil)
	require.NoError(t, err)

	err = q.PublishScan(ctx, sampleScanLog("UM-20250714-0001-AAAA"))
	require.NoError(t, err)
}

func TestRedisStreamScanQueue_Subscribe_deliversPublishedMessage(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamScanQueue(testRdb, "deliver-test", nil)
	require.NoError(t, err)

	published := sampleScanLog("UM-20250714-0002-BBBB")
	require.NoError(t, q.PublishScan(ctx, published))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.SubscribeScans(subCtx)
	require.NoError(t, err)

	select {
	case d, ok := <-delCh:
		require.True(t, ok, "expected a delivery")
		require.NotNil(t, d.Data)
		assert.Equal(t, published.TicketID, d.Data.TicketID)
		assert.Equal(t, published.TicketCode, d.Data.TicketCode)
		assert.Equal(t, published.CategoryName, d.Data.CategoryName)
		assert.Equal(t, published.PoolID, d.Data.PoolID)
		assert.Equal(t, published.ScannedBy, d.Data.ScannedBy)
		assert.Equal(t, published.ScannedByName, d.Data.ScannedByName)
		d.Ack()
	case <-subCtx.Done():
		t.Fatal("timeout waiting for delivery")
	}
}

func TestRedisStreamScanQueue_Ack_preventsRedelivery(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamScanQueue(testRdb, "ack-test", nil)
	require.NoError(t, err)

	published := sampleScanLog("UM-20250714-0003-CCCC")
	require.NoError(t, q.PublishScan(ctx, published))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.SubscribeScans(subCtx)
	require.NoError(t, err)

	select {
	case d, ok := <-delCh:
		require.True(t, ok)
		require.NotNil(t, d.Data)
		d.Ack()
	case <-subCtx.Done():
		t.Fatal("timeout waiting for first delivery")
	}

	cancel()
	next, ok := <-delCh
	assert.False(t, ok, "channel should close after cancel, not redeliver")
	if ok && next.Data != nil && next.Data.TicketCode == published.TicketCode {
		t.Fatalf("acked message was redelivered: %s", next.Data.TicketCode)
	}
}

func TestRedisStreamScanQueue_NackDiscard_preventsRedelivery(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamScanQueue(testRdb, "nack-discard-test", nil)
	require.NoError(t, err)

	published := sampleScanLog("UM-20250714-0004-DDDD")
	require.NoError(t, q.PublishScan(ctx, published))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.SubscribeScans(subCtx)
	require.NoError(t, err)

	select {
	case d, ok := <-delCh:
		require.True(t, ok)
		require.NotNil(t, d.Data)
		assert.Equal(t, published.TicketCode, d.Data.TicketCode)
		d.Nack(false)
	case <-subCtx.Done():
		t.Fatal("timeout waiting for first delivery")
	}

	select {
	case d, ok := <-delCh:
		if ok && d.Data != nil && d.Data.TicketCode == published.TicketCode {
			t.Fatalf("discarded message was redelivered: %s", d.Data.TicketCode)
		}
	case <-time.After(2 * time.Second):
		// no redelivery within the window means the discard held
	}
	cancel()
}

func TestRedisStreamScanQueue_NackRequeue_redeliversAfterIdle(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	cfg := &queue.RedisStreamScanQueueConfig{
		ClaimMinIdleTime:   200 * time.Millisecond,
		ReadGroupBlockTime: 500 * time.Millisecond,
	}
	q, err := queue.NewRedisStreamScanQueue(testRdb, "nack-requeue-test", cfg)
	require.NoError(t, err)

	published := sampleScanLog("UM-20250714-0005-EEEE")
	require.NoError(t, q.PublishScan(ctx, published))

	subCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	delCh, err := q.SubscribeScans(subCtx)
	require.NoError(t, err)

	select {
	case d, ok := <-delCh:
		require.True(t, ok)
		require.NotNil(t, d.Data)
		assert.Equal(t, published.TicketCode, d.Data.TicketCode)
		d.Nack(true)
	case <-subCtx.Done():
		t.Fatal("timeout waiting for first delivery")
	}

	select {
	case d, ok := <-delCh:
		require.True(t, ok, "nacked message should be reclaimed after ClaimMinIdleTime")
		require.NotNil(t, d.Data)
		assert.Equal(t, published.TicketCode, d.Data.TicketCode)
		d.Ack()
	case <-subCtx.Done():
		t.Fatal("timeout waiting for redelivery")
	}
}

func TestRedisStreamScanQueue_poisonMessage_discardedAfterMaxRetries(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	cfg := &queue.RedisStreamScanQueueConfig{
		ClaimMinIdleTime:   200 * time.Millisecond,
		MaxRetryCount:      3,
		ReadGroupBlockTime: 200 * time.Millisecond,
	}
	q, err := queue.NewRedisStreamScanQueue(testRdb, "poison-test", cfg)
	require.NoError(t, err)

	published := sampleScanLog("UM-20250714-0006-FFFF")
	require.NoError(t, q.PublishScan(ctx, published))

	subCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	delCh, err := q.SubscribeScans(subCtx)
	require.NoError(t, err)

	received := 0
	waitNoMore := 500 * time.Millisecond
loop:
	for {
		select {
		case d, ok := <-delCh:
			if !ok {
				t.Fatalf("channel closed early after %d deliveries", received)
			}
			require.NotNil(t, d.Data)
			assert.Equal(t, published.TicketCode, d.Data.TicketCode)
			received++
			d.Nack(true)
		case <-time.After(waitNoMore):
			if received >= 1 {
				break loop
			}
			t.Fatal("timeout waiting for any delivery")
		case <-subCtx.Done():
			t.Fatalf("test context timeout after %d deliveries", received)
		}
	}

	require.GreaterOrEqual(t, received, 1)

	select {
	case d, ok := <-delCh:
		if ok && d.Data != nil && d.Data.TicketCode == published.TicketCode {
			t.Fatalf("poison message redelivered past MaxRetryCount: %s", d.Data.TicketCode)
		}
	case <-time.After(500 * time.Millisecond):
	}
}

func TestRedisStreamScanQueue_Subscribe_ctxCancel_closesChannel(t *testing.T) {
	ctx := context.Background()
	cleanupStream(ctx, t)

	q, err := queue.NewRedisStreamScanQueue(testRdb, "cancel-test", nil)
	require.NoError(t, err)

	subCtx, cancel := context.WithCancel(ctx)
	delCh, err := q.SubscribeScans(subCtx)
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-delCh:
		assert.False(t, ok, "channel should close after context cancel")
	case <-time.After(3 * time.Second):
		t.Fatal("channel did not close in time")
	}
}
