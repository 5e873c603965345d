package queue

import (
	"context"

	"github.com/mumtazka/kolam-sub000/internal/model"
)

type Delivery struct {
	Data *model.ScanLog
	Ack  func()
	Nack func(requeue bool)
}

// ScanQueue decouples the gate verdict from the audit trail: redemption
// publishes an accepted scan and the worker persists it later.
type ScanQueue interface {
	PublishScan(ctx context.Context, log *model.ScanLog) error
	SubscribeScans(ctx context.Context) (<-chan Delivery, error)
}

// MemoryScanQueue is a channel-backed ScanQueue for tests and single-node
// deployments without Redis.
type MemoryScanQueue struct {
	ch chan *model.ScanLog
}

func NewMemoryScanQueue(bufferSize int) ScanQueue {
	return &MemoryScanQueue{
		ch: make(chan *model.ScanLog, bufferSize),
	}
}

func (q *MemoryScanQueue) PublishScan(ctx context.Context, log *model.ScanLog) error {
	q.ch <- log
	return nil
}

func (q *MemoryScanQueue) SubscribeScans(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case log, ok := <-q.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Data: log,
					Ack:  func() { /* nothing to settle for the in-memory queue */ },
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- log
						}
					},
				}
			}
		}
	}()

	return out, nil
}
