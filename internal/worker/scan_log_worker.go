package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/mumtazka/kolam-sub000/internal/queue"
	"github.com/mumtazka/kolam-sub000/internal/repository"
	"github.com/mumtazka/kolam-sub000/pkg/logger"
)

// ScanLogWorker drains accepted scans off the queue into the scan_logs
// audit table. Redemption verdicts never wait on this path.
type ScanLogWorker interface {
	Start(ctx context.Context) error
}

type ScanLogWorkerImpl struct {
	repository repository.ScanLogRepository
	queue      queue.ScanQueue
}

func NewScanLogWorker(repository repository.ScanLogRepository, queue queue.ScanQueue) ScanLogWorker {
	return &ScanLogWorkerImpl{
		repository: repository,
		queue:      queue,
	}
}

func (w *ScanLogWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeScans(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			_, err := w.repository.Create(ctx, msg.Data)

			if err != nil {
				// database hiccup: leave the message for a delayed retry
				logger.WithComponent("worker").Warn("persist scan log failed, will retry",
					zap.String("ticket_code", msg.Data.TicketCode), zap.Error(err))
				msg.Nack(true)
			} else {
				msg.Ack()
			}
		}
	}()
	return nil
}
