package queues

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mumtazka/kolam-sub000/internal/model"
	"github.com/mumtazka/kolam-sub000/internal/queue"
)

type ScanQueueMock struct {
	mock.Mock
}

func NewScanQueueMock() *ScanQueueMock {
	return &ScanQueueMock{}
}

func (m *ScanQueueMock) PublishScan(ctx context.Context, log *model.ScanLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *ScanQueueMock) SubscribeScans(ctx context.Context) (<-chan queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan queue.Delivery), args.Error(1)
}
