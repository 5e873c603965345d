package caches

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type SequenceAllocatorMock struct {
	mock.Mock
}

func NewSequenceAllocatorMock() *SequenceAllocatorMock {
	return &SequenceAllocatorMock{}
}

func (m *SequenceAllocatorMock) ReserveRange(ctx context.Context, day time.Time, count int) (int, error) {
	args := m.Called(ctx, day, count)
	return args.Int(0), args.Error(1)
}
