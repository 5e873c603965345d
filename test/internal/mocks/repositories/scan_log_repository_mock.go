package repositories

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mumtazka/kolam-sub000/internal/model"
)

type ScanLogRepositoryMock struct {
	mock.Mock
}

func NewScanLogRepositoryMock() *ScanLogRepositoryMock {
	return &ScanLogRepositoryMock{}
}

func (m *ScanLogRepositoryMock) Create(ctx context.Context, log *model.ScanLog) (*model.ScanLog, error) {
	args := m.Called(ctx, log)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ScanLog), args.Error(1)
}

func (m *ScanLogRepositoryMock) CountOn(ctx context.Context, day time.Time) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}
