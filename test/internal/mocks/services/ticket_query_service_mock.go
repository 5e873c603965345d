package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/mumtazka/kolam-sub000/internal/model"
)

type TicketQueryServiceMock struct {
	mock.Mock
}

func NewTicketQueryServiceMock() *TicketQueryServiceMock {
	return &TicketQueryServiceMock{}
}

func (m *TicketQueryServiceMock) GetByCode(ctx context.Context, code string) (*model.Ticket, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ticket), args.Error(1)
}

func (m *TicketQueryServiceMock) ListByBatchID(ctx context.Context, batchID uuid.UUID) ([]*model.Ticket, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Ticket), args.Error(1)
}

func (m *TicketQueryServiceMock) ListByDate(ctx context.Context, day time.Time) ([]*model.Ticket, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Ticket), args.Error(1)
}
