package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mumtazka/kolam-sub000/internal/model"
)

type IssuanceServiceMock struct {
	mock.Mock
}

func NewIssuanceServiceMock() *IssuanceServiceMock {
	return &IssuanceServiceMock{}
}

func (m *IssuanceServiceMock) IssueBatch(ctx context.Context, items []model.CartItem, staff model.StaffContext) (*model.IssueBatchResult, error) {
	args := m.Called(ctx, items, staff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.IssueBatchResult), args.Error(1)
}
