package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mumtazka/kolam-sub000/internal/model"
)

type RedemptionServiceMock struct {
	mock.Mock
}

func NewRedemptionServiceMock() *RedemptionServiceMock {
	return &RedemptionServiceMock{}
}

func (m *RedemptionServiceMock) Redeem(ctx context.Context, code string, staff model.StaffContext, poolID string) *model.Verdict {
	args := m.Called(ctx, code, staff, poolID)
	return args.Get(0).(*model.Verdict)
}
