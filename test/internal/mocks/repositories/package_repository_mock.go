package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/mumtazka/kolam-sub000/internal/model"
)

type PackageRepositoryMock struct {
	mock.Mock
}

func NewPackageRepositoryMock() *PackageRepositoryMock {
	return &PackageRepositoryMock{}
}

func (m *PackageRepositoryMock) Create(ctx context.Context, pkg *model.PricingPackage) (*model.PricingPackage, error) {
	args := m.Called(ctx, pkg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PricingPackage), args.Error(1)
}

func (m *PackageRepositoryMock) List(ctx context.Context) ([]*model.PricingPackage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PricingPackage), args.Error(1)
}

func (m *PackageRepositoryMock) FindByPackageID(ctx context.Context, packageID uuid.UUID) (*model.PricingPackage, error) {
	args := m.Called(ctx, packageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PricingPackage), args.Error(1)
}

func (m *PackageRepositoryMock) Update(ctx context.Context, packageID uuid.UUID, values map[string]interface{}) (*model.PricingPackage, error) {
	args := m.Called(ctx, packageID, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PricingPackage), args.Error(1)
}

func (m *PackageRepositoryMock) Delete(ctx context.Context, packageID uuid.UUID) error {
	args := m.Called(ctx, packageID)
	return args.Error(0)
}
