package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mumtazka/kolam-sub000/internal/model"
	"github.com/mumtazka/kolam-sub000/internal/repository"
)

type PackageService interface {
	List(ctx context.Context) ([]*model.PricingPackage, error)
	GetByPackageID(ctx context.Context, packageID uuid.UUID) (*model.PricingPackage, error)
	Create(ctx context.Context, req model.CreatePackageRequest) (*model.PricingPackage, error)
	UpdateByPackageID(ctx context.Context, packageID uuid.UUID, params model.UpdatePackageParams) (*model.PricingPackage, error)
	DeleteByPackageID(ctx context.Context, packageID uuid.UUID) error
}

type PackageServiceImpl struct {
	repo repository.PackageRepository
}

func NewPackageService(repo repository.PackageRepository) PackageService {
	return &PackageServiceImpl{repo: repo}
}

func (s *PackageServiceImpl) List(ctx context.Context) ([]*model.PricingPackage, error) {
	return s.repo.List(ctx)
}

func (s *PackageServiceImpl) GetByPackageID(ctx context.Context, packageID uuid.UUID) (*model.PricingPackage, error) {
	return s.repo.FindByPackageID(ctx, packageID)
}

func (s *PackageServiceImpl) Create(ctx context.Context, req model.CreatePackageRequest) (*model.PricingPackage, error) {
	return s.repo.Create(ctx, &model.PricingPackage{
		PackageID:      uuid.New(),
		Name:           req.Name,
		MinPeople:      req.MinPeople,
		PricePerPerson: req.PricePerPerson,
		Active:         true,
	})
}

func (s *PackageServiceImpl) UpdateByPackageID(ctx context.Context, packageID uuid.UUID, params model.UpdatePackageParams) (*model.PricingPackage, error) {
	values := map[string]interface{}{}

	if params.Name != nil {
		values["name"] = *params.Name
	}
	if params.MinPeople != nil {
		values["min_people"] = *params.MinPeople
	}
	if params.PricePerPerson != nil {
		values["price_per_person"] = *params.PricePerPerson
	}
	if params.Active != nil {
		values["active"] = *params.Active
	}

	return s.repo.Update(ctx, packageID, values)
}

func (s *PackageServiceImpl) DeleteByPackageID(ctx context.Context, packageID uuid.UUID) error {
	return s.repo.Delete(ctx, packageID)
}
