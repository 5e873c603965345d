package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mumtazka/kolam-sub000/internal/model"
	"github.com/mumtazka/kolam-sub000/internal/repository"
	"github.com/mumtazka/kolam-sub000/internal/ticketcode"
	apperrors "github.com/mumtazka/kolam-sub000/pkg/app_errors"
)

type CategoryService interface {
	List(ctx context.Context) ([]*model.Category, error)
	GetByCategoryID(ctx context.Context, categoryID uuid.UUID) (*model.Category, error)
	Create(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error)
	UpdateByCategoryID(ctx context.Context, categoryID uuid.UUID, params model.UpdateCategoryParams) (*model.Category, error)
	DeleteByCategoryID(ctx context.Context, categoryID uuid.UUID) error
}

type CategoryServiceImpl struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &CategoryServiceImpl{repo: repo}
}

func (s *CategoryServiceImpl) List(ctx context.Context) ([]*model.Category, error) {
	return s.repo.List(ctx)
}

func (s *CategoryServiceImpl) GetByCategoryID(ctx context.Context, categoryID uuid.UUID) (*model.Category, error) {
	return s.repo.FindByCategoryID(ctx, categoryID)
}

func (s *CategoryServiceImpl) Create(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error) {
	prefix, err := s.validatePrefix(ctx, req.CodePrefix, uuid.Nil)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &model.Category{
		CategoryID:  uuid.New(),
		Name:        req.Name,
		CodePrefix:  prefix,
		Price:       req.Price,
		RequiresNIM: req.RequiresNIM,
		Active:      true,
	})
}

func (s *CategoryServiceImpl) UpdateByCategoryID(ctx context.Context, categoryID uuid.UUID, params model.UpdateCategoryParams) (*model.Category, error) {
	values := map[string]interface{}{}

	if params.Name != nil {
		values["name"] = *params.Name
	}
	if params.CodePrefix != nil {
		prefix, err := s.validatePrefix(ctx, *params.CodePrefix, categoryID)
		if err != nil {
			return nil, err
		}
		values["code_prefix"] = prefix
	}
	if params.Price != nil {
		values["price"] = *params.Price
	}
	if params.RequiresNIM != nil {
		values["requires_nim"] = *params.RequiresNIM
	}
	if params.Active != nil {
		values["active"] = *params.Active
	}

	return s.repo.Update(ctx, categoryID, values)
}

// DeleteByCategoryID soft-deletes: the row stays behind so historical
// tickets keep a resolvable category.
func (s *CategoryServiceImpl) DeleteByCategoryID(ctx context.Context, categoryID uuid.UUID) error {
	return s.repo.Delete(ctx, categoryID)
}

func (s *CategoryServiceImpl) validatePrefix(ctx context.Context, raw string, excludeID uuid.UUID) (string, error) {
	prefix := ticketcode.NormalizePrefix(raw)
	if !ticketcode.ValidPrefix(prefix) {
		return "", fmt.Errorf("%w: code prefix must be 1-3 uppercase alphanumerics", apperrors.ErrInvalidInput)
	}

	inUse, err := s.repo.PrefixInUse(ctx, prefix, excludeID)
	if err != nil {
		return "", err
	}
	if inUse {
		return "", fmt.Errorf("%w: %s", apperrors.ErrPrefixTaken, prefix)
	}

	return prefix, nil
}
