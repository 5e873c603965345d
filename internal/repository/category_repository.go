package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mumtazka/kolam-sub000/internal/model"
	apperrors "github.com/mumtazka/kolam-sub000/pkg/app_errors"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) (*model.Category, error)
	List(ctx context.Context) ([]*model.Category, error)
	FindByCategoryID(ctx context.Context, categoryID uuid.UUID) (*model.Category, error)
	Update(ctx context.Context, categoryID uuid.UUID, values map[string]interface{}) (*model.Category, error)
	Delete(ctx context.Context, categoryID uuid.UUID) error
	PrefixInUse(ctx context.Context, prefix string, excludeID uuid.UUID) (bool, error)
}

type CategoryRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &CategoryRepositoryImpl{
		pool: pool,
	}
}

const categoryColumns = `id, category_id, name, code_prefix, price, requires_nim, active,
		created_at, updated_at, deleted_at`

func scanCategory(row pgx.Row) (*model.Category, error) {
	var category model.Category
	err := row.Scan(
		&category.ID,
		&category.CategoryID,
		&category.Name,
		&category.CodePrefix,
		&category.Price,
		&category.RequiresNIM,
		&category.Active,
		&category.CreatedAt,
		&category.UpdatedAt,
		&category.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	query := `
		INSERT INTO categories (category_id, name, code_prefix, price, requires_nim, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + categoryColumns

	return scanCategory(r.pool.QueryRow(ctx, query,
		category.CategoryID, category.Name, category.CodePrefix,
		category.Price, category.RequiresNIM, category.Active,
	))
}

func (r *CategoryRepositoryImpl) List(ctx context.Context) ([]*model.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE deleted_at IS NULL
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*model.Category, 0)

	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *CategoryRepositoryImpl) FindByCategoryID(ctx context.Context, categoryID uuid.UUID) (*model.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE category_id = $1 AND deleted_at IS NULL
	`

	category, err := scanCategory(r.pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, err
	}

	return category, nil
}

func (r *CategoryRepositoryImpl) Update(ctx context.Context, categoryID uuid.UUID, values map[string]interface{}) (*model.Category, error) {
	allowedFields := map[string]bool{
		"name":         true,
		"code_prefix":  true,
		"price":        true,
		"requires_nim": true,
		"active":       true,
	}

	sets := []string{}
	args := []interface{}{}
	argPos := 1

	for column, value := range values {
		if ok := allowedFields[column]; !ok {
			return nil, apperrors.ErrInvalidInput
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	sets = append(sets, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now().UTC())
	argPos++

	args = append(args, categoryID)

	query := fmt.Sprintf(`
		UPDATE categories
		SET %s
		WHERE category_id = $%d AND deleted_at IS NULL
		RETURNING `+categoryColumns,
		strings.Join(sets, ", "), argPos)

	category, err := scanCategory(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, err
	}

	return category, nil
}

func (r *CategoryRepositoryImpl) Delete(ctx context.Context, categoryID uuid.UUID) error {
	query := `
		UPDATE categories
		SET deleted_at = $1, updated_at = $1
		WHERE category_id = $2 AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query, time.Now().UTC(), categoryID)
	if err != nil {
		return err
	}

	// check if category exists and not already deleted
	if result.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}

	return nil
}

// PrefixInUse checks whether a live category other than excludeID already
// owns the prefix. Prefixes on soft-deleted categories are free to reuse.
func (r *CategoryRepositoryImpl) PrefixInUse(ctx context.Context, prefix string, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE code_prefix = $1 AND category_id != $2 AND deleted_at IS NULL
		)
	`

	var inUse bool
	err := r.pool.QueryRow(ctx, query, prefix, excludeID).Scan(&inUse)
	if err != nil {
		return false, err
	}

	return inUse, nil
}
