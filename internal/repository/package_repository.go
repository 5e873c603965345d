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

type PackageRepository interface {
	Create(ctx context.Context, pkg *model.PricingPackage) (*model.PricingPackage, error)
	List(ctx context.Context) ([]*model.PricingPackage, error)
	FindByPackageID(ctx context.Context, packageID uuid.UUID) (*model.PricingPackage, error)
	Update(ctx context.Context, packageID uuid.UUID, values map[string]interface{}) (*model.PricingPackage, error)
	Delete(ctx context.Context, packageID uuid.UUID) error
}

type PackageRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewPackageRepository(pool *pgxpool.Pool) PackageRepository {
	return &PackageRepositoryImpl{
		pool: pool,
	}
}

const packageColumns = `id, package_id, name, min_people, price_per_person, active,
		created_at, updated_at, deleted_at`

func scanPackage(row pgx.Row) (*model.PricingPackage, error) {
	var pkg model.PricingPackage
	err := row.Scan(
		&pkg.ID,
		&pkg.PackageID,
		&pkg.Name,
		&pkg.MinPeople,
		&pkg.PricePerPerson,
		&pkg.Active,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
		&pkg.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *PackageRepositoryImpl) Create(ctx context.Context, pkg *model.PricingPackage) (*model.PricingPackage, error) {
	query := `
		INSERT INTO packages (package_id, name, min_people, price_per_person, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + packageColumns

	return scanPackage(r.pool.QueryRow(ctx, query,
		pkg.PackageID, pkg.Name, pkg.MinPeople, pkg.PricePerPerson, pkg.Active,
	))
}

func (r *PackageRepositoryImpl) List(ctx context.Context) ([]*model.PricingPackage, error) {
	query := `
		SELECT ` + packageColumns + `
		FROM packages
		WHERE deleted_at IS NULL
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	packages := make([]*model.PricingPackage, 0)

	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return packages, nil
}

func (r *PackageRepositoryImpl) FindByPackageID(ctx context.Context, packageID uuid.UUID) (*model.PricingPackage, error) {
	query := `
		SELECT ` + packageColumns + `
		FROM packages
		WHERE package_id = $1 AND deleted_at IS NULL
	`

	pkg, err := scanPackage(r.pool.QueryRow(ctx, query, packageID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrPackageNotFound
		}
		return nil, err
	}

	return pkg, nil
}

func (r *PackageRepositoryImpl) Update(ctx context.Context, packageID uuid.UUID, values map[string]interface{}) (*model.PricingPackage, error) {
	allowedFields := map[string]bool{
		"name":             true,
		"min_people":       true,
		"price_per_person": true,
		"active":           true,
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

	args = append(args, packageID)

	query := fmt.Sprintf(`
		UPDATE packages
		SET %s
		WHERE package_id = $%d AND deleted_at IS NULL
		RETURNING `+packageColumns,
		strings.Join(sets, ", "), argPos)

	pkg, err := scanPackage(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrPackageNotFound
		}
		return nil, err
	}

	return pkg, nil
}

func (r *PackageRepositoryImpl) Delete(ctx context.Context, packageID uuid.UUID) error {
	query := `
		UPDATE packages
		SET deleted_at = $1, updated_at = $1
		WHERE package_id = $2 AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query, time.Now().UTC(), packageID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrPackageNotFound
	}

	return nil
}
