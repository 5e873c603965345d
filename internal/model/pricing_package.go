package model

import (
	"time"

	"github.com/google/uuid"
)

// PricingPackage is a bulk/group pricing rule. A package purchase produces a
// single multi-use ticket whose max_usage equals the headcount.
type PricingPackage struct {
	ID             int        `json:"id" db:"id"`
	PackageID      uuid.UUID  `json:"package_id" db:"package_id"`
	Name           string     `json:"name" db:"name"`
	MinPeople      int        `json:"min_people" db:"min_people"`
	PricePerPerson float64    `json:"price_per_person" db:"price_per_person"`
	Active         bool       `json:"active" db:"active"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func (p *PricingPackage) IsDeleted() bool {
	return p.DeletedAt != nil
}

type CreatePackageRequest struct {
	Name           string  `json:"name" binding:"required"`
	MinPeople      int     `json:"min_people" binding:"required,min=1"`
	PricePerPerson float64 `json:"price_per_person" binding:"required,gt=0"`
}

type UpdatePackageParams struct {
	Name           *string  `json:"name"`
	MinPeople      *int     `json:"min_people"`
	PricePerPerson *float64 `json:"price_per_person"`
	Active         *bool    `json:"active"`
}
