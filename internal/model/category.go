package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is a sellable ticket type (e.g. "Umum", "Mahasiswa") with a unit
// price and the code prefix stamped into every ticket code.
type Category struct {
	ID          int        `json:"id" db:"id"`
	CategoryID  uuid.UUID  `json:"category_id" db:"category_id"`
	Name        string     `json:"name" db:"name"`
	CodePrefix  string     `json:"code_prefix" db:"code_prefix"`
	Price       float64    `json:"price" db:"price"`
	RequiresNIM bool       `json:"requires_nim" db:"requires_nim"`
	Active      bool       `json:"active" db:"active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// IsDeleted checks whether the category was soft-deleted. Deleted categories
// stay readable so historical tickets keep their linkage.
func (c *Category) IsDeleted() bool {
	return c.DeletedAt != nil
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	CodePrefix  string  `json:"code_prefix" binding:"required,min=1,max=3"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	RequiresNIM bool    `json:"requires_nim"`
}

type UpdateCategoryParams struct {
	Name        *string  `json:"name"`
	CodePrefix  *string  `json:"code_prefix"`
	Price       *float64 `json:"price"`
	RequiresNIM *bool    `json:"requires_nim"`
	Active      *bool    `json:"active"`
}
