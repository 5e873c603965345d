package model

import "github.com/google/uuid"

// StaffContext identifies the operator and work period behind a register or
// scanner action. It travels explicitly with every call instead of living in
// ambient session state.
type StaffContext struct {
	ID    string `json:"staff_id" binding:"required"`
	Name  string `json:"staff_name" binding:"required"`
	Shift string `json:"shift" binding:"required"`
}

// CartItem is one line of a checkout: a category, a quantity, an optional
// package and the student IDs for categories that require one.
type CartItem struct {
	CategoryID uuid.UUID  `json:"category_id" binding:"required"`
	Quantity   int        `json:"quantity" binding:"required,min=1"`
	PackageID  *uuid.UUID `json:"package_id,omitempty"`
	NIMs       []string   `json:"nims"`
}

// IssueBatchRequest is the register checkout payload.
type IssueBatchRequest struct {
	Items []CartItem `json:"items" binding:"required,min=1,dive"`
	StaffContext
}

// IssueBatchResult is returned to the register for display and printing.
type IssueBatchResult struct {
	BatchID      uuid.UUID `json:"batch_id"`
	TotalTickets int       `json:"total_tickets"`
	Tickets      []*Ticket `json:"tickets"`
}
