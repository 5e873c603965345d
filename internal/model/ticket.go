package model

import (
	"time"

	"github.com/google/uuid"
)

// TicketKind distinguishes single-entry tickets from multi-use package
// tickets. It replaces prefix sniffing on the category code.
type TicketKind string

const (
	TicketKindStandard TicketKind = "STANDARD"
	TicketKindPackage  TicketKind = "PACKAGE"
)

func (k TicketKind) IsValid() bool {
	switch k {
	case TicketKindStandard, TicketKindPackage:
		return true
	}
	return false
}

// TicketStatus is the stored status column. It flips to USED only when
// usage_count reaches max_usage; partial consumption of a package ticket is
// tracked by usage_count alone.
type TicketStatus string

const (
	TicketStatusUnused TicketStatus = "UNUSED"
	TicketStatusUsed   TicketStatus = "USED"
)

// UsageState is the derived redemption state computed from usage_count and
// max_usage. It is never stored.
type UsageState string

const (
	UsageStateUnused        UsageState = "UNUSED"
	UsageStatePartiallyUsed UsageState = "PARTIALLY_USED"
	UsageStateExhausted     UsageState = "EXHAUSTED"
)

// Ticket is the central entity. Rows are created only by the issuance
// engine and mutated only by redemption; they are never deleted.
type Ticket struct {
	ID            int          `json:"id" db:"id"`
	TicketID      uuid.UUID    `json:"ticket_id" db:"ticket_id"`
	TicketCode    string       `json:"ticket_code" db:"ticket_code"`
	Kind          TicketKind   `json:"kind" db:"kind"`
	CategoryID    uuid.UUID    `json:"category_id" db:"category_id"`
	CategoryName  string       `json:"category_name" db:"category_name"`
	PackageID     *uuid.UUID   `json:"package_id,omitempty" db:"package_id"`
	Price         float64      `json:"price" db:"price"`
	MaxUsage      int          `json:"max_usage" db:"max_usage"`
	Status        TicketStatus `json:"status" db:"status"`
	UsageCount    int          `json:"usage_count" db:"usage_count"`
	NIM           *string      `json:"nim,omitempty" db:"nim"`
	BatchID       uuid.UUID    `json:"batch_id" db:"batch_id"`
	CreatedBy     string       `json:"created_by" db:"created_by"`
	CreatedByName string       `json:"created_by_name" db:"created_by_name"`
	Shift         string       `json:"shift" db:"shift"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
	ScannedAt     *time.Time   `json:"scanned_at,omitempty" db:"scanned_at"`
	ScannedBy     *string      `json:"scanned_by,omitempty" db:"scanned_by"`
}

// UsageState derives the redemption state from the two stored counters.
func (t *Ticket) UsageState() UsageState {
	switch {
	case t.UsageCount >= t.MaxUsage:
		return UsageStateExhausted
	case t.UsageCount > 0:
		return UsageStatePartiallyUsed
	default:
		return UsageStateUnused
	}
}

// RemainingUses reports how many redemptions the ticket still allows.
func (t *Ticket) RemainingUses() int {
	if t.UsageCount >= t.MaxUsage {
		return 0
	}
	return t.MaxUsage - t.UsageCount
}

// TotalValue is the sale value of the ticket: unit price times headcount.
// It is computed, never stored.
func (t *Ticket) TotalValue() float64 {
	return t.Price * float64(t.MaxUsage)
}
