package model

import "time"

// ScanStatus classifies the outcome of one gate scan.
type ScanStatus string

const (
	ScanStatusValid   ScanStatus = "VALID"
	ScanStatusUsed    ScanStatus = "USED"
	ScanStatusInvalid ScanStatus = "INVALID"
	ScanStatusError   ScanStatus = "ERROR"
)

// Verdict is the structured accept/reject answer shown at the scanner.
// INVALID and USED are normal outcomes, not errors.
type Verdict struct {
	Success bool       `json:"success"`
	Status  ScanStatus `json:"status"`
	Message string     `json:"message,omitempty"`
	Ticket  *Ticket    `json:"ticket,omitempty"`
}

// ScanRequest is the scanner payload. Code carries the exact QR payload,
// which equals the printed ticket_code.
type ScanRequest struct {
	Code   string `json:"code" binding:"required"`
	PoolID string `json:"pool_id" binding:"required"`
	StaffContext
}

// ScanLog is one accepted redemption, kept as a permanent audit row. Logs
// are written asynchronously by the scan-log worker; the verdict shown to
// the operator never waits on them.
type ScanLog struct {
	ID            int       `json:"id" db:"id"`
	TicketID      int       `json:"ticket_id" db:"ticket_id"`
	TicketCode    string    `json:"ticket_code" db:"ticket_code"`
	CategoryName  string    `json:"category_name" db:"category_name"`
	PoolID        string    `json:"pool_id" db:"pool_id"`
	Shift         string    `json:"shift" db:"shift"`
	ScannedBy     string    `json:"scanned_by" db:"scanned_by"`
	ScannedByName string    `json:"scanned_by_name" db:"scanned_by_name"`
	ScannedAt     time.Time `json:"scanned_at" db:"scanned_at"`
}
