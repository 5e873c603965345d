package apperrors

import "errors"

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrPackageNotFound     = errors.New("package not found")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrTicketExhausted     = errors.New("ticket already used")
	ErrMissingStudentID    = errors.New("missing student id")
	ErrDuplicateStudentID  = errors.New("duplicate student id")
	ErrBelowPackageMinimum = errors.New("quantity below package minimum")
	ErrPrefixTaken         = errors.New("code prefix already in use")
	ErrTicketCodeConflict  = errors.New("ticket code already exists")
	ErrIssuanceFailed      = errors.New("ticket issuance failed")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternalServerError = errors.New("internal server error")
)
