package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON    = "INVALID_JSON"
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeConflict       = "CONFLICT"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeUnauthorised   = "UNAUTHORIZED"
	ErrCodePartialFailure = "PARTIAL_FAILURE"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DomainError is a typed business-rule error carrying a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error with a formatted message.
func NewValidationError(format string, args ...any) *DomainError {
	return NewDomainError(ErrCodeValidation, fmt.Sprintf(format, args...))
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError(ErrCodeNotFound, "Requested record does not exist")
	ErrForbidden         = NewDomainError(ErrCodeForbidden, "Actor does not own this record")
	ErrUnauthorised      = NewDomainError(ErrCodeUnauthorised, "Missing or invalid credentials")
	ErrDuplicateUserID   = NewDomainError(ErrCodeConflict, "User ID already exists")
	ErrAreaTaken         = NewDomainError(ErrCodeConflict, "This area already has a vendor")
	ErrAreaRequired      = NewDomainError(ErrCodeValidation, "A service area must be selected")
	ErrEmptyCart         = NewDomainError(ErrCodeValidation, "Order must contain at least one item")
	ErrInvalidQuantity   = NewDomainError(ErrCodeValidation, "Quantity must be greater than zero")
	ErrMissingTime       = NewDomainError(ErrCodeValidation, "A preferred delivery time is required")
	ErrInvoiceExists     = NewDomainError(ErrCodeConflict, "An invoice already exists for this order")
	ErrOrderCancelled    = NewDomainError(ErrCodeConflict, "Order is cancelled")
	ErrOrderFinal        = NewDomainError(ErrCodeConflict, "Order status can no longer change")
	ErrCancelNotPending  = NewDomainError(ErrCodeConflict, "Only pending orders can be cancelled")
	ErrInvalidStatus     = NewDomainError(ErrCodeValidation, "Unknown status value")
	ErrInvalidCredential = NewDomainError(ErrCodeUnauthorised, "Invalid user ID or password")
)

// PartialFailureError reports a multi-record write where some lines could not
// be applied. The successfully applied lines are not rolled back.
type PartialFailureError struct {
	MissingItems []uuid.UUID
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%d inventory line(s) referenced missing items", len(e.MissingItems))
}

// ErrorCode extracts the domain error code from err, or INTERNAL_ERROR when
// err is not a domain error.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var pf *PartialFailureError
	if errors.As(err, &pf) {
		return ErrCodePartialFailure
	}
	return ErrCodeInternalError
}
