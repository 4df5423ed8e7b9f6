package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound     = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// BusinessRuleViolation is raised by handlers when a domain rule is breached.
// Its message is written for end users and is returned to them verbatim.
type BusinessRuleViolation struct {
	Message string
	Err     error
}

// Error implements the error interface
func (e *BusinessRuleViolation) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *BusinessRuleViolation) Unwrap() error {
	return e.Err
}

// NewBusinessRuleViolation creates a business rule violation with a user-facing message
func NewBusinessRuleViolation(message string) *BusinessRuleViolation {
	return &BusinessRuleViolation{Message: message}
}

// WrapBusinessRuleViolation creates a business rule violation that keeps the cause for logging
func WrapBusinessRuleViolation(message string, err error) *BusinessRuleViolation {
	return &BusinessRuleViolation{Message: message, Err: err}
}

// IsBusinessRuleViolation reports whether err is or wraps a BusinessRuleViolation
func IsBusinessRuleViolation(err error) bool {
	var v *BusinessRuleViolation
	return errors.As(err, &v)
}
