package dto

import (
	"net/http"

	"github.com/kerp/backend/internal/application/cqrs"
)

// Transport error codes. Result failures keep the pipeline codes
// (ValidationError, BusinessRuleViolation, ServerError).
const (
	ErrCodeBadRequest      = "BadRequest"
	ErrCodeUnauthorized    = "Unauthorized"
	ErrCodeTokenExpired    = "TokenExpired"
	ErrCodeRequestTooLarge = "RequestTooLarge"
	ErrCodeTimeout         = "Timeout"
)

// StatusForErrors picks the HTTP status of a failed result.
// A server error wins over a business rule violation, which wins over validation errors.
// Failures with codes the pipeline does not define are business outcomes.
func StatusForErrors(errs []cqrs.Error) int {
	if len(errs) == 0 {
		return http.StatusInternalServerError
	}

	status := http.StatusBadRequest
	for _, e := range errs {
		switch e.Code {
		case cqrs.CodeServerError:
			return http.StatusInternalServerError
		case cqrs.CodeValidation:
		default:
			status = http.StatusUnprocessableEntity
		}
	}
	return status
}
