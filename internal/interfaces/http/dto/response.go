package dto

import "github.com/kerp/backend/internal/application/cqrs"

// Response represents a standard API response
type Response struct {
	Success   bool        `json:"success"`
	Data      any         `json:"data,omitempty"`
	Errors    []ErrorInfo `json:"errors,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorInfo is one user-facing error. Target names the offending field, if any.
type ErrorInfo struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Target      string `json:"target,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(requestID string, errs ...ErrorInfo) Response {
	return Response{
		Success:   false,
		Errors:    errs,
		RequestID: requestID,
	}
}

// FromResultErrors converts the errors of a failed result
func FromResultErrors(errs []cqrs.Error) []ErrorInfo {
	out := make([]ErrorInfo, 0, len(errs))
	for _, e := range errs {
		out = append(out, ErrorInfo{
			Code:        e.Code,
			Description: e.Description,
			Target:      e.Target,
		})
	}
	return out
}
