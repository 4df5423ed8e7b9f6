// Package cqrs routes commands and queries to their handlers through an
// ordered chain of pipeline behaviors.
package cqrs

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Severity classifies an Error
type Severity int

const (
	SeverityCritical Severity = iota
	SeverityWarning
)

// String returns the severity name
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "Critical"
	case SeverityWarning:
		return "Warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Error is a user-facing failure entry carried by a failed Result.
// Target is the property path the error refers to, if any.
type Error struct {
	Code        string
	Description string
	Severity    Severity
	Target      string
}

// NewError creates a critical error
func NewError(code, description string) Error {
	return Error{Code: code, Description: description, Severity: SeverityCritical}
}

// NewWarning creates a warning-level error
func NewWarning(code, description string) Error {
	return Error{Code: code, Description: description, Severity: SeverityWarning}
}

// Error codes produced by the pipeline
const (
	CodeValidation            = "ValidationError"
	CodeBusinessRuleViolation = "BusinessRuleViolation"
	CodeServerError           = "ServerError"
)

// ErrNoValue is returned by Value on a failed result
var ErrNoValue = errors.New("cqrs: result has no value")

// Unit is the value type of results that carry no payload
type Unit struct{}

// Outcome is the type-erased view of a Result that pipeline behaviors work with
type Outcome interface {
	IsSuccess() bool
	Errors() []Error
}

// Result is either a success carrying a value or a failure carrying at least one Error.
// The zero value is a success with the zero T.
type Result[T any] struct {
	value  T
	errors []Error
}

// Success creates a successful result
func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Ok creates a successful valueless result
func Ok() Result[Unit] {
	return Result[Unit]{}
}

// Failure creates a failed result. It panics when called without errors.
func Failure[T any](errs ...Error) Result[T] {
	if len(errs) == 0 {
		panic("cqrs: failure result requires at least one error")
	}
	return Result[T]{errors: slices.Clone(errs)}
}

// IsSuccess reports whether the result carries a value
func (r Result[T]) IsSuccess() bool {
	return len(r.errors) == 0
}

// IsFailure reports whether the result carries errors
func (r Result[T]) IsFailure() bool {
	return len(r.errors) > 0
}

// Value returns the carried value, or ErrNoValue for a failure
func (r Result[T]) Value() (T, error) {
	if r.IsFailure() {
		var zero T
		return zero, ErrNoValue
	}
	return r.value, nil
}

// MustValue returns the value and panics on a failure
func (r Result[T]) MustValue() T {
	v, err := r.Value()
	if err != nil {
		panic(err)
	}
	return v
}

// Errors returns a copy of the carried errors
func (r Result[T]) Errors() []Error {
	return slices.Clone(r.errors)
}

// String renders the result for logs
func (r Result[T]) String() string {
	if r.IsSuccess() {
		return "Success"
	}
	codes := make([]string, len(r.errors))
	for i, e := range r.errors {
		codes[i] = e.Code
	}
	return "Failure(" + strings.Join(codes, ",") + ")"
}

// failed is the Outcome returned by behaviors that stop the pipeline before the handler runs
type failed struct {
	errors []Error
}

func (f failed) IsSuccess() bool  { return false }
func (f failed) Errors() []Error { return slices.Clone(f.errors) }

// Fail builds a failed Outcome for a behavior to short-circuit with.
// It panics when called without errors.
func Fail(errs ...Error) Outcome {
	if len(errs) == 0 {
		panic("cqrs: failure outcome requires at least one error")
	}
	return failed{errors: slices.Clone(errs)}
}

// ErrorCodes returns the codes of an outcome's errors
func ErrorCodes(o Outcome) []string {
	errs := o.Errors()
	codes := make([]string, len(errs))
	for i, e := range errs {
		codes[i] = e.Code
	}
	return codes
}

// toResult converts a pipeline outcome into the typed result of the request
func toResult[R any](o Outcome) (Result[R], error) {
	if r, ok := o.(Result[R]); ok {
		return r, nil
	}
	if o == nil {
		return Result[R]{}, fmt.Errorf("%w: pipeline returned no outcome", ErrOutcomeType)
	}
	if !o.IsSuccess() {
		errs := o.Errors()
		if len(errs) == 0 {
			return Result[R]{}, fmt.Errorf("%w: failure outcome without errors", ErrOutcomeType)
		}
		return Failure[R](errs...), nil
	}
	var zero R
	return Result[R]{}, fmt.Errorf("%w: got %T, want Result[%T]", ErrOutcomeType, o, zero)
}
