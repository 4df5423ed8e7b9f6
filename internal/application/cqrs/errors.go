package cqrs

import (
	"errors"
	"fmt"
	"reflect"
)

// Mediator errors
var (
	ErrNilRequest       = errors.New("cqrs: request is nil")
	ErrNoHandler        = errors.New("cqrs: no handler registered")
	ErrDuplicateHandler = errors.New("cqrs: handler already registered")
	ErrNextCalledTwice  = errors.New("cqrs: next called more than once")
	ErrOutcomeType      = errors.New("cqrs: unexpected outcome type")
)

// InvalidArgumentError is returned when a caller passes an unusable request
type InvalidArgumentError struct {
	Argument string
	Err      error
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %v", e.Argument, e.Err)
}

func (e *InvalidArgumentError) Unwrap() error {
	return e.Err
}

// ConfigurationError signals a wiring mistake such as a request type without a handler.
// It is never turned into a business result.
type ConfigurationError struct {
	RequestType reflect.Type
	ResultType  reflect.Type
	Err         error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for %s -> %s: %v", typeName(e.RequestType), typeName(e.ResultType), e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
