package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// Validator checks a whole request of type T
type Validator[T any] interface {
	Validate(ctx context.Context, req T) ([]ValidationError, error)
}

// ValidatorFunc adapts a function to Validator
type ValidatorFunc[T any] func(ctx context.Context, req T) ([]ValidationError, error)

// Validate calls f(ctx, req)
func (f ValidatorFunc[T]) Validate(ctx context.Context, req T) ([]ValidationError, error) {
	return f(ctx, req)
}

// ChainValidator runs a single chain against the request
type ChainValidator[T any] struct {
	chain    *Chain[T]
	services Services
}

// NewChainValidator creates a Validator over chain
func NewChainValidator[T any](chain *Chain[T], services Services) *ChainValidator[T] {
	return &ChainValidator[T]{chain: chain, services: services}
}

func (v *ChainValidator[T]) Validate(ctx context.Context, req T) ([]ValidationError, error) {
	return v.chain.Validate(ctx, req, v.services)
}

// RequestValidator is the type-erased form of Validator stored in the registry
type RequestValidator func(ctx context.Context, req any) ([]ValidationError, error)

// ValidatorRegistry maps request types to their validators. It is filled at
// startup and read concurrently afterwards.
type ValidatorRegistry struct {
	mu         sync.RWMutex
	validators map[reflect.Type][]RequestValidator
}

// NewValidatorRegistry creates an empty registry
func NewValidatorRegistry() *ValidatorRegistry {
	return &ValidatorRegistry{validators: make(map[reflect.Type][]RequestValidator)}
}

// Register adds v for requests of type T
func Register[T any](reg *ValidatorRegistry, v Validator[T]) error {
	if v == nil {
		return errors.New("validation: validator cannot be nil")
	}
	t := reflect.TypeFor[T]()
	erased := func(ctx context.Context, req any) ([]ValidationError, error) {
		typed, ok := req.(T)
		if !ok {
			return nil, fmt.Errorf("validation: validator for %s got %T", t, req)
		}
		return v.Validate(ctx, typed)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.validators[t] = append(reg.validators[t], erased)
	return nil
}

// MustRegister is like Register but panics on error
func MustRegister[T any](reg *ValidatorRegistry, v Validator[T]) {
	if err := Register(reg, v); err != nil {
		panic(err)
	}
}

// For returns the validators registered for the dynamic type of req
func (r *ValidatorRegistry) For(req any) []RequestValidator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.validators[reflect.TypeOf(req)])
}

// Count returns the number of validators registered for requests of type T
func Count[T any](reg *ValidatorRegistry) int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.validators[reflect.TypeFor[T]()])
}
