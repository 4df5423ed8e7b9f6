package cqrs

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// RequestKey identifies a handler by request type and result type
type RequestKey struct {
	Request reflect.Type
	Result  reflect.Type
}

// String returns "Request -> Result"
func (k RequestKey) String() string {
	return typeName(k.Request) + " -> " + typeName(k.Result)
}

// KeyFor returns the key of handlers for requests of type Req producing R
func KeyFor[Req any, R any]() RequestKey {
	return RequestKey{Request: reflect.TypeFor[Req](), Result: reflect.TypeFor[R]()}
}

type registration struct {
	category Category
	handle   handlerFunc
}

// Registry holds handlers and behaviors. It is filled at startup and read concurrently afterwards.
type Registry struct {
	mu        sync.RWMutex
	handlers  map[RequestKey]registration
	behaviors map[Category][]Behavior
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		handlers:  make(map[RequestKey]registration),
		behaviors: make(map[Category][]Behavior),
	}
}

// RegisterCommandHandler registers the handler for commands of type C producing R
func RegisterCommandHandler[C Command, R any](reg *Registry, h CommandHandler[C, R]) error {
	if h == nil {
		return errors.New("cqrs: command handler cannot be nil")
	}
	return reg.add(KeyFor[C, R](), CategoryCommand, func(ctx context.Context, req Request) (Outcome, error) {
		res, err := h.Handle(ctx, req.(C))
		if err != nil {
			return nil, err
		}
		return res, nil
	})
}

// MustRegisterCommandHandler is like RegisterCommandHandler but panics on error
func MustRegisterCommandHandler[C Command, R any](reg *Registry, h CommandHandler[C, R]) {
	if err := RegisterCommandHandler(reg, h); err != nil {
		panic(err)
	}
}

// RegisterQueryHandler registers the handler for queries of type Q producing R
func RegisterQueryHandler[Q Query, R any](reg *Registry, h QueryHandler[Q, R]) error {
	if h == nil {
		return errors.New("cqrs: query handler cannot be nil")
	}
	return reg.add(KeyFor[Q, R](), CategoryQuery, func(ctx context.Context, req Request) (Outcome, error) {
		res, err := h.Handle(ctx, req.(Q))
		if err != nil {
			return nil, err
		}
		return res, nil
	})
}

// MustRegisterQueryHandler is like RegisterQueryHandler but panics on error
func MustRegisterQueryHandler[Q Query, R any](reg *Registry, h QueryHandler[Q, R]) {
	if err := RegisterQueryHandler(reg, h); err != nil {
		panic(err)
	}
}

func (r *Registry) add(key RequestKey, category Category, h handlerFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, key)
	}
	r.handlers[key] = registration{category: category, handle: h}
	return nil
}

// AddCommandBehaviors appends behaviors to the command pipeline in order
func (r *Registry) AddCommandBehaviors(behaviors ...Behavior) {
	r.addBehaviors(CategoryCommand, behaviors)
}

// AddQueryBehaviors appends behaviors to the query pipeline in order
func (r *Registry) AddQueryBehaviors(behaviors ...Behavior) {
	r.addBehaviors(CategoryQuery, behaviors)
}

func (r *Registry) addBehaviors(category Category, behaviors []Behavior) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range behaviors {
		if b == nil {
			panic("cqrs: behavior cannot be nil")
		}
		r.behaviors[category] = append(r.behaviors[category], b)
	}
}

// Behaviors returns a copy of the ordered behaviors for a category
func (r *Registry) Behaviors(category Category) []Behavior {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.behaviors[category])
}

// HasHandler reports whether a handler is registered for key
func (r *Registry) HasHandler(key RequestKey) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[key]
	return ok
}

// Verify returns one ConfigurationError per required key without a handler, joined
func (r *Registry) Verify(required ...RequestKey) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []error
	for _, key := range required {
		if _, ok := r.handlers[key]; !ok {
			errs = append(errs, &ConfigurationError{RequestType: key.Request, ResultType: key.Result, Err: ErrNoHandler})
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) resolve(key RequestKey) (registration, []Behavior, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.handlers[key]
	if !ok {
		return registration{}, nil, &ConfigurationError{RequestType: key.Request, ResultType: key.Result, Err: ErrNoHandler}
	}
	return reg, slices.Clone(r.behaviors[reg.category]), nil
}
