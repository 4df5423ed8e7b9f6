package validation

import (
	"context"
	"slices"
	"time"

	appidentity "github.com/kerp/backend/internal/application/identity"
	"github.com/kerp/backend/internal/domain/factory"
	"github.com/kerp/backend/internal/domain/identity"
)

// Services are the collaborators available to stateful rules
type Services struct {
	CurrentUser appidentity.CurrentUserAccessor
	Users       identity.UserRepository
	Factories   factory.Repository
	Clock       func() time.Time
}

// Now returns the current time from Clock, or time.Now when unset
func (s Services) Now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

// Context carries one chain invocation: the item under validation, services,
// the accumulated errors and the stop flag.
type Context[T any] struct {
	ctx      context.Context
	Item     T
	Services Services
	errors   []ValidationError
	stopped  bool
}

// NewContext creates a validation context for item
func NewContext[T any](ctx context.Context, item T, services Services) *Context[T] {
	return &Context[T]{ctx: ctx, Item: item, Services: services}
}

// Context returns the request context used for cancellation
func (c *Context[T]) Context() context.Context {
	return c.ctx
}

// AddError appends a failure for path
func (c *Context[T]) AddError(path, message string) {
	c.errors = append(c.errors, ValidationError{PropertyPath: path, Message: message})
}

// Errors returns a copy of the accumulated errors
func (c *Context[T]) Errors() []ValidationError {
	return slices.Clone(c.errors)
}

// HasErrors reports whether any rule failed
func (c *Context[T]) HasErrors() bool {
	return len(c.errors) > 0
}

// Stop ends traversal after the current rule
func (c *Context[T]) Stop() {
	c.stopped = true
}

// Stopped reports whether a rule called Stop
func (c *Context[T]) Stopped() bool {
	return c.stopped
}
