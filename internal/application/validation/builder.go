package validation

import (
	"time"

	"github.com/kerp/backend/internal/application/cqrs"
)

// ChainBuilder composes rules in call order
type ChainBuilder[T any] struct {
	rules []Rule[T]
}

// NewChainBuilder creates an empty builder
func NewChainBuilder[T any]() *ChainBuilder[T] {
	return &ChainBuilder[T]{}
}

// With appends rules
func (b *ChainBuilder[T]) With(rules ...Rule[T]) *ChainBuilder[T] {
	b.rules = append(b.rules, rules...)
	return b
}

// WithNotEmpty appends a NotEmptyRule
func (b *ChainBuilder[T]) WithNotEmpty(field string, get func(T) string) *ChainBuilder[T] {
	return b.With(NotEmpty(field, get))
}

// WithStringLength appends a StringLengthRule
func (b *ChainBuilder[T]) WithStringLength(field string, get func(T) string, length int) *ChainBuilder[T] {
	return b.With(StringLength(field, get, length))
}

// WithNotNullTime appends a NotNullRule for an optional time field
func (b *ChainBuilder[T]) WithNotNullTime(field string, get func(T) *time.Time) *ChainBuilder[T] {
	return b.With(NotNull(field, get))
}

// WithMinInt appends a MinValueRule for an int field
func (b *ChainBuilder[T]) WithMinInt(field string, get func(T) int, minimum int) *ChainBuilder[T] {
	return b.With(MinValue(field, get, minimum))
}

// WithFutureDate appends a FutureDateRule
func (b *ChainBuilder[T]) WithFutureDate(field string, get func(T) *time.Time) *ChainBuilder[T] {
	return b.With(FutureDate(field, get))
}

// WithInMemoryExistence appends an InMemoryExistenceRule
func (b *ChainBuilder[T]) WithInMemoryExistence(field string, get func(T) string, allowed []string) *ChainBuilder[T] {
	return b.With(InMemoryExistence(field, get, allowed))
}

// WithUserFactory appends a UserFactoryRule
func (b *ChainBuilder[T]) WithUserFactory() *ChainBuilder[T] {
	return b.With(UserFactory[T]())
}

// WithFactoryActive appends a FactoryActiveRule
func (b *ChainBuilder[T]) WithFactoryActive() *ChainBuilder[T] {
	return b.With(FactoryActive[T]())
}

// WithFactoryValidationIfRequired appends UserFactoryRule then FactoryActiveRule
// when T carries the cqrs.RequiresFactoryValidation marker. FactoryActiveRule
// relies on the factory id confirmed by UserFactoryRule.
func (b *ChainBuilder[T]) WithFactoryValidationIfRequired() *ChainBuilder[T] {
	if !cqrs.NeedsFactoryValidation[T]() {
		return b
	}
	return b.WithUserFactory().WithFactoryActive()
}

// Build returns the immutable chain
func (b *ChainBuilder[T]) Build() (*Chain[T], error) {
	if len(b.rules) == 0 {
		return nil, ErrEmptyChain
	}
	return newChain(b.rules), nil
}

// MustBuild is like Build but panics on error
func (b *ChainBuilder[T]) MustBuild() *Chain[T] {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}
