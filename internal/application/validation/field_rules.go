package validation

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// NotEmptyRule fails when a string field is empty or whitespace
type NotEmptyRule[T any] struct {
	Field string
	Get   func(T) string
}

// NotEmpty creates a NotEmptyRule
func NotEmpty[T any](field string, get func(T) string) *NotEmptyRule[T] {
	return &NotEmptyRule[T]{Field: field, Get: get}
}

func (r *NotEmptyRule[T]) Validate(vc *Context[T]) error {
	if strings.TrimSpace(r.Get(vc.Item)) == "" {
		vc.AddError(r.Field, fmt.Sprintf("%s is required.", r.Field))
	}
	return nil
}

// NotNullRule fails when an optional field is absent
type NotNullRule[T any, V any] struct {
	Field string
	Get   func(T) *V
}

// NotNull creates a NotNullRule
func NotNull[T any, V any](field string, get func(T) *V) *NotNullRule[T, V] {
	return &NotNullRule[T, V]{Field: field, Get: get}
}

func (r *NotNullRule[T, V]) Validate(vc *Context[T]) error {
	if r.Get(vc.Item) == nil {
		vc.AddError(r.Field, fmt.Sprintf("A value for %s is required.", r.Field))
	}
	return nil
}

// StringLengthRule requires a string field to have exactly Length characters.
// Empty values are left to NotEmptyRule.
type StringLengthRule[T any] struct {
	Field  string
	Get    func(T) string
	Length int
}

// StringLength creates a StringLengthRule
func StringLength[T any](field string, get func(T) string, length int) *StringLengthRule[T] {
	return &StringLengthRule[T]{Field: field, Get: get, Length: length}
}

func (r *StringLengthRule[T]) Validate(vc *Context[T]) error {
	v := r.Get(vc.Item)
	if v == "" {
		return nil
	}
	if utf8.RuneCountInString(v) != r.Length {
		vc.AddError(r.Field, fmt.Sprintf("%s must be exactly %d characters long.", r.Field, r.Length))
	}
	return nil
}

// MinValueRule requires an ordered field to be at least Min
type MinValueRule[T any, V cmp.Ordered] struct {
	Field string
	Get   func(T) V
	Min   V
}

// MinValue creates a MinValueRule
func MinValue[T any, V cmp.Ordered](field string, get func(T) V, minimum V) *MinValueRule[T, V] {
	return &MinValueRule[T, V]{Field: field, Get: get, Min: minimum}
}

func (r *MinValueRule[T, V]) Validate(vc *Context[T]) error {
	if cmp.Less(r.Get(vc.Item), r.Min) {
		vc.AddError(r.Field, fmt.Sprintf("%s must be greater than or equal to %v.", r.Field, r.Min))
	}
	return nil
}

// FutureDateRule fails when a date lies before today. Only calendar dates are compared
// and an absent date passes.
type FutureDateRule[T any] struct {
	Field string
	Get   func(T) *time.Time
}

// FutureDate creates a FutureDateRule
func FutureDate[T any](field string, get func(T) *time.Time) *FutureDateRule[T] {
	return &FutureDateRule[T]{Field: field, Get: get}
}

func (r *FutureDateRule[T]) Validate(vc *Context[T]) error {
	d := r.Get(vc.Item)
	if d == nil {
		return nil
	}
	if dateOf(*d).Before(dateOf(vc.Services.Now())) {
		vc.AddError(r.Field, fmt.Sprintf("%s cannot be in the past.", r.Field))
	}
	return nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InMemoryExistenceRule requires a key to belong to a fixed set
type InMemoryExistenceRule[T any] struct {
	Field   string
	Get     func(T) string
	Allowed []string
}

// InMemoryExistence creates an InMemoryExistenceRule over a copy of allowed
func InMemoryExistence[T any](field string, get func(T) string, allowed []string) *InMemoryExistenceRule[T] {
	return &InMemoryExistenceRule[T]{Field: field, Get: get, Allowed: slices.Clone(allowed)}
}

func (r *InMemoryExistenceRule[T]) Validate(vc *Context[T]) error {
	key := r.Get(vc.Item)
	if !slices.Contains(r.Allowed, key) {
		vc.AddError(r.Field, fmt.Sprintf("Value '%s' for %s does not exist.", key, r.Field))
	}
	return nil
}
