// Package validation implements chain-of-responsibility request validation:
// field rules, user/factory rules backed by services, a fluent builder and
// two-tier batch validation.
package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyChain is returned by Build when no rules were added
var ErrEmptyChain = errors.New("validation: chain has no rules")

// ValidationError is a single field-level failure
type ValidationError struct {
	PropertyPath string
	Message      string
}

func (e ValidationError) String() string {
	return e.PropertyPath + ": " + e.Message
}

// RowPath returns the path of field within row i of a batch
func RowPath(i int, field string) string {
	if field == "" {
		return fmt.Sprintf("Row[%d]", i)
	}
	return fmt.Sprintf("Row[%d].%s", i, field)
}

// Summary joins messages for logging
func Summary(errs []ValidationError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.String()
	}
	return strings.Join(parts, "; ")
}
