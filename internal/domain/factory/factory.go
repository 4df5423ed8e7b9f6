// Package factory contains the Factory aggregate: a production site a user works in.
package factory

import (
	"context"
	"errors"
	"strings"
)

// Factory validation errors
var (
	ErrInvalidFactoryID   = errors.New("factory ID must be greater than 0")
	ErrEmptyFactoryName   = errors.New("factory name cannot be empty")
	ErrFactoryNameTooLong = errors.New("factory name cannot exceed 50 characters")
)

// MaxNameLength is the maximum length of a factory name
const MaxNameLength = 50

// Factory is a production site. ID is a business identifier (e.g. 241, 260, 276),
// not a generated key.
type Factory struct {
	ID       int
	Name     string
	IsActive bool
}

// NewFactory creates a factory with an explicit business ID
func NewFactory(id int, name string, isActive bool) (*Factory, error) {
	if id <= 0 {
		return nil, ErrInvalidFactoryID
	}
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Factory{
		ID:       id,
		Name:     name,
		IsActive: isActive,
	}, nil
}

// Rename changes the factory name
func (f *Factory) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	f.Name = name
	return nil
}

// Activate marks the factory as active
func (f *Factory) Activate() {
	f.IsActive = true
}

// Deactivate marks the factory as inactive
func (f *Factory) Deactivate() {
	f.IsActive = false
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyFactoryName
	}
	if len([]rune(name)) > MaxNameLength {
		return ErrFactoryNameTooLong
	}
	return nil
}

// Repository provides read access to the authoritative factory store
type Repository interface {
	// FindByID returns the factory or shared.ErrNotFound
	FindByID(ctx context.Context, id int) (*Factory, error)
	// FindActive returns all active factories ordered by name
	FindActive(ctx context.Context) ([]Factory, error)
	// ExistsAndIsActive reports whether the factory exists and is active
	ExistsAndIsActive(ctx context.Context, id int) (bool, error)
}
