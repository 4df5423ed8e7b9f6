package validation

import (
	"errors"
	"fmt"

	"github.com/kerp/backend/internal/domain/shared"
)

// FactoryField is the property path of factory rule errors
const FactoryField = "Factory"

// ErrMissingService is returned when a rule runs without a collaborator it needs
var ErrMissingService = errors.New("validation: required service not configured")

// UserFactoryRule compares the session's factory with the one currently assigned
// to the user in the user store. Every failure stops the chain, since later
// factory rules depend on a confirmed factory id.
type UserFactoryRule[T any] struct {
	Field string
}

// UserFactory creates a UserFactoryRule
func UserFactory[T any]() *UserFactoryRule[T] {
	return &UserFactoryRule[T]{Field: FactoryField}
}

func (r *UserFactoryRule[T]) Validate(vc *Context[T]) error {
	s := vc.Services
	if s.CurrentUser == nil || s.Users == nil {
		return fmt.Errorf("%w: user factory rule needs CurrentUser and Users", ErrMissingService)
	}

	fail := func(msg string) error {
		vc.AddError(r.Field, msg)
		vc.Stop()
		return nil
	}

	session := s.CurrentUser.Current(vc.Context())
	if session.FactoryID == nil {
		return fail("No factory is assigned to your session. Please sign in again.")
	}
	if session.UserID == "" {
		return fail("Your account could not be verified. Please sign in again.")
	}

	user, err := s.Users.FindByID(vc.Context(), session.UserID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("load user %s: %w", session.UserID, err)
	}
	if user == nil {
		return fail("Your account was not found. Please contact an administrator.")
	}
	if user.FactoryID == nil {
		return fail("Your account has no factory assigned. Please contact an administrator and sign in again.")
	}
	if *user.FactoryID != *session.FactoryID {
		return fail(fmt.Sprintf("Your factory was changed from %s to another one. Please sign in again to continue.", factoryLabel(session.FactoryName, *session.FactoryID)))
	}
	return nil
}

// FactoryActiveRule requires the session's factory to exist and be active
type FactoryActiveRule[T any] struct {
	Field string
}

// FactoryActive creates a FactoryActiveRule
func FactoryActive[T any]() *FactoryActiveRule[T] {
	return &FactoryActiveRule[T]{Field: FactoryField}
}

func (r *FactoryActiveRule[T]) Validate(vc *Context[T]) error {
	s := vc.Services
	if s.CurrentUser == nil || s.Factories == nil {
		return fmt.Errorf("%w: factory active rule needs CurrentUser and Factories", ErrMissingService)
	}

	session := s.CurrentUser.Current(vc.Context())
	if session.FactoryID == nil {
		vc.AddError(r.Field, "No factory is assigned to your session. Please sign in again.")
		vc.Stop()
		return nil
	}

	active, err := s.Factories.ExistsAndIsActive(vc.Context(), *session.FactoryID)
	if err != nil {
		return fmt.Errorf("check factory %d: %w", *session.FactoryID, err)
	}
	if !active {
		vc.AddError(r.Field, fmt.Sprintf("%s is inactive or does not exist. Please contact an administrator.", factoryLabel(session.FactoryName, *session.FactoryID)))
	}
	return nil
}

func factoryLabel(name string, id int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("Factory %d", id)
}
