package identity

import (
	"strings"

	"github.com/kerp/backend/internal/domain/shared"
)

// User is the authoritative record of an application user.
// FactoryID is the factory the user is currently assigned to; an administrator
// may change or clear it while the user still holds a session issued earlier.
type User struct {
	ID        string
	Username  string
	Email     string
	FactoryID *int
}

// NewUser creates a user with an optional factory assignment
func NewUser(id, username, email string, factoryID *int) (*User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	return &User{
		ID:        id,
		Username:  strings.TrimSpace(username),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		FactoryID: factoryID,
	}, nil
}

// HasFactory reports whether the user is assigned to a factory
func (u *User) HasFactory() bool {
	return u.FactoryID != nil
}

// AssignFactory assigns the user to a factory
func (u *User) AssignFactory(factoryID int) error {
	if factoryID <= 0 {
		return shared.NewDomainError("INVALID_FACTORY_ID", "Factory ID must be greater than 0")
	}
	u.FactoryID = &factoryID
	return nil
}

// UnassignFactory clears the factory assignment
func (u *User) UnassignFactory() {
	u.FactoryID = nil
}
