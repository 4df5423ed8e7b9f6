package identity

import "context"

// UserRepository provides read access to the authoritative user store
type UserRepository interface {
	// FindByID finds a user by ID; returns shared.ErrNotFound if absent
	FindByID(ctx context.Context, id string) (*User, error)
}
