// Package identity exposes the signed-in user as seen by application services.
package identity

import "context"

// CurrentUser is the session view of the signed-in user. FactoryID and FactoryName are
// copied into the session at sign-in and may be stale relative to the user store.
type CurrentUser struct {
	UserID          string
	Username        string
	Email           string
	FactoryID       *int
	FactoryName     string
	IsAuthenticated bool
}

// HasFactory reports whether the session carries a factory assignment
func (u CurrentUser) HasFactory() bool {
	return u.FactoryID != nil
}

// Anonymous is the current user of unauthenticated requests
var Anonymous = CurrentUser{}

// CurrentUserAccessor reads the current user from request state
type CurrentUserAccessor interface {
	Current(ctx context.Context) CurrentUser
}

// CurrentUserFunc adapts a function to CurrentUserAccessor
type CurrentUserFunc func(ctx context.Context) CurrentUser

// Current calls f(ctx)
func (f CurrentUserFunc) Current(ctx context.Context) CurrentUser {
	return f(ctx)
}

// Static returns an accessor that always reports u
func Static(u CurrentUser) CurrentUserAccessor {
	return CurrentUserFunc(func(context.Context) CurrentUser { return u })
}
