package auth

import (
	"context"

	"github.com/kerp/backend/internal/application/identity"
)

type claimsContextKey struct{}

// WithClaims returns a context carrying validated claims
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext returns the claims stored by WithClaims
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*Claims)
	return claims, ok && claims != nil
}

// CurrentUser converts the claims to the application's session view
func (c *Claims) CurrentUser() identity.CurrentUser {
	var factoryID *int
	if c.FactoryID != nil {
		id := *c.FactoryID
		factoryID = &id
	}
	return identity.CurrentUser{
		UserID:          c.UserID,
		Username:        c.Username,
		Email:           c.Email,
		FactoryID:       factoryID,
		FactoryName:     c.FactoryName,
		IsAuthenticated: true,
	}
}

// ClaimsCurrentUser implements identity.CurrentUserAccessor over request claims.
// Requests without claims are anonymous.
type ClaimsCurrentUser struct{}

var _ identity.CurrentUserAccessor = ClaimsCurrentUser{}

// Current returns the user described by the claims in ctx
func (ClaimsCurrentUser) Current(ctx context.Context) identity.CurrentUser {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return identity.Anonymous
	}
	return claims.CurrentUser()
}
