// Package cache holds read-through caches in front of the authoritative stores.
package cache

import (
	"context"
	"time"

	"github.com/kerp/backend/internal/domain/factory"
)

// ActiveFactoriesKey is the cache key of the active factory list
const ActiveFactoriesKey = "kerp:factories:active"

// FactoryListCache stores the list of active factories.
// Get reports a miss with found == false and a nil error.
type FactoryListCache interface {
	Get(ctx context.Context) (factories []factory.Factory, found bool, err error)
	Set(ctx context.Context, factories []factory.Factory, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}
