package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/kerp/backend/internal/infrastructure/telemetry"
)

// Profiling labels profile samples with the matched route pattern, which keeps
// cardinality bounded. Unmatched requests are not labeled.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		telemetry.WithRouteLabel(c.Request.Context(), c.FullPath(), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
