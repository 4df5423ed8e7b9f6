package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kerp/backend/internal/infrastructure/logger"
	"github.com/kerp/backend/internal/interfaces/http/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// EngineConfig configures the engine-wide middleware
type EngineConfig struct {
	Logger         *zap.Logger
	ServiceName    string
	TracingEnabled bool
	TracerProvider trace.TracerProvider
	// Meter records HTTP metrics; nil disables them
	Meter            metric.Meter
	ProfilingEnabled bool
	MaxBodySize      int64
	RequestTimeout   time.Duration
	TrustedProxies   []string
}

// NewEngine creates a gin engine with the standard middleware in order:
// recovery, tracing, request id, metrics, profiling, request logging,
// security headers, body limit and request timeout.
func NewEngine(cfg EngineConfig) (*gin.Engine, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	metrics, err := middleware.HTTPMetrics(cfg.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP metrics: %w", err)
	}

	engine.Use(
		logger.Recovery(cfg.Logger),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName:    cfg.ServiceName,
			Enabled:        cfg.TracingEnabled,
			TracerProvider: cfg.TracerProvider,
		}),
		middleware.RequestID(),
		metrics,
		middleware.Profiling(cfg.ProfilingEnabled),
		logger.GinMiddleware(cfg.Logger),
		middleware.Secure(),
		middleware.BodyLimit(cfg.MaxBodySize),
		middleware.Timeout(cfg.RequestTimeout),
	)

	return engine, nil
}
