package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kerp/backend/internal/application/behavior"
	"github.com/kerp/backend/internal/application/cqrs"
	factoryapp "github.com/kerp/backend/internal/application/factory"
	massupdateapp "github.com/kerp/backend/internal/application/massupdate"
	"github.com/kerp/backend/internal/application/validation"
	"github.com/kerp/backend/internal/infrastructure/auth"
	"github.com/kerp/backend/internal/infrastructure/cache"
	"github.com/kerp/backend/internal/infrastructure/config"
	"github.com/kerp/backend/internal/infrastructure/logger"
	"github.com/kerp/backend/internal/infrastructure/persistence"
	"github.com/kerp/backend/internal/infrastructure/telemetry"
	"github.com/kerp/backend/internal/interfaces/http/handler"
	"github.com/kerp/backend/internal/interfaces/http/middleware"
	"github.com/kerp/backend/internal/interfaces/http/router"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx := context.Background()
	telemetryCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
	}

	// The log bridge is created first so the zap logger can tee into it
	logsCfg := telemetryCfg
	logsCfg.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, logsCfg, zap.NewNop())
	if err != nil {
		panic("Failed to initialize log export: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: cfg.Log.TimeFormat,
	}, loggerProvider.ZapCore(cfg.Telemetry.ServiceName, logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting KERP backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetryCfg, cfg.Telemetry.MetricsInterval, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.ProfilerEnabled,
		ServerAddress:     cfg.Telemetry.ProfilerServerAddress,
		ApplicationName:   cfg.Telemetry.ServiceName,
		BasicAuthUser:     cfg.Telemetry.ProfilerAuthUser,
		BasicAuthPassword: cfg.Telemetry.ProfilerAuthPassword,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:     cfg.Database.DBName,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(ctx); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// Repositories
	factoryRepo := persistence.NewGormFactoryRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	updateRepo := persistence.NewGormReceiptDateUpdateRepository(db.DB)
	unitOfWork := persistence.NewGormUnitOfWork(db.DB)

	if cfg.Database.SeedFactories {
		if err := persistence.SeedFactories(ctx, factoryRepo); err != nil {
			log.Fatal("Failed to seed factories", zap.Error(err))
		}
	}

	// Active factory list cache, Redis when enabled
	factoryCache, closeCache, err := cache.NewFactoryListCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	).Create()
	if err != nil {
		log.Fatal("Failed to create factory list cache", zap.Error(err))
	}
	factories := cache.NewCachingFactoryRepository(factoryRepo, factoryCache, cfg.Pipeline.FactoryCacheTTL, log)

	// Mediator and pipeline
	pipelineMetrics, err := telemetry.NewPipelineMetrics(meterProvider.Meter("kerp/pipeline"))
	if err != nil {
		log.Fatal("Failed to create pipeline metrics", zap.Error(err))
	}

	currentUser := auth.ClaimsCurrentUser{}
	services := validation.Services{
		CurrentUser: currentUser,
		Users:       userRepo,
		Factories:   factories,
	}

	registry := cqrs.NewRegistry()
	validators := validation.NewValidatorRegistry()
	behavior.Set{
		Logging:           behavior.NewLoggingBehavior(log, pipelineMetrics),
		Validation:        behavior.NewValidationBehavior(validators, log),
		Transaction:       behavior.NewTransactionBehavior(unitOfWork, log, cfg.Pipeline.TransactionTimeout),
		ExceptionHandling: behavior.NewExceptionHandlingBehavior(log),
	}.Register(registry)

	massupdateapp.Register(registry, validators, massupdateapp.Dependencies{
		Updates:     updateRepo,
		CurrentUser: currentUser,
		Services:    services,
		Logger:      log,
	})
	factoryapp.Register(registry, factories)

	if err := registry.Verify(slices.Concat(massupdateapp.Keys(), factoryapp.Keys())...); err != nil {
		log.Fatal("Incomplete handler registration", zap.Error(err))
	}
	mediator := cqrs.NewMediator(registry)

	// HTTP
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine, err := router.NewEngine(router.EngineConfig{
		Logger:           log,
		ServiceName:      cfg.Telemetry.ServiceName,
		TracingEnabled:   tracerProvider.IsEnabled(),
		Meter:            meterProvider.Meter("kerp/http"),
		ProfilingEnabled: profiler.IsEnabled(),
		MaxBodySize:      cfg.HTTP.MaxBodySize,
		RequestTimeout:   cfg.HTTP.RequestTimeout,
		TrustedProxies:   cfg.HTTP.TrustedProxies,
	})
	if err != nil {
		log.Fatal("Failed to create HTTP engine", zap.Error(err))
	}

	handler.NewSystemHandler(cfg.App.Name, version, map[string]handler.Pinger{
		"database": db,
	}).RegisterRoutes(engine)

	jwtService := auth.NewJWTService(cfg.JWT)
	router.NewRouter(engine,
		router.WithGroupMiddleware(
			middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
				JWTService: jwtService,
				Logger:     log,
			}),
			middleware.SpanAttributes(),
		),
	).
		Register(handler.NewPurchaseOrderHandler(mediator)).
		Register(handler.NewFactoryHandler(mediator)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := closeCache(); err != nil {
		log.Error("Error closing factory list cache", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	shutdownTelemetry(shutdownCtx, log, tracerProvider, meterProvider, loggerProvider)

	log.Info("Server exited gracefully")
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// shutdownTelemetry flushes exporters; the log provider goes last so earlier
// shutdown errors are still exported
func shutdownTelemetry(ctx context.Context, log *zap.Logger, providers ...shutdowner) {
	flushCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	for _, p := range providers {
		if err := p.Shutdown(flushCtx); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}
}
