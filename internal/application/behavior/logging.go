package behavior

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/kerp/backend/internal/application/cqrs"
	"github.com/kerp/backend/internal/infrastructure/logger"
	"github.com/kerp/backend/internal/infrastructure/telemetry"
)

// LoggingBehavior logs each request with its outcome and duration, and traces it.
// Errors and panics are logged and passed on unchanged.
type LoggingBehavior struct {
	logger  *zap.Logger
	metrics *telemetry.PipelineMetrics
}

// NewLoggingBehavior creates a LoggingBehavior. metrics may be nil.
func NewLoggingBehavior(l *zap.Logger, metrics *telemetry.PipelineMetrics) *LoggingBehavior {
	return &LoggingBehavior{logger: l, metrics: metrics}
}

func (b *LoggingBehavior) Handle(ctx context.Context, req cqrs.Request, next cqrs.Next) (out cqrs.Outcome, err error) {
	name := cqrs.RequestName(req)
	category := cqrs.CategoryOf(req).String()

	ctx, span := telemetry.StartSpan(ctx, telemetry.RequestSpanName(category, name),
		telemetry.WithAttributes(
			attribute.String("cqrs.request", name),
			attribute.String("cqrs.category", category),
		),
	)
	defer span.End()

	log := logger.WithLogger(ctx, b.logger).With(
		zap.String("request", name),
		zap.String("category", category),
	)
	start := time.Now()
	log.Info("Handling request")

	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		elapsed := time.Since(start)
		log.Error("Request panicked", zap.Any("panic", rec), zap.Duration("elapsed", elapsed))
		telemetry.RecordFailure(span, "panic")
		b.metrics.Record(ctx, category, name, telemetry.OutcomeError, elapsed)
		panic(rec)
	}()

	telemetry.WithOperationLabel(ctx, name, func(ctx context.Context) {
		out, err = next(ctx)
	})
	elapsed := time.Since(start)

	switch {
	case err != nil:
		log.Error("Request failed with error", zap.Error(err), zap.Duration("elapsed", elapsed))
		telemetry.RecordError(span, err)
		b.metrics.Record(ctx, category, name, telemetry.OutcomeError, elapsed)
	case out != nil && !out.IsSuccess():
		codes := cqrs.ErrorCodes(out)
		log.Info("Request completed with failure", zap.Strings("error_codes", codes), zap.Duration("elapsed", elapsed))
		telemetry.RecordFailure(span, strings.Join(codes, ","))
		b.metrics.Record(ctx, category, name, telemetry.OutcomeFailure, elapsed)
	default:
		log.Info("Request completed", zap.Duration("elapsed", elapsed))
		telemetry.SetOK(span)
		b.metrics.Record(ctx, category, name, telemetry.OutcomeSuccess, elapsed)
	}
	return out, err
}
