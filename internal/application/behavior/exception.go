package behavior

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kerp/backend/internal/application/cqrs"
	"github.com/kerp/backend/internal/domain/shared"
	"github.com/kerp/backend/internal/infrastructure/logger"
)

// ServerErrorMessage is the only description callers see for unexpected faults
const ServerErrorMessage = "An unexpected error occurred. Please try again later or contact support."

// ExceptionHandlingBehavior turns errors and panics raised by the handler into
// failure results. It must be registered innermost.
type ExceptionHandlingBehavior struct {
	logger *zap.Logger
}

// NewExceptionHandlingBehavior creates an ExceptionHandlingBehavior
func NewExceptionHandlingBehavior(l *zap.Logger) *ExceptionHandlingBehavior {
	return &ExceptionHandlingBehavior{logger: l}
}

func (b *ExceptionHandlingBehavior) Handle(ctx context.Context, req cqrs.Request, next cqrs.Next) (out cqrs.Outcome, err error) {
	log := logger.WithLogger(ctx, b.logger).With(zap.String("request", cqrs.RequestName(req)))

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("Unhandled panic in request handler",
				zap.String("panic", fmt.Sprint(rec)),
				zap.Stack("stacktrace"),
			)
			out, err = serverError(), nil
		}
	}()

	out, err = next(ctx)
	if err == nil {
		return out, nil
	}

	var violation *shared.BusinessRuleViolation
	if errors.As(err, &violation) {
		log.Warn("Business rule violation", zap.String("message", violation.Message), zap.Error(err))
		return cqrs.Fail(cqrs.NewError(cqrs.CodeBusinessRuleViolation, violation.Message)), nil
	}

	if errors.Is(err, context.Canceled) {
		log.Warn("Request cancelled", zap.Error(err))
	} else {
		log.Error("Unhandled error in request handler", zap.Error(err))
	}
	return serverError(), nil
}

func serverError() cqrs.Outcome {
	return cqrs.Fail(cqrs.NewError(cqrs.CodeServerError, ServerErrorMessage))
}
