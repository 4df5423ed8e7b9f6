package behavior

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kerp/backend/internal/application/cqrs"
	"github.com/kerp/backend/internal/application/validation"
	"github.com/kerp/backend/internal/infrastructure/logger"
)

// ValidationBehavior runs every validator registered for the request
// concurrently and short-circuits with their combined errors
type ValidationBehavior struct {
	validators *validation.ValidatorRegistry
	logger     *zap.Logger
}

// NewValidationBehavior creates a ValidationBehavior
func NewValidationBehavior(validators *validation.ValidatorRegistry, l *zap.Logger) *ValidationBehavior {
	return &ValidationBehavior{validators: validators, logger: l}
}

func (b *ValidationBehavior) Handle(ctx context.Context, req cqrs.Request, next cqrs.Next) (cqrs.Outcome, error) {
	validators := b.validators.For(req)
	if len(validators) == 0 {
		return next(ctx)
	}

	results := make([][]validation.ValidationError, len(validators))
	g, gctx := errgroup.WithContext(ctx)
	for i, v := range validators {
		g.Go(func() error {
			errs, err := v(gctx, req)
			if err != nil {
				return err
			}
			results[i] = errs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", cqrs.RequestName(req), err)
	}

	var failures []cqrs.Error
	for _, errs := range results {
		for _, e := range errs {
			failures = append(failures, cqrs.Error{
				Code:        cqrs.CodeValidation,
				Description: e.Message,
				Severity:    cqrs.SeverityCritical,
				Target:      e.PropertyPath,
			})
		}
	}
	if len(failures) == 0 {
		return next(ctx)
	}

	logger.WithLogger(ctx, b.logger).Warn("Request validation failed",
		zap.String("request", cqrs.RequestName(req)),
		zap.Int("error_count", len(failures)),
	)
	return cqrs.Fail(failures...), nil
}
