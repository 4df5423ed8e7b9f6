package behavior

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kerp/backend/internal/application/cqrs"
	"github.com/kerp/backend/internal/infrastructure/logger"
)

// TransactionBehavior wraps the rest of the pipeline in a unit of work. It
// commits only successful results and rolls back failures, errors and panics.
type TransactionBehavior struct {
	uow     UnitOfWork
	logger  *zap.Logger
	timeout time.Duration
}

// NewTransactionBehavior creates a TransactionBehavior. A zero timeout leaves
// the request deadline unchanged.
func NewTransactionBehavior(uow UnitOfWork, l *zap.Logger, timeout time.Duration) *TransactionBehavior {
	return &TransactionBehavior{uow: uow, logger: l, timeout: timeout}
}

func (b *TransactionBehavior) Handle(ctx context.Context, req cqrs.Request, next cqrs.Next) (out cqrs.Outcome, err error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	txCtx, tx, err := b.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Release()

	// rollback and commit must still run when the request was cancelled
	cleanupCtx := context.WithoutCancel(ctx)
	name := cqrs.RequestName(req)

	defer func() {
		if rec := recover(); rec != nil {
			b.rollback(cleanupCtx, tx, name)
			panic(rec)
		}
	}()

	out, err = next(txCtx)
	if err != nil {
		b.rollback(cleanupCtx, tx, name)
		return nil, err
	}
	if out == nil || !out.IsSuccess() {
		b.rollback(cleanupCtx, tx, name)
		return out, nil
	}

	if err := tx.Commit(cleanupCtx); err != nil {
		return nil, fmt.Errorf("commit transaction for %s: %w", name, err)
	}
	return out, nil
}

func (b *TransactionBehavior) rollback(ctx context.Context, tx Transaction, name string) {
	if err := tx.Rollback(ctx); err != nil {
		logger.WithLogger(ctx, b.logger).Error("Transaction rollback failed",
			zap.String("request", name),
			zap.Error(err),
		)
	}
}
