// Package behavior provides the standard mediator pipeline behaviors.
package behavior

import (
	"context"

	"github.com/kerp/backend/internal/application/cqrs"
)

// Transaction is a unit of work begun for a single request.
// Release must be safe to call after Commit or Rollback and more than once.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Release()
}

// UnitOfWork begins transactions. The returned context carries the transaction
// so repositories called with it take part in the unit of work.
type UnitOfWork interface {
	Begin(ctx context.Context) (context.Context, Transaction, error)
}

// Set is the standard behavior set
type Set struct {
	Logging           *LoggingBehavior
	Validation        *ValidationBehavior
	Transaction       *TransactionBehavior
	ExceptionHandling *ExceptionHandlingBehavior
}

// Register installs the behaviors in their fixed order. Commands run
// Logging, Validation, Transaction, ExceptionHandling; queries run Logging, ExceptionHandling.
func (s Set) Register(reg *cqrs.Registry) {
	reg.AddCommandBehaviors(s.Logging, s.Validation, s.Transaction, s.ExceptionHandling)
	reg.AddQueryBehaviors(s.Logging, s.ExceptionHandling)
}
