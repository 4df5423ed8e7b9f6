package massupdate

import (
	"go.uber.org/zap"

	"github.com/kerp/backend/internal/application/cqrs"
	appidentity "github.com/kerp/backend/internal/application/identity"
	"github.com/kerp/backend/internal/application/validation"
	"github.com/kerp/backend/internal/domain/massupdate"
)

// Dependencies are the collaborators of the mass update handlers and validators
type Dependencies struct {
	Updates     massupdate.Repository
	CurrentUser appidentity.CurrentUserAccessor
	Services    validation.Services
	Logger      *zap.Logger
}

// Register adds the mass update handlers and validators. It panics on a
// duplicate registration.
func Register(reg *cqrs.Registry, validators *validation.ValidatorRegistry, deps Dependencies) {
	cqrs.MustRegisterCommandHandler[UpdateReceiptDateCommand, cqrs.Unit](reg,
		NewUpdateReceiptDateHandler(deps.Updates, deps.CurrentUser, deps.Logger))
	cqrs.MustRegisterCommandHandler[UpdateReceiptDateBatchCommand, BatchResult](reg,
		NewUpdateReceiptDateBatchHandler(deps.Updates, deps.CurrentUser, deps.Logger))

	validation.MustRegister(validators, NewUpdateReceiptDateValidator(deps.Services))
	validation.MustRegister(validators, NewUpdateReceiptDateBatchValidator(deps.Services))
}

// Keys lists the request keys Register provides, for Registry.Verify
func Keys() []cqrs.RequestKey {
	return []cqrs.RequestKey{
		cqrs.KeyFor[UpdateReceiptDateCommand, cqrs.Unit](),
		cqrs.KeyFor[UpdateReceiptDateBatchCommand, BatchResult](),
	}
}
