package massupdate

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kerp/backend/internal/application/cqrs"
	appidentity "github.com/kerp/backend/internal/application/identity"
	"github.com/kerp/backend/internal/domain/massupdate"
	"github.com/kerp/backend/internal/domain/shared"
	"github.com/kerp/backend/internal/infrastructure/logger"
)

// errNoSessionFactory is returned when a handler runs without a factory in the
// session. Validation rejects such requests first, so reaching it means the
// handler was registered without its validator.
var errNoSessionFactory = shared.NewBusinessRuleViolation("No factory is assigned to your session. Please sign in again.")

// UpdateReceiptDateHandler stores a single receipt date update
type UpdateReceiptDateHandler struct {
	updates     massupdate.Repository
	currentUser appidentity.CurrentUserAccessor
	logger      *zap.Logger
}

// NewUpdateReceiptDateHandler creates a new UpdateReceiptDateHandler
func NewUpdateReceiptDateHandler(
	updates massupdate.Repository,
	currentUser appidentity.CurrentUserAccessor,
	l *zap.Logger,
) *UpdateReceiptDateHandler {
	return &UpdateReceiptDateHandler{
		updates:     updates,
		currentUser: currentUser,
		logger:      l,
	}
}

// Handle stamps the update with the session user and factory and adds it to the unit of work
func (h *UpdateReceiptDateHandler) Handle(ctx context.Context, cmd UpdateReceiptDateCommand) (cqrs.Result[cqrs.Unit], error) {
	user := h.currentUser.Current(ctx)
	if !user.HasFactory() {
		return cqrs.Result[cqrs.Unit]{}, errNoSessionFactory
	}

	update := massupdate.NewReceiptDateUpdate(massupdate.NewReceiptDateUpdateInput{
		PurchaseOrderNumber: cmd.PurchaseOrderNumber,
		LineNumber:          cmd.LineNumber,
		Sequence:            cmd.Sequence,
		ReceiptDate:         cmd.ReceiptDate,
		DateType:            cmd.DateType,
		UserID:              user.UserID,
		FactoryID:           *user.FactoryID,
	})
	if err := h.updates.Add(ctx, update); err != nil {
		return cqrs.Result[cqrs.Unit]{}, fmt.Errorf("add receipt date update for %s/%d: %w", cmd.PurchaseOrderNumber, cmd.LineNumber, err)
	}

	logger.WithLogger(ctx, h.logger).Debug("Receipt date update added",
		zap.String("purchase_order", cmd.PurchaseOrderNumber),
		zap.Int("line", cmd.LineNumber),
		zap.Int("sequence", cmd.Sequence),
		zap.Stringer("date_type", cmd.DateType),
	)
	return cqrs.Ok(), nil
}

// UpdateReceiptDateBatchHandler stores every row of a batch in one unit of work
type UpdateReceiptDateBatchHandler struct {
	updates     massupdate.Repository
	currentUser appidentity.CurrentUserAccessor
	logger      *zap.Logger
}

// NewUpdateReceiptDateBatchHandler creates a new UpdateReceiptDateBatchHandler
func NewUpdateReceiptDateBatchHandler(
	updates massupdate.Repository,
	currentUser appidentity.CurrentUserAccessor,
	l *zap.Logger,
) *UpdateReceiptDateBatchHandler {
	return &UpdateReceiptDateBatchHandler{
		updates:     updates,
		currentUser: currentUser,
		logger:      l,
	}
}

// Handle creates one update per row using the batch date type
func (h *UpdateReceiptDateBatchHandler) Handle(ctx context.Context, cmd UpdateReceiptDateBatchCommand) (cqrs.Result[BatchResult], error) {
	user := h.currentUser.Current(ctx)
	if !user.HasFactory() {
		return cqrs.Result[BatchResult]{}, errNoSessionFactory
	}

	updates := make([]*massupdate.ReceiptDateUpdate, 0, len(cmd.Items))
	for _, item := range cmd.Items {
		updates = append(updates, massupdate.NewReceiptDateUpdate(massupdate.NewReceiptDateUpdateInput{
			PurchaseOrderNumber: item.PurchaseOrderNumber,
			LineNumber:          item.LineNumber,
			Sequence:            item.Sequence,
			ReceiptDate:         item.ReceiptDate,
			DateType:            cmd.DateType,
			UserID:              user.UserID,
			FactoryID:           *user.FactoryID,
		}))
	}
	if len(updates) > 0 {
		if err := h.updates.Add(ctx, updates...); err != nil {
			return cqrs.Result[BatchResult]{}, fmt.Errorf("add %d receipt date updates: %w", len(updates), err)
		}
	}

	logger.WithLogger(ctx, h.logger).Info("Receipt date batch added",
		zap.Int("rows", len(updates)),
		zap.Stringer("date_type", cmd.DateType),
	)
	return cqrs.Success(BatchResult{Saved: len(updates)}), nil
}
