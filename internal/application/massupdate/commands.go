// Package massupdate handles purchase order mass update commands entered by factory users.
package massupdate

import (
	"time"

	"github.com/kerp/backend/internal/domain/massupdate"
)

// UpdateReceiptDateCommand records a new receipt date for one purchase order line
type UpdateReceiptDateCommand struct {
	PurchaseOrderNumber string
	LineNumber          int
	Sequence            int
	ReceiptDate         *time.Time
	DateType            massupdate.DateType
}

// CommandName returns the command name
func (UpdateReceiptDateCommand) CommandName() string { return "UpdateReceiptDate" }

// RequiresFactoryValidation marks the command as factory scoped
func (UpdateReceiptDateCommand) RequiresFactoryValidation() {}

// ReceiptDateItem is one row of a batch receipt date update
type ReceiptDateItem struct {
	PurchaseOrderNumber string
	LineNumber          int
	Sequence            int
	ReceiptDate         *time.Time
}

// UpdateReceiptDateBatchCommand records receipt dates for many lines. DateType
// applies to every row.
type UpdateReceiptDateBatchCommand struct {
	Items    []ReceiptDateItem
	DateType massupdate.DateType
}

// CommandName returns the command name
func (UpdateReceiptDateBatchCommand) CommandName() string { return "UpdateReceiptDateBatch" }

// RequiresFactoryValidation marks the command as factory scoped
func (UpdateReceiptDateBatchCommand) RequiresFactoryValidation() {}

// BatchResult reports how many rows a batch stored
type BatchResult struct {
	Saved int
}
