// Package massupdate contains the purchase order mass update records entered by factory users.
package massupdate

import (
	"context"
	"fmt"
	"time"
)

// DateType tells whether the entered receipt date was confirmed by the supplier or changed
type DateType int

const (
	DateTypeConfirmed DateType = 1
	DateTypeChanged   DateType = 2
)

// IsValid reports whether d is a known date type
func (d DateType) IsValid() bool {
	return d == DateTypeConfirmed || d == DateTypeChanged
}

// String returns the date type name
func (d DateType) String() string {
	switch d {
	case DateTypeConfirmed:
		return "Confirmed"
	case DateTypeChanged:
		return "Changed"
	default:
		return fmt.Sprintf("DateType(%d)", int(d))
	}
}

// PurchaseOrderNumberLength is the fixed length of a purchase order number
const PurchaseOrderNumberLength = 9

// ReceiptDateUpdate is a single receipt date change for one purchase order line.
// Records are picked up later by an export job which sets IsGenerated.
type ReceiptDateUpdate struct {
	ID                  int64
	PurchaseOrderNumber string
	LineNumber          int
	Sequence            int
	ReceiptDate         *time.Time
	DateType            DateType
	UserID              string
	FactoryID           int
	AddedDate           time.Time
	IsGenerated         bool
	GeneratedDate       *time.Time
}

// NewReceiptDateUpdateInput holds the fields of a new receipt date update
type NewReceiptDateUpdateInput struct {
	PurchaseOrderNumber string
	LineNumber          int
	Sequence            int
	ReceiptDate         *time.Time
	DateType            DateType
	UserID              string
	FactoryID           int
}

// NewReceiptDateUpdate creates a pending receipt date update.
// Field rules are enforced by the application layer validators.
func NewReceiptDateUpdate(in NewReceiptDateUpdateInput) *ReceiptDateUpdate {
	return &ReceiptDateUpdate{
		PurchaseOrderNumber: in.PurchaseOrderNumber,
		LineNumber:          in.LineNumber,
		Sequence:            in.Sequence,
		ReceiptDate:         in.ReceiptDate,
		DateType:            in.DateType,
		UserID:              in.UserID,
		FactoryID:           in.FactoryID,
		AddedDate:           time.Now().UTC(),
	}
}

// MarkGenerated records that the update was exported
func (u *ReceiptDateUpdate) MarkGenerated(at time.Time) {
	u.IsGenerated = true
	u.GeneratedDate = &at
}

// Repository persists receipt date updates
type Repository interface {
	// Add stores the updates in the unit of work carried by ctx
	Add(ctx context.Context, updates ...*ReceiptDateUpdate) error
}
