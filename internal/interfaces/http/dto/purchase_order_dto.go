package dto

import (
	"fmt"
	"time"

	massupdateapp "github.com/kerp/backend/internal/application/massupdate"
	"github.com/kerp/backend/internal/domain/massupdate"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// MaxBatchItems caps the rows accepted in one batch request
const MaxBatchItems = 500

// UpdateReceiptDateRequest is the body of PUT /purchase-orders/receipt-date.
// Business rules are checked by the command pipeline, binding only checks shape.
type UpdateReceiptDateRequest struct {
	PurchaseOrderNumber string `json:"purchase_order_number"`
	LineNumber          int    `json:"line_number"`
	Sequence            int    `json:"sequence"`
	ReceiptDate         string `json:"receipt_date" binding:"omitempty,datetime=2006-01-02"`
	DateType            int    `json:"date_type"`
}

// ToCommand converts the request to its command
func (r UpdateReceiptDateRequest) ToCommand() (massupdateapp.UpdateReceiptDateCommand, error) {
	date, err := parseDate(r.ReceiptDate)
	if err != nil {
		return massupdateapp.UpdateReceiptDateCommand{}, err
	}
	return massupdateapp.UpdateReceiptDateCommand{
		PurchaseOrderNumber: r.PurchaseOrderNumber,
		LineNumber:          r.LineNumber,
		Sequence:            r.Sequence,
		ReceiptDate:         date,
		DateType:            massupdate.DateType(r.DateType),
	}, nil
}

// ReceiptDateItemRequest is one row of a batch request
type ReceiptDateItemRequest struct {
	PurchaseOrderNumber string `json:"purchase_order_number"`
	LineNumber          int    `json:"line_number"`
	Sequence            int    `json:"sequence"`
	ReceiptDate         string `json:"receipt_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateReceiptDateBatchRequest is the body of PUT /purchase-orders/receipt-dates/batch
type UpdateReceiptDateBatchRequest struct {
	Items    []ReceiptDateItemRequest `json:"items" binding:"max=500,dive"`
	DateType int                      `json:"date_type"`
}

// ToCommand converts the request to its command
func (r UpdateReceiptDateBatchRequest) ToCommand() (massupdateapp.UpdateReceiptDateBatchCommand, error) {
	items := make([]massupdateapp.ReceiptDateItem, 0, len(r.Items))
	for i, item := range r.Items {
		date, err := parseDate(item.ReceiptDate)
		if err != nil {
			return massupdateapp.UpdateReceiptDateBatchCommand{}, fmt.Errorf("items[%d]: %w", i, err)
		}
		items = append(items, massupdateapp.ReceiptDateItem{
			PurchaseOrderNumber: item.PurchaseOrderNumber,
			LineNumber:          item.LineNumber,
			Sequence:            item.Sequence,
			ReceiptDate:         date,
		})
	}
	return massupdateapp.UpdateReceiptDateBatchCommand{
		Items:    items,
		DateType: massupdate.DateType(r.DateType),
	}, nil
}

// BatchResultResponse reports the rows stored by a batch
type BatchResultResponse struct {
	Saved int `json:"saved"`
}

// parseDate returns nil for an empty string
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("receipt_date must use the %s format", DateLayout)
	}
	return &t, nil
}
