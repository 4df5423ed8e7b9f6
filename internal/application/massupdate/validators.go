package massupdate

import (
	"fmt"
	"time"

	"github.com/kerp/backend/internal/application/validation"
	"github.com/kerp/backend/internal/domain/massupdate"
)

// Property names used in validation errors
const (
	FieldPurchaseOrderNumber = "PurchaseOrderNumber"
	FieldLineNumber          = "LineNumber"
	FieldSequence            = "Sequence"
	FieldReceiptDate         = "ReceiptDate"
	FieldDateType            = "DateType"
)

// Minimum values accepted for line coordinates
const (
	MinLineNumber = 10
	MinSequence   = 1
)

// dateTypeRule rejects unknown date types
func dateTypeRule[T any](get func(T) massupdate.DateType) validation.Rule[T] {
	return validation.RuleFunc[T](func(vc *validation.Context[T]) error {
		if d := get(vc.Item); !d.IsValid() {
			vc.AddError(FieldDateType, fmt.Sprintf("%s must be %s or %s.", FieldDateType, massupdate.DateTypeConfirmed, massupdate.DateTypeChanged))
		}
		return nil
	})
}

// NewUpdateReceiptDateValidator checks the session factory first and then the line fields
func NewUpdateReceiptDateValidator(services validation.Services) validation.Validator[UpdateReceiptDateCommand] {
	get := func(c UpdateReceiptDateCommand) ReceiptDateItem {
		return ReceiptDateItem{
			PurchaseOrderNumber: c.PurchaseOrderNumber,
			LineNumber:          c.LineNumber,
			Sequence:            c.Sequence,
			ReceiptDate:         c.ReceiptDate,
		}
	}
	chain := withItemRules(validation.NewChainBuilder[UpdateReceiptDateCommand]().WithFactoryValidationIfRequired(), get).
		With(dateTypeRule(func(c UpdateReceiptDateCommand) massupdate.DateType { return c.DateType })).
		MustBuild()
	return validation.NewChainValidator(chain, services)
}

// NewUpdateReceiptDateBatchValidator checks the session factory and date type once,
// then each row
func NewUpdateReceiptDateBatchValidator(services validation.Services) validation.Validator[UpdateReceiptDateBatchCommand] {
	request := validation.NewChainBuilder[UpdateReceiptDateBatchCommand]().
		WithFactoryValidationIfRequired().
		With(dateTypeRule(func(c UpdateReceiptDateBatchCommand) massupdate.DateType { return c.DateType })).
		MustBuild()
	item := withItemRules(validation.NewChainBuilder[ReceiptDateItem](), func(i ReceiptDateItem) ReceiptDateItem { return i }).
		MustBuild()
	return validation.NewBatchValidator(request, item,
		func(c UpdateReceiptDateBatchCommand) []ReceiptDateItem { return c.Items },
		services,
	)
}

// withItemRules appends the per-line field rules
func withItemRules[T any](b *validation.ChainBuilder[T], get func(T) ReceiptDateItem) *validation.ChainBuilder[T] {
	return b.
		WithNotEmpty(FieldPurchaseOrderNumber, func(t T) string { return get(t).PurchaseOrderNumber }).
		WithStringLength(FieldPurchaseOrderNumber, func(t T) string { return get(t).PurchaseOrderNumber }, massupdate.PurchaseOrderNumberLength).
		WithNotNullTime(FieldReceiptDate, func(t T) *time.Time { return get(t).ReceiptDate }).
		WithFutureDate(FieldReceiptDate, func(t T) *time.Time { return get(t).ReceiptDate }).
		WithMinInt(FieldLineNumber, func(t T) int { return get(t).LineNumber }, MinLineNumber).
		WithMinInt(FieldSequence, func(t T) int { return get(t).Sequence }, MinSequence)
}
