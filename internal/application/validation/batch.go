package validation

import "context"

// ItemsField is the property path used when a batch has no rows
const ItemsField = "Items"

// BatchValidator validates a request in two tiers: a request-level chain first,
// then an item chain for each row. Item errors are labelled Row[i].<field>.
type BatchValidator[T any, I any] struct {
	request  *Chain[T]
	item     *Chain[I]
	items    func(T) []I
	services Services
}

// NewBatchValidator creates a BatchValidator. request may be nil when the
// request type needs no request-level rules.
func NewBatchValidator[T any, I any](request *Chain[T], item *Chain[I], items func(T) []I, services Services) *BatchValidator[T, I] {
	return &BatchValidator[T, I]{request: request, item: item, items: items, services: services}
}

func (v *BatchValidator[T, I]) Validate(ctx context.Context, req T) ([]ValidationError, error) {
	rows := v.items(req)
	if len(rows) == 0 {
		return []ValidationError{{PropertyPath: ItemsField, Message: "Add at least one row to save."}}, nil
	}

	if v.request != nil {
		errs, err := v.request.Validate(ctx, req, v.services)
		if err != nil {
			return nil, err
		}
		if len(errs) > 0 {
			return errs, nil
		}
	}

	var all []ValidationError
	for i, row := range rows {
		errs, err := v.item.Validate(ctx, row, v.services)
		if err != nil {
			return nil, err
		}
		for _, e := range errs {
			all = append(all, ValidationError{PropertyPath: RowPath(i, e.PropertyPath), Message: e.Message})
		}
	}
	return all, nil
}
