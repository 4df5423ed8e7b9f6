package cqrs

import "reflect"

// Request is any command or query value. Its Go type selects the handler.
type Request = any

// Command is a request that changes state
type Command interface {
	CommandName() string
}

// Query is a request that only reads state
type Query interface {
	QueryName() string
}

// RequiresFactoryValidation marks requests whose sender must belong to an active factory
// before the handler may run.
type RequiresFactoryValidation interface {
	RequiresFactoryValidation()
}

// Category separates command and query pipelines
type Category int

const (
	CategoryCommand Category = iota
	CategoryQuery
)

// String returns the lower-case category name
func (c Category) String() string {
	if c == CategoryQuery {
		return "query"
	}
	return "command"
}

// CategoryOf returns the pipeline category of req
func CategoryOf(req Request) Category {
	if _, ok := req.(Query); ok {
		if _, isCmd := req.(Command); !isCmd {
			return CategoryQuery
		}
	}
	return CategoryCommand
}

// RequestName returns the logical name of a request
func RequestName(req Request) string {
	switch r := req.(type) {
	case Command:
		return r.CommandName()
	case Query:
		return r.QueryName()
	}
	t := reflect.TypeOf(req)
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// NeedsFactoryValidation reports whether requests of type T carry the factory validation marker
func NeedsFactoryValidation[T any]() bool {
	var zero T
	_, ok := any(zero).(RequiresFactoryValidation)
	if ok {
		return true
	}
	_, ok = any(&zero).(RequiresFactoryValidation)
	return ok
}

func isNilRequest(req Request) bool {
	if req == nil {
		return true
	}
	v := reflect.ValueOf(req)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
