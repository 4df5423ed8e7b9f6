package cqrs

import "context"

// CommandHandler executes a command of type C producing R.
// A returned error is treated as an exception by the pipeline.
type CommandHandler[C Command, R any] interface {
	Handle(ctx context.Context, cmd C) (Result[R], error)
}

// QueryHandler executes a query of type Q producing R
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (Result[R], error)
}

// CommandHandlerFunc adapts a function to CommandHandler
type CommandHandlerFunc[C Command, R any] func(ctx context.Context, cmd C) (Result[R], error)

// Handle calls f(ctx, cmd)
func (f CommandHandlerFunc[C, R]) Handle(ctx context.Context, cmd C) (Result[R], error) {
	return f(ctx, cmd)
}

// QueryHandlerFunc adapts a function to QueryHandler
type QueryHandlerFunc[Q Query, R any] func(ctx context.Context, query Q) (Result[R], error)

// Handle calls f(ctx, query)
func (f QueryHandlerFunc[Q, R]) Handle(ctx context.Context, query Q) (Result[R], error) {
	return f(ctx, query)
}

// handlerFunc is the type-erased terminal step of a pipeline
type handlerFunc func(ctx context.Context, req Request) (Outcome, error)
