package cqrs

import "context"

// Mediator sends requests through the registered pipeline to exactly one handler.
// It does not log, validate or persist anything itself.
type Mediator struct {
	registry *Registry
}

// NewMediator creates a mediator over reg
func NewMediator(reg *Registry) *Mediator {
	return &Mediator{registry: reg}
}

// Registry returns the registry the mediator dispatches from
func (m *Mediator) Registry() *Registry {
	return m.registry
}

// SendCommand dispatches cmd to its handler through the command behaviors.
// Business failures are returned in the Result; a non-nil error means the request
// could not be dispatched or a behavior failed outside exception handling.
func SendCommand[C Command, R any](ctx context.Context, m *Mediator, cmd C) (Result[R], error) {
	return send[C, R](ctx, m, cmd)
}

// SendQuery dispatches q to its handler through the query behaviors
func SendQuery[Q Query, R any](ctx context.Context, m *Mediator, q Q) (Result[R], error) {
	return send[Q, R](ctx, m, q)
}

func send[Req any, R any](ctx context.Context, m *Mediator, req Req) (Result[R], error) {
	if isNilRequest(req) {
		return Result[R]{}, &InvalidArgumentError{Argument: "request", Err: ErrNilRequest}
	}

	reg, behaviors, err := m.registry.resolve(KeyFor[Req, R]())
	if err != nil {
		return Result[R]{}, err
	}

	outcome, err := buildPipeline(req, reg.handle, behaviors)(ctx)
	if err != nil {
		return Result[R]{}, err
	}
	return toResult[R](outcome)
}
