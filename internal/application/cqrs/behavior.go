package cqrs

import (
	"context"
	"sync/atomic"
)

// Next invokes the rest of the pipeline. It may be called at most once.
type Next func(ctx context.Context) (Outcome, error)

// Behavior is a cross-cutting step wrapped around a request handler.
// It may call next, return its own failure without calling next, or return an error.
type Behavior interface {
	Handle(ctx context.Context, req Request, next Next) (Outcome, error)
}

// BehaviorFunc adapts a function to Behavior
type BehaviorFunc func(ctx context.Context, req Request, next Next) (Outcome, error)

// Handle calls f(ctx, req, next)
func (f BehaviorFunc) Handle(ctx context.Context, req Request, next Next) (Outcome, error) {
	return f(ctx, req, next)
}

// buildPipeline folds behaviors right to left around the terminal handler,
// so behaviors[0] runs outermost.
func buildPipeline(req Request, terminal handlerFunc, behaviors []Behavior) Next {
	next := once(func(ctx context.Context) (Outcome, error) {
		return terminal(ctx, req)
	})
	for i := len(behaviors) - 1; i >= 0; i-- {
		b, inner := behaviors[i], next
		next = once(func(ctx context.Context) (Outcome, error) {
			return b.Handle(ctx, req, inner)
		})
	}
	return next
}

func once(fn Next) Next {
	var called atomic.Bool
	return func(ctx context.Context) (Outcome, error) {
		if !called.CompareAndSwap(false, true) {
			return nil, ErrNextCalledTwice
		}
		return fn(ctx)
	}
}
