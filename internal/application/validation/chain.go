package validation

import "context"

// Rule is one link of a validation chain. Failed checks are recorded with
// vc.AddError; a returned error is reserved for infrastructure faults.
type Rule[T any] interface {
	Validate(vc *Context[T]) error
}

// RuleFunc adapts a function to Rule
type RuleFunc[T any] func(vc *Context[T]) error

// Validate calls f(vc)
func (f RuleFunc[T]) Validate(vc *Context[T]) error {
	return f(vc)
}

type node[T any] struct {
	rule Rule[T]
	next *node[T]
}

// Chain is an immutable, singly linked list of rules
type Chain[T any] struct {
	head *node[T]
	size int
}

func newChain[T any](rules []Rule[T]) *Chain[T] {
	c := &Chain[T]{size: len(rules)}
	for i := len(rules) - 1; i >= 0; i-- {
		c.head = &node[T]{rule: rules[i], next: c.head}
	}
	return c
}

// Run walks the chain head to tail over an existing context. Every rule runs
// unless one calls Stop; traversal also ends when ctx is cancelled.
func (c *Chain[T]) Run(vc *Context[T]) error {
	for n := c.head; n != nil; n = n.next {
		if err := vc.Context().Err(); err != nil {
			return err
		}
		if err := n.rule.Validate(vc); err != nil {
			return err
		}
		if vc.Stopped() {
			return nil
		}
	}
	return nil
}

// Validate runs the chain against item and returns the accumulated errors
func (c *Chain[T]) Validate(ctx context.Context, item T, services Services) ([]ValidationError, error) {
	vc := NewContext(ctx, item, services)
	if err := c.Run(vc); err != nil {
		return nil, err
	}
	return vc.Errors(), nil
}

// Rules returns the rules in traversal order
func (c *Chain[T]) Rules() []Rule[T] {
	rules := make([]Rule[T], 0, c.size)
	for n := c.head; n != nil; n = n.next {
		rules = append(rules, n.rule)
	}
	return rules
}

// Len returns the number of rules
func (c *Chain[T]) Len() int {
	return c.size
}
