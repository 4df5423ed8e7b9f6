package cqrs

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createThing struct {
	Name string
}

func (createThing) CommandName() string { return "CreateThing" }

type getThing struct {
	ID int
}

func (getThing) QueryName() string { return "GetThing" }

type guardedThing struct{}

func (*guardedThing) CommandName() string       { return "GuardedThing" }
func (*guardedThing) RequiresFactoryValidation() {}

// recorder collects the order in which pipeline steps run
type recorder struct {
	mu    sync.Mutex
	steps []string
}

func (r *recorder) add(step string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, step)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.steps...)
}

func tracing(rec *recorder, name string) Behavior {
	return BehaviorFunc(func(ctx context.Context, req Request, next Next) (Outcome, error) {
		rec.add(name + ":in")
		out, err := next(ctx)
		rec.add(name + ":out")
		return out, err
	})
}

func newThingMediator(t *testing.T, rec *recorder, calls *int) (*Mediator, *Registry) {
	t.Helper()
	reg := NewRegistry()
	MustRegisterCommandHandler(reg, CommandHandlerFunc[createThing, string](func(ctx context.Context, cmd createThing) (Result[string], error) {
		*calls++
		if rec != nil {
			rec.add("handler")
		}
		return Success("created " + cmd.Name), nil
	}))
	return NewMediator(reg), reg
}

func TestSendCommand_WithoutBehaviors(t *testing.T) {
	calls := 0
	m, _ := newThingMediator(t, nil, &calls)

	res, err := SendCommand[createThing, string](context.Background(), m, createThing{Name: "a"})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "created a", res.MustValue())
}

func TestSendCommand_BehaviorOrder(t *testing.T) {
	rec := &recorder{}
	calls := 0
	m, reg := newThingMediator(t, rec, &calls)
	reg.AddCommandBehaviors(tracing(rec, "first"), tracing(rec, "second"), tracing(rec, "third"))
	reg.AddQueryBehaviors(tracing(rec, "query-only"))

	_, err := SendCommand[createThing, string](context.Background(), m, createThing{Name: "a"})

	require.NoError(t, err)
	assert.Equal(t, []string{
		"first:in", "second:in", "third:in",
		"handler",
		"third:out", "second:out", "first:out",
	}, rec.list())
}

func TestSendCommand_ShortCircuit(t *testing.T) {
	rec := &recorder{}
	calls := 0
	m, reg := newThingMediator(t, rec, &calls)

	stop := BehaviorFunc(func(ctx context.Context, req Request, next Next) (Outcome, error) {
		rec.add("stop")
		return Fail(NewError("Stopped", "stopped here")), nil
	})
	reg.AddCommandBehaviors(tracing(rec, "outer"), stop, tracing(rec, "inner"))

	res, err := SendCommand[createThing, string](context.Background(), m, createThing{Name: "a"})

	require.NoError(t, err)
	assert.Equal(t, 0, calls)
	assert.Equal(t, []string{"outer:in", "stop", "outer:out"}, rec.list())
	assert.Equal(t, []Error{NewError("Stopped", "stopped here")}, res.Errors())
}

func TestSendCommand_NextCalledTwice(t *testing.T) {
	calls := 0
	m, reg := newThingMediator(t, nil, &calls)

	var second error
	reg.AddCommandBehaviors(BehaviorFunc(func(ctx context.Context, req Request, next Next) (Outcome, error) {
		out, err := next(ctx)
		_, second = next(ctx)
		return out, err
	}))

	_, err := SendCommand[createThing, string](context.Background(), m, createThing{Name: "a"})

	require.NoError(t, err)
	assert.ErrorIs(t, second, ErrNextCalledTwice)
	assert.Equal(t, 1, calls)
}

func TestSendCommand_HandlerError(t *testing.T) {
	reg := NewRegistry()
	boom := errors.New("boom")
	MustRegisterCommandHandler(reg, CommandHandlerFunc[createThing, Unit](func(ctx context.Context, cmd createThing) (Result[Unit], error) {
		return Result[Unit]{}, boom
	}))

	_, err := SendCommand[createThing, Unit](context.Background(), NewMediator(reg), createThing{})

	assert.ErrorIs(t, err, boom)
}

func TestSendCommand_NilRequest(t *testing.T) {
	reg := NewRegistry()
	called := false
	MustRegisterCommandHandler(reg, CommandHandlerFunc[*guardedThing, Unit](func(ctx context.Context, cmd *guardedThing) (Result[Unit], error) {
		called = true
		return Ok(), nil
	}))

	_, err := SendCommand[*guardedThing, Unit](context.Background(), NewMediator(reg), nil)

	var invalid *InvalidArgumentError
	require.ErrorAs(t, err, &invalid)
	assert.ErrorIs(t, err, ErrNilRequest)
	assert.False(t, called)
}

func TestSendCommand_NoHandler(t *testing.T) {
	m := NewMediator(NewRegistry())

	_, err := SendCommand[createThing, string](context.Background(), m, createThing{})

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, ErrNoHandler)
	assert.Contains(t, err.Error(), "createThing")
}

func TestSendCommand_ResultTypeIsPartOfKey(t *testing.T) {
	calls := 0
	m, _ := newThingMediator(t, nil, &calls)

	_, err := SendCommand[createThing, int](context.Background(), m, createThing{})

	assert.ErrorIs(t, err, ErrNoHandler)
	assert.Zero(t, calls)
}

func TestSendQuery_UsesQueryBehaviors(t *testing.T) {
	rec := &recorder{}
	reg := NewRegistry()
	MustRegisterQueryHandler(reg, QueryHandlerFunc[getThing, int](func(ctx context.Context, q getThing) (Result[int], error) {
		rec.add("handler")
		return Success(q.ID * 2), nil
	}))
	reg.AddCommandBehaviors(tracing(rec, "command"))
	reg.AddQueryBehaviors(tracing(rec, "query"))

	res, err := SendQuery[getThing, int](context.Background(), NewMediator(reg), getThing{ID: 21})

	require.NoError(t, err)
	assert.Equal(t, 42, res.MustValue())
	assert.Equal(t, []string{"query:in", "handler", "query:out"}, rec.list())
}

func TestSend_Idempotent(t *testing.T) {
	reg := NewRegistry()
	MustRegisterCommandHandler(reg, CommandHandlerFunc[createThing, Unit](func(ctx context.Context, cmd createThing) (Result[Unit], error) {
		if cmd.Name == "" {
			return Failure[Unit](NewError("Empty", "name required")), nil
		}
		return Ok(), nil
	}))
	m := NewMediator(reg)

	for _, cmd := range []createThing{{Name: ""}, {Name: "x"}} {
		first, err := SendCommand[createThing, Unit](context.Background(), m, cmd)
		require.NoError(t, err)
		second, err := SendCommand[createThing, Unit](context.Background(), m, cmd)
		require.NoError(t, err)

		assert.Equal(t, first.IsSuccess(), second.IsSuccess())
		assert.Equal(t, first.Errors(), second.Errors())
	}
}

func TestSend_ConcurrentRequests(t *testing.T) {
	reg := NewRegistry()
	MustRegisterQueryHandler(reg, QueryHandlerFunc[getThing, int](func(ctx context.Context, q getThing) (Result[int], error) {
		return Success(q.ID), nil
	}))
	reg.AddQueryBehaviors(BehaviorFunc(func(ctx context.Context, req Request, next Next) (Outcome, error) {
		return next(ctx)
	}))
	m := NewMediator(reg)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := SendQuery[getThing, int](context.Background(), m, getThing{ID: i})
			assert.NoError(t, err)
			assert.Equal(t, i, res.MustValue())
		}()
	}
	wg.Wait()
}
