package behavior

import (
	"context"
	"errors"
	"fmt"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kerp/backend/internal/application/cqrs"
)

type saveOrder struct {
	Number string
}

func (saveOrder) CommandName() string { return "SaveOrder" }

type listOrders struct{}

func (listOrders) QueryName() string { return "ListOrders" }

func observed(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

// nextReturning builds a Next that counts calls and returns the given values
func nextReturning(calls *int, out cqrs.Outcome, err error) cqrs.Next {
	return func(ctx context.Context) (cqrs.Outcome, error) {
		*calls++
		return out, err
	}
}

func nextPanicking(v any) cqrs.Next {
	return func(ctx context.Context) (cqrs.Outcome, error) {
		panic(v)
	}
}

type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, Transaction, error) {
	args := m.Called(ctx)
	if args.Get(1) == nil {
		return ctx, nil, args.Error(2)
	}
	return args.Get(0).(context.Context), args.Get(1).(Transaction), args.Error(2)
}

type mockTransaction struct {
	mock.Mock
}

func (m *mockTransaction) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockTransaction) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockTransaction) Release() {
	m.Called()
}

var errBoom = errors.New("boom")

func failure(code string) cqrs.Outcome {
	return cqrs.Fail(cqrs.NewError(code, fmt.Sprintf("%s happened", code)))
}
