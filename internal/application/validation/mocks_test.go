package validation

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	appidentity "github.com/kerp/backend/internal/application/identity"
	"github.com/kerp/backend/internal/domain/factory"
	"github.com/kerp/backend/internal/domain/identity"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

type mockFactoryRepository struct {
	mock.Mock
}

func (m *mockFactoryRepository) FindByID(ctx context.Context, id int) (*factory.Factory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*factory.Factory), args.Error(1)
}

func (m *mockFactoryRepository) FindActive(ctx context.Context) ([]factory.Factory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]factory.Factory), args.Error(1)
}

func (m *mockFactoryRepository) ExistsAndIsActive(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

var fixedNow = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func sessionUser(userID string, factoryID *int, name string) appidentity.CurrentUserAccessor {
	return appidentity.Static(appidentity.CurrentUser{
		UserID:          userID,
		FactoryID:       factoryID,
		FactoryName:     name,
		IsAuthenticated: true,
	})
}
