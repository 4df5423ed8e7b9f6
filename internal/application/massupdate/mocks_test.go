package massupdate

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	appidentity "github.com/kerp/backend/internal/application/identity"
	"github.com/kerp/backend/internal/application/validation"
	"github.com/kerp/backend/internal/domain/factory"
	"github.com/kerp/backend/internal/domain/identity"
	"github.com/kerp/backend/internal/domain/massupdate"
)

type mockUpdateRepository struct {
	mock.Mock
}

func (m *mockUpdateRepository) Add(ctx context.Context, updates ...*massupdate.ReceiptDateUpdate) error {
	return m.Called(ctx, updates).Error(0)
}

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

var today = time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func datePtr(days int) *time.Time {
	t := today.AddDate(0, 0, days)
	return &t
}

func stargardUser() appidentity.CurrentUser {
	return appidentity.CurrentUser{
		UserID:          "u-1",
		Username:        "anna",
		FactoryID:       intPtr(241),
		FactoryName:     "Stargard",
		IsAuthenticated: true,
	}
}

// validServices returns services for a session whose factory assignment is
// current and whose factory is active
func validServices() (validation.Services, *mockUserRepository, *mockFactoryRepository) {
	users := new(mockUserRepository)
	factories := new(mockFactoryRepository)
	users.On("FindByID", mock.Anything, "u-1").Return(&identity.User{ID: "u-1", FactoryID: intPtr(241)}, nil)
	factories.On("ExistsAndIsActive", mock.Anything, 241).Return(true, nil)
	return validation.Services{
		CurrentUser: appidentity.Static(stargardUser()),
		Users:       users,
		Factories:   factories,
		Clock:       func() time.Time { return today },
	}, users, factories
}

func validItem() ReceiptDateItem {
	return ReceiptDateItem{
		PurchaseOrderNumber: "P00012345",
		LineNumber:          10,
		Sequence:            1,
		ReceiptDate:         datePtr(7),
	}
}
