package massupdate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appidentity "github.com/kerp/backend/internal/application/identity"
	"github.com/kerp/backend/internal/domain/massupdate"
	"github.com/kerp/backend/internal/domain/shared"
)

func TestUpdateReceiptDateHandler_StampsSessionUser(t *testing.T) {
	repo := new(mockUpdateRepository)
	var stored []*massupdate.ReceiptDateUpdate
	repo.On("Add", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).([]*massupdate.ReceiptDateUpdate)
	}).Return(nil)
	h := NewUpdateReceiptDateHandler(repo, appidentity.Static(stargardUser()), zap.NewNop())

	res, err := h.Handle(context.Background(), UpdateReceiptDateCommand{
		PurchaseOrderNumber: "P00012345",
		LineNumber:          20,
		Sequence:            2,
		ReceiptDate:         datePtr(3),
		DateType:            massupdate.DateTypeChanged,
	})

	require.NoError(t, err)
	assert.True(t, res.IsSuccess())
	require.Len(t, stored, 1)
	u := stored[0]
	assert.Equal(t, "P00012345", u.PurchaseOrderNumber)
	assert.Equal(t, 20, u.LineNumber)
	assert.Equal(t, 2, u.Sequence)
	assert.Equal(t, massupdate.DateTypeChanged, u.DateType)
	assert.Equal(t, "u-1", u.UserID)
	assert.Equal(t, 241, u.FactoryID)
	assert.False(t, u.IsGenerated)
}

func TestUpdateReceiptDateHandler_RepositoryError(t *testing.T) {
	repo := new(mockUpdateRepository)
	dbErr := errors.New("insert failed")
	repo.On("Add", mock.Anything, mock.Anything).Return(dbErr)
	h := NewUpdateReceiptDateHandler(repo, appidentity.Static(stargardUser()), zap.NewNop())

	_, err := h.Handle(context.Background(), UpdateReceiptDateCommand{PurchaseOrderNumber: "P00012345", LineNumber: 10})

	assert.ErrorIs(t, err, dbErr)
}

func TestUpdateReceiptDateHandler_NoSessionFactory(t *testing.T) {
	repo := new(mockUpdateRepository)
	h := NewUpdateReceiptDateHandler(repo, appidentity.Static(appidentity.CurrentUser{UserID: "u-1"}), zap.NewNop())

	_, err := h.Handle(context.Background(), UpdateReceiptDateCommand{})

	assert.True(t, shared.IsBusinessRuleViolation(err))
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestUpdateReceiptDateBatchHandler_UsesSharedDateType(t *testing.T) {
	repo := new(mockUpdateRepository)
	var stored []*massupdate.ReceiptDateUpdate
	repo.On("Add", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).([]*massupdate.ReceiptDateUpdate)
	}).Return(nil)
	h := NewUpdateReceiptDateBatchHandler(repo, appidentity.Static(stargardUser()), zap.NewNop())

	second := validItem()
	second.LineNumber = 30
	res, err := h.Handle(context.Background(), UpdateReceiptDateBatchCommand{
		Items:    []ReceiptDateItem{validItem(), second},
		DateType: massupdate.DateTypeConfirmed,
	})

	require.NoError(t, err)
	assert.Equal(t, BatchResult{Saved: 2}, res.MustValue())
	require.Len(t, stored, 2)
	for _, u := range stored {
		assert.Equal(t, massupdate.DateTypeConfirmed, u.DateType)
		assert.Equal(t, 241, u.FactoryID)
		assert.Equal(t, "u-1", u.UserID)
	}
	assert.Equal(t, 10, stored[0].LineNumber)
	assert.Equal(t, 30, stored[1].LineNumber)
}

func TestUpdateReceiptDateBatchHandler_RepositoryError(t *testing.T) {
	repo := new(mockUpdateRepository)
	dbErr := errors.New("deadlock")
	repo.On("Add", mock.Anything, mock.Anything).Return(dbErr)
	h := NewUpdateReceiptDateBatchHandler(repo, appidentity.Static(stargardUser()), zap.NewNop())

	_, err := h.Handle(context.Background(), UpdateReceiptDateBatchCommand{Items: []ReceiptDateItem{validItem()}})

	assert.ErrorIs(t, err, dbErr)
}
