// Package factory answers factory lookups through the mediator.
package factory

import (
	"context"
	"errors"
	"fmt"

	"github.com/kerp/backend/internal/application/cqrs"
	"github.com/kerp/backend/internal/domain/factory"
	"github.com/kerp/backend/internal/domain/shared"
)

// MsgFactoryNotFound is the user-facing message for an unknown factory id
const MsgFactoryNotFound = "factory not found"

// FactoryResponse is the read model of a factory
type FactoryResponse struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// ToFactoryResponse converts a domain factory to its read model
func ToFactoryResponse(f *factory.Factory) FactoryResponse {
	return FactoryResponse{ID: f.ID, Name: f.Name, IsActive: f.IsActive}
}

// GetActiveFactoriesQuery lists active factories ordered by name
type GetActiveFactoriesQuery struct{}

// QueryName returns the query name
func (GetActiveFactoriesQuery) QueryName() string { return "GetActiveFactories" }

// GetFactoryQuery loads one factory by id
type GetFactoryQuery struct {
	ID int
}

// QueryName returns the query name
func (GetFactoryQuery) QueryName() string { return "GetFactory" }

// GetActiveFactoriesHandler handles GetActiveFactoriesQuery
type GetActiveFactoriesHandler struct {
	factories factory.Repository
}

// NewGetActiveFactoriesHandler creates a new GetActiveFactoriesHandler
func NewGetActiveFactoriesHandler(factories factory.Repository) *GetActiveFactoriesHandler {
	return &GetActiveFactoriesHandler{factories: factories}
}

func (h *GetActiveFactoriesHandler) Handle(ctx context.Context, _ GetActiveFactoriesQuery) (cqrs.Result[[]FactoryResponse], error) {
	factories, err := h.factories.FindActive(ctx)
	if err != nil {
		return cqrs.Result[[]FactoryResponse]{}, fmt.Errorf("find active factories: %w", err)
	}
	out := make([]FactoryResponse, len(factories))
	for i := range factories {
		out[i] = ToFactoryResponse(&factories[i])
	}
	return cqrs.Success(out), nil
}

// GetFactoryHandler handles GetFactoryQuery
type GetFactoryHandler struct {
	factories factory.Repository
}

// NewGetFactoryHandler creates a new GetFactoryHandler
func NewGetFactoryHandler(factories factory.Repository) *GetFactoryHandler {
	return &GetFactoryHandler{factories: factories}
}

func (h *GetFactoryHandler) Handle(ctx context.Context, q GetFactoryQuery) (cqrs.Result[FactoryResponse], error) {
	if q.ID <= 0 {
		return cqrs.Failure[FactoryResponse](cqrs.NewError(cqrs.CodeValidation, factory.ErrInvalidFactoryID.Error())), nil
	}
	f, err := h.factories.FindByID(ctx, q.ID)
	if errors.Is(err, shared.ErrNotFound) {
		return cqrs.Result[FactoryResponse]{}, shared.WrapBusinessRuleViolation(MsgFactoryNotFound, err)
	}
	if err != nil {
		return cqrs.Result[FactoryResponse]{}, fmt.Errorf("find factory %d: %w", q.ID, err)
	}
	return cqrs.Success(ToFactoryResponse(f)), nil
}

// Register adds the factory query handlers
func Register(reg *cqrs.Registry, factories factory.Repository) {
	cqrs.MustRegisterQueryHandler[GetActiveFactoriesQuery, []FactoryResponse](reg, NewGetActiveFactoriesHandler(factories))
	cqrs.MustRegisterQueryHandler[GetFactoryQuery, FactoryResponse](reg, NewGetFactoryHandler(factories))
}

// Keys lists the request keys Register provides
func Keys() []cqrs.RequestKey {
	return []cqrs.RequestKey{
		cqrs.KeyFor[GetActiveFactoriesQuery, []FactoryResponse](),
		cqrs.KeyFor[GetFactoryQuery, FactoryResponse](),
	}
}
