package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kerp/backend/internal/application/behavior"
	"github.com/kerp/backend/internal/application/cqrs"
	factoryapp "github.com/kerp/backend/internal/application/factory"
	"github.com/kerp/backend/internal/domain/factory"
	"github.com/kerp/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeFactories is an in-memory factory.Repository
type fakeFactories struct {
	byID map[int]factory.Factory
	err  error
}

func (f *fakeFactories) FindByID(_ context.Context, id int) (*factory.Factory, error) {
	if f.err != nil {
		return nil, f.err
	}
	fac, ok := f.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &fac, nil
}

func (f *fakeFactories) FindActive(_ context.Context) ([]factory.Factory, error) {
	if f.err != nil {
		return nil, f.err
	}
	// Ordered by name
	var out []factory.Factory
	for _, id := range []int{276, 260, 241} {
		if fac, ok := f.byID[id]; ok && fac.IsActive {
			out = append(out, fac)
		}
	}
	return out, nil
}

func (f *fakeFactories) ExistsAndIsActive(_ context.Context, id int) (bool, error) {
	fac, ok := f.byID[id]
	return ok && fac.IsActive, f.err
}

func newFactoryRouter(t *testing.T, repo factory.Repository) *gin.Engine {
	t.Helper()
	reg := cqrs.NewRegistry()
	reg.AddQueryBehaviors(
		behavior.NewLoggingBehavior(zap.NewNop(), nil),
		behavior.NewExceptionHandlingBehavior(zap.NewNop()),
	)
	factoryapp.Register(reg, repo)

	router := gin.New()
	NewFactoryHandler(cqrs.NewMediator(reg)).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func seededFactories() *fakeFactories {
	return &fakeFactories{byID: map[int]factory.Factory{
		241: {ID: 241, Name: "Stargard", IsActive: true},
		260: {ID: 260, Name: "Shanghai", IsActive: false},
		276: {ID: 276, Name: "Ottawa", IsActive: true},
	}}
}

func TestFactoryHandler_GetActive(t *testing.T) {
	router := newFactoryRouter(t, seededFactories())

	w := get(router, "/api/v1/factories/active")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	data, ok := resp.Data.([]any)
	require.True(t, ok)
	require.Len(t, data, 2)
	assert.Equal(t, "Ottawa", data[0].(map[string]any)["name"])
	assert.Equal(t, "Stargard", data[1].(map[string]any)["name"])
}

func TestFactoryHandler_GetActive_Empty(t *testing.T) {
	router := newFactoryRouter(t, &fakeFactories{})

	w := get(router, "/api/v1/factories/active")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())
}

func TestFactoryHandler_GetByID(t *testing.T) {
	router := newFactoryRouter(t, seededFactories())

	t.Run("found", func(t *testing.T) {
		w := get(router, "/api/v1/factories/260")

		assert.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w).Data.(map[string]any)
		assert.Equal(t, float64(260), data["id"])
		assert.Equal(t, false, data["is_active"])
	})

	t.Run("not found is a business rule violation", func(t *testing.T) {
		w := get(router, "/api/v1/factories/999")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decode(t, w)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, cqrs.CodeBusinessRuleViolation, resp.Errors[0].Code)
		assert.Equal(t, factoryapp.MsgFactoryNotFound, resp.Errors[0].Description)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		w := get(router, "/api/v1/factories/abc")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode(t, w)
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "id", resp.Errors[0].Target)
	})

	t.Run("non-positive id", func(t *testing.T) {
		w := get(router, "/api/v1/factories/0")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFactoryHandler_StoreFailure(t *testing.T) {
	router := newFactoryRouter(t, &fakeFactories{err: errors.New("connection refused")})

	w := get(router, "/api/v1/factories/active")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, behavior.ServerErrorMessage, resp.Errors[0].Description)
	assert.NotContains(t, w.Body.String(), "connection refused")
}
