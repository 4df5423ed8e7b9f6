package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kerp/backend/internal/application/cqrs"
	"github.com/kerp/backend/internal/application/factory"
)

// FactoryHandler serves the factory lookup endpoints
type FactoryHandler struct {
	BaseHandler
	mediator *cqrs.Mediator
}

// NewFactoryHandler creates a new FactoryHandler
func NewFactoryHandler(mediator *cqrs.Mediator) *FactoryHandler {
	return &FactoryHandler{mediator: mediator}
}

// RegisterRoutes registers the factory routes
func (h *FactoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	factories := rg.Group("/factories")
	factories.GET("/active", h.GetActive)
	factories.GET("/:id", h.GetByID)
}

// GetActive lists active factories ordered by name
func (h *FactoryHandler) GetActive(c *gin.Context) {
	result, err := cqrs.SendQuery[factory.GetActiveFactoriesQuery, []factory.FactoryResponse](
		c.Request.Context(), h.mediator, factory.GetActiveFactoriesQuery{})
	respond(&h.BaseHandler, c, result, err, func(list []factory.FactoryResponse) any {
		if list == nil {
			return []factory.FactoryResponse{}
		}
		return list
	})
}

// GetByID returns one factory
func (h *FactoryHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "id", "id must be an integer")
		return
	}

	result, err := cqrs.SendQuery[factory.GetFactoryQuery, factory.FactoryResponse](
		c.Request.Context(), h.mediator, factory.GetFactoryQuery{ID: id})
	respond(&h.BaseHandler, c, result, err, func(f factory.FactoryResponse) any { return f })
}
