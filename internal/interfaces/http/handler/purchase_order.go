package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kerp/backend/internal/application/cqrs"
	"github.com/kerp/backend/internal/application/massupdate"
	"github.com/kerp/backend/internal/interfaces/http/dto"
)

// PurchaseOrderHandler serves the purchase order mass update endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	mediator *cqrs.Mediator
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(mediator *cqrs.Mediator) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{mediator: mediator}
}

// RegisterRoutes registers the purchase order routes
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	po := rg.Group("/purchase-orders")
	po.PUT("/receipt-date", h.UpdateReceiptDate)
	po.PUT("/receipt-dates/batch", h.UpdateReceiptDateBatch)
}

// UpdateReceiptDate records a receipt date for one purchase order line
func (h *PurchaseOrderHandler) UpdateReceiptDate(c *gin.Context) {
	var req dto.UpdateReceiptDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		h.BadRequest(c, "receipt_date", err.Error())
		return
	}

	result, err := cqrs.SendCommand[massupdate.UpdateReceiptDateCommand, cqrs.Unit](c.Request.Context(), h.mediator, cmd)
	respond(&h.BaseHandler, c, result, err, nil)
}

// UpdateReceiptDateBatch records receipt dates for many lines in one transaction
func (h *PurchaseOrderHandler) UpdateReceiptDateBatch(c *gin.Context) {
	var req dto.UpdateReceiptDateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		h.BadRequest(c, "items", err.Error())
		return
	}

	result, err := cqrs.SendCommand[massupdate.UpdateReceiptDateBatchCommand, massupdate.BatchResult](c.Request.Context(), h.mediator, cmd)
	respond(&h.BaseHandler, c, result, err, func(r massupdate.BatchResult) any {
		return dto.BatchResultResponse{Saved: r.Saved}
	})
}
