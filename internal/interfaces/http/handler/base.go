// Package handler translates HTTP requests into mediator commands and queries.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kerp/backend/internal/application/behavior"
	"github.com/kerp/backend/internal/application/cqrs"
	"github.com/kerp/backend/internal/interfaces/http/dto"
	"github.com/kerp/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Error sends an error response
func (h *BaseHandler) Error(c *gin.Context, statusCode int, errs ...dto.ErrorInfo) {
	c.JSON(statusCode, dto.NewErrorResponse(middleware.GetRequestID(c), errs...))
}

// BadRequest sends a 400 response with a single validation error
func (h *BaseHandler) BadRequest(c *gin.Context, target, description string) {
	h.Error(c, http.StatusBadRequest, dto.ErrorInfo{
		Code:        cqrs.CodeValidation,
		Description: description,
		Target:      target,
	})
}

// BindError answers a request whose body could not be bound
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	status, errs := middleware.BindingErrors(err)
	h.Error(c, status, errs...)
}

// InternalError records err for the request log and sends the generic server error
func (h *BaseHandler) InternalError(c *gin.Context, err error) {
	_ = c.Error(err)
	h.Error(c, http.StatusInternalServerError, dto.ErrorInfo{
		Code:        cqrs.CodeServerError,
		Description: behavior.ServerErrorMessage,
	})
}

// respond writes the outcome of a mediator call. A Go error means the pipeline could
// not produce a result; a failed result is mapped by its error codes.
func respond[T any](h *BaseHandler, c *gin.Context, result cqrs.Result[T], err error, render func(T) any) {
	if err != nil {
		h.InternalError(c, err)
		return
	}

	if result.IsFailure() {
		errs := result.Errors()
		h.Error(c, dto.StatusForErrors(errs), dto.FromResultErrors(errs)...)
		return
	}

	value, _ := result.Value()
	if render == nil {
		h.Success(c, nil)
		return
	}
	h.Success(c, render(value))
}
