package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kerp/backend/internal/application/cqrs"
	"github.com/kerp/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bind(t *testing.T, body string, limit int64) (int, []dto.ErrorInfo) {
	t.Helper()
	SetupValidator()

	var status int
	var errs []dto.ErrorInfo
	router := gin.New()
	router.Use(BodyLimit(limit))
	router.PUT("/batch", func(c *gin.Context) {
		var req dto.UpdateReceiptDateBatchRequest
		err := c.ShouldBindJSON(&req)
		require.Error(t, err)
		status, errs = BindingErrors(err)
		c.Status(status)
	})

	req := httptest.NewRequest(http.MethodPut, "/batch", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	router.ServeHTTP(httptest.NewRecorder(), req)
	return status, errs
}

func TestBindingErrors(t *testing.T) {
	t.Run("validator errors use json paths", func(t *testing.T) {
		status, errs := bind(t, `{"items":[{"receipt_date":"2026-11-02"},{"receipt_date":"02.11.2026"}]}`, 0)

		assert.Equal(t, http.StatusBadRequest, status)
		require.Len(t, errs, 1)
		assert.Equal(t, cqrs.CodeValidation, errs[0].Code)
		assert.Equal(t, "items[1].receipt_date", errs[0].Target)
		assert.Contains(t, errs[0].Description, "2006-01-02")
	})

	t.Run("malformed json", func(t *testing.T) {
		status, errs := bind(t, `{"items": [`, 0)

		assert.Equal(t, http.StatusBadRequest, status)
		require.Len(t, errs, 1)
		assert.Equal(t, dto.ErrCodeBadRequest, errs[0].Code)
	})

	t.Run("wrong type", func(t *testing.T) {
		status, errs := bind(t, `{"date_type":"confirmed"}`, 0)

		assert.Equal(t, http.StatusBadRequest, status)
		require.Len(t, errs, 1)
		assert.Equal(t, dto.ErrCodeBadRequest, errs[0].Code)
		assert.Equal(t, "date_type", errs[0].Target)
	})

	t.Run("streamed body over the limit", func(t *testing.T) {
		status, errs := bind(t, `{"items":[`+strings.Repeat(`{"purchase_order_number":"PO1234567"},`, 20)+`{}]}`, 64)

		assert.Equal(t, http.StatusRequestEntityTooLarge, status)
		require.Len(t, errs, 1)
		assert.Equal(t, dto.ErrCodeRequestTooLarge, errs[0].Code)
	})
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "items[0].receipt_date", fieldPath("UpdateReceiptDateBatchRequest.items[0].receipt_date"))
	assert.Equal(t, "plain", fieldPath("plain"))
}
