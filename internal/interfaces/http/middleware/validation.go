package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/kerp/backend/internal/application/cqrs"
	"github.com/kerp/backend/internal/interfaces/http/dto"
)

var setupValidatorOnce sync.Once

// SetupValidator makes binding errors use JSON field names
func SetupValidator() {
	setupValidatorOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(func(fld reflect.StructField) string {
				name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name == "" {
					name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
				}
				return name
			})
		}
	})
}

// BindingErrors converts a ShouldBindJSON error to a status and error list
func BindingErrors(err error) (int, []dto.ErrorInfo) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge, []dto.ErrorInfo{{
			Code:        dto.ErrCodeRequestTooLarge,
			Description: "Request body exceeds maximum allowed size",
		}}
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		out := make([]dto.ErrorInfo, 0, len(validationErrs))
		for _, e := range validationErrs {
			target := fieldPath(e.Namespace())
			out = append(out, dto.ErrorInfo{
				Code:        cqrs.CodeValidation,
				Description: fmt.Sprintf("%s: %s", target, getValidationMessage(e)),
				Target:      target,
			})
		}
		return http.StatusBadRequest, out
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return http.StatusBadRequest, []dto.ErrorInfo{{
			Code:        dto.ErrCodeBadRequest,
			Description: fmt.Sprintf("%s has the wrong type", typeErr.Field),
			Target:      typeErr.Field,
		}}
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return http.StatusBadRequest, []dto.ErrorInfo{{
			Code:        dto.ErrCodeBadRequest,
			Description: "Request body is not valid JSON",
		}}
	}

	return http.StatusBadRequest, []dto.ErrorInfo{{
		Code:        dto.ErrCodeBadRequest,
		Description: "Request body could not be read",
	}}
}

// fieldPath drops the root struct name from a validator namespace
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		if e.Kind() == reflect.Slice {
			return "Must contain at least " + e.Param() + " items"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		if e.Kind() == reflect.Slice {
			return "Must contain at most " + e.Param() + " items"
		}
		return "Must be at most " + e.Param()
	case "len":
		return "Must be exactly " + e.Param() + " characters"
	case "datetime":
		return "Must be a date in the " + e.Param() + " format"
	case "oneof":
		return "Must be one of: " + e.Param()
	default:
		return "Invalid value"
	}
}
