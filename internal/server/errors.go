package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	clientdomain "github.com/smallbiznis/backoffice/internal/client/domain"
	historydomain "github.com/smallbiznis/backoffice/internal/history/domain"
	importerdomain "github.com/smallbiznis/backoffice/internal/importer/domain"
	reportdomain "github.com/smallbiznis/backoffice/internal/report/domain"
	resourcedomain "github.com/smallbiznis/backoffice/internal/resource/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v *ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string                    `json:"type"`
	Message string                    `json:"message"`
	Errors  []ValidationError         `json:"errors,omitempty"`
	Rows    []importerdomain.RowError `json:"rows,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware converts errors attached to the gin context into
// JSON responses. Handlers report failures via AbortWithError and never
// write error bodies themselves.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	var vErrs *ValidationErrors
	if errors.As(err, &vErrs) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErrs.Errors,
		}
	}

	var importErr *importerdomain.ValidationError
	if errors.As(err, &importErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: importErr.Error(),
			Rows:    importErr.RowErrors,
		}
	}

	var payloadErr *resourcedomain.PayloadError
	if errors.As(err, &payloadErr) {
		payloadErrors := make([]ValidationError, 0, len(payloadErr.Problems))
		for _, problem := range payloadErr.Problems {
			payloadErrors = append(payloadErrors, ValidationError{
				Field:   "payload",
				Code:    "invalid_payload",
				Message: problem,
			})
		}
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  payloadErrors,
		}
	}

	switch {
	case isBadRequest(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case isNotFound(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}
	case isConflict(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isBadRequest(err error) bool {
	for _, candidate := range []error{
		importerdomain.ErrEmptyWorkbook,
		importerdomain.ErrUnsupportedFormat,
		clientdomain.ErrInvalidID,
		clientdomain.ErrInvalidIdentification,
		clientdomain.ErrInvalidFullName,
		clientdomain.ErrInvalidEmail,
		clientdomain.ErrEmptyUpdate,
		resourcedomain.ErrInvalidID,
		resourcedomain.ErrRelatedRecordMissing,
		reportdomain.ErrPlatformRequired,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

func isNotFound(err error) bool {
	for _, candidate := range []error{
		clientdomain.ErrNotFound,
		resourcedomain.ErrUnknownResource,
		resourcedomain.ErrRecordNotFound,
		historydomain.ErrNotFound,
		gorm.ErrRecordNotFound,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

func isConflict(err error) bool {
	for _, candidate := range []error{
		clientdomain.ErrDuplicate,
		clientdomain.ErrHasRelatedRecords,
		resourcedomain.ErrDuplicateValue,
		resourcedomain.ErrRecordReferenced,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}
