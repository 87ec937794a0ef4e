package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/mnstudio/quote-studio/internal/domain"
	"github.com/mnstudio/quote-studio/internal/platform/logging"
)

// GetTraceID extracts the OpenTelemetry trace ID from the request context.
// Returns empty string when no span is recording.
func GetTraceID(c *gin.Context) string {
	span := trace.SpanFromContext(c.Request.Context())
	if !span.SpanContext().HasTraceID() {
		return ""
	}

	return span.SpanContext().TraceID().String()
}

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown errors are mapped to 500 Internal Server Error with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())
		// Extract field details if available
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Error.Details = map[string]string{
				validationErr.Field: validationErr.Message,
			}
		}

		return http.StatusBadRequest, resp

	case domain.IsUnauthorized(err):
		return http.StatusUnauthorized, NewErrorResponse(ErrorCodeUnauthorized, err.Error())

	case domain.IsForbidden(err):
		return http.StatusForbidden, NewErrorResponse(ErrorCodeForbidden, err.Error())

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable, err.Error())

	default:
		// Unknown errors get a generic message to avoid leaking internals
		return http.StatusInternalServerError, NewErrorResponse(
			ErrorCodeInternal,
			"an internal error occurred",
		)
	}
}

// HandleError writes an error response for a domain error, enriching it
// with the trace ID when available. Internal errors are logged with full
// details before the generic response goes out.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)

	if traceID := GetTraceID(c); traceID != "" {
		resp.TraceID = traceID
	}

	if status == http.StatusInternalServerError {
		logger := logging.FromContext(c.Request.Context())
		logger.Error("internal error",
			"error", err.Error(),
			"trace_id", resp.TraceID,
		)
	}

	c.JSON(status, resp)
}

// HandleBindingError writes the response for a failed bind-and-validate.
// Validation failures get field-level details; anything else is a
// malformed body.
func HandleBindingError(c *gin.Context, err error) {
	if IsValidationError(err) {
		resp := NewErrorResponseWithDetails(
			ErrorCodeValidation,
			"request validation failed",
			ValidationErrors(err),
		)

		if traceID := GetTraceID(c); traceID != "" {
			resp.TraceID = traceID
		}

		c.JSON(http.StatusBadRequest, resp)

		return
	}

	resp := NewErrorResponse(ErrorCodeBadRequest, "malformed request body")

	if traceID := GetTraceID(c); traceID != "" {
		resp.TraceID = traceID
	}

	c.JSON(http.StatusBadRequest, resp)
}
