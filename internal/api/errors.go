package api

import (
	"errors"
	"net/http"

	"github.com/johnwards/portaldiff/internal/hubspot"
	"github.com/johnwards/portaldiff/internal/store"
)

// Error categories reported in the response envelope.
const (
	CategoryValidationError = "VALIDATION_ERROR"
	CategoryNotFound        = "NOT_FOUND"
	CategoryUpstreamError   = "UPSTREAM_ERROR"
	CategoryInternalError   = "INTERNAL_ERROR"
)

// Error represents an error response envelope.
type Error struct {
	Status        string        `json:"status"`
	Message       string        `json:"message"`
	CorrelationID string        `json:"correlationId"`
	Category      string        `json:"category"`
	Errors        []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail represents a single error within an Error, typically one form
// field.
type ErrorDetail struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	In      string `json:"in,omitempty"`
}

// NewNotFoundError creates a 404 error with the NOT_FOUND category.
func NewNotFoundError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryNotFound,
	}
}

// NewValidationError creates a 400 error with the VALIDATION_ERROR category.
func NewValidationError(message, correlationID string, details []ErrorDetail) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryValidationError,
		Errors:        details,
	}
}

// NewUpstreamError creates a 502 error with the UPSTREAM_ERROR category.
func NewUpstreamError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryUpstreamError,
	}
}

// NewInternalError creates a 500 error with the INTERNAL_ERROR category.
func NewInternalError(message, correlationID string) *Error {
	return &Error{
		Status:        "error",
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryInternalError,
	}
}

// WriteError writes an Error as a JSON response with the given HTTP status code.
func WriteError(w http.ResponseWriter, statusCode int, apiErr *Error) {
	WriteJSON(w, statusCode, apiErr)
}

// HandleServiceError maps errors surfacing from the portal service onto the
// envelope: missing or expired sessions become 404, upstream API failures
// 502, anything else 500.
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	corrID := CorrelationID(r.Context())
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		WriteError(w, http.StatusNotFound, NewNotFoundError("Session not found or expired", corrID))
	case hubspot.IsUpstream(err):
		WriteError(w, http.StatusBadGateway, NewUpstreamError("HubSpot request failed: "+err.Error(), corrID))
	default:
		WriteError(w, http.StatusInternalServerError, NewInternalError("Internal Server Error", corrID))
	}
}
