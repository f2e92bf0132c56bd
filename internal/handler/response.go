package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet/internal/repository"
	"fleet/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrStaffNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidCarID),
		errors.Is(err, service.ErrInvalidStaffCode),
		errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrInvalidStationType),
		errors.Is(err, service.ErrInvalidReportMonth):
		return http.StatusBadRequest

	// Invariant violations
	case errors.Is(err, service.ErrMileageRegression),
		errors.Is(err, service.ErrBatteryRegression):
		return http.StatusUnprocessableEntity

	// Conflict errors - a concurrent transition won
	case errors.Is(err, service.ErrAlreadyInProgress),
		errors.Is(err, service.ErrAlreadyReturned),
		errors.Is(err, service.ErrNoActiveSession):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
