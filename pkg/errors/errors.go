package errors

import (
	"fmt"
	"net/http"
)

// AppError is the explicit error-kind type every operation returns. It is
// mapped to a transport status code at the boundary only; services never
// write HTTP responses themselves.
type AppError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// NewError creates a new application error
func NewError(statusCode int, code string, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

// NewNotFoundError creates a 404 error for a missing entity.
func NewNotFoundError(code string, message string) *AppError {
	return NewError(http.StatusNotFound, code, message)
}

// NewConflictError creates a 400 error for uniqueness conflicts
// (the API reports duplicate email as 400, not 409).
func NewConflictError(code string, message string) *AppError {
	return NewError(http.StatusBadRequest, code, message)
}

// NewUnauthorizedError creates a 401 error for missing or expired sessions.
func NewUnauthorizedError(code string, message string) *AppError {
	return NewError(http.StatusUnauthorized, code, message)
}

// NewForbiddenError creates a 403 error (bad room password, room full).
func NewForbiddenError(code string, message string) *AppError {
	return NewError(http.StatusForbidden, code, message)
}

// NewInvalidInputError creates a 400 error for validation failures.
func NewInvalidInputError(code string, message string) *AppError {
	return NewError(http.StatusBadRequest, code, message)
}

// NewUpstreamError creates a 500 error wrapping an external collaborator
// failure (LLM call, auth verification service).
func NewUpstreamError(code string, message string) *AppError {
	return NewError(http.StatusInternalServerError, code, message)
}

// FromError converts any error to an AppError. Errors that are not already
// AppErrors become upstream failures carrying the original text.
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewUpstreamError("INTERNAL_ERROR", err.Error())
}

// Is reports whether err is an AppError with the same code as target.
func Is(err error, target *AppError) bool {
	appErr, ok := err.(*AppError)
	if !ok {
		return false
	}
	return appErr.Code == target.Code
}

// GetStatusCode extracts the HTTP status code, defaulting to 500.
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
