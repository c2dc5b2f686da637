package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrReviewNotFound is returned when a review is not found.
	ErrReviewNotFound = errors.New("review not found")
	// ErrAdminNotFound is returned when an admin account is not found.
	ErrAdminNotFound = errors.New("admin not found")
	// ErrInvalidCredentials is returned on any authentication failure.
	// It is deliberately generic: callers cannot tell whether the username
	// or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrBackupUnavailable is returned when a table file does not exist yet.
	ErrBackupUnavailable = errors.New("backup not available")
)

// ValidationError reports rejected input. Fields lists the offending field
// names when the failure is about missing fields.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// MissingFields builds a ValidationError listing every absent field.
func MissingFields(fields []string) *ValidationError {
	return &ValidationError{
		Message: "missing required fields: " + strings.Join(fields, ", "),
		Fields:  fields,
	}
}

// InvalidRating builds a ValidationError for an out-of-range rating.
func InvalidRating() *ValidationError {
	return &ValidationError{
		Message: "rating must be a number between 1 and 5",
		Fields:  []string{"rating"},
	}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return NewHTTPError(http.StatusBadRequest, vErr.Message, "VALIDATION_ERROR")
	}
	switch {
	case errors.Is(err, ErrReviewNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REVIEW_NOT_FOUND")
	case errors.Is(err, ErrAdminNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ADMIN_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrBackupUnavailable):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BACKUP_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
