package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an application error independently of its message
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindPrecondition
	KindUnauthorized
	KindTooManyRequests
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Kind    Kind   `json:"-"`
	Code    int    `json:"-"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

// Is reports whether target is an AppError of the same kind, so that
// errors.Is(err, ErrConflict) matches any conflict regardless of message.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Common errors
var (
	ErrNotFound       = &AppError{Kind: KindNotFound, Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized   = &AppError{Kind: KindUnauthorized, Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrValidation     = &AppError{Kind: KindValidation, Code: http.StatusBadRequest, Message: "Validation failed"}
	ErrConflict       = &AppError{Kind: KindConflict, Code: http.StatusBadRequest, Message: "Resource already exists"}
	ErrPrecondition   = &AppError{Kind: KindPrecondition, Code: http.StatusBadRequest, Message: "Precondition failed"}
	ErrTooManyRequest = &AppError{Kind: KindTooManyRequests, Code: http.StatusTooManyRequests, Message: "Rate limit exceeded. Please try again later."}
	ErrInternalServer = &AppError{Kind: KindInternal, Code: http.StatusInternalServerError, Message: "Internal server error"}
)

// NewValidationError creates a validation error for a single offending field
func NewValidationError(field, message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    http.StatusBadRequest,
		Message: message,
		Field:   field,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Code:    http.StatusNotFound,
		Message: message,
	}
}

// NewConflictError creates a conflict error with a custom message.
// Conflicts are reported as 400 to stay compatible with existing clients.
func NewConflictError(message string) *AppError {
	return &AppError{
		Kind:    KindConflict,
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewPreconditionError creates an error for requests missing required parameters
func NewPreconditionError(message string) *AppError {
	return &AppError{
		Kind:    KindPrecondition,
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewUnauthorizedError creates an unauthorized error with a custom message
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Kind:    KindUnauthorized,
		Code:    http.StatusUnauthorized,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible. Anything else is
// reported as a generic internal error so causes never leak to clients.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternalServer
}
