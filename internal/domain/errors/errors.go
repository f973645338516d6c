package errors

import (
	"net/http"

	"quill/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}

	return e.message
}

// Is matches errors carrying the same business code, so a WithDetails copy
// still satisfies errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// ErrValidation is a client-side field constraint violation. It never reaches the network.
	ErrValidation = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Please correct the highlighted fields",
		"",
	)

	// ErrAuth is an identity-provider rejection (failed OTP send, invalid credentials).
	ErrAuth = NewBaseError(
		http.StatusUnauthorized,
		"AUTH_FAILED",
		"We could not sign you in. Please try again",
		"",
	)

	// ErrExchange is returned when an authorization code is missing, expired or already consumed.
	ErrExchange = NewBaseError(
		http.StatusUnauthorized,
		"EXCHANGE_FAILED",
		"Your sign-in link is invalid or has expired",
		"",
	)

	// ErrStore is a GraphQL transport or resolver failure.
	ErrStore = NewBaseError(
		http.StatusBadGateway,
		"STORE_ERROR",
		"Something went wrong. Please try again later",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"The page you are looking for does not exist",
		"",
	)

	// ErrAuthorization means the caller acted on a record they do not own.
	ErrAuthorization = NewBaseError(
		http.StatusForbidden,
		"NOT_OWNER",
		"You are not allowed to change this",
		"",
	)

	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"Please sign in to continue",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Something went wrong. Please try again later",
		"",
	)
)

// FieldError describes one invalid form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries per-field messages so forms can render them inline.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates a ValidationError from field messages.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Message()
	}

	msg := "validation failed:"
	for _, f := range e.Fields {
		msg += " " + f.Field + ": " + f.Message + ";"
	}

	return msg
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) HTTPCode() int     { return ErrValidation.HTTPCode() }
func (e *ValidationError) ErrorCode() string { return ErrValidation.ErrorCode() }
func (e *ValidationError) Message() string   { return ErrValidation.Message() }
func (e *ValidationError) Details() string   { return e.Error() }

// ByField returns the messages keyed by field name.
func (e *ValidationError) ByField() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := out[f.Field]; !ok {
			out[f.Field] = f.Message
		}
	}

	return out
}

// StoreExecuteError represents a failed GraphQL call, implementing the AppError interface
type StoreExecuteError struct {
	err     error
	details string
}

// NewStoreExecuteError creates a store-related error
func NewStoreExecuteError(err error, details string) AppError {
	return &StoreExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *StoreExecuteError) Error() string {
	return errors.Wrap(e.err, "store execution failed").Error()
}

// Unwrap exposes the transport error.
func (e *StoreExecuteError) Unwrap() error {
	return e.err
}

// Is lets errors.Is(err, ErrStore) match.
func (e *StoreExecuteError) Is(target error) bool {
	return target == ErrStore
}

// HTTPCode returns the HTTP status code
func (e *StoreExecuteError) HTTPCode() int {
	return ErrStore.HTTPCode()
}

// ErrorCode returns the business error code
func (e *StoreExecuteError) ErrorCode() string {
	return ErrStore.ErrorCode()
}

// Message returns the user-friendly error message
func (e *StoreExecuteError) Message() string {
	return ErrStore.Message()
}

// Details returns detailed error information
func (e *StoreExecuteError) Details() string {
	return e.details
}

// DatabaseExecuteError represents a session backend failure, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return ErrInternalError.Message()
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
