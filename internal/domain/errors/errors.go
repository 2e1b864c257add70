// Package errors defines the application error taxonomy. Every failure a
// service raises carries an HTTP status, a stable business code and a
// user-facing message; the HTTP error handler maps it to the wire unchanged.
package errors

import (
	"net/http"

	"trailhub/internal/errors"
)

// AppError defines the interface for application-specific errors.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message.
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy of the error carrying detailed information.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// WithMessage returns a copy of the error with a different user-facing message.
// Used where the message embeds runtime data, e.g. the provider name.
func (e *BaseError) WithMessage(message string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   message,
		details:   e.details,
	}
}

// Predefined error types
var (
	// Account-related errors
	ErrAccountNotFound = NewBaseError(
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"account not found",
		"",
	)

	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"an account already exists with this email",
		"",
	)

	ErrAccountInactive = NewBaseError(
		http.StatusBadRequest,
		"ACCOUNT_INACTIVE",
		"this account is inactive",
		"",
	)

	ErrReservedRole = NewBaseError(
		http.StatusForbidden,
		"RESERVED_ROLE",
		"this role cannot be self-registered",
		"",
	)

	ErrWrongProvider = NewBaseError(
		http.StatusBadRequest,
		"WRONG_PROVIDER",
		"this account uses a different login provider",
		"",
	)

	// Credential errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"password is incorrect",
		"",
	)

	ErrInvalidOTP = NewBaseError(
		http.StatusBadRequest,
		"INVALID_OTP",
		"invalid OTP",
		"",
	)

	ErrOTPExpired = NewBaseError(
		http.StatusBadRequest,
		"OTP_EXPIRED",
		"OTP expired",
		"",
	)

	// Token errors
	ErrMissingToken = NewBaseError(
		http.StatusUnauthorized,
		"MISSING_TOKEN",
		"you are not authorized",
		"",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"invalid or expired token",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusForbidden,
		"REFRESH_TOKEN_INVALID",
		"invalid or expired refresh token",
		"",
	)

	ErrRefreshTokenMismatch = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_MISMATCH",
		"refresh token does not match the active session",
		"",
	)

	// Authorization errors
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"access denied",
		"",
	)

	ErrInactiveAccount = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_INACTIVE",
		"this account is inactive",
		"",
	)

	// Catalog errors
	ErrEventNotFound = NewBaseError(
		http.StatusNotFound,
		"EVENT_NOT_FOUND",
		"event not found",
		"",
	)

	ErrEventNotCompleted = NewBaseError(
		http.StatusBadRequest,
		"EVENT_NOT_COMPLETED",
		"only completed events can be removed",
		"",
	)

	ErrNotEventOwner = NewBaseError(
		http.StatusForbidden,
		"NOT_EVENT_OWNER",
		"this event belongs to another vendor",
		"",
	)

	// Validation errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	// Email dispatch errors
	ErrEmailDispatchFailed = NewBaseError(
		http.StatusInternalServerError,
		"EMAIL_DISPATCH_FAILED",
		"failed to send email",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error.
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface.
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code.
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code.
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message.
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information.
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
