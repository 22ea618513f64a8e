// Package errors provides custom error types for the Debentra API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Series errors.
var (
	ErrSeriesNotFound     = &AppError{Code: "SERIES_NOT_FOUND", Message: "Series not found", StatusCode: http.StatusNotFound}
	ErrDuplicateSeries    = &AppError{Code: "DUPLICATE_SERIES", Message: "A series with this name already exists", StatusCode: http.StatusConflict}
	ErrSeriesNotDeletable = &AppError{Code: "SERIES_NOT_DELETABLE", Message: "Only draft or upcoming series can be deleted", StatusCode: http.StatusConflict}
	ErrSeriesRejected     = &AppError{Code: "SERIES_REJECTED", Message: "Series has been rejected and is closed to changes", StatusCode: http.StatusConflict}
	ErrInvalidDateFormat  = &AppError{Code: "INVALID_DATE_FORMAT", Message: "Date must be DD/MM/YYYY or ISO 8601", StatusCode: http.StatusBadRequest}
)

// Investor & ledger errors.
var (
	ErrInvestorNotFound    = &AppError{Code: "INVESTOR_NOT_FOUND", Message: "Investor not found", StatusCode: http.StatusNotFound}
	ErrDuplicateInvestorID = &AppError{Code: "DUPLICATE_INVESTOR_ID", Message: "An investor with this investor ID already exists", StatusCode: http.StatusConflict}
	ErrInvestorDeleted     = &AppError{Code: "INVESTOR_DELETED", Message: "Investor account has been deleted and is read-only", StatusCode: http.StatusConflict}
	ErrBelowMinimum        = &AppError{Code: "BELOW_MINIMUM", Message: "Amount is below the series minimum investment", StatusCode: http.StatusBadRequest}
	ErrNotInvested         = &AppError{Code: "NOT_INVESTED", Message: "Investor holds no investment in this series", StatusCode: http.StatusBadRequest}
	ErrInvariantViolation  = &AppError{Code: "INVARIANT_VIOLATION", Message: "Ledger aggregates are inconsistent", StatusCode: http.StatusInternalServerError}
)

// Compliance errors.
var (
	ErrInvalidBucketCounts = &AppError{Code: "INVALID_BUCKET_COUNTS", Message: "Completed count cannot exceed total", StatusCode: http.StatusBadRequest}
	ErrUnknownPhase        = &AppError{Code: "UNKNOWN_PHASE", Message: "Compliance phase must be pre, post or recurring", StatusCode: http.StatusBadRequest}
)
