// Package errors provides custom error types for the Milyem API.
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
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked", StatusCode: http.StatusLocked}
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

// Manufacturer errors.
var (
	ErrManufacturerNotFound = &AppError{Code: "MANUFACTURER_NOT_FOUND", Message: "Manufacturer not found", StatusCode: http.StatusNotFound}
	ErrManufacturerInUse    = &AppError{Code: "MANUFACTURER_IN_USE", Message: "Manufacturer has existing analyses", StatusCode: http.StatusConflict}
)

// Market rate errors.
var (
	ErrNoMarketRate    = &AppError{Code: "NO_MARKET_RATE", Message: "No market rate snapshot recorded yet", StatusCode: http.StatusConflict}
	ErrRateFetchFailed = &AppError{Code: "RATE_FETCH_FAILED", Message: "Failed to fetch market rates from provider", StatusCode: http.StatusBadGateway}
)

// Reference table errors.
var (
	ErrRateRowNotFound = &AppError{Code: "RATE_ROW_NOT_FOUND", Message: "Rate table entry not found", StatusCode: http.StatusNotFound}
	ErrSharedReadOnly  = &AppError{Code: "SHARED_READ_ONLY", Message: "Shared rate table entries cannot be modified", StatusCode: http.StatusForbidden}
)

// Analysis errors.
var (
	ErrAnalysisNotFound = &AppError{Code: "ANALYSIS_NOT_FOUND", Message: "Analysis not found", StatusCode: http.StatusNotFound}
	ErrUnknownKarat     = &AppError{Code: "UNKNOWN_KARAT", Message: "Unknown karat label", StatusCode: http.StatusBadRequest}
)

// Batch errors.
var (
	ErrBatchNotFound = &AppError{Code: "BATCH_NOT_FOUND", Message: "Batch not found", StatusCode: http.StatusNotFound}
	ErrBatchNotEmpty = &AppError{Code: "BATCH_NOT_EMPTY", Message: "Batch still contains analyses", StatusCode: http.StatusConflict}
	ErrEmptyBatch    = &AppError{Code: "EMPTY_BATCH", Message: "Batch has no analyses to report", StatusCode: http.StatusConflict}
)

// Report errors.
var (
	ErrMailNotConfigured = &AppError{Code: "MAIL_NOT_CONFIGURED", Message: "SMTP is not configured", StatusCode: http.StatusConflict}
	ErrMailSendFailed    = &AppError{Code: "MAIL_SEND_FAILED", Message: "Failed to send report email", StatusCode: http.StatusBadGateway}
)
