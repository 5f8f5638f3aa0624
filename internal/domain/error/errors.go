package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidAmount       = 4001
	CodeInvalidRequest      = 4002
	CodeInvalidCredentials  = 4010
	CodeUnauthorized        = 4011
	CodeUserNotFound        = 4040
	CodeCategoryNotFound    = 4041
	CodeTransactionNotFound = 4042
	CodePaymentNotFound     = 4043
	CodeDuplicateUser       = 4090
	CodeDuplicateCategory   = 4091
	CodeCategoryProtected   = 4220
	CodeReplacementRequired = 4221

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrInvalidAmount is returned when a monetary amount has an invalid format
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrAmountOverflow is returned when the amount is too large and would cause overflow
	ErrAmountOverflow = errors.New("amount is too large and would cause overflow")

	// ErrInvalidRequest is returned when required fields are missing or malformed
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidCredentials is returned when a username/password pair does not match
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthorized is returned when the bearer token is missing or invalid
	ErrUnauthorized = errors.New("missing or invalid access token")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrCategoryNotFound is returned when the requested budget category doesn't exist
	ErrCategoryNotFound = errors.New("budget category not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrPaymentNotFound is returned when the requested recurring payment doesn't exist
	ErrPaymentNotFound = errors.New("recurring payment not found")

	// ErrDuplicateUser is returned when the username is already taken
	ErrDuplicateUser = errors.New("user already exists")

	// ErrDuplicateCategory is returned when the user already has a category with that name
	ErrDuplicateCategory = errors.New("budget category already exists")

	// ErrCategoryProtected is returned for delete/budget edits on the Uncategorized category
	ErrCategoryProtected = errors.New("category cannot be modified or deleted")

	// ErrReplacementRequired is returned when deleting a non-empty category without a replacement
	ErrReplacementRequired = errors.New("replacement category required")

	// ErrSameCategory is returned when a replacement category equals the deleted one
	ErrSameCategory = errors.New("replacement category must differ from the deleted category")

	// ErrDatabaseConnection is returned when there's a problem talking to the store
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrAmountOverflow):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrInvalidCredentials):
		return CodeInvalidCredentials
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrCategoryNotFound):
		return CodeCategoryNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrPaymentNotFound):
		return CodePaymentNotFound
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrDuplicateCategory):
		return CodeDuplicateCategory
	case errors.Is(err, ErrCategoryProtected):
		return CodeCategoryProtected
	case errors.Is(err, ErrReplacementRequired), errors.Is(err, ErrSameCategory):
		return CodeReplacementRequired
	default:
		return CodeInternalServer
	}
}

// LedgerError represents a failure while adjusting a category's running spend total
type LedgerError struct {
	UserID    uint64
	Category  string
	DeltaCent int64
	Err       error
}

// Error implements the error interface for LedgerError
func (e *LedgerError) Error() string {
	return fmt.Sprintf("spend ledger operation failed for user %d (category: %s, delta: %d cents): %v",
		e.UserID, e.Category, e.DeltaCent, e.Err)
}

// Unwrap returns the underlying error
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *LedgerError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "ledger_error",
		"user_id":    e.UserID,
		"category":   e.Category,
		"delta":      e.DeltaCent,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewLedgerError creates a detailed spend ledger error
func NewLedgerError(userID uint64, category string, deltaCent int64, err error) error {
	return &LedgerError{
		UserID:    userID,
		Category:  category,
		DeltaCent: deltaCent,
		Err:       err,
	}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrTransactionNotFound) ||
		errors.Is(err, ErrPaymentNotFound)
}

// IsConflictError checks if the error reports a uniqueness conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrDuplicateUser) || errors.Is(err, ErrDuplicateCategory)
}
