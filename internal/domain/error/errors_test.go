package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestBaseErrorTypes(t *testing.T) {
	// Test to ensure all base error types are defined properly
	if ErrInvalidAmount.Error() != "invalid amount format" {
		t.Errorf("ErrInvalidAmount has unexpected message: %s", ErrInvalidAmount.Error())
	}
	if ErrCategoryNotFound.Error() != "budget category not found" {
		t.Errorf("ErrCategoryNotFound has unexpected message: %s", ErrCategoryNotFound.Error())
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InvalidAmount", ErrInvalidAmount, 4001},
		{"AmountOverflow", ErrAmountOverflow, 4001},
		{"InvalidRequest", ErrInvalidRequest, 4002},
		{"InvalidCredentials", ErrInvalidCredentials, 4010},
		{"Unauthorized", ErrUnauthorized, 4011},
		{"UserNotFound", ErrUserNotFound, 4040},
		{"CategoryNotFound", ErrCategoryNotFound, 4041},
		{"TransactionNotFound", ErrTransactionNotFound, 4042},
		{"DuplicateUser", ErrDuplicateUser, 4090},
		{"DuplicateCategory", ErrDuplicateCategory, 4091},
		{"CategoryProtected", ErrCategoryProtected, 4220},
		{"ReplacementRequired", ErrReplacementRequired, 4221},
		{"SameCategory", ErrSameCategory, 4221},
		{"UnknownError", errors.New("unknown error"), 5000},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrCategoryNotFound), 4041},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := ErrorCode(tc.err)
			if code != tc.expected {
				t.Errorf("ErrorCode(%v) = %d, want %d", tc.err, code, tc.expected)
			}
		})
	}
}

func TestLedgerError(t *testing.T) {
	baseErr := ErrDatabaseConnection
	ledgerErr := &LedgerError{
		UserID:    123,
		Category:  "Food",
		DeltaCent: 1250,
		Err:       baseErr,
	}

	// Test Error method
	expectedErrMsg := "spend ledger operation failed for user 123 (category: Food, delta: 1250 cents): database connection error"
	if ledgerErr.Error() != expectedErrMsg {
		t.Errorf("LedgerError.Error() = %s, want %s", ledgerErr.Error(), expectedErrMsg)
	}

	// Test Unwrap method
	if !errors.Is(ledgerErr, baseErr) {
		t.Errorf("errors.Is(ledgerErr, baseErr) = false, want true")
	}

	// Log fields carry the delta and the underlying code
	fields := ledgerErr.LogFields()
	if fields["delta"] != int64(1250) {
		t.Errorf("LogFields delta = %v, want 1250", fields["delta"])
	}
	if fields["error_code"] != CodeInternalServer {
		t.Errorf("LogFields error_code = %v, want %d", fields["error_code"], CodeInternalServer)
	}
}

func TestIsNotFoundError(t *testing.T) {
	notFound := []error{ErrNotFound, ErrUserNotFound, ErrCategoryNotFound, ErrTransactionNotFound, ErrPaymentNotFound}
	for _, err := range notFound {
		if !IsNotFoundError(err) {
			t.Errorf("IsNotFoundError(%v) = false, want true", err)
		}
	}

	if IsNotFoundError(ErrDuplicateCategory) {
		t.Error("IsNotFoundError(ErrDuplicateCategory) = true, want false")
	}
	if !IsNotFoundError(fmt.Errorf("context: %w", ErrPaymentNotFound)) {
		t.Error("IsNotFoundError should see through wrapping")
	}
}

func TestIsConflictError(t *testing.T) {
	if !IsConflictError(ErrDuplicateUser) || !IsConflictError(ErrDuplicateCategory) {
		t.Error("duplicate errors should count as conflicts")
	}
	if IsConflictError(ErrCategoryNotFound) {
		t.Error("IsConflictError(ErrCategoryNotFound) = true, want false")
	}
}
