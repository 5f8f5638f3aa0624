package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
)

func TestParseAmount(t *testing.T) {
	t.Run("Valid amounts", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected int64
		}{
			{"100.00", 10000},
			{"0.01", 1},
			{"0.10", 10},
			{"1", 100},
			{"1.5", 150},
			{"12.50", 1250},
			{"1234567.89", 123456789},
			{"0.00", 0},
			{"0", 0},
			{"10.", 1000},
			{"-1.00", -100},
			{"-0.01", -1},
			{" 42.00 ", 4200},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				cents, err := ParseAmount(tc.input)
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, cents)
			})
		}
	})

	t.Run("Invalid amounts", func(t *testing.T) {
		testCases := []struct {
			input       string
			errorType   error
			description string
		}{
			{"", errs.ErrInvalidAmount, "Empty string"},
			{"   ", errs.ErrInvalidAmount, "Whitespace only"},
			{"-", errs.ErrInvalidAmount, "Bare sign"},
			{"1.234", errs.ErrInvalidAmount, "Too many decimal places"},
			{"abc", errs.ErrInvalidAmount, "Non-numeric"},
			{"1,000.00", errs.ErrInvalidAmount, "Comma as thousands separator"},
			{"1.00.00", errs.ErrInvalidAmount, "Multiple decimal points"},
			{"$100", errs.ErrInvalidAmount, "Currency symbol"},
			{"92233720368547758.08", errs.ErrAmountOverflow, "Beyond int64 cents"},
		}

		for _, tc := range testCases {
			t.Run(tc.description, func(t *testing.T) {
				_, err := ParseAmount(tc.input)
				assert.Error(t, err)
				assert.ErrorIs(t, err, tc.errorType)
			})
		}
	})
}

func TestFormatCents(t *testing.T) {
	testCases := []struct {
		cents    int64
		expected string
	}{
		{1015, "10.15"},
		{1000, "10.00"},
		{1, "0.01"},
		{10, "0.10"},
		{0, "0.00"},
		{-1250, "-12.50"},
		{-1, "-0.01"},
		{123456789, "1234567.89"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatCents(tc.cents))
		})
	}
}

func TestFormatBudget(t *testing.T) {
	limit := int64(20000)
	assert.Equal(t, "200.00", FormatBudget(&limit))
	assert.Equal(t, "unlimited", FormatBudget(nil))
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-03-15")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDate("15/03/2024")
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)

	_, err = ParseDate("")
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)
}
