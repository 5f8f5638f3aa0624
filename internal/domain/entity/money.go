package entity

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
)

// Monetary values are carried as int64 cents everywhere inside the service to
// avoid floating point drift in the running spend totals.

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// ParseAmount validates a decimal string amount and converts it to cents.
// Uses a string-based approach to handle decimal places:
// - If no decimal point: appends ".00" and removes the point to get an integer
// - If one digit after decimal: appends a "0" and removes the point
// - If two digits after decimal: just removes the point
// Returns the amount in cents and an error if validation fails.
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	negative := strings.HasPrefix(amount, "-")
	if negative {
		amount = amount[1:]
		if len(amount) == 0 {
			return 0, fmt.Errorf("%w: bare sign", errs.ErrInvalidAmount)
		}
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	var integerValue string

	if len(parts) == 1 {
		// No decimal point - add ".00"
		integerValue = parts[0] + "00"
	} else {
		switch len(parts[1]) {
		case 0:
			// Like "10." - add "00"
			integerValue = parts[0] + "00"
		case 1:
			// One digit after decimal - add one zero
			integerValue = parts[0] + parts[1] + "0"
		case 2:
			integerValue = parts[0] + parts[1]
		default:
			return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
		}
	}

	value, err := strconv.ParseInt(integerValue, 10, 64)
	if err != nil {
		if strings.Contains(err.Error(), "value out of range") {
			return 0, errs.ErrAmountOverflow
		}
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	if negative {
		value = -value
	}
	return value, nil
}

// FormatCents converts an integer cent amount to a decimal string.
// For example:
// - 1015 becomes "10.15"
// - 1000 becomes "10.00"
func FormatCents(amountInCents int64) string {
	isNegative := amountInCents < 0
	if isNegative {
		amountInCents = -amountInCents
	}

	amountStr := strconv.FormatInt(amountInCents, 10)

	for len(amountStr) < 3 {
		amountStr = "0" + amountStr
	}

	decimalPos := len(amountStr) - 2
	wholePart := amountStr[:decimalPos]
	decimalPart := amountStr[decimalPos:]

	if isNegative {
		return "-" + wholePart + "." + decimalPart
	}
	return wholePart + "." + decimalPart
}

// FormatBudget renders an optional budget ceiling; a nil budget means unbounded
func FormatBudget(budgetInCents *int64) string {
	if budgetInCents == nil {
		return "unlimited"
	}
	return FormatCents(*budgetInCents)
}
