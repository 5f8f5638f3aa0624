package entity

import (
	"strings"
	"time"

	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
)

// DateLayout is the wire format for transaction dates and payment due dates
const DateLayout = "2006-01-02"

// Transaction is a realized purchase. Its cost accrues into the owning
// category's running spend total. The category is referenced by stable id;
// the display name lives on the category row so a future rename never has
// to rewrite transaction rows.
type Transaction struct {
	ID         uint64
	UserID     uint64
	CategoryID uint64
	Name       string
	Cost       int64 // cents
	Date       time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewTransaction creates a transaction bound to a category id
func NewTransaction(userID, categoryID uint64, name string, costInCents int64, date time.Time, timeProvider coreport.TimeProvider) (*Transaction, error) {
	name = strings.TrimSpace(name)
	if userID == 0 || categoryID == 0 || name == "" {
		return nil, errs.ErrInvalidRequest
	}

	now := timeProvider.Now()
	return &Transaction{
		UserID:     userID,
		CategoryID: categoryID,
		Name:       name,
		Cost:       costInCents,
		Date:       date,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// ParseDate parses a wire-format calendar date
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, errs.ErrInvalidRequest
	}
	return t, nil
}

// FormattedCost returns the cost as a decimal string
func (t *Transaction) FormattedCost() string {
	return FormatCents(t.Cost)
}
