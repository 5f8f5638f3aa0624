package entity

import (
	"strings"
	"time"

	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
)

// RecurringPayment is a scheduled future obligation. It never accrues into a
// category's spend total on any path, so unlike Transaction it keeps a
// denormalized category name: deleting a category deliberately leaves its
// payments untouched.
type RecurringPayment struct {
	ID        uint64
	UserID    uint64
	Category  string
	Name      string
	Cost      int64 // cents
	DueDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRecurringPayment creates a recurring payment record
func NewRecurringPayment(userID uint64, category, name string, costInCents int64, dueDate time.Time, timeProvider coreport.TimeProvider) (*RecurringPayment, error) {
	category = strings.TrimSpace(category)
	name = strings.TrimSpace(name)
	if userID == 0 || category == "" || name == "" {
		return nil, errs.ErrInvalidRequest
	}

	now := timeProvider.Now()
	return &RecurringPayment{
		UserID:    userID,
		Category:  category,
		Name:      name,
		Cost:      costInCents,
		DueDate:   dueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// FormattedCost returns the cost as a decimal string
func (p *RecurringPayment) FormattedCost() string {
	return FormatCents(p.Cost)
}
