package entity

import (
	"strings"
	"time"

	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
)

// UncategorizedName is the reserved category every user owns. It is created
// at registration, carries no budget ceiling, and is never deletable.
const UncategorizedName = "Uncategorized"

// Category is a named per-user budget bucket. The spent field is a running
// total of realized transaction costs and must only be moved through the
// delta methods so the ledger invariant (spent == sum of live transaction
// costs) survives every mutation path.
type Category struct {
	ID          uint64
	UserID      uint64
	Name        string
	TotalBudget *int64 // budget ceiling in cents; nil only for Uncategorized
	spent       int64  // running total in cents (private)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory creates a category for a user. A nil budget is only accepted
// for the reserved Uncategorized category.
func NewCategory(userID uint64, name string, totalBudget *int64, timeProvider coreport.TimeProvider) (*Category, error) {
	name = strings.TrimSpace(name)
	if userID == 0 || name == "" {
		return nil, errs.ErrInvalidRequest
	}
	if totalBudget == nil && name != UncategorizedName {
		return nil, errs.ErrInvalidRequest
	}

	now := timeProvider.Now()
	return &Category{
		UserID:      userID,
		Name:        name,
		TotalBudget: totalBudget,
		spent:       0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsProtected reports whether this is the reserved category that can never
// be deleted or budget-edited.
func (c *Category) IsProtected() bool {
	return c.Name == UncategorizedName
}

// Spent returns the running total in cents
func (c *Category) Spent() int64 {
	return c.spent
}

// FormattedSpent returns the running total as a decimal string
func (c *Category) FormattedSpent() string {
	return FormatCents(c.spent)
}

// SetSpent sets the running total directly (for repositories rehydrating rows)
func (c *Category) SetSpent(spentInCents int64) {
	c.spent = spentInCents
}

// Accrue applies a signed cost delta to the running total. Negative deltas
// back out previously accrued cost on update and delete paths.
func (c *Category) Accrue(deltaInCents int64, timeProvider coreport.TimeProvider) {
	c.spent += deltaInCents
	c.UpdatedAt = timeProvider.Now()
}

// SetBudget replaces the budget ceiling. Rejected for the protected category.
func (c *Category) SetBudget(budgetInCents int64, timeProvider coreport.TimeProvider) error {
	if c.IsProtected() {
		return errs.ErrCategoryProtected
	}
	c.TotalBudget = &budgetInCents
	c.UpdatedAt = timeProvider.Now()
	return nil
}
