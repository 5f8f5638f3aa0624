package persistence

import (
	"context"
	"time"

	"github.com/ledgerworks/budget-ledger/internal/domain/entity"
)

// TransactionRepository defines the store capability for realized purchases
type TransactionRepository interface {
	// Create persists a new transaction and fills in its generated ID
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetByID retrieves a transaction by id
	//
	// Possible errors:
	// - ErrTransactionNotFound
	// - ErrDatabaseConnection
	GetByID(ctx context.Context, id uint64) (*entity.Transaction, error)

	// UpdateName sets the transaction's display name
	UpdateName(ctx context.Context, id uint64, name string) error

	// UpdateCost sets the transaction's cost in cents
	UpdateCost(ctx context.Context, id uint64, costInCents int64) error

	// UpdateDate sets the transaction's calendar date
	UpdateDate(ctx context.Context, id uint64, date time.Time) error

	// Reassign re-points a single transaction to another category
	Reassign(ctx context.Context, id uint64, categoryID uint64) error

	// ReassignAll bulk re-points every transaction of a user from one
	// category to another; used by category delete-with-merge
	ReassignAll(ctx context.Context, userID, oldCategoryID, newCategoryID uint64) error

	// CountByCategory returns the number of live transactions in a category.
	// This count, not the spend total, decides whether a category is empty.
	CountByCategory(ctx context.Context, categoryID uint64) (int64, error)

	// Delete removes the transaction row
	Delete(ctx context.Context, id uint64) error

	// ListByUser returns all transactions owned by the user
	ListByUser(ctx context.Context, userID uint64) ([]*entity.Transaction, error)

	// SumInRange returns the total cost of the user's transactions with
	// dates inside [begin, end]
	SumInRange(ctx context.Context, userID uint64, begin, end time.Time) (int64, error)

	// TopByCost returns the user's most expensive transactions inside
	// [begin, end], most expensive first
	TopByCost(ctx context.Context, userID uint64, begin, end time.Time, limit int) ([]*entity.Transaction, error)
}
