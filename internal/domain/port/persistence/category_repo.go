package persistence

import (
	"context"

	"github.com/ledgerworks/budget-ledger/internal/domain/entity"
)

// CategoryRepository defines the store capability for budget categories.
// The spend ledger engine only ever moves the running total through
// UpdateSpent inside a unit-of-work scope.
type CategoryRepository interface {
	// Create persists a new category and fills in its generated ID
	//
	// Possible errors:
	// - ErrDuplicateCategory: if the user already has a category with that name
	// - ErrDatabaseConnection
	Create(ctx context.Context, category *entity.Category) error

	// GetByName retrieves a user's category by its display name
	//
	// Possible errors:
	// - ErrCategoryNotFound
	// - ErrDatabaseConnection
	GetByName(ctx context.Context, userID uint64, name string) (*entity.Category, error)

	// GetByNameLocked retrieves a category and takes an exclusive row lock.
	// Only meaningful when the repository is bound to a unit-of-work scope;
	// the lock serializes concurrent spend adjustments on the same category.
	GetByNameLocked(ctx context.Context, userID uint64, name string) (*entity.Category, error)

	// GetByIDLocked retrieves a category by id and takes an exclusive row lock
	GetByIDLocked(ctx context.Context, id uint64) (*entity.Category, error)

	// UpdateSpent writes the category's running spend total
	//
	// Possible errors:
	// - ErrCategoryNotFound
	// - ErrDatabaseConnection
	UpdateSpent(ctx context.Context, categoryID uint64, spentInCents int64) error

	// UpdateBudget writes the category's budget ceiling
	UpdateBudget(ctx context.Context, categoryID uint64, budgetInCents int64) error

	// Delete removes the category row
	Delete(ctx context.Context, categoryID uint64) error

	// ListByUser returns all categories owned by the user
	ListByUser(ctx context.Context, userID uint64) ([]*entity.Category, error)
}
