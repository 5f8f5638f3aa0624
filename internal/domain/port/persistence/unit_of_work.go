package persistence

import (
	"context"
)

// UnitOfWork coordinates the multi-write ledger operations so that the
// entity-row write and the spend adjustments belonging to one logical
// operation commit or roll back together.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetCategoryRepository returns a category repository bound to the current transaction
	GetCategoryRepository(ctx context.Context) CategoryRepository

	// GetTransactionRepository returns a transaction repository bound to the current transaction
	GetTransactionRepository(ctx context.Context) TransactionRepository

	// GetPaymentRepository returns a payment repository bound to the current transaction
	GetPaymentRepository(ctx context.Context) PaymentRepository

	// GetUserRepository returns a user repository bound to the current transaction
	GetUserRepository(ctx context.Context) UserRepository
}

// Resetter wipes every table back to its empty state. Operator tooling only.
type Resetter interface {
	ResetAll(ctx context.Context) error
}
