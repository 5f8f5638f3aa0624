package database

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
	"github.com/ledgerworks/budget-ledger/internal/domain/port/persistence"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/repository"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const txKey contextKey = "tx"

// UnitOfWork implements the unit of work pattern for database transactions.
// Every ledger operation runs inside one of these scopes so the spend totals
// and their transaction rows move together or not at all.
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) persistence.UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Begin starts a new database transaction and stores it in the context
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	u.logger.Debug("Beginning database transaction", nil)

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the current transaction
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	u.logger.Debug("Committing database transaction", nil)
	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback rolls back the current transaction
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	u.logger.Debug("Rolling back database transaction", nil)

	err := tx.Rollback().Error
	if err != nil && strings.Contains(err.Error(), "already been committed or rolled back") {
		u.logger.Warn("Transaction has already been committed or rolled back", map[string]any{
			"error": err.Error(),
		})
		return nil
	}
	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// GetUserRepository returns a user repository bound to the current scope
func (u *UnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	return repository.NewUserRepository(u.getDbFromContext(ctx), u.logger)
}

// GetCategoryRepository returns a category repository bound to the current scope
func (u *UnitOfWork) GetCategoryRepository(ctx context.Context) persistence.CategoryRepository {
	return repository.NewCategoryRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// GetTransactionRepository returns a transaction repository bound to the current scope
func (u *UnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return repository.NewTransactionRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// GetPaymentRepository returns a payment repository bound to the current scope
func (u *UnitOfWork) GetPaymentRepository(ctx context.Context) persistence.PaymentRepository {
	return repository.NewPaymentRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// getDbFromContext retrieves the scoped transaction, falling back to the
// root connection for reads outside any scope
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}
