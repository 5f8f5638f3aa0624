package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ledgerworks/budget-ledger/internal/domain/entity"
	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/model"
)

// TransactionRepository implements the TransactionRepository port using GORM
type TransactionRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

func NewTransactionRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func transactionModelToEntity(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:         m.ID,
		UserID:     m.UserID,
		CategoryID: m.CategoryID,
		Name:       m.Name,
		Cost:       m.Cost,
		Date:       m.Date,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *TransactionRepository) handleDatabaseError(operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrTransactionNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"error": err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// updateColumn writes one column plus the updated_at stamp and reports a
// missing row as not found
func (r *TransactionRepository) updateColumn(ctx context.Context, operation string, id uint64, column string, value interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			column:       value,
			"updated_at": r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError(operation, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}
	return nil
}

// Create inserts a new transaction row and backfills the generated id
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.Transaction{
		UserID:     transaction.UserID,
		CategoryID: transaction.CategoryID,
		Name:       transaction.Name,
		Cost:       transaction.Cost,
		Date:       transaction.Date,
		CreatedAt:  transaction.CreatedAt,
		UpdatedAt:  transaction.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&transactionModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating transaction", result.Error)
	}

	transaction.ID = transactionModel.ID
	return nil
}

// GetByID retrieves a transaction by id
func (r *TransactionRepository) GetByID(ctx context.Context, id uint64) (*entity.Transaction, error) {
	var transactionModel model.Transaction
	result := r.db.WithContext(ctx).First(&transactionModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting transaction", result.Error)
	}
	return transactionModelToEntity(&transactionModel), nil
}

// UpdateName renames a transaction
func (r *TransactionRepository) UpdateName(ctx context.Context, id uint64, name string) error {
	return r.updateColumn(ctx, "renaming transaction", id, "name", name)
}

// UpdateCost writes a transaction's cost
func (r *TransactionRepository) UpdateCost(ctx context.Context, id uint64, costInCents int64) error {
	return r.updateColumn(ctx, "updating transaction cost", id, "cost", costInCents)
}

// UpdateDate moves a transaction to another calendar date
func (r *TransactionRepository) UpdateDate(ctx context.Context, id uint64, date time.Time) error {
	return r.updateColumn(ctx, "updating transaction date", id, "date", date)
}

// Reassign points a transaction at another category
func (r *TransactionRepository) Reassign(ctx context.Context, id uint64, categoryID uint64) error {
	return r.updateColumn(ctx, "reassigning transaction", id, "category_id", categoryID)
}

// ReassignAll points every transaction of one category at another. Used by
// category deletion to merge the departing category's rows.
func (r *TransactionRepository) ReassignAll(ctx context.Context, userID, oldCategoryID, newCategoryID uint64) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("user_id = ? AND category_id = ?", userID, oldCategoryID).
		Updates(map[string]interface{}{
			"category_id": newCategoryID,
			"updated_at":  r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError("reassigning transactions", result.Error)
	}
	return nil
}

// CountByCategory counts the live transaction rows assigned to a category
func (r *TransactionRepository) CountByCategory(ctx context.Context, categoryID uint64) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("category_id = ?", categoryID).
		Count(&count)
	if result.Error != nil {
		return 0, r.handleDatabaseError("counting transactions", result.Error)
	}
	return count, nil
}

// Delete removes a transaction row
func (r *TransactionRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.Transaction{}, id)
	if result.Error != nil {
		return r.handleDatabaseError("deleting transaction", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrTransactionNotFound
	}
	return nil
}

// ListByUser returns every transaction owned by the user, newest date first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.Transaction, error) {
	var transactionModels []model.Transaction
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing transactions", result.Error)
	}

	transactions := make([]*entity.Transaction, 0, len(transactionModels))
	for i := range transactionModels {
		transactions = append(transactions, transactionModelToEntity(&transactionModels[i]))
	}
	return transactions, nil
}

// SumInRange returns the algebraic sum of transaction costs in the inclusive
// date range
func (r *TransactionRepository) SumInRange(ctx context.Context, userID uint64, begin, end time.Time) (int64, error) {
	var total struct {
		Sum int64
	}
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("COALESCE(SUM(cost), 0) AS sum").
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, begin, end).
		Scan(&total)
	if result.Error != nil {
		return 0, r.handleDatabaseError("summing transactions", result.Error)
	}
	return total.Sum, nil
}

// TopByCost returns the costliest transactions in the inclusive date range
func (r *TransactionRepository) TopByCost(ctx context.Context, userID uint64, begin, end time.Time, limit int) ([]*entity.Transaction, error) {
	var transactionModels []model.Transaction
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, begin, end).
		Order("cost DESC").
		Limit(limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("ranking transactions", result.Error)
	}

	transactions := make([]*entity.Transaction, 0, len(transactionModels))
	for i := range transactionModels {
		transactions = append(transactions, transactionModelToEntity(&transactionModels[i]))
	}
	return transactions, nil
}
