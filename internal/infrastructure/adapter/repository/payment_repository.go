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

// PaymentRepository implements the PaymentRepository port using GORM
type PaymentRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

func NewPaymentRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *PaymentRepository {
	return &PaymentRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func paymentModelToEntity(m *model.RecurringPayment) *entity.RecurringPayment {
	return &entity.RecurringPayment{
		ID:        m.ID,
		UserID:    m.UserID,
		Category:  m.Category,
		Name:      m.Name,
		Cost:      m.Cost,
		DueDate:   m.DueDate,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *PaymentRepository) handleDatabaseError(operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrPaymentNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"error": err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// updateColumn writes one column plus the updated_at stamp and reports a
// missing row as not found
func (r *PaymentRepository) updateColumn(ctx context.Context, operation string, id uint64, column string, value interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.RecurringPayment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			column:       value,
			"updated_at": r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError(operation, result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrPaymentNotFound
	}
	return nil
}

// Create inserts a new recurring payment row and backfills the generated id
func (r *PaymentRepository) Create(ctx context.Context, payment *entity.RecurringPayment) error {
	paymentModel := model.RecurringPayment{
		UserID:    payment.UserID,
		Category:  payment.Category,
		Name:      payment.Name,
		Cost:      payment.Cost,
		DueDate:   payment.DueDate,
		CreatedAt: payment.CreatedAt,
		UpdatedAt: payment.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&paymentModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating payment", result.Error)
	}

	payment.ID = paymentModel.ID
	return nil
}

// GetByID retrieves a recurring payment by id
func (r *PaymentRepository) GetByID(ctx context.Context, id uint64) (*entity.RecurringPayment, error) {
	var paymentModel model.RecurringPayment
	result := r.db.WithContext(ctx).First(&paymentModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting payment", result.Error)
	}
	return paymentModelToEntity(&paymentModel), nil
}

// UpdateName renames a recurring payment
func (r *PaymentRepository) UpdateName(ctx context.Context, id uint64, name string) error {
	return r.updateColumn(ctx, "renaming payment", id, "name", name)
}

// UpdateCost writes a recurring payment's cost
func (r *PaymentRepository) UpdateCost(ctx context.Context, id uint64, costInCents int64) error {
	return r.updateColumn(ctx, "updating payment cost", id, "cost", costInCents)
}

// UpdateDueDate moves a recurring payment's next due date
func (r *PaymentRepository) UpdateDueDate(ctx context.Context, id uint64, dueDate time.Time) error {
	return r.updateColumn(ctx, "updating payment due date", id, "due_date", dueDate)
}

// UpdateCategory relabels a recurring payment's category name
func (r *PaymentRepository) UpdateCategory(ctx context.Context, id uint64, category string) error {
	return r.updateColumn(ctx, "relabeling payment", id, "category", category)
}

// Delete removes a recurring payment row
func (r *PaymentRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.RecurringPayment{}, id)
	if result.Error != nil {
		return r.handleDatabaseError("deleting payment", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrPaymentNotFound
	}
	return nil
}

// ListByUser returns every recurring payment owned by the user, next due
// first
func (r *PaymentRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.RecurringPayment, error) {
	var paymentModels []model.RecurringPayment
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("due_date, id").
		Find(&paymentModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing payments", result.Error)
	}

	payments := make([]*entity.RecurringPayment, 0, len(paymentModels))
	for i := range paymentModels {
		payments = append(payments, paymentModelToEntity(&paymentModels[i]))
	}
	return payments, nil
}
