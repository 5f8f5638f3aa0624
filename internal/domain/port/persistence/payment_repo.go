package persistence

import (
	"context"
	"time"

	"github.com/ledgerworks/budget-ledger/internal/domain/entity"
)

// PaymentRepository defines the store capability for recurring payments.
// No method here may ever touch a category's spend total.
type PaymentRepository interface {
	// Create persists a new recurring payment and fills in its generated ID
	Create(ctx context.Context, payment *entity.RecurringPayment) error

	// GetByID retrieves a recurring payment by id
	//
	// Possible errors:
	// - ErrPaymentNotFound
	// - ErrDatabaseConnection
	GetByID(ctx context.Context, id uint64) (*entity.RecurringPayment, error)

	// UpdateName sets the payment's display name
	UpdateName(ctx context.Context, id uint64, name string) error

	// UpdateCost sets the payment's cost in cents
	UpdateCost(ctx context.Context, id uint64, costInCents int64) error

	// UpdateDueDate sets the payment's due date
	UpdateDueDate(ctx context.Context, id uint64, dueDate time.Time) error

	// UpdateCategory sets the payment's denormalized category name
	UpdateCategory(ctx context.Context, id uint64, category string) error

	// Delete removes the payment row
	Delete(ctx context.Context, id uint64) error

	// ListByUser returns all recurring payments owned by the user
	ListByUser(ctx context.Context, userID uint64) ([]*entity.RecurringPayment, error)
}
