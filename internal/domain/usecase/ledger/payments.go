package ledger

import (
	"context"
	"time"

	"github.com/ledgerworks/budget-ledger/internal/domain/entity"
	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
	"github.com/ledgerworks/budget-ledger/internal/domain/port/persistence"
)

// Recurring payments represent future obligations, not realized spending.
// None of the operations below touch any category's spend total, on any
// path. That rule is uniform: cost edits, category moves and deletions of a
// payment leave every spent column exactly where it was.

func loadOwnedPayment(ctx context.Context, payments persistence.PaymentRepository, userID, paymentID uint64) (*entity.RecurringPayment, error) {
	payment, err := payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != userID {
		return nil, errs.ErrPaymentNotFound
	}
	return payment, nil
}

// CreatePayment creates a recurring payment. The category must exist at
// creation time; afterwards the payment keeps the name even if the category
// goes away.
func (s *Service) CreatePayment(
	ctx context.Context,
	userID uint64,
	name string,
	costInCents int64,
	categoryName string,
	dueDate time.Time,
) (*entity.RecurringPayment, error) {
	var payment *entity.RecurringPayment

	err := s.withScope(ctx, func(txCtx context.Context) error {
		if _, err := s.uow.GetCategoryRepository(txCtx).GetByName(txCtx, userID, categoryName); err != nil {
			return err
		}

		p, err := entity.NewRecurringPayment(userID, categoryName, name, costInCents, dueDate, s.timeProvider)
		if err != nil {
			return err
		}
		if err := s.uow.GetPaymentRepository(txCtx).Create(txCtx, p); err != nil {
			return err
		}
		payment = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Recurring payment created", map[string]any{
		"user_id":  userID,
		"category": categoryName,
		"cost":     entity.FormatCents(costInCents),
	})
	return payment, nil
}

// UpdatePaymentName renames a recurring payment
func (s *Service) UpdatePaymentName(ctx context.Context, userID, paymentID uint64, name string) error {
	if name == "" {
		return errs.ErrInvalidRequest
	}
	return s.withScope(ctx, func(txCtx context.Context) error {
		payments := s.uow.GetPaymentRepository(txCtx)
		if _, err := loadOwnedPayment(txCtx, payments, userID, paymentID); err != nil {
			return err
		}
		return payments.UpdateName(txCtx, paymentID, name)
	})
}

// UpdatePaymentCost sets a recurring payment's cost. No spend adjustment:
// the cost was never accrued.
func (s *Service) UpdatePaymentCost(ctx context.Context, userID, paymentID uint64, costInCents int64) error {
	return s.withScope(ctx, func(txCtx context.Context) error {
		payments := s.uow.GetPaymentRepository(txCtx)
		if _, err := loadOwnedPayment(txCtx, payments, userID, paymentID); err != nil {
			return err
		}
		return payments.UpdateCost(txCtx, paymentID, costInCents)
	})
}

// UpdatePaymentDueDate moves a recurring payment's due date
func (s *Service) UpdatePaymentDueDate(ctx context.Context, userID, paymentID uint64, dueDate time.Time) error {
	return s.withScope(ctx, func(txCtx context.Context) error {
		payments := s.uow.GetPaymentRepository(txCtx)
		if _, err := loadOwnedPayment(txCtx, payments, userID, paymentID); err != nil {
			return err
		}
		return payments.UpdateDueDate(txCtx, paymentID, dueDate)
	})
}

// UpdatePaymentCategory moves a recurring payment to another category. The
// target must exist; no spend total moves anywhere.
func (s *Service) UpdatePaymentCategory(ctx context.Context, userID, paymentID uint64, categoryName string) error {
	return s.withScope(ctx, func(txCtx context.Context) error {
		payments := s.uow.GetPaymentRepository(txCtx)
		if _, err := loadOwnedPayment(txCtx, payments, userID, paymentID); err != nil {
			return err
		}
		if _, err := s.uow.GetCategoryRepository(txCtx).GetByName(txCtx, userID, categoryName); err != nil {
			return err
		}
		return payments.UpdateCategory(txCtx, paymentID, categoryName)
	})
}

// DeletePayment removes a recurring payment row. Nothing else moves.
func (s *Service) DeletePayment(ctx context.Context, userID, paymentID uint64) error {
	err := s.withScope(ctx, func(txCtx context.Context) error {
		payments := s.uow.GetPaymentRepository(txCtx)
		if _, err := loadOwnedPayment(txCtx, payments, userID, paymentID); err != nil {
			return err
		}
		return payments.Delete(txCtx, paymentID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Recurring payment deleted", map[string]any{
		"user_id":    userID,
		"payment_id": paymentID,
	})
	return nil
}

// ListPayments returns every recurring payment owned by the user
func (s *Service) ListPayments(ctx context.Context, userID uint64) ([]*entity.RecurringPayment, error) {
	return s.uow.GetPaymentRepository(ctx).ListByUser(ctx, userID)
}
