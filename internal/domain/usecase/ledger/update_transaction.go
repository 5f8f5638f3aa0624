package ledger

import (
	"context"
	"time"

	"github.com/ledgerworks/budget-ledger/internal/domain/entity"
	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
	"github.com/ledgerworks/budget-ledger/internal/domain/port/persistence"
)

// loadOwnedTransaction fetches a transaction and checks ownership. A foreign
// transaction id is reported as not found rather than forbidden so ids can't
// be probed across users.
func loadOwnedTransaction(ctx context.Context, transactions persistence.TransactionRepository, userID, transactionID uint64) (*entity.Transaction, error) {
	transaction, err := transactions.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.UserID != userID {
		return nil, errs.ErrTransactionNotFound
	}
	return transaction, nil
}

// UpdateTransactionCost sets a transaction's cost and applies the delta
// against the owning category's spend total in one commit scope. The old
// cost is re-read from the row under the scope's lock, never taken from the
// caller, so two interleaved edits cannot apply a stale delta.
//
// Returns the category's spend total after the adjustment.
func (s *Service) UpdateTransactionCost(
	ctx context.Context,
	userID uint64,
	transactionID uint64,
	newCostInCents int64,
) (int64, error) {
	var newSpent int64

	err := s.withScope(ctx, func(txCtx context.Context) error {
		categories := s.uow.GetCategoryRepository(txCtx)
		transactions := s.uow.GetTransactionRepository(txCtx)

		transaction, err := loadOwnedTransaction(txCtx, transactions, userID, transactionID)
		if err != nil {
			return err
		}

		category, err := categories.GetByIDLocked(txCtx, transaction.CategoryID)
		if err != nil {
			return err
		}

		delta := newCostInCents - transaction.Cost
		if err := transactions.UpdateCost(txCtx, transaction.ID, newCostInCents); err != nil {
			return err
		}

		category.Accrue(delta, s.timeProvider)
		if err := categories.UpdateSpent(txCtx, category.ID, category.Spent()); err != nil {
			return errs.NewLedgerError(userID, category.Name, delta, err)
		}

		newSpent = category.Spent()
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Transaction cost updated", map[string]any{
		"user_id":        userID,
		"transaction_id": transactionID,
		"new_cost":       entity.FormatCents(newCostInCents),
		"spent":          entity.FormatCents(newSpent),
	})
	return newSpent, nil
}

// UpdateTransactionName renames a transaction. No spend effect.
func (s *Service) UpdateTransactionName(ctx context.Context, userID, transactionID uint64, name string) error {
	if name == "" {
		return errs.ErrInvalidRequest
	}
	return s.withScope(ctx, func(txCtx context.Context) error {
		transactions := s.uow.GetTransactionRepository(txCtx)
		if _, err := loadOwnedTransaction(txCtx, transactions, userID, transactionID); err != nil {
			return err
		}
		return transactions.UpdateName(txCtx, transactionID, name)
	})
}

// UpdateTransactionDate moves a transaction to another calendar date. No
// spend effect.
func (s *Service) UpdateTransactionDate(ctx context.Context, userID, transactionID uint64, date time.Time) error {
	return s.withScope(ctx, func(txCtx context.Context) error {
		transactions := s.uow.GetTransactionRepository(txCtx)
		if _, err := loadOwnedTransaction(txCtx, transactions, userID, transactionID); err != nil {
			return err
		}
		return transactions.UpdateDate(txCtx, transactionID, date)
	})
}

// ReassignTransactionCategory moves a transaction to another category and
// shifts its cost between the two spend totals in one commit scope. Total
// spend across the user's categories is conserved.
func (s *Service) ReassignTransactionCategory(
	ctx context.Context,
	userID uint64,
	transactionID uint64,
	newCategoryName string,
) error {
	err := s.withScope(ctx, func(txCtx context.Context) error {
		categories := s.uow.GetCategoryRepository(txCtx)
		transactions := s.uow.GetTransactionRepository(txCtx)

		transaction, err := loadOwnedTransaction(txCtx, transactions, userID, transactionID)
		if err != nil {
			return err
		}

		dest, err := categories.GetByName(txCtx, userID, newCategoryName)
		if err != nil {
			return err
		}
		if dest.ID == transaction.CategoryID {
			// Already there; nothing to move.
			return nil
		}

		// Lock both category rows in ascending id order so two concurrent
		// reassignments between the same pair cannot deadlock.
		firstID, secondID := transaction.CategoryID, dest.ID
		if firstID > secondID {
			firstID, secondID = secondID, firstID
		}
		first, err := categories.GetByIDLocked(txCtx, firstID)
		if err != nil {
			return err
		}
		second, err := categories.GetByIDLocked(txCtx, secondID)
		if err != nil {
			return err
		}

		source, target := first, second
		if source.ID != transaction.CategoryID {
			source, target = second, first
		}

		if err := transactions.Reassign(txCtx, transaction.ID, target.ID); err != nil {
			return err
		}

		source.Accrue(-transaction.Cost, s.timeProvider)
		if err := categories.UpdateSpent(txCtx, source.ID, source.Spent()); err != nil {
			return errs.NewLedgerError(userID, source.Name, -transaction.Cost, err)
		}
		target.Accrue(transaction.Cost, s.timeProvider)
		if err := categories.UpdateSpent(txCtx, target.ID, target.Spent()); err != nil {
			return errs.NewLedgerError(userID, target.Name, transaction.Cost, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Transaction reassigned", map[string]any{
		"user_id":        userID,
		"transaction_id": transactionID,
		"new_category":   newCategoryName,
	})
	return nil
}
