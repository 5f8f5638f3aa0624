package ledger

import (
	"context"

	"github.com/ledgerworks/budget-ledger/internal/domain/entity"
	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
)

// DeleteTransaction removes a transaction row and backs its cost out of the
// owning category's spend total in one commit scope. The cost is read from
// the row itself, never taken from the caller.
func (s *Service) DeleteTransaction(ctx context.Context, userID, transactionID uint64) error {
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

		if err := transactions.Delete(txCtx, transaction.ID); err != nil {
			return err
		}

		category.Accrue(-transaction.Cost, s.timeProvider)
		if err := categories.UpdateSpent(txCtx, category.ID, category.Spent()); err != nil {
			return errs.NewLedgerError(userID, category.Name, -transaction.Cost, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Transaction deleted", map[string]any{
		"user_id":        userID,
		"transaction_id": transactionID,
	})
	return nil
}

// DeleteCategory removes a budget category. A category that still owns
// transactions requires a replacement category: its transactions are
// re-pointed and its spend total merged into the replacement before the row
// goes away, all in one commit scope. Whether a category is empty is decided
// by counting live transaction rows, not by spent == 0, since costs can sum
// to exactly zero.
//
// Recurring payments keep their category name untouched; they never accrued
// and follow their own deletion flow.
func (s *Service) DeleteCategory(ctx context.Context, userID uint64, name, replacementName string) error {
	if name == entity.UncategorizedName {
		return errs.ErrCategoryProtected
	}

	err := s.withScope(ctx, func(txCtx context.Context) error {
		categories := s.uow.GetCategoryRepository(txCtx)
		transactions := s.uow.GetTransactionRepository(txCtx)

		category, err := categories.GetByName(txCtx, userID, name)
		if err != nil {
			return err
		}

		if replacementName == "" || replacementName == name {
			// Only the doomed row needs locking on this path.
			locked, err := categories.GetByIDLocked(txCtx, category.ID)
			if err != nil {
				return err
			}
			count, err := transactions.CountByCategory(txCtx, locked.ID)
			if err != nil {
				return err
			}
			if count == 0 {
				return categories.Delete(txCtx, locked.ID)
			}
			if replacementName == "" {
				return errs.ErrReplacementRequired
			}
			return errs.ErrSameCategory
		}

		replacement, err := categories.GetByName(txCtx, userID, replacementName)
		if err != nil {
			return err
		}

		// Lock both category rows in ascending id order, the same discipline
		// the reassignment path uses, so concurrent merges between the same
		// pair cannot deadlock.
		firstID, secondID := category.ID, replacement.ID
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

		doomed, target := first, second
		if doomed.ID != category.ID {
			doomed, target = second, first
		}

		count, err := transactions.CountByCategory(txCtx, doomed.ID)
		if err != nil {
			return err
		}
		if count == 0 {
			return categories.Delete(txCtx, doomed.ID)
		}

		if err := transactions.ReassignAll(txCtx, userID, doomed.ID, target.ID); err != nil {
			return err
		}

		target.Accrue(doomed.Spent(), s.timeProvider)
		if err := categories.UpdateSpent(txCtx, target.ID, target.Spent()); err != nil {
			return errs.NewLedgerError(userID, target.Name, doomed.Spent(), err)
		}

		return categories.Delete(txCtx, doomed.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Category deleted", map[string]any{
		"user_id":     userID,
		"category":    name,
		"replacement": replacementName,
	})
	return nil
}
