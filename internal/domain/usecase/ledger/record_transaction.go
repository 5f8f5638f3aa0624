package ledger

import (
	"context"
	"time"

	"github.com/ledgerworks/budget-ledger/internal/domain/entity"
)

// RecordResult reports the owning category's budget state after a
// transaction has been recorded
type RecordResult struct {
	TotalBudget *int64 // cents, nil for the unbounded Uncategorized category
	Spent       int64  // cents, after the accrual
}

// RecordTransaction inserts a transaction row and accrues its cost into the
// owning category's spend total in one commit scope. The cost is applied as
// an algebraic delta; sign validation belongs to the request handler.
//
// Possible errors:
// - ErrCategoryNotFound: the user has no category with that name
// - ErrInvalidRequest: empty transaction name
// - ErrDatabaseConnection: store failure, nothing committed
func (s *Service) RecordTransaction(
	ctx context.Context,
	userID uint64,
	name string,
	costInCents int64,
	categoryName string,
	date time.Time,
) (*RecordResult, error) {
	var result *RecordResult

	err := s.withScope(ctx, func(txCtx context.Context) error {
		categories := s.uow.GetCategoryRepository(txCtx)
		transactions := s.uow.GetTransactionRepository(txCtx)

		category, err := categories.GetByNameLocked(txCtx, userID, categoryName)
		if err != nil {
			return err
		}

		transaction, err := entity.NewTransaction(userID, category.ID, name, costInCents, date, s.timeProvider)
		if err != nil {
			return err
		}
		if err := transactions.Create(txCtx, transaction); err != nil {
			return err
		}

		// Spend adjustment last: the entity row exists before the total moves.
		category.Accrue(costInCents, s.timeProvider)
		if err := categories.UpdateSpent(txCtx, category.ID, category.Spent()); err != nil {
			return err
		}

		result = &RecordResult{
			TotalBudget: category.TotalBudget,
			Spent:       category.Spent(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transaction recorded", map[string]any{
		"user_id":  userID,
		"category": categoryName,
		"cost":     entity.FormatCents(costInCents),
		"spent":    entity.FormatCents(result.Spent),
	})
	return result, nil
}
