package ledger

import (
	"context"

	"github.com/ledgerworks/budget-ledger/internal/domain/entity"
	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
)

// CreateCategory creates a budget category for a user. Every category except
// the reserved Uncategorized one must carry a budget ceiling; the reserved
// name is only ever created through CreateDefaultCategory.
func (s *Service) CreateCategory(ctx context.Context, userID uint64, name string, totalBudgetInCents *int64) (*entity.Category, error) {
	if name == entity.UncategorizedName {
		return nil, errs.ErrCategoryProtected
	}
	if totalBudgetInCents == nil {
		return nil, errs.ErrInvalidRequest
	}

	category, err := entity.NewCategory(userID, name, totalBudgetInCents, s.timeProvider)
	if err != nil {
		return nil, err
	}

	err = s.withScope(ctx, func(txCtx context.Context) error {
		return s.uow.GetCategoryRepository(txCtx).Create(txCtx, category)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Category created", map[string]any{
		"user_id":  userID,
		"category": name,
		"budget":   entity.FormatBudget(totalBudgetInCents),
	})
	return category, nil
}

// CreateDefaultCategory creates the reserved unbounded Uncategorized
// category. Called once per user at registration.
func (s *Service) CreateDefaultCategory(ctx context.Context, userID uint64) (*entity.Category, error) {
	category, err := entity.NewCategory(userID, entity.UncategorizedName, nil, s.timeProvider)
	if err != nil {
		return nil, err
	}

	err = s.withScope(ctx, func(txCtx context.Context) error {
		return s.uow.GetCategoryRepository(txCtx).Create(txCtx, category)
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategoryBudget replaces a category's budget ceiling. The reserved
// category is never budget-editable. Returns the current spend total so the
// caller can evaluate the new budget immediately.
func (s *Service) UpdateCategoryBudget(ctx context.Context, userID uint64, name string, budgetInCents int64) (int64, error) {
	if name == entity.UncategorizedName {
		return 0, errs.ErrCategoryProtected
	}

	var spent int64
	err := s.withScope(ctx, func(txCtx context.Context) error {
		categories := s.uow.GetCategoryRepository(txCtx)

		category, err := categories.GetByNameLocked(txCtx, userID, name)
		if err != nil {
			return err
		}
		if err := category.SetBudget(budgetInCents, s.timeProvider); err != nil {
			return err
		}
		if err := categories.UpdateBudget(txCtx, category.ID, budgetInCents); err != nil {
			return err
		}
		spent = category.Spent()
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Category budget updated", map[string]any{
		"user_id":  userID,
		"category": name,
		"budget":   entity.FormatCents(budgetInCents),
	})
	return spent, nil
}

// ListCategories returns every category owned by the user
func (s *Service) ListCategories(ctx context.Context, userID uint64) ([]*entity.Category, error) {
	return s.uow.GetCategoryRepository(ctx).ListByUser(ctx, userID)
}

// ListTransactions returns every transaction owned by the user
func (s *Service) ListTransactions(ctx context.Context, userID uint64) ([]*entity.Transaction, error) {
	return s.uow.GetTransactionRepository(ctx).ListByUser(ctx, userID)
}
