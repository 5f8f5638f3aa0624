package ledger

import (
	"context"
	"fmt"

	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
	"github.com/ledgerworks/budget-ledger/internal/domain/port/persistence"
)

// Service is the spend ledger engine. It owns every mutation path that can
// move a category's running spend total and keeps the invariant
//
//	category.spent == sum(cost of live transactions assigned to it)
//
// by wrapping each logical operation's entity write and spend adjustments in
// a single unit-of-work scope: either everything commits or nothing does.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a spend ledger engine on top of a unit of work
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// withScope runs fn inside a unit-of-work scope with guaranteed
// commit-or-rollback on every exit path
func (s *Service) withScope(ctx context.Context, fn func(txCtx context.Context) error) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin ledger scope: %w", err)
	}

	if err := fn(txCtx); err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to roll back ledger scope", map[string]any{
				"error":          rbErr.Error(),
				"original_error": err.Error(),
			})
		}
		return err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return fmt.Errorf("failed to commit ledger scope: %w", err)
	}
	return nil
}
