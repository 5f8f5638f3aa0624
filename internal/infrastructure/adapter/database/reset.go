package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
	"github.com/ledgerworks/budget-ledger/internal/domain/port/persistence"
)

// Resetter wipes every budgeting table. Destructive and only reachable
// through the explicitly confirmed reset endpoint.
type Resetter struct {
	db     *gorm.DB
	logger coreport.Logger
}

func NewResetter(db *gorm.DB, logger coreport.Logger) *Resetter {
	return &Resetter{db: db, logger: logger}
}

// ResetAll truncates all data tables and restarts their id sequences
func (r *Resetter) ResetAll(ctx context.Context) error {
	r.logger.Warn("Resetting all budgeting data", nil)

	err := r.db.WithContext(ctx).Exec(
		"TRUNCATE TABLE transactions, recurringpayments, budgetcategories, users RESTART IDENTITY CASCADE",
	).Error
	if err != nil {
		r.logger.Error("Failed to reset database", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to reset database: %w", err)
	}

	r.logger.Info("All budgeting data removed", nil)
	return nil
}

var _ persistence.Resetter = (*Resetter)(nil)
