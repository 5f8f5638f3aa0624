package overview

import (
	"context"
	"time"

	"github.com/ledgerworks/budget-ledger/internal/domain/entity"
	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
	"github.com/ledgerworks/budget-ledger/internal/domain/port/persistence"
)

// TopTransactionCount is how many of the month's largest transactions the
// overview lists
const TopTransactionCount = 3

// MonthlyReport summarizes a user's spending for one calendar month
type MonthlyReport struct {
	Month      time.Month
	Year       int
	TotalSpent int64 // cents, algebraic sum over the month
	Top        []*entity.Transaction
}

// Service builds monthly spending overviews
type Service struct {
	uow    persistence.UnitOfWork
	logger coreport.Logger
}

func NewService(uow persistence.UnitOfWork, logger coreport.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Monthly reports the total spend and the largest transactions for the given
// calendar month. Reads only, so no commit scope is opened.
func (s *Service) Monthly(ctx context.Context, userID uint64, month time.Month, year int) (*MonthlyReport, error) {
	if month < time.January || month > time.December || year < 1 {
		return nil, errs.ErrInvalidRequest
	}

	begin := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := begin.AddDate(0, 1, 0).Add(-time.Nanosecond)

	transactions := s.uow.GetTransactionRepository(ctx)

	total, err := transactions.SumInRange(ctx, userID, begin, end)
	if err != nil {
		return nil, err
	}

	top, err := transactions.TopByCost(ctx, userID, begin, end, TopTransactionCount)
	if err != nil {
		return nil, err
	}

	return &MonthlyReport{
		Month:      month,
		Year:       year,
		TotalSpent: total,
		Top:        top,
	}, nil
}
