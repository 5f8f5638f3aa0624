package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerworks/budget-ledger/internal/domain/entity"
	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
	"github.com/ledgerworks/budget-ledger/internal/domain/usecase/budget"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/logger"
)

const testUserID uint64 = 1

func newTestService(store *memStore) *Service {
	return NewService(store, testProvider(), logger.NewNoopLogger())
}

func TestRecordTransaction(t *testing.T) {
	t.Run("accrues cost into the owning category", func(t *testing.T) {
		store := newMemStore()
		seedCategory(t, store, testUserID, "Food", budgetOf(20000), 0)
		svc := newTestService(store)

		result, err := svc.RecordTransaction(context.Background(), testUserID, "groceries", 5000, "Food", testTime)
		require.NoError(t, err)

		assert.Equal(t, int64(5000), result.Spent)
		require.NotNil(t, result.TotalBudget)
		assert.Equal(t, int64(20000), *result.TotalBudget)
		assert.Equal(t, 1, store.committed)
		requireLedgerInvariant(t, store, testUserID)
	})

	t.Run("negative cost decreases the spend total", func(t *testing.T) {
		store := newMemStore()
		seedCategory(t, store, testUserID, "Food", budgetOf(20000), 5000)
		svc := newTestService(store)

		result, err := svc.RecordTransaction(context.Background(), testUserID, "refund", -1500, "Food", testTime)
		require.NoError(t, err)
		assert.Equal(t, int64(3500), result.Spent)
	})

	t.Run("unknown category records nothing", func(t *testing.T) {
		store := newMemStore()
		svc := newTestService(store)

		_, err := svc.RecordTransaction(context.Background(), testUserID, "groceries", 5000, "Food", testTime)
		assert.ErrorIs(t, err, errs.ErrCategoryNotFound)
		assert.Empty(t, store.transactions)
		assert.Equal(t, 1, store.rolledBack)
	})

	t.Run("spend write failure leaves no transaction row", func(t *testing.T) {
		store := newMemStore()
		cat := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 0)
		store.failOn["UpdateSpent"] = errs.ErrDatabaseConnection
		svc := newTestService(store)

		_, err := svc.RecordTransaction(context.Background(), testUserID, "groceries", 5000, "Food", testTime)
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)

		assert.Empty(t, store.transactions)
		assert.Equal(t, int64(0), store.categories[cat.ID].Spent())
		assert.Equal(t, 0, store.committed)
		assert.Equal(t, 1, store.rolledBack)
	})
}

func TestUpdateTransactionCost(t *testing.T) {
	t.Run("applies the delta against the stored old cost", func(t *testing.T) {
		store := newMemStore()
		cat := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 5000)
		tx := seedTransaction(t, store, testUserID, cat.ID, "groceries", 5000, testTime)
		svc := newTestService(store)

		spent, err := svc.UpdateTransactionCost(context.Background(), testUserID, tx.ID, 8000)
		require.NoError(t, err)

		assert.Equal(t, int64(8000), spent)
		assert.Equal(t, int64(8000), store.transactions[tx.ID].Cost)
		assert.Equal(t, int64(8000), store.categories[cat.ID].Spent())
		requireLedgerInvariant(t, store, testUserID)
	})

	t.Run("lowering the cost backs the difference out", func(t *testing.T) {
		store := newMemStore()
		cat := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 5000)
		tx := seedTransaction(t, store, testUserID, cat.ID, "groceries", 5000, testTime)
		svc := newTestService(store)

		spent, err := svc.UpdateTransactionCost(context.Background(), testUserID, tx.ID, 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), spent)
	})

	t.Run("another user's transaction reads as not found", func(t *testing.T) {
		store := newMemStore()
		cat := seedCategory(t, store, 2, "Food", budgetOf(20000), 5000)
		tx := seedTransaction(t, store, 2, cat.ID, "groceries", 5000, testTime)
		svc := newTestService(store)

		_, err := svc.UpdateTransactionCost(context.Background(), testUserID, tx.ID, 8000)
		assert.ErrorIs(t, err, errs.ErrTransactionNotFound)
		assert.Equal(t, int64(5000), store.transactions[tx.ID].Cost)
	})

	t.Run("spend write failure rolls back the cost change", func(t *testing.T) {
		store := newMemStore()
		cat := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 5000)
		tx := seedTransaction(t, store, testUserID, cat.ID, "groceries", 5000, testTime)
		store.failOn["UpdateSpent"] = errs.ErrDatabaseConnection
		svc := newTestService(store)

		_, err := svc.UpdateTransactionCost(context.Background(), testUserID, tx.ID, 8000)
		require.Error(t, err)

		var ledgerErr *errs.LedgerError
		require.True(t, errors.As(err, &ledgerErr))
		assert.Equal(t, int64(3000), ledgerErr.DeltaCent)

		assert.Equal(t, int64(5000), store.transactions[tx.ID].Cost)
		assert.Equal(t, int64(5000), store.categories[cat.ID].Spent())
	})
}

func TestReassignTransactionCategory(t *testing.T) {
	t.Run("moves the cost between the two spend totals", func(t *testing.T) {
		store := newMemStore()
		food := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 5000)
		travel := seedCategory(t, store, testUserID, "Travel", budgetOf(50000), 1000)
		tx := seedTransaction(t, store, testUserID, food.ID, "groceries", 5000, testTime)
		seedTransaction(t, store, testUserID, travel.ID, "bus fare", 1000, testTime)
		svc := newTestService(store)

		before := totalSpend(store, testUserID)
		require.NoError(t, svc.ReassignTransactionCategory(context.Background(), testUserID, tx.ID, "Travel"))

		assert.Equal(t, travel.ID, store.transactions[tx.ID].CategoryID)
		assert.Equal(t, int64(0), store.categories[food.ID].Spent())
		assert.Equal(t, int64(6000), store.categories[travel.ID].Spent())
		assert.Equal(t, before, totalSpend(store, testUserID))
		requireLedgerInvariant(t, store, testUserID)
	})

	t.Run("reassigning to the current category is a no-op", func(t *testing.T) {
		store := newMemStore()
		food := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 5000)
		tx := seedTransaction(t, store, testUserID, food.ID, "groceries", 5000, testTime)
		svc := newTestService(store)

		require.NoError(t, svc.ReassignTransactionCategory(context.Background(), testUserID, tx.ID, "Food"))
		assert.Equal(t, int64(5000), store.categories[food.ID].Spent())
	})

	t.Run("unknown target category moves nothing", func(t *testing.T) {
		store := newMemStore()
		food := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 5000)
		tx := seedTransaction(t, store, testUserID, food.ID, "groceries", 5000, testTime)
		svc := newTestService(store)

		err := svc.ReassignTransactionCategory(context.Background(), testUserID, tx.ID, "Travel")
		assert.ErrorIs(t, err, errs.ErrCategoryNotFound)
		assert.Equal(t, food.ID, store.transactions[tx.ID].CategoryID)
	})

	t.Run("re-point failure moves no spend", func(t *testing.T) {
		store := newMemStore()
		food := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 5000)
		travel := seedCategory(t, store, testUserID, "Travel", budgetOf(50000), 1000)
		tx := seedTransaction(t, store, testUserID, food.ID, "groceries", 5000, testTime)
		svc := newTestService(store)

		store.failOn["Reassign"] = errs.ErrDatabaseConnection

		err := svc.ReassignTransactionCategory(context.Background(), testUserID, tx.ID, "Travel")
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)

		assert.Equal(t, food.ID, store.transactions[tx.ID].CategoryID)
		assert.Equal(t, int64(5000), store.categories[food.ID].Spent())
		assert.Equal(t, int64(1000), store.categories[travel.ID].Spent())
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("backs the cost out of the spend total", func(t *testing.T) {
		store := newMemStore()
		cat := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 5000)
		tx := seedTransaction(t, store, testUserID, cat.ID, "groceries", 5000, testTime)
		svc := newTestService(store)

		require.NoError(t, svc.DeleteTransaction(context.Background(), testUserID, tx.ID))

		assert.NotContains(t, store.transactions, tx.ID)
		assert.Equal(t, int64(0), store.categories[cat.ID].Spent())
		requireLedgerInvariant(t, store, testUserID)
	})

	t.Run("spend write failure restores the row", func(t *testing.T) {
		store := newMemStore()
		cat := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 5000)
		tx := seedTransaction(t, store, testUserID, cat.ID, "groceries", 5000, testTime)
		store.failOn["UpdateSpent"] = errs.ErrDatabaseConnection
		svc := newTestService(store)

		err := svc.DeleteTransaction(context.Background(), testUserID, tx.ID)
		require.Error(t, err)

		assert.Contains(t, store.transactions, tx.ID)
		assert.Equal(t, int64(5000), store.categories[cat.ID].Spent())
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("empty category is removed outright", func(t *testing.T) {
		store := newMemStore()
		cat := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 0)
		svc := newTestService(store)

		require.NoError(t, svc.DeleteCategory(context.Background(), testUserID, "Food", ""))
		assert.NotContains(t, store.categories, cat.ID)
	})

	t.Run("merge re-points transactions and adds the spend totals", func(t *testing.T) {
		store := newMemStore()
		food := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 15000)
		other := seedCategory(t, store, testUserID, "Other", budgetOf(10000), 2000)
		a := seedTransaction(t, store, testUserID, food.ID, "groceries", 10000, testTime)
		b := seedTransaction(t, store, testUserID, food.ID, "takeout", 5000, testTime)
		seedTransaction(t, store, testUserID, other.ID, "misc", 2000, testTime)
		svc := newTestService(store)

		before := totalSpend(store, testUserID)
		require.NoError(t, svc.DeleteCategory(context.Background(), testUserID, "Food", "Other"))

		assert.NotContains(t, store.categories, food.ID)
		assert.Equal(t, int64(17000), store.categories[other.ID].Spent())
		assert.Equal(t, other.ID, store.transactions[a.ID].CategoryID)
		assert.Equal(t, other.ID, store.transactions[b.ID].CategoryID)
		assert.Equal(t, before, totalSpend(store, testUserID))
		requireLedgerInvariant(t, store, testUserID)
	})

	t.Run("merge locks the category rows in ascending id order", func(t *testing.T) {
		store := newMemStore()
		food := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 5000)
		other := seedCategory(t, store, testUserID, "Other", budgetOf(10000), 0)
		seedTransaction(t, store, testUserID, food.ID, "groceries", 5000, testTime)
		svc := newTestService(store)

		require.NoError(t, svc.DeleteCategory(context.Background(), testUserID, "Food", "Other"))
		require.Less(t, food.ID, other.ID)
		assert.Equal(t, []uint64{food.ID, other.ID}, store.lockedIDs)
	})

	t.Run("merging into a lower id category locks that row first", func(t *testing.T) {
		store := newMemStore()
		other := seedCategory(t, store, testUserID, "Other", budgetOf(10000), 0)
		food := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 5000)
		tx := seedTransaction(t, store, testUserID, food.ID, "groceries", 5000, testTime)
		svc := newTestService(store)

		require.NoError(t, svc.DeleteCategory(context.Background(), testUserID, "Food", "Other"))
		require.Less(t, other.ID, food.ID)
		assert.Equal(t, []uint64{other.ID, food.ID}, store.lockedIDs)

		assert.NotContains(t, store.categories, food.ID)
		assert.Equal(t, int64(5000), store.categories[other.ID].Spent())
		assert.Equal(t, other.ID, store.transactions[tx.ID].CategoryID)
		requireLedgerInvariant(t, store, testUserID)
	})

	t.Run("non-empty category demands a replacement", func(t *testing.T) {
		store := newMemStore()
		food := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 5000)
		seedTransaction(t, store, testUserID, food.ID, "groceries", 5000, testTime)
		svc := newTestService(store)

		err := svc.DeleteCategory(context.Background(), testUserID, "Food", "")
		assert.ErrorIs(t, err, errs.ErrReplacementRequired)
		assert.Contains(t, store.categories, food.ID)
	})

	t.Run("zero spend total does not make a category empty", func(t *testing.T) {
		store := newMemStore()
		food := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 0)
		seedTransaction(t, store, testUserID, food.ID, "groceries", 3000, testTime)
		seedTransaction(t, store, testUserID, food.ID, "refund", -3000, testTime)
		store.categories[food.ID].SetSpent(0)
		svc := newTestService(store)

		err := svc.DeleteCategory(context.Background(), testUserID, "Food", "")
		assert.ErrorIs(t, err, errs.ErrReplacementRequired)
	})

	t.Run("replacement must differ from the deleted category", func(t *testing.T) {
		store := newMemStore()
		food := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 5000)
		seedTransaction(t, store, testUserID, food.ID, "groceries", 5000, testTime)
		svc := newTestService(store)

		err := svc.DeleteCategory(context.Background(), testUserID, "Food", "Food")
		assert.ErrorIs(t, err, errs.ErrSameCategory)
	})

	t.Run("unknown replacement aborts the merge", func(t *testing.T) {
		store := newMemStore()
		food := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 5000)
		tx := seedTransaction(t, store, testUserID, food.ID, "groceries", 5000, testTime)
		svc := newTestService(store)

		err := svc.DeleteCategory(context.Background(), testUserID, "Food", "Travel")
		assert.ErrorIs(t, err, errs.ErrCategoryNotFound)
		assert.Contains(t, store.categories, food.ID)
		assert.Equal(t, food.ID, store.transactions[tx.ID].CategoryID)
	})

	t.Run("the reserved category cannot be deleted", func(t *testing.T) {
		store := newMemStore()
		svc := newTestService(store)

		err := svc.DeleteCategory(context.Background(), testUserID, entity.UncategorizedName, "")
		assert.ErrorIs(t, err, errs.ErrCategoryProtected)
		assert.Equal(t, 0, store.begun)
	})

	t.Run("spend merge failure leaves both categories intact", func(t *testing.T) {
		store := newMemStore()
		food := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 5000)
		other := seedCategory(t, store, testUserID, "Other", budgetOf(10000), 2000)
		tx := seedTransaction(t, store, testUserID, food.ID, "groceries", 5000, testTime)
		store.failOn["UpdateSpent"] = errs.ErrDatabaseConnection
		svc := newTestService(store)

		err := svc.DeleteCategory(context.Background(), testUserID, "Food", "Other")
		require.Error(t, err)

		assert.Contains(t, store.categories, food.ID)
		assert.Equal(t, int64(2000), store.categories[other.ID].Spent())
		assert.Equal(t, food.ID, store.transactions[tx.ID].CategoryID)
	})
}

func TestCategoryAdministration(t *testing.T) {
	t.Run("create rejects the reserved name", func(t *testing.T) {
		store := newMemStore()
		svc := newTestService(store)

		_, err := svc.CreateCategory(context.Background(), testUserID, entity.UncategorizedName, budgetOf(1000))
		assert.ErrorIs(t, err, errs.ErrCategoryProtected)
	})

	t.Run("create requires a budget ceiling", func(t *testing.T) {
		store := newMemStore()
		svc := newTestService(store)

		_, err := svc.CreateCategory(context.Background(), testUserID, "Food", nil)
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})

	t.Run("duplicate names are rejected per user", func(t *testing.T) {
		store := newMemStore()
		seedCategory(t, store, testUserID, "Food", budgetOf(20000), 0)
		svc := newTestService(store)

		_, err := svc.CreateCategory(context.Background(), testUserID, "Food", budgetOf(5000))
		assert.ErrorIs(t, err, errs.ErrDuplicateCategory)

		_, err = svc.CreateCategory(context.Background(), 2, "Food", budgetOf(5000))
		assert.NoError(t, err)
	})

	t.Run("default category carries no budget ceiling", func(t *testing.T) {
		store := newMemStore()
		svc := newTestService(store)

		cat, err := svc.CreateDefaultCategory(context.Background(), testUserID)
		require.NoError(t, err)
		assert.Equal(t, entity.UncategorizedName, cat.Name)
		assert.Nil(t, cat.TotalBudget)
		assert.True(t, cat.IsProtected())
	})

	t.Run("budget update returns the spend total for evaluation", func(t *testing.T) {
		store := newMemStore()
		cat := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 15000)
		svc := newTestService(store)

		spent, err := svc.UpdateCategoryBudget(context.Background(), testUserID, "Food", 18000)
		require.NoError(t, err)
		assert.Equal(t, int64(15000), spent)
		require.NotNil(t, store.categories[cat.ID].TotalBudget)
		assert.Equal(t, int64(18000), *store.categories[cat.ID].TotalBudget)
	})

	t.Run("the reserved category's budget is not editable", func(t *testing.T) {
		store := newMemStore()
		svc := newTestService(store)
		_, err := svc.CreateDefaultCategory(context.Background(), testUserID)
		require.NoError(t, err)

		_, err = svc.UpdateCategoryBudget(context.Background(), testUserID, entity.UncategorizedName, 1000)
		assert.ErrorIs(t, err, errs.ErrCategoryProtected)
	})
}

func TestRecurringPaymentsNeverTouchSpend(t *testing.T) {
	store := newMemStore()
	food := seedCategory(t, store, testUserID, "Food", budgetOf(20000), 5000)
	seedCategory(t, store, testUserID, "Travel", budgetOf(50000), 1000)
	svc := newTestService(store)

	payment, err := svc.CreatePayment(context.Background(), testUserID, "meal plan", 9900, "Food", testTime)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), totalSpend(store, testUserID))

	require.NoError(t, svc.UpdatePaymentCost(context.Background(), testUserID, payment.ID, 12900))
	require.NoError(t, svc.UpdatePaymentCategory(context.Background(), testUserID, payment.ID, "Travel"))
	require.NoError(t, svc.UpdatePaymentName(context.Background(), testUserID, payment.ID, "rail pass"))
	require.NoError(t, svc.UpdatePaymentDueDate(context.Background(), testUserID, payment.ID, testTime.AddDate(0, 1, 0)))

	assert.Equal(t, int64(6000), totalSpend(store, testUserID))
	assert.Equal(t, int64(5000), store.categories[food.ID].Spent())

	require.NoError(t, svc.DeletePayment(context.Background(), testUserID, payment.ID))
	assert.Equal(t, int64(6000), totalSpend(store, testUserID))
	assert.Empty(t, store.payments)
}

func TestPaymentCategoryMustExist(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	_, err := svc.CreatePayment(context.Background(), testUserID, "meal plan", 9900, "Food", testTime)
	assert.ErrorIs(t, err, errs.ErrCategoryNotFound)
}

// The walkthrough below exercises a full category lifecycle the way a client
// session would: record against a budget, watch the notice thresholds, then
// delete and merge.
func TestBudgetLifecycle(t *testing.T) {
	store := newMemStore()
	seedCategory(t, store, testUserID, "Food", budgetOf(20000), 0)
	svc := newTestService(store)
	ctx := context.Background()

	result, err := svc.RecordTransaction(ctx, testUserID, "groceries", 5000, "Food", testTime)
	require.NoError(t, err)
	report := budget.Evaluate(*result.TotalBudget, result.Spent)
	assert.Equal(t, budget.NoticeNone, report.Notice)
	assert.Equal(t, int64(15000), report.Remaining)

	result, err = svc.RecordTransaction(ctx, testUserID, "restaurant", 10000, "Food", testTime)
	require.NoError(t, err)
	report = budget.Evaluate(*result.TotalBudget, result.Spent)
	assert.Equal(t, budget.NoticeOver75, report.Notice)
	assert.Equal(t, int64(5000), report.Remaining)

	result, err = svc.RecordTransaction(ctx, testUserID, "snacks", 6000, "Food", testTime)
	require.NoError(t, err)
	report = budget.Evaluate(*result.TotalBudget, result.Spent)
	assert.Equal(t, budget.NoticeOver100, report.Notice)
	assert.Equal(t, int64(-1000), report.Remaining)

	// Drop the largest transaction; the total follows.
	transactions, err := svc.ListTransactions(ctx, testUserID)
	require.NoError(t, err)
	var restaurantID uint64
	for _, tx := range transactions {
		if tx.Name == "restaurant" {
			restaurantID = tx.ID
		}
	}
	require.NotZero(t, restaurantID)
	require.NoError(t, svc.DeleteTransaction(ctx, testUserID, restaurantID))

	categories, err := svc.ListCategories(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, int64(11000), categories[0].Spent())
	requireLedgerInvariant(t, store, testUserID)
}
