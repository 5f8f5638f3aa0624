package ledger

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ledgerworks/budget-ledger/internal/domain/entity"
	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
	"github.com/ledgerworks/budget-ledger/internal/domain/port/persistence"
)

// fixedTimeProvider pins the clock for deterministic tests
type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time                  { return p.now }
func (p *fixedTimeProvider) Since(t time.Time) time.Duration { return p.now.Sub(t) }
func (p *fixedTimeProvider) WithTimeout(ctx context.Context, _ time.Duration) (context.Context, context.CancelFunc) {
	return context.WithCancel(ctx)
}

// memStore is an in-memory stand-in for the relational store. It implements
// the UnitOfWork port with snapshot-based rollback so the tests can verify
// that a failing write leaves no partial effect, and supports per-method
// failure injection through failOn.
type memStore struct {
	nextID       uint64
	users        map[uint64]*entity.User
	categories   map[uint64]*entity.Category
	transactions map[uint64]*entity.Transaction
	payments     map[uint64]*entity.RecurringPayment

	failOn map[string]error

	// lockedIDs records every category row lock in acquisition order.
	lockedIDs []uint64

	snap       *memSnapshot
	begun      int
	committed  int
	rolledBack int
}

type memSnapshot struct {
	nextID       uint64
	categories   map[uint64]*entity.Category
	transactions map[uint64]*entity.Transaction
	payments     map[uint64]*entity.RecurringPayment
}

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[uint64]*entity.User),
		categories:   make(map[uint64]*entity.Category),
		transactions: make(map[uint64]*entity.Transaction),
		payments:     make(map[uint64]*entity.RecurringPayment),
		failOn:       make(map[string]error),
	}
}

func (s *memStore) id() uint64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) fail(op string) error {
	return s.failOn[op]
}

func cloneCategories(in map[uint64]*entity.Category) map[uint64]*entity.Category {
	out := make(map[uint64]*entity.Category, len(in))
	for k, v := range in {
		c := *v
		out[k] = &c
	}
	return out
}

func cloneTransactions(in map[uint64]*entity.Transaction) map[uint64]*entity.Transaction {
	out := make(map[uint64]*entity.Transaction, len(in))
	for k, v := range in {
		t := *v
		out[k] = &t
	}
	return out
}

func clonePayments(in map[uint64]*entity.RecurringPayment) map[uint64]*entity.RecurringPayment {
	out := make(map[uint64]*entity.RecurringPayment, len(in))
	for k, v := range in {
		p := *v
		out[k] = &p
	}
	return out
}

// Begin snapshots the store so Rollback can restore it
func (s *memStore) Begin(ctx context.Context) (context.Context, error) {
	if err := s.fail("Begin"); err != nil {
		return ctx, err
	}
	s.begun++
	s.snap = &memSnapshot{
		nextID:       s.nextID,
		categories:   cloneCategories(s.categories),
		transactions: cloneTransactions(s.transactions),
		payments:     clonePayments(s.payments),
	}
	return ctx, nil
}

func (s *memStore) Commit(ctx context.Context) error {
	if err := s.fail("Commit"); err != nil {
		return err
	}
	s.committed++
	s.snap = nil
	return nil
}

func (s *memStore) Rollback(ctx context.Context) error {
	s.rolledBack++
	if s.snap != nil {
		s.nextID = s.snap.nextID
		s.categories = s.snap.categories
		s.transactions = s.snap.transactions
		s.payments = s.snap.payments
		s.snap = nil
	}
	return nil
}

func (s *memStore) GetCategoryRepository(ctx context.Context) persistence.CategoryRepository {
	return &memCategoryRepo{s}
}

func (s *memStore) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return &memTransactionRepo{s}
}

func (s *memStore) GetPaymentRepository(ctx context.Context) persistence.PaymentRepository {
	return &memPaymentRepo{s}
}

func (s *memStore) GetUserRepository(ctx context.Context) persistence.UserRepository {
	return &memUserRepo{s}
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	if err := r.s.fail("UserCreate"); err != nil {
		return err
	}
	for _, u := range r.s.users {
		if u.Username == user.Username {
			return errs.ErrDuplicateUser
		}
	}
	user.ID = r.s.id()
	clone := *user
	r.s.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

type memCategoryRepo struct{ s *memStore }

func (r *memCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	if err := r.s.fail("CategoryCreate"); err != nil {
		return err
	}
	for _, c := range r.s.categories {
		if c.UserID == category.UserID && strings.EqualFold(c.Name, category.Name) {
			return errs.ErrDuplicateCategory
		}
	}
	category.ID = r.s.id()
	clone := *category
	r.s.categories[category.ID] = &clone
	return nil
}

func (r *memCategoryRepo) GetByName(ctx context.Context, userID uint64, name string) (*entity.Category, error) {
	if err := r.s.fail("CategoryGetByName"); err != nil {
		return nil, err
	}
	for _, c := range r.s.categories {
		if c.UserID == userID && c.Name == name {
			clone := *c
			return &clone, nil
		}
	}
	return nil, errs.ErrCategoryNotFound
}

func (r *memCategoryRepo) GetByNameLocked(ctx context.Context, userID uint64, name string) (*entity.Category, error) {
	return r.GetByName(ctx, userID, name)
}

func (r *memCategoryRepo) GetByIDLocked(ctx context.Context, id uint64) (*entity.Category, error) {
	c, ok := r.s.categories[id]
	if !ok {
		return nil, errs.ErrCategoryNotFound
	}
	r.s.lockedIDs = append(r.s.lockedIDs, id)
	clone := *c
	return &clone, nil
}

func (r *memCategoryRepo) UpdateSpent(ctx context.Context, categoryID uint64, spentInCents int64) error {
	if err := r.s.fail("UpdateSpent"); err != nil {
		return err
	}
	c, ok := r.s.categories[categoryID]
	if !ok {
		return errs.ErrCategoryNotFound
	}
	c.SetSpent(spentInCents)
	return nil
}

func (r *memCategoryRepo) UpdateBudget(ctx context.Context, categoryID uint64, budgetInCents int64) error {
	if err := r.s.fail("UpdateBudget"); err != nil {
		return err
	}
	c, ok := r.s.categories[categoryID]
	if !ok {
		return errs.ErrCategoryNotFound
	}
	b := budgetInCents
	c.TotalBudget = &b
	return nil
}

func (r *memCategoryRepo) Delete(ctx context.Context, categoryID uint64) error {
	if err := r.s.fail("CategoryDelete"); err != nil {
		return err
	}
	if _, ok := r.s.categories[categoryID]; !ok {
		return errs.ErrCategoryNotFound
	}
	delete(r.s.categories, categoryID)
	return nil
}

func (r *memCategoryRepo) ListByUser(ctx context.Context, userID uint64) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.s.categories {
		if c.UserID == userID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

type memTransactionRepo struct{ s *memStore }

func (r *memTransactionRepo) Create(ctx context.Context, transaction *entity.Transaction) error {
	if err := r.s.fail("TransactionCreate"); err != nil {
		return err
	}
	transaction.ID = r.s.id()
	clone := *transaction
	r.s.transactions[transaction.ID] = &clone
	return nil
}

func (r *memTransactionRepo) GetByID(ctx context.Context, id uint64) (*entity.Transaction, error) {
	t, ok := r.s.transactions[id]
	if !ok {
		return nil, errs.ErrTransactionNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *memTransactionRepo) UpdateName(ctx context.Context, id uint64, name string) error {
	t, ok := r.s.transactions[id]
	if !ok {
		return errs.ErrTransactionNotFound
	}
	t.Name = name
	return nil
}

func (r *memTransactionRepo) UpdateCost(ctx context.Context, id uint64, costInCents int64) error {
	if err := r.s.fail("TransactionUpdateCost"); err != nil {
		return err
	}
	t, ok := r.s.transactions[id]
	if !ok {
		return errs.ErrTransactionNotFound
	}
	t.Cost = costInCents
	return nil
}

func (r *memTransactionRepo) UpdateDate(ctx context.Context, id uint64, date time.Time) error {
	t, ok := r.s.transactions[id]
	if !ok {
		return errs.ErrTransactionNotFound
	}
	t.Date = date
	return nil
}

func (r *memTransactionRepo) Reassign(ctx context.Context, id uint64, categoryID uint64) error {
	if err := r.s.fail("Reassign"); err != nil {
		return err
	}
	t, ok := r.s.transactions[id]
	if !ok {
		return errs.ErrTransactionNotFound
	}
	t.CategoryID = categoryID
	return nil
}

func (r *memTransactionRepo) ReassignAll(ctx context.Context, userID, oldCategoryID, newCategoryID uint64) error {
	if err := r.s.fail("ReassignAll"); err != nil {
		return err
	}
	for _, t := range r.s.transactions {
		if t.UserID == userID && t.CategoryID == oldCategoryID {
			t.CategoryID = newCategoryID
		}
	}
	return nil
}

func (r *memTransactionRepo) CountByCategory(ctx context.Context, categoryID uint64) (int64, error) {
	var n int64
	for _, t := range r.s.transactions {
		if t.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *memTransactionRepo) Delete(ctx context.Context, id uint64) error {
	if err := r.s.fail("TransactionDelete"); err != nil {
		return err
	}
	if _, ok := r.s.transactions[id]; !ok {
		return errs.ErrTransactionNotFound
	}
	delete(r.s.transactions, id)
	return nil
}

func (r *memTransactionRepo) ListByUser(ctx context.Context, userID uint64) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range r.s.transactions {
		if t.UserID == userID {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memTransactionRepo) SumInRange(ctx context.Context, userID uint64, begin, end time.Time) (int64, error) {
	var sum int64
	for _, t := range r.s.transactions {
		if t.UserID == userID && !t.Date.Before(begin) && !t.Date.After(end) {
			sum += t.Cost
		}
	}
	return sum, nil
}

func (r *memTransactionRepo) TopByCost(ctx context.Context, userID uint64, begin, end time.Time, limit int) ([]*entity.Transaction, error) {
	var in []*entity.Transaction
	for _, t := range r.s.transactions {
		if t.UserID == userID && !t.Date.Before(begin) && !t.Date.After(end) {
			clone := *t
			in = append(in, &clone)
		}
	}
	// insertion sort by cost descending; tiny inputs in tests
	for i := 1; i < len(in); i++ {
		for j := i; j > 0 && in[j].Cost > in[j-1].Cost; j-- {
			in[j], in[j-1] = in[j-1], in[j]
		}
	}
	if len(in) > limit {
		in = in[:limit]
	}
	return in, nil
}

type memPaymentRepo struct{ s *memStore }

func (r *memPaymentRepo) Create(ctx context.Context, payment *entity.RecurringPayment) error {
	if err := r.s.fail("PaymentCreate"); err != nil {
		return err
	}
	payment.ID = r.s.id()
	clone := *payment
	r.s.payments[payment.ID] = &clone
	return nil
}

func (r *memPaymentRepo) GetByID(ctx context.Context, id uint64) (*entity.RecurringPayment, error) {
	p, ok := r.s.payments[id]
	if !ok {
		return nil, errs.ErrPaymentNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *memPaymentRepo) UpdateName(ctx context.Context, id uint64, name string) error {
	p, ok := r.s.payments[id]
	if !ok {
		return errs.ErrPaymentNotFound
	}
	p.Name = name
	return nil
}

func (r *memPaymentRepo) UpdateCost(ctx context.Context, id uint64, costInCents int64) error {
	p, ok := r.s.payments[id]
	if !ok {
		return errs.ErrPaymentNotFound
	}
	p.Cost = costInCents
	return nil
}

func (r *memPaymentRepo) UpdateDueDate(ctx context.Context, id uint64, dueDate time.Time) error {
	p, ok := r.s.payments[id]
	if !ok {
		return errs.ErrPaymentNotFound
	}
	p.DueDate = dueDate
	return nil
}

func (r *memPaymentRepo) UpdateCategory(ctx context.Context, id uint64, category string) error {
	p, ok := r.s.payments[id]
	if !ok {
		return errs.ErrPaymentNotFound
	}
	p.Category = category
	return nil
}

func (r *memPaymentRepo) Delete(ctx context.Context, id uint64) error {
	if _, ok := r.s.payments[id]; !ok {
		return errs.ErrPaymentNotFound
	}
	delete(r.s.payments, id)
	return nil
}

func (r *memPaymentRepo) ListByUser(ctx context.Context, userID uint64) ([]*entity.RecurringPayment, error) {
	var out []*entity.RecurringPayment
	for _, p := range r.s.payments {
		if p.UserID == userID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

// --- seeding helpers ---

var testTime = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func testProvider() coreport.TimeProvider {
	return &fixedTimeProvider{now: testTime}
}

func seedCategory(t *testing.T, s *memStore, userID uint64, name string, budgetInCents *int64, spentInCents int64) *entity.Category {
	t.Helper()
	c, err := entity.NewCategory(userID, name, budgetInCents, testProvider())
	require.NoError(t, err)
	require.NoError(t, (&memCategoryRepo{s}).Create(context.Background(), c))
	stored := s.categories[c.ID]
	stored.SetSpent(spentInCents)
	c.SetSpent(spentInCents)
	return c
}

func seedTransaction(t *testing.T, s *memStore, userID, categoryID uint64, name string, costInCents int64, date time.Time) *entity.Transaction {
	t.Helper()
	tx, err := entity.NewTransaction(userID, categoryID, name, costInCents, date, testProvider())
	require.NoError(t, err)
	require.NoError(t, (&memTransactionRepo{s}).Create(context.Background(), tx))
	return tx
}

func seedPayment(t *testing.T, s *memStore, userID uint64, category, name string, costInCents int64) *entity.RecurringPayment {
	t.Helper()
	p, err := entity.NewRecurringPayment(userID, category, name, costInCents, testTime, testProvider())
	require.NoError(t, err)
	require.NoError(t, (&memPaymentRepo{s}).Create(context.Background(), p))
	return p
}

func budgetOf(cents int64) *int64 {
	return &cents
}

// totalSpend sums the running totals across all of a user's categories
func totalSpend(s *memStore, userID uint64) int64 {
	var sum int64
	for _, c := range s.categories {
		if c.UserID == userID {
			sum += c.Spent()
		}
	}
	return sum
}

// requireLedgerInvariant asserts spent == sum of live transaction costs for
// every category of the user
func requireLedgerInvariant(t *testing.T, s *memStore, userID uint64) {
	t.Helper()
	for _, c := range s.categories {
		if c.UserID != userID {
			continue
		}
		var sum int64
		for _, tx := range s.transactions {
			if tx.UserID == userID && tx.CategoryID == c.ID {
				sum += tx.Cost
			}
		}
		require.Equalf(t, sum, c.Spent(), "category %q spent total diverged from its transactions", c.Name)
	}
}
