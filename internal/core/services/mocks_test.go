package services_test

import (
	"context"
	"sync"

	"github.com/SscSPs/personal_ledger/internal/apperrors"
	"github.com/SscSPs/personal_ledger/internal/core/domain"
	portsprov "github.com/SscSPs/personal_ledger/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/personal_ledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, kind *domain.TransactionKind) ([]domain.Transaction, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) (bool, error) {
	args := m.Called(ctx, transactionID)
	return args.Bool(0), args.Error(1)
}

// --- Mock RateSnapshotRepository ---
type MockRateSnapshotRepository struct {
	mock.Mock
}

var _ portsrepo.RateSnapshotRepository = (*MockRateSnapshotRepository)(nil)

func (m *MockRateSnapshotRepository) SaveRateTable(ctx context.Context, table domain.RateTable) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

func (m *MockRateSnapshotRepository) LoadRateTable(ctx context.Context) (*domain.RateTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateTable), args.Error(1)
}

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

var _ portsprov.RateProvider = (*MockRateProvider)(nil)

func (m *MockRateProvider) FetchRates(ctx context.Context, baseCurrency string) (*domain.RateTable, error) {
	args := m.Called(ctx, baseCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateTable), args.Error(1)
}

// memTransactionRepository keeps records in insertion order, enough to drive the services end to end.
type memTransactionRepository struct {
	mu    sync.Mutex
	order []string
	byID  map[string]domain.Transaction
}

var _ portsrepo.TransactionRepositoryFacade = (*memTransactionRepository)(nil)

func newMemTransactionRepository() *memTransactionRepository {
	return &memTransactionRepository{byID: map[string]domain.Transaction{}}
}

func (r *memTransactionRepository) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	txn, ok := r.byID[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &txn, nil
}

func (r *memTransactionRepository) ListTransactions(_ context.Context, kind *domain.TransactionKind) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Transaction{}
	for _, id := range r.order {
		txn := r.byID[id]
		if kind == nil || txn.Kind == *kind {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (r *memTransactionRepository) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[txn.TransactionID]; !ok {
		r.order = append(r.order, txn.TransactionID)
	}
	r.byID[txn.TransactionID] = txn
	return nil
}

func (r *memTransactionRepository) DeleteTransaction(_ context.Context, transactionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[transactionID]; !ok {
		return false, nil
	}
	delete(r.byID, transactionID)
	for i, id := range r.order {
		if id == transactionID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *memTransactionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}
