package repositories

import (
	"context"

	"github.com/SscSPs/personal_ledger/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID searches every partition for the given ID.
	// Returns apperrors.ErrNotFound when no record has that ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns the records of one partition, or of both when kind is nil.
	// Repeated calls against unchanged data return the same order.
	ListTransactions(ctx context.Context, kind *domain.TransactionKind) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data.
// Every call durably persists the affected partition before returning.
type TransactionWriter interface {
	// SaveTransaction inserts a new record, or replaces the record with the same ID and kind.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes the record with the given ID from whichever partition holds it.
	// It reports false, with no error, when nothing matched.
	DeleteTransaction(ctx context.Context, transactionID string) (bool, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
