package services

import (
	"context"

	"github.com/SscSPs/personal_ledger/internal/core/domain"
	"github.com/SscSPs/personal_ledger/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction from either partition.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns the transactions of one kind, or all when kind is nil.
	ListTransactions(ctx context.Context, kind *domain.TransactionKind) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// AddTransaction validates the request, assigns a fresh ID and persists the record.
	AddTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// ReplaceTransaction replaces a record's fields. A change of kind deletes the old record
	// and creates a new one with a new ID.
	ReplaceTransaction(ctx context.Context, transactionID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a record. Deleting an unknown ID is a no-op returning false.
	DeleteTransaction(ctx context.Context, transactionID string) (bool, error)
}

// TransactionExporterSvc flattens the ledger for tabular export.
type TransactionExporterSvc interface {
	ExportRows(ctx context.Context) ([]domain.ExportRow, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	TransactionExporterSvc
}
