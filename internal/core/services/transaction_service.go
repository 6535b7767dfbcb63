package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/personal_ledger/internal/apperrors"
	"github.com/SscSPs/personal_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_ledger/internal/core/ports/services"
	"github.com/SscSPs/personal_ledger/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxIDAttempts bounds how many fresh IDs are tried before giving up on a collision.
const maxIDAttempts = 3

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	validate        *validator.Validate
	newID           func() string
	now             func() time.Time
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithIDGenerator overrides how transaction IDs are minted.
func WithIDGenerator(gen func() string) TransactionServiceOption {
	return func(s *transactionService) {
		s.newID = gen
	}
}

// WithTransactionClock overrides the clock used for CreatedAt.
func WithTransactionClock(now func() time.Time) TransactionServiceOption {
	return func(s *transactionService) {
		s.now = now
	}
}

// NewTransactionService creates a new transaction service with the provided options
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	v := validator.New()
	// Requests carry gin's binding tags; reuse them so service callers get the same rules.
	v.SetTagName("binding")

	svc := &transactionService{
		transactionRepo: repo,
		validate:        v,
		newID:           uuid.NewString,
		now:             time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// fromRequest validates req and builds a transaction without an ID.
func (s *transactionService) fromRequest(req dto.CreateTransactionRequest) (domain.Transaction, error) {
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
			}
			return domain.Transaction{}, apperrors.NewValidationError("invalid transaction: " + strings.Join(fields, ", "))
		}
		return domain.Transaction{}, apperrors.NewValidationError("invalid transaction: " + err.Error())
	}

	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return domain.Transaction{}, apperrors.NewValidationError(err.Error())
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		return domain.Transaction{}, apperrors.NewValidationError(fmt.Sprintf("amount %q is not a number", req.Amount))
	}

	kind, err := domain.ParseTransactionKind(req.Kind)
	if err != nil {
		return domain.Transaction{}, apperrors.NewValidationError(err.Error())
	}

	return domain.Transaction{
		Date:         date,
		Category:     strings.TrimSpace(req.Category),
		Description:  strings.TrimSpace(req.Description),
		Amount:       amount,
		CurrencyCode: req.CurrencyCode,
		Kind:         kind,
	}, nil
}

// freshID returns an ID that no stored record uses yet.
func (s *transactionService) freshID(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		id := s.newID()
		_, err := s.transactionRepo.FindTransactionByID(ctx, id)
		if errors.Is(err, apperrors.ErrNotFound) {
			return id, nil
		}
		if err != nil {
			return "", apperrors.NewPersistenceError("failed to check transaction ID", err)
		}
		s.LogWarn(ctx, "Generated transaction ID already exists, retrying",
			slog.String("transaction_id", id),
			slog.Int("attempt", attempt))
	}
	return "", apperrors.NewAppError(http.StatusInternalServerError, "could not generate a unique transaction ID", apperrors.ErrDuplicate)
}

func (s *transactionService) AddTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.fromRequest(req)
	if err != nil {
		s.LogDebug(ctx, "Rejected transaction", slog.String("error", err.Error()))
		return nil, err
	}

	return s.create(ctx, txn)
}

func (s *transactionService) create(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	id, err := s.freshID(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to assign transaction ID")
		return nil, err
	}
	txn.TransactionID = id
	txn.CreatedAt = s.now().UTC()

	if err := txn.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", id))
		return nil, apperrors.NewPersistenceError("failed to save transaction", err)
	}

	s.LogInfo(ctx, "Transaction added",
		slog.String("transaction_id", id),
		slog.String("kind", string(txn.Kind)),
		slog.String("currency", txn.CurrencyCode))
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", transactionID))
		}
		s.LogError(ctx, err, "Failed to get transaction", slog.String("transaction_id", transactionID))
		return nil, apperrors.NewPersistenceError("failed to get transaction", err)
	}
	return txn, nil
}

// ListTransactions returns newest first. Ties break on creation time, then ID, so repeated calls agree.
func (s *transactionService) ListTransactions(ctx context.Context, kind *domain.TransactionKind) ([]domain.Transaction, error) {
	if kind != nil && !kind.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown transaction kind %q", *kind))
	}

	txns, err := s.transactionRepo.ListTransactions(ctx, kind)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, apperrors.NewPersistenceError("failed to list transactions", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}

	sort.SliceStable(txns, func(i, j int) bool {
		a, b := txns[i], txns[j]
		if !a.Date.Equal(b.Date.Time) {
			return a.Date.After(b.Date.Time)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.TransactionID < b.TransactionID
	})
	return txns, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) (bool, error) {
	deleted, err := s.transactionRepo.DeleteTransaction(ctx, transactionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return false, apperrors.NewPersistenceError("failed to delete transaction", err)
	}
	if deleted {
		s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	} else {
		s.LogDebug(ctx, "Delete matched no transaction", slog.String("transaction_id", transactionID))
	}
	return deleted, nil
}

// ReplaceTransaction keeps the ID and creation time when the kind is unchanged.
// Moving a record to the other kind creates it there under a new ID and then removes the original.
func (s *transactionService) ReplaceTransaction(ctx context.Context, transactionID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	existing, err := s.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	updated, err := s.fromRequest(req)
	if err != nil {
		return nil, err
	}

	if updated.Kind != existing.Kind {
		created, err := s.create(ctx, updated)
		if err != nil {
			return nil, err
		}
		if _, err := s.transactionRepo.DeleteTransaction(ctx, transactionID); err != nil {
			s.LogError(ctx, err, "Failed to remove original after kind change, rolling back",
				slog.String("transaction_id", transactionID),
				slog.String("new_transaction_id", created.TransactionID))
			if _, rbErr := s.transactionRepo.DeleteTransaction(ctx, created.TransactionID); rbErr != nil {
				s.LogError(ctx, rbErr, "Rollback of kind change failed", slog.String("transaction_id", created.TransactionID))
			}
			return nil, apperrors.NewPersistenceError("failed to replace transaction", err)
		}
		s.LogInfo(ctx, "Transaction moved to other kind",
			slog.String("old_transaction_id", transactionID),
			slog.String("transaction_id", created.TransactionID),
			slog.String("kind", string(created.Kind)))
		return created, nil
	}

	updated.TransactionID = existing.TransactionID
	updated.CreatedAt = existing.CreatedAt
	if err := updated.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := s.transactionRepo.SaveTransaction(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to replace transaction", slog.String("transaction_id", transactionID))
		return nil, apperrors.NewPersistenceError("failed to replace transaction", err)
	}

	s.LogInfo(ctx, "Transaction replaced", slog.String("transaction_id", transactionID))
	return &updated, nil
}

// ExportRows lists income then expenses, each in store order.
func (s *transactionService) ExportRows(ctx context.Context) ([]domain.ExportRow, error) {
	rows := []domain.ExportRow{}
	for _, kind := range domain.Kinds {
		k := kind
		txns, err := s.transactionRepo.ListTransactions(ctx, &k)
		if err != nil {
			s.LogError(ctx, err, "Failed to read transactions for export", slog.String("kind", string(kind)))
			return nil, apperrors.NewPersistenceError("failed to export transactions", err)
		}
		for _, t := range txns {
			rows = append(rows, domain.ToExportRow(t))
		}
	}
	return rows, nil
}
