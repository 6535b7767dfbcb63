package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/personal_ledger/internal/apperrors"
	"github.com/SscSPs/personal_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, kind, txn_date, category, description, amount, currency_code, created_at`

// Income sorts before expenses; seq keeps insertion order within a kind.
const transactionOrder = ` ORDER BY CASE kind WHEN 'income' THEN 0 ELSE 1 END, seq`

// PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade on one table with a kind column.
type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var (
		t         domain.Transaction
		kind      string
		txnDate   time.Time
		amount    decimal.Decimal
		createdAt time.Time
	)
	if err := row.Scan(&t.TransactionID, &kind, &txnDate, &t.Category, &t.Description, &amount, &t.CurrencyCode, &createdAt); err != nil {
		return domain.Transaction{}, err
	}
	t.Kind = domain.TransactionKind(kind)
	t.Date = domain.DateOf(txnDate)
	t.Amount = amount
	t.CreatedAt = createdAt.UTC()
	return t, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM ledger_transactions WHERE transaction_id = $1`

	t, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return &t, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, kind *domain.TransactionKind) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM ledger_transactions`
	var args []any
	if kind != nil {
		query += ` WHERE kind = $1`
		args = append(args, string(*kind))
	}
	query += transactionOrder

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return txns, nil
}

// SaveTransaction upserts by ID. An ID already stored under the other kind is rejected.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO ledger_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (transaction_id) DO UPDATE SET
			txn_date = EXCLUDED.txn_date,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			amount = EXCLUDED.amount,
			currency_code = EXCLUDED.currency_code
		WHERE ledger_transactions.kind = EXCLUDED.kind`

	tag, err := r.Pool.Exec(ctx, query,
		txn.TransactionID, string(txn.Kind), txn.Date.Time, txn.Category, txn.Description,
		txn.Amount, txn.CurrencyCode, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s is stored under another kind", apperrors.ErrDuplicate, txn.TransactionID)
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM ledger_transactions WHERE transaction_id = $1`, transactionID)
	if err != nil {
		return false, fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	return tag.RowsAffected() > 0, nil
}
