package pgsql

import (
	"context"
	"encoding/json"
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

// snapshotsKept is how many rate tables are retained; older rows are pruned on save.
const snapshotsKept = 30

// PgxRateSnapshotRepository stores each successful refresh as a JSONB row.
type PgxRateSnapshotRepository struct {
	BaseRepository
}

func newPgxRateSnapshotRepository(pool *pgxpool.Pool) portsrepo.RateSnapshotRepository {
	return &PgxRateSnapshotRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RateSnapshotRepository = (*PgxRateSnapshotRepository)(nil)

func (r *PgxRateSnapshotRepository) SaveRateTable(ctx context.Context, table domain.RateTable) error {
	rates, err := json.Marshal(table.Rates)
	if err != nil {
		return fmt.Errorf("failed to encode rates: %w", err)
	}

	var fetchedOn *time.Time
	if !table.FetchedAt.IsZero() {
		d := table.FetchedAt.Time
		fetchedOn = &d
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx,
		`INSERT INTO rate_snapshots (base_currency, rates, fetched_on, saved_at) VALUES ($1, $2, $3, $4)`,
		table.BaseCurrency, string(rates), fetchedOn, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("failed to insert rate snapshot: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM rate_snapshots WHERE snapshot_id NOT IN (
			SELECT snapshot_id FROM rate_snapshots ORDER BY snapshot_id DESC LIMIT $1)`,
		snapshotsKept,
	); err != nil {
		return fmt.Errorf("failed to prune rate snapshots: %w", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxRateSnapshotRepository) LoadRateTable(ctx context.Context) (*domain.RateTable, error) {
	var (
		base      string
		raw       []byte
		fetchedOn *time.Time
	)
	err := r.Pool.QueryRow(ctx,
		`SELECT base_currency, rates, fetched_on FROM rate_snapshots ORDER BY snapshot_id DESC LIMIT 1`,
	).Scan(&base, &raw, &fetchedOn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load rate snapshot: %w", err)
	}

	rates := map[string]decimal.Decimal{}
	if err := json.Unmarshal(raw, &rates); err != nil {
		return nil, fmt.Errorf("failed to decode rate snapshot: %w", err)
	}

	table := &domain.RateTable{BaseCurrency: base, Rates: rates}
	if fetchedOn != nil {
		table.FetchedAt = domain.DateOf(*fetchedOn)
	}
	return table, nil
}
