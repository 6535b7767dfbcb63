package repositories

import (
	"context"

	"github.com/SscSPs/personal_ledger/internal/core/domain"
)

// RateSnapshotRepository persists the last successfully fetched rate table.
type RateSnapshotRepository interface {
	// SaveRateTable replaces the stored snapshot wholesale.
	SaveRateTable(ctx context.Context, table domain.RateTable) error

	// LoadRateTable returns the stored snapshot, or apperrors.ErrNotFound if none was ever saved.
	LoadRateTable(ctx context.Context) (*domain.RateTable, error)
}
