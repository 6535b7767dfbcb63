package providers

import (
	"context"

	"github.com/SscSPs/personal_ledger/internal/core/domain"
)

// RateProvider fetches the full current rate table relative to a base currency.
// Implementations must treat the upstream as unreliable and return an error
// wrapping apperrors.ErrRefreshFailed for transport failures, non-success
// statuses and malformed payloads.
type RateProvider interface {
	FetchRates(ctx context.Context, baseCurrency string) (*domain.RateTable, error)
}
