package services

import (
	"context"

	"github.com/SscSPs/personal_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyConverterSvc converts amounts using the current rate table.
type CurrencyConverterSvc interface {
	// Convert converts amount between two currencies, routing cross pairs through the base currency.
	// Codes missing from the rate table are treated as having a rate of 1.
	Convert(amount decimal.Decimal, fromCurrency, toCurrency string) decimal.Decimal

	// BaseCurrency returns the reporting anchor.
	BaseCurrency() string

	// Rates returns a copy of the rate table currently in effect.
	Rates() domain.RateTable
}

// RateRefresherSvc manages the rate table lifecycle.
type RateRefresherSvc interface {
	// Refresh fetches a new table from the provider and replaces the current one wholesale.
	// On failure the current table is kept and an error wrapping apperrors.ErrRefreshFailed is returned.
	Refresh(ctx context.Context) (domain.RateTable, error)

	// LoadCached loads the last persisted table. A missing or unreadable snapshot leaves the table empty.
	LoadCached(ctx context.Context) error
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyConverterSvc
	RateRefresherSvc
}
