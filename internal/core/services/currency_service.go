package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/personal_ledger/internal/apperrors"
	"github.com/SscSPs/personal_ledger/internal/core/domain"
	portsprov "github.com/SscSPs/personal_ledger/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/personal_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// DefaultRateFetchTimeout bounds a single provider call when no timeout is configured.
const DefaultRateFetchTimeout = 10 * time.Second

// currencyService holds the rate table in effect and converts amounts against it.
type currencyService struct {
	BaseService
	baseCurrency string
	provider     portsprov.RateProvider
	snapshots    portsrepo.RateSnapshotRepository
	fetchTimeout time.Duration
	now          func() time.Time

	refreshes singleflight.Group

	mu    sync.RWMutex
	table domain.RateTable
}

// CurrencyServiceOption is a functional option for configuring the currency service
type CurrencyServiceOption func(*currencyService)

// WithRateFetchTimeout bounds each provider call.
func WithRateFetchTimeout(d time.Duration) CurrencyServiceOption {
	return func(s *currencyService) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithRateSnapshotRepository persists every successful refresh and enables LoadCached.
func WithRateSnapshotRepository(repo portsrepo.RateSnapshotRepository) CurrencyServiceOption {
	return func(s *currencyService) {
		s.snapshots = repo
	}
}

// WithInitialRates seeds the table, mostly for tests.
func WithInitialRates(table domain.RateTable) CurrencyServiceOption {
	return func(s *currencyService) {
		s.table = table.Clone()
		s.table.BaseCurrency = s.baseCurrency
	}
}

// WithCurrencyClock overrides the clock used to stamp tables that arrive without a date.
func WithCurrencyClock(now func() time.Time) CurrencyServiceOption {
	return func(s *currencyService) {
		s.now = now
	}
}

// NewCurrencyService creates a converter anchored at baseCurrency. The table starts empty.
func NewCurrencyService(baseCurrency string, provider portsprov.RateProvider, options ...CurrencyServiceOption) portssvc.CurrencySvcFacade {
	if baseCurrency == "" {
		baseCurrency = domain.DefaultBaseCurrency
	}
	svc := &currencyService{
		baseCurrency: baseCurrency,
		provider:     provider,
		fetchTimeout: DefaultRateFetchTimeout,
		now:          time.Now,
		table:        domain.NewEmptyRateTable(baseCurrency),
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) BaseCurrency() string {
	return s.baseCurrency
}

func (s *currencyService) Rates() domain.RateTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Clone()
}

// Convert never fails. Unknown codes, zero rates and an empty table all fall back to a rate of 1.
func (s *currencyService) Convert(amount decimal.Decimal, fromCurrency, toCurrency string) decimal.Decimal {
	if fromCurrency == toCurrency {
		return amount
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Convert(amount, fromCurrency, toCurrency)
}

// Refresh fetches, validates and persists a new table, then swaps it in.
// On any failure the table in effect is returned unchanged alongside the error.
// Concurrent callers share one provider round trip. The shared fetch is detached
// from any single caller, so a caller that gives up only abandons its own wait.
func (s *currencyService) Refresh(ctx context.Context) (domain.RateTable, error) {
	flightCtx := context.WithoutCancel(ctx)
	ch := s.refreshes.DoChan("refresh", func() (any, error) {
		return s.refresh(flightCtx)
	})

	select {
	case <-ctx.Done():
		s.LogWarn(ctx, "Stopped waiting for rate refresh", slog.String("reason", ctx.Err().Error()))
		return s.Rates(), apperrors.NewRefreshError("rate refresh abandoned", ctx.Err())
	case res := <-ch:
		if res.Shared {
			s.LogDebug(ctx, "Joined an in-flight rate refresh")
		}
		if res.Err != nil {
			return s.Rates(), res.Err
		}
		return res.Val.(domain.RateTable).Clone(), nil
	}
}

func (s *currencyService) refresh(ctx context.Context) (domain.RateTable, error) {
	if s.provider == nil {
		return domain.RateTable{}, apperrors.NewRefreshError("no rate provider configured", nil)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	s.LogDebug(ctx, "Fetching exchange rates", slog.String("base_currency", s.baseCurrency))

	fetched, err := s.provider.FetchRates(fetchCtx, s.baseCurrency)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch exchange rates", slog.String("base_currency", s.baseCurrency))
		return domain.RateTable{}, apperrors.NewRefreshError("failed to fetch exchange rates", err)
	}

	table, err := s.normalize(fetched)
	if err != nil {
		s.LogError(ctx, err, "Provider returned an unusable rate table")
		return domain.RateTable{}, apperrors.NewRefreshError("provider returned an unusable rate table", err)
	}

	if s.snapshots != nil {
		if err := s.snapshots.SaveRateTable(ctx, table); err != nil {
			s.LogError(ctx, err, "Failed to persist exchange rates")
			return domain.RateTable{}, apperrors.NewRefreshError("failed to persist exchange rates", err)
		}
	}

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	s.LogInfo(ctx, "Exchange rates refreshed",
		slog.String("base_currency", table.BaseCurrency),
		slog.Int("rate_count", len(table.Rates)),
		slog.String("fetched_at", table.FetchedAt.String()))

	return table, nil
}

func (s *currencyService) normalize(fetched *domain.RateTable) (domain.RateTable, error) {
	if fetched == nil || fetched.IsEmpty() {
		return domain.RateTable{}, errors.New("rate table is empty")
	}
	if fetched.BaseCurrency != "" && fetched.BaseCurrency != s.baseCurrency {
		return domain.RateTable{}, fmt.Errorf("rate table base %q does not match %q", fetched.BaseCurrency, s.baseCurrency)
	}
	for code, rate := range fetched.Rates {
		if !rate.IsPositive() {
			return domain.RateTable{}, fmt.Errorf("rate for %s must be positive, got %s", code, rate.String())
		}
	}

	table := fetched.Clone()
	table.BaseCurrency = s.baseCurrency
	if table.FetchedAt.IsZero() {
		table.FetchedAt = domain.DateOf(s.now())
	}
	return table, nil
}

// LoadCached installs the last persisted table. A missing snapshot is not an error.
// An unreadable or mismatched snapshot leaves the empty table in place.
func (s *currencyService) LoadCached(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}

	cached, err := s.snapshots.LoadRateTable(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "No cached exchange rates found, starting with an empty table")
			return nil
		}
		s.LogError(ctx, err, "Failed to load cached exchange rates")
		return fmt.Errorf("failed to load cached exchange rates: %w", err)
	}

	table, err := s.normalize(cached)
	if err != nil {
		s.LogWarn(ctx, "Ignoring cached exchange rates", slog.String("reason", err.Error()))
		return nil
	}

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	s.LogInfo(ctx, "Loaded cached exchange rates",
		slog.Int("rate_count", len(table.Rates)),
		slog.String("fetched_at", table.FetchedAt.String()))
	return nil
}
