package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/personal_ledger/internal/apperrors"
	"github.com/SscSPs/personal_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	transactionRepo portsrepo.TransactionReader
	currency        portssvc.CurrencyConverterSvc
	monthlyWindow   int
	now             func() time.Time
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithMonthlyWindow sets how many calendar months the trend series covers.
func WithMonthlyWindow(months int) ReportingServiceOption {
	return func(s *reportingService) {
		if months > 0 {
			s.monthlyWindow = months
		}
	}
}

// WithReportingClock overrides the clock that anchors the monthly window.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.TransactionReader, currency portssvc.CurrencyConverterSvc, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		transactionRepo: repo,
		currency:        currency,
		monthlyWindow:   DefaultMonthlyWindow,
		now:             time.Now,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// load re-reads both partitions. Nothing is cached between calls.
func (s *reportingService) load(ctx context.Context) ([]domain.Transaction, error) {
	txns, err := s.transactionRepo.ListTransactions(ctx, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for reporting")
		return nil, apperrors.NewPersistenceError("failed to load transactions", err)
	}
	return txns, nil
}

// tableConverter converts against one fixed rate table, so a refresh landing
// mid-computation cannot mix two tables into one view.
type tableConverter struct {
	table domain.RateTable
}

func (c tableConverter) Convert(amount decimal.Decimal, fromCurrency, toCurrency string) decimal.Decimal {
	return c.table.Convert(amount, fromCurrency, toCurrency)
}

func (c tableConverter) BaseCurrency() string {
	return c.table.BaseCurrency
}

// pinRates takes one copy of the table in effect for the duration of a report.
func (s *reportingService) pinRates() (domain.RateTable, Converter) {
	table := s.currency.Rates()
	if table.BaseCurrency == "" {
		table.BaseCurrency = s.currency.BaseCurrency()
	}
	return table, tableConverter{table: table}
}

func (s *reportingService) Dashboard(ctx context.Context) (*domain.DashboardTotals, error) {
	txns, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	_, conv := s.pinRates()
	totals := ComputeTotals(txns, conv)
	return &totals, nil
}

func (s *reportingService) Categories(ctx context.Context) ([]domain.CategoryBreakdownRow, error) {
	txns, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	_, conv := s.pinRates()
	return ComputeCategoryBreakdown(txns, conv), nil
}

func (s *reportingService) Monthly(ctx context.Context) ([]domain.MonthlyPoint, error) {
	txns, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	_, conv := s.pinRates()
	return ComputeMonthlySeries(txns, conv, s.now(), s.monthlyWindow), nil
}

func (s *reportingService) ExpenseShares(ctx context.Context) ([]domain.ExpenseShare, error) {
	txns, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	_, conv := s.pinRates()
	return ComputeExpenseShares(txns, conv), nil
}

// RefreshAll computes every view from a single read of the store and a single
// copy of the rate table, so the views agree with each other.
func (s *reportingService) RefreshAll(ctx context.Context) (*domain.ReportSnapshot, error) {
	txns, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	table, conv := s.pinRates()
	snapshot := &domain.ReportSnapshot{
		GeneratedAt:   now.UTC(),
		Rates:         table,
		Totals:        ComputeTotals(txns, conv),
		Categories:    ComputeCategoryBreakdown(txns, conv),
		Monthly:       ComputeMonthlySeries(txns, conv, now, s.monthlyWindow),
		ExpenseShares: ComputeExpenseShares(txns, conv),
	}

	s.LogDebug(ctx, "Computed report snapshot",
		slog.Int("transaction_count", len(txns)),
		slog.Int("category_count", len(snapshot.Categories)))
	return snapshot, nil
}
