package services

import (
	portsprov "github.com/SscSPs/personal_ledger/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/personal_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/personal_ledger/internal/core/ports/services"
	"github.com/SscSPs/personal_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rates portsprov.RateProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Currency comes first; reporting converts through it
	container.Currency = NewCurrencyService(
		cfg.BaseCurrency,
		rates,
		WithRateFetchTimeout(cfg.RateFetchTimeout),
		WithRateSnapshotRepository(repos.RateSnapshotRepo),
	)

	container.Transaction = NewTransactionService(repos.TransactionRepo)

	container.Reporting = NewReportingService(
		repos.TransactionRepo,
		container.Currency,
		WithMonthlyWindow(cfg.MonthlyWindow),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CurrencySvcFacade    = (*currencyService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.ReportingService     = (*reportingService)(nil)
)
