package services

import (
	"context"

	"github.com/SscSPs/personal_ledger/internal/core/domain"
)

// ReportingService exposes the aggregate views. Every call recomputes from the store.
type ReportingService interface {
	// Dashboard computes total income, total expenses and net in the base currency.
	Dashboard(ctx context.Context) (*domain.DashboardTotals, error)

	// Categories computes the per-category breakdown over both partitions.
	Categories(ctx context.Context) ([]domain.CategoryBreakdownRow, error)

	// Monthly computes the trailing monthly trend series, oldest first.
	Monthly(ctx context.Context) ([]domain.MonthlyPoint, error)

	// ExpenseShares computes each expense category's share of total expenses.
	ExpenseShares(ctx context.Context) ([]domain.ExpenseShare, error)

	// RefreshAll re-reads the store once and computes every view into one snapshot.
	RefreshAll(ctx context.Context) (*domain.ReportSnapshot, error)
}
