package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardTotals is the income/expense summary in the base currency.
type DashboardTotals struct {
	BaseCurrency  string          `json:"baseCurrency"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Net           decimal.Decimal `json:"net"`
}

// CategoryBreakdownRow holds per-category sums in the base currency.
type CategoryBreakdownRow struct {
	Category string          `json:"category"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// MonthlyPoint is one calendar month of the trend series.
type MonthlyPoint struct {
	Month    string          `json:"month"` // YYYY-MM
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// Net returns income minus expenses for the month.
func (p MonthlyPoint) Net() decimal.Decimal {
	return p.Income.Sub(p.Expenses)
}

// ExpenseShare is an expense category's slice of total expenses.
type ExpenseShare struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Percent  decimal.Decimal `json:"percent"`
}

// ReportSnapshot bundles every aggregate view computed in one pass.
// It is a value owned by the caller; nothing in it is shared with the store.
type ReportSnapshot struct {
	GeneratedAt   time.Time              `json:"generatedAt"`
	Rates         RateTable              `json:"rates"`
	Totals        DashboardTotals        `json:"totals"`
	Categories    []CategoryBreakdownRow `json:"categories"`
	Monthly       []MonthlyPoint         `json:"monthly"`
	ExpenseShares []ExpenseShare         `json:"expenseShares"`
}
