package dto

import (
	"time"

	"github.com/SscSPs/personal_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardResponse represents the dashboard totals response
type DashboardResponse struct {
	BaseCurrency  string          `json:"baseCurrency"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Net           decimal.Decimal `json:"net"`
}

// CategoryRowResponse represents a row of the category breakdown
type CategoryRowResponse struct {
	Category string          `json:"category"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// CategoryBreakdownResponse represents the category breakdown response
type CategoryBreakdownResponse struct {
	BaseCurrency string                `json:"baseCurrency"`
	Rows         []CategoryRowResponse `json:"rows"`
	Totals       struct {
		Income   decimal.Decimal `json:"income"`
		Expenses decimal.Decimal `json:"expenses"`
		Net      decimal.Decimal `json:"net"`
	} `json:"totals"`
}

// MonthlyPointResponse represents one month of the trend series
type MonthlyPointResponse struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// MonthlySeriesResponse represents the monthly trend response, oldest month first
type MonthlySeriesResponse struct {
	BaseCurrency string                 `json:"baseCurrency"`
	Points       []MonthlyPointResponse `json:"points"`
}

// ExpenseShareResponse represents one slice of the expense distribution
type ExpenseShareResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Percent  decimal.Decimal `json:"percent"`
}

// SnapshotResponse represents every view computed together
type SnapshotResponse struct {
	GeneratedAt   time.Time                 `json:"generatedAt"`
	Rates         RateTableResponse         `json:"rates"`
	Dashboard     DashboardResponse         `json:"dashboard"`
	Categories    CategoryBreakdownResponse `json:"categories"`
	Monthly       MonthlySeriesResponse     `json:"monthly"`
	ExpenseShares []ExpenseShareResponse    `json:"expenseShares"`
}

// ToDashboardResponse converts domain totals to a DTO response
func ToDashboardResponse(t *domain.DashboardTotals) DashboardResponse {
	return DashboardResponse{
		BaseCurrency:  t.BaseCurrency,
		TotalIncome:   t.TotalIncome,
		TotalExpenses: t.TotalExpenses,
		Net:           t.Net,
	}
}

// ToCategoryBreakdownResponse converts domain breakdown rows to a DTO response
func ToCategoryBreakdownResponse(rows []domain.CategoryBreakdownRow, baseCurrency string) CategoryBreakdownResponse {
	response := CategoryBreakdownResponse{
		BaseCurrency: baseCurrency,
		Rows:         make([]CategoryRowResponse, len(rows)),
	}

	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero

	for i, row := range rows {
		response.Rows[i] = CategoryRowResponse{
			Category: row.Category,
			Income:   row.Income,
			Expenses: row.Expenses,
			Net:      row.Net,
		}
		totalIncome = totalIncome.Add(row.Income)
		totalExpenses = totalExpenses.Add(row.Expenses)
	}

	response.Totals.Income = totalIncome
	response.Totals.Expenses = totalExpenses
	response.Totals.Net = totalIncome.Sub(totalExpenses)

	return response
}

// ToMonthlySeriesResponse converts the domain monthly series to a DTO response
func ToMonthlySeriesResponse(points []domain.MonthlyPoint, baseCurrency string) MonthlySeriesResponse {
	response := MonthlySeriesResponse{
		BaseCurrency: baseCurrency,
		Points:       make([]MonthlyPointResponse, len(points)),
	}
	for i, p := range points {
		response.Points[i] = MonthlyPointResponse{
			Month:    p.Month,
			Income:   p.Income,
			Expenses: p.Expenses,
			Net:      p.Net(),
		}
	}
	return response
}

// ToExpenseShareResponses converts domain expense shares to DTOs
func ToExpenseShareResponses(shares []domain.ExpenseShare) []ExpenseShareResponse {
	res := make([]ExpenseShareResponse, len(shares))
	for i, s := range shares {
		res[i] = ExpenseShareResponse{Category: s.Category, Amount: s.Amount, Percent: s.Percent}
	}
	return res
}

// ToSnapshotResponse converts a full report snapshot to a DTO response
func ToSnapshotResponse(s *domain.ReportSnapshot) SnapshotResponse {
	base := s.Totals.BaseCurrency
	return SnapshotResponse{
		GeneratedAt:   s.GeneratedAt,
		Rates:         ToRateTableResponse(s.Rates),
		Dashboard:     ToDashboardResponse(&s.Totals),
		Categories:    ToCategoryBreakdownResponse(s.Categories, base),
		Monthly:       ToMonthlySeriesResponse(s.Monthly, base),
		ExpenseShares: ToExpenseShareResponses(s.ExpenseShares),
	}
}
