package services

import (
	"sort"
	"time"

	"github.com/SscSPs/personal_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultMonthlyWindow is the number of calendar months in the trend series.
const DefaultMonthlyWindow = 12

// PercentPrecision is the number of decimal places kept in expense shares.
const PercentPrecision = 2

var hundred = decimal.NewFromInt(100)

// Converter is the part of the currency service the aggregations depend on.
type Converter interface {
	Convert(amount decimal.Decimal, fromCurrency, toCurrency string) decimal.Decimal
	BaseCurrency() string
}

func toBase(t domain.Transaction, conv Converter) decimal.Decimal {
	return conv.Convert(t.Amount, t.CurrencyCode, conv.BaseCurrency())
}

// ComputeTotals sums income and expenses in the base currency.
func ComputeTotals(txns []domain.Transaction, conv Converter) domain.DashboardTotals {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, t := range txns {
		switch t.Kind {
		case domain.Income:
			income = income.Add(toBase(t, conv))
		case domain.Expense:
			expenses = expenses.Add(toBase(t, conv))
		}
	}
	return domain.DashboardTotals{
		BaseCurrency:  conv.BaseCurrency(),
		TotalIncome:   income,
		TotalExpenses: expenses,
		Net:           income.Sub(expenses),
	}
}

// ComputeCategoryBreakdown groups both partitions by category, sorted by category name.
// A category used by only one kind reports zero for the other.
func ComputeCategoryBreakdown(txns []domain.Transaction, conv Converter) []domain.CategoryBreakdownRow {
	byCategory := make(map[string]*domain.CategoryBreakdownRow)
	for _, t := range txns {
		row, ok := byCategory[t.Category]
		if !ok {
			row = &domain.CategoryBreakdownRow{Category: t.Category, Income: decimal.Zero, Expenses: decimal.Zero}
			byCategory[t.Category] = row
		}
		switch t.Kind {
		case domain.Income:
			row.Income = row.Income.Add(toBase(t, conv))
		case domain.Expense:
			row.Expenses = row.Expenses.Add(toBase(t, conv))
		}
	}

	rows := make([]domain.CategoryBreakdownRow, 0, len(byCategory))
	for _, row := range byCategory {
		row.Net = row.Income.Sub(row.Expenses)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows
}

// MonthWindow returns the YYYY-MM keys of the trailing months ending at the month of now, oldest first.
// Steps are whole calendar months taken from the first of the month, so short months never skip a bucket.
func MonthWindow(now time.Time, months int) []string {
	if months <= 0 {
		months = DefaultMonthlyWindow
	}
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	keys := make([]string, months)
	for i := 0; i < months; i++ {
		keys[months-1-i] = first.AddDate(0, -i, 0).Format(domain.MonthLayout)
	}
	return keys
}

// ComputeMonthlySeries buckets transactions by the month of their date. Months with no
// activity report zeros; transactions outside the window are ignored.
func ComputeMonthlySeries(txns []domain.Transaction, conv Converter, now time.Time, months int) []domain.MonthlyPoint {
	keys := MonthWindow(now, months)
	points := make([]domain.MonthlyPoint, len(keys))
	index := make(map[string]int, len(keys))
	for i, key := range keys {
		points[i] = domain.MonthlyPoint{Month: key, Income: decimal.Zero, Expenses: decimal.Zero}
		index[key] = i
	}

	for _, t := range txns {
		i, ok := index[t.Date.MonthKey()]
		if !ok {
			continue
		}
		switch t.Kind {
		case domain.Income:
			points[i].Income = points[i].Income.Add(toBase(t, conv))
		case domain.Expense:
			points[i].Expenses = points[i].Expenses.Add(toBase(t, conv))
		}
	}
	return points
}

// ComputeExpenseShares returns each expense category's portion of total expenses,
// largest first. Percentages are 0 when there are no expenses.
func ComputeExpenseShares(txns []domain.Transaction, conv Converter) []domain.ExpenseShare {
	byCategory := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for _, t := range txns {
		if t.Kind != domain.Expense {
			continue
		}
		amount := toBase(t, conv)
		byCategory[t.Category] = byCategory[t.Category].Add(amount)
		total = total.Add(amount)
	}

	shares := make([]domain.ExpenseShare, 0, len(byCategory))
	for category, amount := range byCategory {
		percent := decimal.Zero
		if !total.IsZero() {
			percent = amount.Div(total).Mul(hundred).Round(PercentPrecision)
		}
		shares = append(shares, domain.ExpenseShare{Category: category, Amount: amount, Percent: percent})
	}
	sort.Slice(shares, func(i, j int) bool {
		if c := shares[i].Amount.Cmp(shares[j].Amount); c != 0 {
			return c > 0
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}
