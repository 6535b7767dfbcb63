package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/personal_ledger/internal/apperrors"
	"github.com/SscSPs/personal_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTransaction() domain.Transaction {
	return domain.Transaction{
		TransactionID: "txn_123",
		Date:          domain.NewDate(2024, time.January, 15),
		Category:      "Salary",
		Amount:        decimal.NewFromInt(1000),
		CurrencyCode:  "USD",
		Kind:          domain.Income,
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Transaction)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid income",
			mutate: func(*domain.Transaction) {},
		},
		{
			name:   "zero amount is allowed",
			mutate: func(tx *domain.Transaction) { tx.Amount = decimal.Zero },
		},
		{
			name:    "missing id",
			mutate:  func(tx *domain.Transaction) { tx.TransactionID = "" },
			wantErr: true,
			errMsg:  "transaction ID is required",
		},
		{
			name:    "missing date",
			mutate:  func(tx *domain.Transaction) { tx.Date = domain.Date{} },
			wantErr: true,
			errMsg:  "date is required",
		},
		{
			name:    "blank category",
			mutate:  func(tx *domain.Transaction) { tx.Category = "   " },
			wantErr: true,
			errMsg:  "category is required",
		},
		{
			name:    "negative amount",
			mutate:  func(tx *domain.Transaction) { tx.Amount = decimal.NewFromInt(-5) },
			wantErr: true,
			errMsg:  "amount must be non-negative",
		},
		{
			name:    "lower-case currency",
			mutate:  func(tx *domain.Transaction) { tx.CurrencyCode = "usd" },
			wantErr: true,
			errMsg:  "currency code",
		},
		{
			name:    "unknown kind",
			mutate:  func(tx *domain.Transaction) { tx.Kind = "transfer" },
			wantErr: true,
			errMsg:  "kind must be income or expense",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseTransactionKind(t *testing.T) {
	k, err := domain.ParseTransactionKind(" Income ")
	require.NoError(t, err)
	assert.Equal(t, domain.Income, k)

	_, err = domain.ParseTransactionKind("refund")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseDate(t *testing.T) {
	d, err := domain.ParseDate("2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-03", d.MonthKey())
	assert.Equal(t, "2024-03-31", d.String())

	_, err = domain.ParseDate("2024-02-30")
	assert.Error(t, err)
	_, err = domain.ParseDate("31/03/2024")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	tx := validTransaction()
	b, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"date":"2024-01-15"`)

	var back domain.Transaction
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, tx.Date.Equal(back.Date.Time))
}

func TestSuggestedCategories_ReturnsCopy(t *testing.T) {
	cats := domain.SuggestedCategories(domain.Expense)
	require.NotEmpty(t, cats)
	cats[0] = "Mutated"
	assert.Equal(t, "Food", domain.SuggestedCategories(domain.Expense)[0])
	assert.Contains(t, domain.SuggestedCategories(domain.Income), "Salary")
}

func TestRateTable_CloneIsDeep(t *testing.T) {
	table := domain.RateTable{BaseCurrency: "USD", Rates: map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.9")}}
	clone := table.Clone()
	clone.Rates["EUR"] = decimal.NewFromInt(2)
	clone.Rates["GBP"] = decimal.NewFromInt(1)

	assert.True(t, table.Rates["EUR"].Equal(decimal.RequireFromString("0.9")))
	assert.Len(t, table.Rates, 1)
	assert.Equal(t, []string{"EUR", "GBP"}, clone.Codes())
}

func TestToExportRow(t *testing.T) {
	tx := validTransaction()
	tx.Description = "January pay"
	row := domain.ToExportRow(tx)
	assert.Equal(t, []string{"txn_123", "2024-01-15", "income", "Salary", "January pay", "1000", "USD"}, row.Record())
	assert.Len(t, domain.ExportHeader, len(row.Record()))
}

func TestRateTable_Convert(t *testing.T) {
	table := domain.RateTable{BaseCurrency: "USD", Rates: map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.5"),
		"GBP": decimal.RequireFromString("0.25"),
		"ZZZ": decimal.Zero,
	}}

	assert.Equal(t, "50", table.Convert(decimal.NewFromInt(100), "USD", "EUR").String())
	assert.Equal(t, "200", table.Convert(decimal.NewFromInt(100), "EUR", "USD").String())
	assert.Equal(t, "50", table.Convert(decimal.NewFromInt(100), "EUR", "GBP").String())
	assert.Equal(t, "100", table.Convert(decimal.NewFromInt(100), "USD", "ZZZ").String())
	assert.Equal(t, "100", table.Convert(decimal.NewFromInt(100), "XYZ", "USD").String())
	assert.Equal(t, "1", table.Rate("missing").String())
}
