package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/personal_ledger/internal/apperrors"
	"github.com/SscSPs/personal_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(id string, kind domain.TransactionKind, amount string) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		Date:          domain.NewDate(2024, 1, 15),
		Category:      "Salary",
		Description:   "January",
		Amount:        decimal.RequireFromString(amount),
		CurrencyCode:  "USD",
		Kind:          kind,
		CreatedAt:     time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
	}
}

func openStore(t *testing.T, dir string) *Store {
	t.Helper()
	s, err := Open(dir, nil)
	require.NoError(t, err)
	return s
}

func TestStore_SaveFindListDelete(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, t.TempDir())

	require.NoError(t, s.SaveTransaction(ctx, sample("a", domain.Income, "1000")))
	require.NoError(t, s.SaveTransaction(ctx, sample("b", domain.Expense, "200")))
	require.NoError(t, s.SaveTransaction(ctx, sample("c", domain.Income, "5")))

	found, err := s.FindTransactionByID(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, domain.Expense, found.Kind)

	income := domain.Income
	list, err := s.ListTransactions(ctx, &income)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].TransactionID)
	assert.Equal(t, "c", list[1].TransactionID)

	all, err := s.ListTransactions(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	deleted, err := s.DeleteTransaction(ctx, "b")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteTransaction(ctx, "b")
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = s.FindTransactionByID(ctx, "b")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestStore_ReplaceInPlaceKeepsOrder(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, t.TempDir())
	require.NoError(t, s.SaveTransaction(ctx, sample("a", domain.Income, "1")))
	require.NoError(t, s.SaveTransaction(ctx, sample("b", domain.Income, "2")))

	updated := sample("a", domain.Income, "10")
	updated.Category = "Bonus"
	require.NoError(t, s.SaveTransaction(ctx, updated))

	list, err := s.ListTransactions(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].TransactionID)
	assert.Equal(t, "Bonus", list[0].Category)
}

func TestStore_RejectsIDFromOtherPartition(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, t.TempDir())
	require.NoError(t, s.SaveTransaction(ctx, sample("a", domain.Income, "1")))

	err := s.SaveTransaction(ctx, sample("a", domain.Expense, "1"))

	assert.True(t, errors.Is(err, apperrors.ErrDuplicate))
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := openStore(t, dir)
	original := sample("a", domain.Expense, "199.99")
	require.NoError(t, s.SaveTransaction(ctx, original))

	reopened := openStore(t, dir)
	got, err := reopened.FindTransactionByID(ctx, "a")

	require.NoError(t, err)
	assert.Equal(t, original.TransactionID, got.TransactionID)
	assert.Equal(t, "2024-01-15", got.Date.String())
	assert.True(t, original.Amount.Equal(got.Amount))
	assert.True(t, original.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, domain.Expense, got.Kind)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp-"), "temp file left behind: %s", e.Name())
	}
}

func TestStore_LoadsLegacyRecords(t *testing.T) {
	dir := t.TempDir()
	legacy := `[{"id": 1705312800.123, "date": "2024-01-15", "category": "Salary", "description": "",
	  "amount": 1000.0, "currency": "USD", "transaction_type": "income"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, IncomeFile), []byte(legacy), 0o644))

	s := openStore(t, dir)
	list, err := s.ListTransactions(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1705312800.123", list[0].TransactionID)
	assert.Equal(t, "1000", list[0].Amount.String())
}

func TestStore_DuplicateIDAcrossPartitions(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	income := `[{"id": 1705312345.5, "date": "2024-01-15", "category": "Salary", "amount": 1000, "currency": "USD"}]`
	expense := `[{"id": 1705312345.5, "date": "2024-01-15", "category": "Food", "amount": 20, "currency": "USD"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, IncomeFile), []byte(income), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ExpensesFile), []byte(expense), 0o644))

	s := openStore(t, dir)
	list, err := s.ListTransactions(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.Income, list[0].Kind)

	deleted, err := s.DeleteTransaction(ctx, "1705312345.5")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = s.FindTransactionByID(ctx, "1705312345.5")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	list, err = s.ListTransactions(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func decodeNumbers(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	require.NoError(t, dec.Decode(v))
}

func TestStore_WritesLegacyNumericFormat(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	legacy := `[{"id": 1705312800.123, "date": "2024-01-15", "category": "Salary", "description": "",
	  "amount": 1000.0, "currency": "USD", "transaction_type": "income"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, IncomeFile), []byte(legacy), 0o644))

	s := openStore(t, dir)
	require.NoError(t, s.SaveTransaction(ctx, sample("b7c1e2d4-new", domain.Income, "12.50")))

	var records []map[string]any
	decodeNumbers(t, filepath.Join(dir, IncomeFile), &records)
	require.Len(t, records, 2)
	assert.Equal(t, json.Number("1705312800.123"), records[0]["id"])
	assert.Equal(t, json.Number("1000"), records[0]["amount"])
	assert.Equal(t, "b7c1e2d4-new", records[1]["id"])
	assert.Equal(t, json.Number("12.5"), records[1]["amount"])

	require.NoError(t, s.SaveRateTable(ctx, domain.RateTable{
		BaseCurrency: "USD",
		Rates:        map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.92")},
		FetchedAt:    domain.NewDate(2024, 1, 1),
	}))
	var snapshot struct {
		Rates map[string]any `json:"rates"`
	}
	decodeNumbers(t, filepath.Join(dir, RatesFile), &snapshot)
	assert.Equal(t, json.Number("0.92"), snapshot.Rates["EUR"])

	reopened, err := openStore(t, dir).ListTransactions(ctx, nil)
	require.NoError(t, err)
	require.Len(t, reopened, 2)
	assert.Equal(t, "1000", reopened[0].Amount.String())
}

func TestStore_CorruptFileLoadsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ExpensesFile)
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "x", "date": `), 0o644))

	s := openStore(t, dir)
	list, err := s.ListTransactions(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, list)
	matches, err := filepath.Glob(path + ".corrupt-*")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestStore_SkipsInvalidRecords(t *testing.T) {
	dir := t.TempDir()
	data := `[
	  {"id": "ok", "date": "2024-01-15", "category": "Food", "amount": "5", "currency": "EUR"},
	  {"id": "bad-date", "date": "15/01/2024", "category": "Food", "amount": "5", "currency": "EUR"},
	  {"id": "no-category", "date": "2024-01-15", "category": "", "amount": "5", "currency": "EUR"}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ExpensesFile), []byte(data), 0o644))

	s := openStore(t, dir)
	list, err := s.ListTransactions(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ok", list[0].TransactionID)
	assert.Equal(t, domain.Expense, list[0].Kind)
}

func TestStore_FailedWriteLeavesStoreUnchanged(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	ctx := context.Background()
	dir := t.TempDir()
	s := openStore(t, dir)
	require.NoError(t, s.SaveTransaction(ctx, sample("a", domain.Income, "1")))

	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	err := s.SaveTransaction(ctx, sample("b", domain.Income, "2"))
	assert.Error(t, err)
	deleted, err := s.DeleteTransaction(ctx, "a")
	assert.Error(t, err)
	assert.False(t, deleted)

	list, err := s.ListTransactions(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].TransactionID)
}

func TestStore_RateSnapshot(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := openStore(t, dir)

	_, err := s.LoadRateTable(ctx)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	table := domain.RateTable{
		BaseCurrency: "USD",
		Rates:        map[string]decimal.Decimal{"EUR": decimal.RequireFromString("0.9")},
		FetchedAt:    domain.NewDate(2024, 1, 1),
	}
	require.NoError(t, s.SaveRateTable(ctx, table))

	loaded, err := openStore(t, dir).LoadRateTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, "USD", loaded.BaseCurrency)
	assert.Equal(t, "0.9", loaded.Rates["EUR"].String())
	assert.Equal(t, "2024-01-01", loaded.FetchedAt.String())
}

func TestStore_RateSnapshotLegacyAndCorrupt(t *testing.T) {
	ctx := context.Background()

	t.Run("empty object from first run", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, RatesFile), []byte(`{}`), 0o644))
		_, err := openStore(t, dir).LoadRateTable(ctx)
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("corrupt", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, RatesFile), []byte(`{"rates": [`), 0o644))
		_, err := openStore(t, dir).LoadRateTable(ctx)
		assert.Error(t, err)
		assert.False(t, errors.Is(err, apperrors.ErrNotFound))
	})
}
