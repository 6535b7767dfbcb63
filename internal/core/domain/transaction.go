package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/personal_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionKind decides which partition owns a transaction and which side of net worth it feeds.
type TransactionKind string

const (
	Income  TransactionKind = "income"
	Expense TransactionKind = "expense"
)

// Kinds lists the partitions in their canonical order (income first).
var Kinds = []TransactionKind{Income, Expense}

// ParseTransactionKind accepts "income" or "expense" in any case.
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch TransactionKind(strings.ToLower(strings.TrimSpace(s))) {
	case Income:
		return Income, nil
	case Expense:
		return Expense, nil
	}
	return "", fmt.Errorf("%w: kind must be income or expense, got %q", apperrors.ErrValidation, s)
}

// IsValid reports whether k is one of the known kinds.
func (k TransactionKind) IsValid() bool {
	return k == Income || k == Expense
}

// Transaction is a single income or expense record.
// Amount is a non-negative magnitude; the sign comes from Kind.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	Date          Date            `json:"date"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	Kind          TransactionKind `json:"kind"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Validate checks the record invariants. Errors wrap apperrors.ErrValidation.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.TransactionID) == "" {
		return fmt.Errorf("%w: transaction ID is required", apperrors.ErrValidation)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(t.Category) == "" {
		return fmt.Errorf("%w: category is required", apperrors.ErrValidation)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must be non-negative, got %s", apperrors.ErrValidation, t.Amount.String())
	}
	if len(t.CurrencyCode) != 3 || strings.ToUpper(t.CurrencyCode) != t.CurrencyCode {
		return fmt.Errorf("%w: currency code must be 3 upper-case letters, got %q", apperrors.ErrValidation, t.CurrencyCode)
	}
	if !t.Kind.IsValid() {
		return fmt.Errorf("%w: kind must be income or expense, got %q", apperrors.ErrValidation, t.Kind)
	}
	return nil
}

var suggestedCategories = map[TransactionKind][]string{
	Income:  {"Salary", "Freelance", "Investment", "Bonus", "Other Income"},
	Expense: {"Food", "Transport", "Bills", "Shopping", "Entertainment", "Healthcare", "Education", "Other"},
}

// SuggestedCategories returns the category labels offered for a kind.
// Categories remain free-form; this is only the offered set.
func SuggestedCategories(kind TransactionKind) []string {
	cats := suggestedCategories[kind]
	out := make([]string, len(cats))
	copy(out, cats)
	return out
}
