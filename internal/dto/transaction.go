package dto

import (
	"time"

	"github.com/SscSPs/personal_ledger/internal/core/domain"
	"github.com/SscSPs/personal_ledger/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest is the input for adding or replacing a transaction.
// Amount is kept as text so the service can reject malformed numbers with a validation error.
type CreateTransactionRequest struct {
	Date         string `json:"date" binding:"required"` // YYYY-MM-DD
	Category     string `json:"category" binding:"required"`
	Description  string `json:"description"`
	Amount       string `json:"amount" binding:"required"`
	CurrencyCode string `json:"currencyCode" binding:"required,len=3,uppercase"`
	Kind         string `json:"kind" binding:"required,oneof=income expense"`
}

// TransactionResponse is a transaction as returned by the API.
// ConvertedAmount is the amount expressed in the base currency at current rates;
// ConvertedDisplay is the same value rounded for display.
type TransactionResponse struct {
	TransactionID    string          `json:"transactionID"`
	Date             string          `json:"date"`
	Kind             string          `json:"kind"`
	Category         string          `json:"category"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	CurrencyCode     string          `json:"currencyCode"`
	ConvertedAmount  decimal.Decimal `json:"convertedAmount"`
	ConvertedDisplay string          `json:"convertedDisplay"`
	BaseCurrency     string          `json:"baseCurrency"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ListTransactionsResponse wraps a list of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Count        int                   `json:"count"`
}

// DeleteTransactionResponse reports whether a record was removed.
type DeleteTransactionResponse struct {
	TransactionID string `json:"transactionID"`
	Deleted       bool   `json:"deleted"`
}

// CategoriesResponse lists suggested categories for a kind.
type CategoriesResponse struct {
	Kind       string   `json:"kind"`
	Categories []string `json:"categories"`
}

// Converter is the subset of the currency service the mappers need.
type Converter interface {
	Convert(amount decimal.Decimal, fromCurrency, toCurrency string) decimal.Decimal
	BaseCurrency() string
}

// ToTransactionResponse converts a domain.Transaction to a TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction, conv Converter) TransactionResponse {
	base := conv.BaseCurrency()
	converted := conv.Convert(txn.Amount, txn.CurrencyCode, base)
	return TransactionResponse{
		TransactionID:    txn.TransactionID,
		Date:             txn.Date.String(),
		Kind:             string(txn.Kind),
		Category:         txn.Category,
		Description:      txn.Description,
		Amount:           txn.Amount,
		CurrencyCode:     txn.CurrencyCode,
		ConvertedAmount:  converted,
		ConvertedDisplay: utils.FormatForDisplay(converted),
		BaseCurrency:     base,
		CreatedAt:        txn.CreatedAt,
	}
}

// ToListTransactionsResponse converts a slice of domain transactions
func ToListTransactionsResponse(txns []domain.Transaction, conv Converter) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i], conv)
	}
	return ListTransactionsResponse{Transactions: res, Count: len(res)}
}
