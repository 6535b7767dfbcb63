package dto

import (
	"github.com/SscSPs/personal_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateTableResponse defines the structure for API responses containing the current rate table.
type RateTableResponse struct {
	BaseCurrency string                     `json:"baseCurrency"`
	FetchedAt    string                     `json:"fetchedAt,omitempty"`
	Rates        map[string]decimal.Decimal `json:"rates"`
	Empty        bool                       `json:"empty"`
}

// RefreshRatesResponse reports the outcome of a refresh together with the table now in effect.
type RefreshRatesResponse struct {
	Refreshed bool              `json:"refreshed"`
	Error     string            `json:"error,omitempty"`
	Table     RateTableResponse `json:"table"`
}

// ConvertRequest binds the query parameters of a single conversion.
type ConvertRequest struct {
	Amount string `form:"amount" binding:"required"`
	From   string `form:"from" binding:"required,len=3,uppercase"`
	To     string `form:"to" binding:"required,len=3,uppercase"`
}

// ConvertResponse is the result of a single conversion.
type ConvertResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Converted decimal.Decimal `json:"converted"`
}

// ToRateTableResponse converts a domain.RateTable to RateTableResponse DTO
func ToRateTableResponse(t domain.RateTable) RateTableResponse {
	rates := make(map[string]decimal.Decimal, len(t.Rates))
	for code, rate := range t.Rates {
		rates[code] = rate
	}
	return RateTableResponse{
		BaseCurrency: t.BaseCurrency,
		FetchedAt:    t.FetchedAt.String(),
		Rates:        rates,
		Empty:        t.IsEmpty(),
	}
}
