package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultBaseCurrency is the reporting anchor used when none is configured.
const DefaultBaseCurrency = "USD"

// SupportedCurrencies is the set offered to users when entering a transaction.
// The converter accepts any code present in the rate table, not only these.
var SupportedCurrencies = []string{"USD", "EUR", "GBP", "JPY", "CAD", "AUD", "INR"}

// RateTable maps a currency code to the number of units of that currency equal
// to one unit of BaseCurrency. It is replaced wholesale on every refresh.
type RateTable struct {
	BaseCurrency string                     `json:"baseCurrency"`
	Rates        map[string]decimal.Decimal `json:"rates"`
	FetchedAt    Date                       `json:"fetchedAt"`
}

// NewEmptyRateTable returns the table in effect before any refresh succeeded.
func NewEmptyRateTable(base string) RateTable {
	return RateTable{BaseCurrency: base, Rates: map[string]decimal.Decimal{}}
}

// Clone returns a deep copy so callers cannot mutate shared state.
func (t RateTable) Clone() RateTable {
	rates := make(map[string]decimal.Decimal, len(t.Rates))
	for code, rate := range t.Rates {
		rates[code] = rate
	}
	return RateTable{BaseCurrency: t.BaseCurrency, Rates: rates, FetchedAt: t.FetchedAt}
}

// IsEmpty reports whether no rates are loaded.
func (t RateTable) IsEmpty() bool {
	return len(t.Rates) == 0
}

// Codes returns the currency codes in the table, sorted.
func (t RateTable) Codes() []string {
	codes := make([]string, 0, len(t.Rates))
	for code := range t.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Rate returns the rate for code. Missing and zero rates count as 1.
func (t RateTable) Rate(code string) decimal.Decimal {
	rate, ok := t.Rates[code]
	if !ok || rate.IsZero() {
		return decimal.NewFromInt(1)
	}
	return rate
}

// Convert converts amount between two currencies against this table.
// Cross pairs are routed through BaseCurrency.
func (t RateTable) Convert(amount decimal.Decimal, fromCurrency, toCurrency string) decimal.Decimal {
	switch {
	case fromCurrency == toCurrency:
		return amount
	case fromCurrency == t.BaseCurrency:
		return amount.Mul(t.Rate(toCurrency))
	case toCurrency == t.BaseCurrency:
		return amount.Div(t.Rate(fromCurrency))
	default:
		return amount.Div(t.Rate(fromCurrency)).Mul(t.Rate(toCurrency))
	}
}
