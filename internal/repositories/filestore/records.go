package filestore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/SscSPs/personal_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// recordID accepts both string IDs and the numeric timestamps older files used.
type recordID string

func (id *recordID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = recordID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = recordID(n.String())
	return nil
}

// numericID matches the timestamp ids older files wrote as bare JSON numbers.
var numericID = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// MarshalJSON writes numeric ids back as numbers so older files keep their format.
func (id recordID) MarshalJSON() ([]byte, error) {
	if numericID.MatchString(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// recordAmount is a decimal written as a bare JSON number. Quoted amounts are still read.
type recordAmount decimal.Decimal

func (a recordAmount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).String()), nil
}

func (a *recordAmount) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*a = recordAmount(d)
	return nil
}

// transactionRecord is the on-disk shape of one transaction.
type transactionRecord struct {
	ID              recordID     `json:"id"`
	Date            string       `json:"date"`
	Category        string       `json:"category"`
	Description     string       `json:"description"`
	Amount          recordAmount `json:"amount"`
	Currency        string       `json:"currency"`
	TransactionType string       `json:"transaction_type"`
	CreatedAt       *time.Time   `json:"created_at,omitempty"`
}

func toRecord(t domain.Transaction) transactionRecord {
	rec := transactionRecord{
		ID:              recordID(t.TransactionID),
		Date:            t.Date.String(),
		Category:        t.Category,
		Description:     t.Description,
		Amount:          recordAmount(t.Amount),
		Currency:        t.CurrencyCode,
		TransactionType: string(t.Kind),
	}
	if !t.CreatedAt.IsZero() {
		createdAt := t.CreatedAt.UTC()
		rec.CreatedAt = &createdAt
	}
	return rec
}

// toDomain converts a record read from the partition file for kind.
// The file a record lives in decides its kind, whatever transaction_type says.
func (r transactionRecord) toDomain(kind domain.TransactionKind) (domain.Transaction, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return domain.Transaction{}, err
	}
	t := domain.Transaction{
		TransactionID: string(r.ID),
		Date:          date,
		Category:      r.Category,
		Description:   r.Description,
		Amount:        decimal.Decimal(r.Amount),
		CurrencyCode:  r.Currency,
		Kind:          kind,
	}
	if r.CreatedAt != nil {
		t.CreatedAt = r.CreatedAt.UTC()
	}
	return t, nil
}

// rateSnapshotRecord is the on-disk shape of exchange_rates.json.
type rateSnapshotRecord struct {
	BaseCurrency string                  `json:"base_currency"`
	Rates        map[string]recordAmount `json:"rates"`
	Date         string                  `json:"date"`
}

func toRateRecords(rates map[string]decimal.Decimal) map[string]recordAmount {
	out := make(map[string]recordAmount, len(rates))
	for code, rate := range rates {
		out[code] = recordAmount(rate)
	}
	return out
}

func fromRateRecords(rates map[string]recordAmount) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		out[code] = decimal.Decimal(rate)
	}
	return out
}
