package domain

// ExportHeader is the fixed column order of the flat export table.
var ExportHeader = []string{"id", "date", "type", "category", "description", "amount", "currency"}

// ExportRow is one transaction flattened for tabular export.
type ExportRow struct {
	ID          string
	Date        string
	Kind        string
	Category    string
	Description string
	Amount      string
	Currency    string
}

// ToExportRow flattens a transaction.
func ToExportRow(t Transaction) ExportRow {
	return ExportRow{
		ID:          t.TransactionID,
		Date:        t.Date.String(),
		Kind:        string(t.Kind),
		Category:    t.Category,
		Description: t.Description,
		Amount:      t.Amount.String(),
		Currency:    t.CurrencyCode,
	}
}

// Record returns the row's fields in ExportHeader order.
func (r ExportRow) Record() []string {
	return []string{r.ID, r.Date, r.Kind, r.Category, r.Description, r.Amount, r.Currency}
}
