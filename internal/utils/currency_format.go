package utils

import (
	"github.com/shopspring/decimal"
)

// DisplayPrecision is the number of decimal places used for amounts shown to users.
const DisplayPrecision = 2

// FormatWithPrecision formats an amount with the given precision, always printing
// exactly that many decimal places.
// Example: amount 222.2222 with precision 2 returns "222.22"
// Example: amount 50 with precision 2 returns "50.00"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// FormatForDisplay formats an amount with DisplayPrecision.
func FormatForDisplay(amount decimal.Decimal) string {
	return FormatWithPrecision(amount, DisplayPrecision)
}
