package hours

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseHours parses an hour cell such as "8", "7,5" or "-1.25".
// A decimal comma is read as a decimal point. Blank or malformed cells
// return ok=false and are skipped by the loaders; dirty source data is
// tolerated rather than reported. Exponent notation such as "1e20" is
// not an hour value and is skipped as well.
func ParseHours(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "eE") {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
