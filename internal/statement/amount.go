package statement

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var groupStripper = strings.NewReplacer(".", "", ",", "")

// parseAmount converts a statement amount into a decimal. Amounts always
// carry exactly two fractional digits; the last '.' or ',' is the decimal
// separator and every other '.' or ',' is a thousands separator. Both
// "1.234,56" and "1,234.56" parse to 1234.56.
func parseAmount(s string) (decimal.Decimal, error) {
	i := strings.LastIndexAny(s, ".,")
	if i < 0 || len(s)-i-1 != 2 {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: expected two fractional digits", s)
	}
	d, err := decimal.NewFromString(groupStripper.Replace(s[:i]) + "." + s[i+1:])
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}
