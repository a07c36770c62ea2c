package dto

import (
	"strings"

	"github.com/shopspring/decimal"
)

// money formats d with at least two decimal places, keeping any further
// significant digits.
func money(d decimal.Decimal) string {
	s := d.String() // trailing zeros already trimmed
	places := 0
	if i := strings.IndexByte(s, '.'); i >= 0 {
		places = len(s) - i - 1
	}
	if places < 2 {
		places = 2
	}
	return d.StringFixed(int32(places))
}
