// Package money holds the integer-cent arithmetic shared by the cart and
// checkout flows. All amounts are int64 cents; decimals only appear at the
// edges where dollar strings are parsed or rendered.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when a dollar string cannot be parsed
// (empty buffer, multiple decimal points, stray characters).
var ErrInvalidAmount = errors.New("invalid amount")

var oneHundred = decimal.NewFromInt(100)

// FormatCents renders integer cents as a dollar string: FormatCents(699) is "$ 6.99".
// The absolute value is used: change due is shown as a positive amount.
func FormatCents(cents int64) string {
	if cents < 0 {
		cents = -cents
	}
	return fmt.Sprintf("$ %d.%02d", cents/100, cents%100)
}

// ParseAmount converts a decimal dollar string ("12.50") to integer cents,
// rounding half away from zero. Negative amounts are rejected; the numeric
// pad has no minus key.
func ParseAmount(s string) (int64, error) {
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.Count(s, ".") > 1 {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if d.IsNegative() {
		return 0, ErrInvalidAmount
	}
	return d.Mul(oneHundred).Round(0).IntPart(), nil
}

// SplitEvenly divides total cents into n shares that sum exactly to total.
// Every share gets total/n; the remainder is distributed one cent at a time
// starting from the LAST share backward. Callers depend on that exact
// tie-break: SplitEvenly(1000, 3) == [333, 333, 334].
func SplitEvenly(total int64, n int) []int64 {
	if n <= 1 {
		return []int64{total}
	}

	base := total / int64(n)
	remainder := total % int64(n)

	amounts := make([]int64, n)
	for i := range amounts {
		amounts[i] = base
	}
	for i := int64(0); i < remainder; i++ {
		amounts[n-1-int(i)]++
	}
	return amounts
}
