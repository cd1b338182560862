package render

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money formats an amount as dollars with thousands separators,
// e.g. "$1,815.50" or "-$42.00".
func Money(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if d.IsNegative() && !d.Round(2).IsZero() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// Percent formats a percentage with one decimal place, e.g. "44.9%".
func Percent(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}

// Signed formats an amount with an explicit sign for deltas.
func Signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + Money(d)
	}
	return Money(d)
}

// Check renders a done or not-done marker.
func Check(done bool) string {
	if done {
		return Good("✓")
	}
	return Muted("·")
}
