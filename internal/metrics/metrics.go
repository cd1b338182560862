// Package metrics derives the read-side figures shown on every screen. All
// functions are pure over a state snapshot; none of them fail. Percentages
// are on a 0-100 scale and any division by zero yields zero.
package metrics

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent returns part/whole*100, or zero when whole is zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// Clamp limits p to [0, 100] for progress bars.
func Clamp(p decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, decimal.Min(p, hundred))
}

func sumBy[T any](items []T, keep func(T) bool, amount func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if keep == nil || keep(it) {
			total = total.Add(amount(it))
		}
	}
	return total
}
