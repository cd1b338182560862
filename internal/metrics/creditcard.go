package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/havenly-dev/havenly/internal/model"
)

// PaymentRow is a scheduled payment with the card balance left after it.
// RawBalance is total minus every payment up to and including this one;
// Balance is the same figure rounded to cents and floored at zero.
type PaymentRow struct {
	Payment    model.Payment
	RawBalance decimal.Decimal
	Balance    decimal.Decimal
}

// CreditCardSummary is the payoff plan's progress.
type CreditCardSummary struct {
	TotalAmount     decimal.Decimal
	MonthlyPayment  decimal.Decimal
	TotalPaid       decimal.Decimal
	RemainingAmount decimal.Decimal
	PaidCount       int
	RemainingCount  int
	PercentPaid     decimal.Decimal
	IsPaidOff       bool
	Rows            []PaymentRow
}

// CreditCardProgress summarizes the card payoff plan. A card with no open
// payments, or with nothing owed, counts as paid off.
func CreditCardProgress(s model.State) CreditCardSummary {
	card := s.CreditCard
	sum := CreditCardSummary{
		TotalAmount:     card.TotalAmount,
		MonthlyPayment:  card.MonthlyPayment,
		TotalPaid:       decimal.Zero,
		RemainingAmount: decimal.Zero,
	}

	paidSoFar := decimal.Zero
	for _, p := range card.Payments {
		if p.Paid {
			sum.TotalPaid = sum.TotalPaid.Add(p.Amount)
			sum.PaidCount++
		} else {
			sum.RemainingAmount = sum.RemainingAmount.Add(p.Amount)
			sum.RemainingCount++
		}
		paidSoFar = paidSoFar.Add(p.Amount)
		raw := card.TotalAmount.Sub(paidSoFar)
		sum.Rows = append(sum.Rows, PaymentRow{
			Payment:    p,
			RawBalance: raw,
			Balance:    decimal.Max(decimal.Zero, raw.Round(2)),
		})
	}

	sum.PercentPaid = Percent(sum.TotalPaid, card.TotalAmount)
	sum.IsPaidOff = !card.HasUnpaid() || card.TotalAmount.IsZero()
	return sum
}
