package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/havenly-dev/havenly/internal/model"
)

// DashboardSummary is the month-at-a-glance view.
type DashboardSummary struct {
	MonthlyNet          decimal.Decimal
	FixedExpenses       decimal.Decimal
	CardPaymentIncluded bool
	RemainingAfterFixed decimal.Decimal
	SavingsAllocation   decimal.Decimal
	Buffer              decimal.Decimal

	Rates Rates

	RothIRATotal        decimal.Decimal
	RothIRALimit        decimal.Decimal
	EmergencyFund       EmergencyFundSummary
	CreditCard          CreditCardSummary
	PendingExpenses     decimal.Decimal
	TotalSavingsBalance decimal.Decimal
	ActiveFunds         []FundProgress

	CurrentMonth string
	Budget       MonthSummary
}

// Dashboard derives the overview for the month containing now. The card
// payment only counts as a fixed expense while payments remain open.
func Dashboard(s model.State, now time.Time) DashboardSummary {
	cfg := s.Config
	card := CreditCardProgress(s)
	funds := FundsOverview(s)
	month := now.Format("2006-01")

	d := DashboardSummary{
		MonthlyNet:          cfg.NetPayPerPaycheck.Mul(paysPerMonth),
		FixedExpenses:       cfg.FixedBaselines(),
		CardPaymentIncluded: s.CreditCard.HasUnpaid(),
		Rates:               SavingsRates(cfg, s.SavingsFunds),
		RothIRATotal: sumBy(s.RothIRAContributions, nil, func(c model.RothIRAContribution) decimal.Decimal {
			return c.Amount
		}),
		RothIRALimit:  cfg.RothIRAAnnualLimit,
		EmergencyFund: EmergencyFundProgress(s),
		CreditCard:    card,
		PendingExpenses: sumBy(s.WorkExpenses,
			func(e model.WorkExpense) bool { return e.Active() },
			func(e model.WorkExpense) decimal.Decimal { return e.Amount }),
		TotalSavingsBalance: funds.TotalBalance,
		ActiveFunds:         funds.Active,
		CurrentMonth:        month,
		Budget:              MonthBudget(s, month),
	}
	if d.CardPaymentIncluded {
		d.FixedExpenses = d.FixedExpenses.Add(s.CreditCard.MonthlyPayment)
	}
	d.RemainingAfterFixed = d.MonthlyNet.Sub(d.FixedExpenses)
	d.SavingsAllocation = decimal.Sum(cfg.RothIRAMonthly,
		fundMonthly(s, model.EmergencyFundID),
		fundMonthly(s, model.VacationFundID))
	d.Buffer = d.RemainingAfterFixed.Sub(d.SavingsAllocation)
	return d
}

func fundMonthly(s model.State, fundID string) decimal.Decimal {
	f, ok := s.Fund(fundID)
	if !ok {
		return decimal.Zero
	}
	return f.MonthlyContribution
}
