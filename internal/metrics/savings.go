package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/havenly-dev/havenly/internal/model"
)

var (
	twelve       = decimal.NewFromInt(12)
	paysPerMonth = decimal.NewFromInt(2)
)

// Rates is the monthly savings breakdown against gross pay.
type Rates struct {
	GrossMonthly        decimal.Decimal
	MonthlyRoth401k     decimal.Decimal
	MonthlyHSA          decimal.Decimal
	EmployerMatch       decimal.Decimal
	MonthlyRetirement   decimal.Decimal
	RetirementRate      decimal.Decimal
	MonthlySavingsFunds decimal.Decimal
	SavingsFundsRate    decimal.Decimal
	TotalMonthlySavings decimal.Decimal
	TotalSavingsRate    decimal.Decimal
}

// SavingsRates computes retirement and fund savings as a share of gross
// monthly pay. Paychecks are assumed twice a month.
func SavingsRates(cfg model.Config, funds []model.SavingsFund) Rates {
	r := Rates{
		GrossMonthly:    cfg.AnnualSalary.Div(twelve),
		MonthlyRoth401k: cfg.Roth401kPerPaycheck.Mul(paysPerMonth),
		MonthlyHSA:      cfg.HSAPerPaycheck.Mul(paysPerMonth),
		EmployerMatch:   cfg.AnnualSalary.Mul(cfg.EmployerMatchPercent).Div(hundred).Div(twelve),
	}
	r.MonthlyRetirement = decimal.Sum(r.MonthlyRoth401k, cfg.RothIRAMonthly, r.EmployerMatch)
	r.MonthlySavingsFunds = sumBy(funds, nil, func(f model.SavingsFund) decimal.Decimal {
		return f.MonthlyContribution
	}).Add(r.MonthlyHSA)
	r.TotalMonthlySavings = r.MonthlyRetirement.Add(r.MonthlySavingsFunds)

	r.RetirementRate = Percent(r.MonthlyRetirement, r.GrossMonthly)
	r.SavingsFundsRate = Percent(r.MonthlySavingsFunds, r.GrossMonthly)
	r.TotalSavingsRate = Percent(r.TotalMonthlySavings, r.GrossMonthly)
	return r
}

// MonthNames are the labels Roth IRA contributions are filed under.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// RothMonth is the contribution total for one calendar month.
type RothMonth struct {
	Month    string
	Total    decimal.Decimal
	Complete bool
	Past     bool
}

// RothIRASummary tracks progress against the annual contribution limit.
type RothIRASummary struct {
	Limit          decimal.Decimal
	Total          decimal.Decimal
	Remaining      decimal.Decimal
	MonthsLeft     int
	NeededPerMonth decimal.Decimal
	Percent        decimal.Decimal
	ByMonth        []RothMonth
}

// RothIRAProgress summarizes this year's contributions as of now. The
// current month counts as one of the months left.
func RothIRAProgress(s model.State, now time.Time) RothIRASummary {
	cfg := s.Config
	current := int(now.Month()) - 1

	sum := RothIRASummary{
		Limit: cfg.RothIRAAnnualLimit,
		Total: sumBy(s.RothIRAContributions, nil, func(c model.RothIRAContribution) decimal.Decimal {
			return c.Amount
		}),
		MonthsLeft: 12 - current,
	}
	sum.Remaining = sum.Limit.Sub(sum.Total)
	sum.NeededPerMonth = sum.Remaining.Div(decimal.NewFromInt(int64(sum.MonthsLeft)))
	sum.Percent = Percent(sum.Total, sum.Limit)

	for i, name := range MonthNames {
		total := sumBy(s.RothIRAContributions,
			func(c model.RothIRAContribution) bool { return c.Month == name },
			func(c model.RothIRAContribution) decimal.Decimal { return c.Amount })
		sum.ByMonth = append(sum.ByMonth, RothMonth{
			Month:    name,
			Total:    total,
			Complete: total.GreaterThanOrEqual(cfg.RothIRAMonthly),
			Past:     i < current,
		})
	}
	return sum
}

// Milestone is an emergency fund checkpoint.
type Milestone struct {
	Amount   decimal.Decimal
	Label    string
	Reached  bool
	Progress decimal.Decimal
}

var milestones = []struct {
	amount int64
	label  string
}{
	{1000, "Starter Emergency Fund"},
	{5000, "2 Months Expenses"},
	{10000, "4 Months Expenses"},
	{15000, "6 Months - GOAL!"},
}

// EmergencyFundSummary tracks the emergency fund against its target.
type EmergencyFundSummary struct {
	Balance      decimal.Decimal
	Target       decimal.Decimal
	Remaining    decimal.Decimal
	MonthsToGoal int
	Percent      decimal.Decimal
	Milestones   []Milestone
}

// EmergencyFundProgress summarizes the emergency fund. MonthsToGoal is zero
// once the target is met or when no monthly contribution is configured.
func EmergencyFundProgress(s model.State) EmergencyFundSummary {
	cfg := s.Config
	balance := s.EmergencyFundBalance
	sum := EmergencyFundSummary{
		Balance:   balance,
		Target:    cfg.EmergencyFundTarget,
		Remaining: cfg.EmergencyFundTarget.Sub(balance),
		Percent:   Percent(balance, cfg.EmergencyFundTarget),
	}
	if sum.Remaining.IsPositive() && cfg.EmergencyFundMonthly.IsPositive() {
		sum.MonthsToGoal = int(sum.Remaining.Div(cfg.EmergencyFundMonthly).Ceil().IntPart())
	}
	for _, m := range milestones {
		amount := decimal.NewFromInt(m.amount)
		sum.Milestones = append(sum.Milestones, Milestone{
			Amount:   amount,
			Label:    m.label,
			Reached:  balance.GreaterThanOrEqual(amount),
			Progress: Clamp(Percent(balance, amount)),
		})
	}
	return sum
}

// FundProgress is a savings fund with its progress toward target.
type FundProgress struct {
	Fund    model.SavingsFund
	Percent decimal.Decimal
}

// FundsSummary groups savings funds for the funds screen.
type FundsSummary struct {
	TotalBalance decimal.Decimal
	TotalMonthly decimal.Decimal
	Active       []FundProgress
	Inactive     []FundProgress
}

// FundsOverview totals every fund and splits them by active flag.
func FundsOverview(s model.State) FundsSummary {
	sum := FundsSummary{
		TotalBalance: sumBy(s.SavingsFunds, nil, func(f model.SavingsFund) decimal.Decimal { return f.Balance }),
		TotalMonthly: sumBy(s.SavingsFunds,
			func(f model.SavingsFund) bool { return f.IsActive },
			func(f model.SavingsFund) decimal.Decimal { return f.MonthlyContribution }),
	}
	for _, f := range s.SavingsFunds {
		fp := FundProgress{Fund: f, Percent: Percent(f.Balance, f.Target)}
		if f.IsActive {
			sum.Active = append(sum.Active, fp)
		} else {
			sum.Inactive = append(sum.Inactive, fp)
		}
	}
	return sum
}

// PaycheckTotals aggregates recorded paychecks.
type PaycheckTotals struct {
	Count      int
	Gross      decimal.Decimal
	Net        decimal.Decimal
	Hours      decimal.Decimal
	AverageNet decimal.Decimal
}

// PaycheckSummary totals every recorded paycheck.
func PaycheckSummary(s model.State) PaycheckTotals {
	sum := PaycheckTotals{
		Count: len(s.Paychecks),
		Gross: sumBy(s.Paychecks, nil, func(p model.Paycheck) decimal.Decimal { return p.Gross }),
		Net:   sumBy(s.Paychecks, nil, func(p model.Paycheck) decimal.Decimal { return p.Net }),
		Hours: sumBy(s.Paychecks, nil, func(p model.Paycheck) decimal.Decimal { return p.Hours }),
	}
	if sum.Count > 0 {
		sum.AverageNet = sum.Net.Div(decimal.NewFromInt(int64(sum.Count)))
	}
	return sum
}
