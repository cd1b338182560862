package metrics

import (
	"math"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/havenly-dev/havenly/internal/model"
)

// DateLayout is the calendar date format stored on records.
const DateLayout = "2006-01-02"

// FloatSummary is how much money is out of pocket on work expenses and how
// much of it can safely be carried.
type FloatSummary struct {
	TotalPending          decimal.Decimal
	TotalSubmitted        decimal.Decimal
	TotalFloat            decimal.Decimal
	ExpectedBackBeforeDue decimal.Decimal
	BaseLimit             decimal.Decimal
	EffectiveSafeLimit    decimal.Decimal
	IsOverLimit           bool
	Utilization           decimal.Decimal
}

// WorkExpenseFloat computes the current float. The safe limit is one net
// paycheck plus whatever is expected back before its own due date.
func WorkExpenseFloat(s model.State) FloatSummary {
	amount := func(e model.WorkExpense) decimal.Decimal { return e.Amount }
	sum := FloatSummary{
		TotalPending: sumBy(s.WorkExpenses,
			func(e model.WorkExpense) bool { return e.Status == model.StatusPending }, amount),
		TotalSubmitted: sumBy(s.WorkExpenses,
			func(e model.WorkExpense) bool { return e.Status == model.StatusSubmitted }, amount),
		ExpectedBackBeforeDue: sumBy(s.WorkExpenses, func(e model.WorkExpense) bool {
			return e.Active() && e.ExpectedReimbursementDate != "" && e.DueDate != "" &&
				e.ExpectedReimbursementDate <= e.DueDate
		}, amount),
		BaseLimit: s.Config.NetPayPerPaycheck,
	}
	sum.TotalFloat = sum.TotalPending.Add(sum.TotalSubmitted)
	sum.EffectiveSafeLimit = sum.BaseLimit.Add(sum.ExpectedBackBeforeDue)
	sum.IsOverLimit = sum.TotalFloat.GreaterThan(sum.EffectiveSafeLimit)
	if sum.EffectiveSafeLimit.IsPositive() {
		sum.Utilization = Clamp(Percent(sum.TotalFloat, sum.EffectiveSafeLimit))
	}
	return sum
}

// DueDateFloat is the exposure at one card due date.
type DueDateFloat struct {
	DueDate      string
	DueTotal     decimal.Decimal
	ExpectedBack decimal.Decimal
	NetExposure  decimal.Decimal
	IsCovered    bool
	DaysUntilDue int
}

// FloatByDueDate groups active expenses by due date, in date order. For each
// date it compares what falls due then with every active expense expected
// back on or before it. Dates compare as "YYYY-MM-DD" strings; DaysUntilDue
// is zero for a date that does not parse.
func FloatByDueDate(s model.State, now time.Time) []DueDateFloat {
	var active []model.WorkExpense
	var dates []string
	for _, e := range s.WorkExpenses {
		if !e.Active() {
			continue
		}
		active = append(active, e)
		if e.DueDate != "" && !slices.Contains(dates, e.DueDate) {
			dates = append(dates, e.DueDate)
		}
	}
	slices.Sort(dates)

	amount := func(e model.WorkExpense) decimal.Decimal { return e.Amount }
	out := make([]DueDateFloat, 0, len(dates))
	for _, due := range dates {
		row := DueDateFloat{
			DueDate: due,
			DueTotal: sumBy(active,
				func(e model.WorkExpense) bool { return e.DueDate == due }, amount),
			ExpectedBack: sumBy(active, func(e model.WorkExpense) bool {
				return e.ExpectedReimbursementDate != "" && e.ExpectedReimbursementDate <= due
			}, amount),
			DaysUntilDue: DaysUntil(due, now),
		}
		row.NetExposure = row.DueTotal.Sub(row.ExpectedBack)
		row.IsCovered = row.ExpectedBack.GreaterThanOrEqual(row.DueTotal)
		out = append(out, row)
	}
	return out
}

// DaysUntil returns the whole days, rounded up, from now to midnight UTC of
// date. Past dates give zero or a negative count.
func DaysUntil(date string, now time.Time) int {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0
	}
	return int(math.Ceil(d.Sub(now).Hours() / 24))
}
