package metrics

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/havenly-dev/havenly/internal/catalog"
	"github.com/havenly-dev/havenly/internal/model"
)

// CategoryRow is one budget category's standing in a month.
type CategoryRow struct {
	Category   catalog.Category
	Budget     decimal.Decimal
	Spent      decimal.Decimal
	Remaining  decimal.Decimal
	Percent    decimal.Decimal
	Overridden bool
	OverBudget bool
}

// MonthSummary is the budget tracker view of one "YYYY-MM" month.
type MonthSummary struct {
	Month        string
	Categories   []CategoryRow
	DefaultTotal decimal.Decimal
	TotalBudget  decimal.Decimal
	TotalSpent   decimal.Decimal
	Remaining    decimal.Decimal
	HasOverride  bool
	Transactions []model.BudgetTransaction
}

// CategorySpend sums the transactions filed under category in month.
func CategorySpend(s model.State, month, category string) decimal.Decimal {
	return sumBy(s.BudgetTransactions,
		func(t model.BudgetTransaction) bool { return t.Month == month && t.Category == category },
		func(t model.BudgetTransaction) decimal.Decimal { return t.Amount })
}

// DefaultTotalBudget is the month total used when no override exists.
func DefaultTotalBudget(s model.State) decimal.Decimal {
	return s.DefaultTotalBudget()
}

// EffectiveTotalBudget returns the override total for month if one is set,
// else the default.
func EffectiveTotalBudget(s model.State, month string) decimal.Decimal {
	if o, ok := s.Override(month); ok {
		return o.TotalBudget
	}
	return s.DefaultTotalBudget()
}

// MonthTransactions returns month's transactions sorted newest first.
// Transactions on the same date keep their recorded order.
func MonthTransactions(s model.State, month string) []model.BudgetTransaction {
	var out []model.BudgetTransaction
	for _, t := range s.BudgetTransactions {
		if t.Month == month {
			out = append(out, t)
		}
	}
	slices.SortStableFunc(out, func(a, b model.BudgetTransaction) int {
		return strings.Compare(b.Date, a.Date)
	})
	return out
}

// MonthBudget builds the per-category budget view for month.
func MonthBudget(s model.State, month string) MonthSummary {
	override, hasOverride := s.Override(month)
	cats := catalog.NewService(s)

	sum := MonthSummary{
		Month:        month,
		DefaultTotal: s.DefaultTotalBudget(),
		HasOverride:  hasOverride,
		Transactions: MonthTransactions(s, month),
	}

	for _, c := range cats.All() {
		budget := c.Budget
		_, overridden := override.CategoryOverrides[c.ID]
		if overridden {
			budget = override.CategoryOverrides[c.ID]
		}
		spent := CategorySpend(s, month, c.ID)
		remaining := budget.Sub(spent)
		sum.Categories = append(sum.Categories, CategoryRow{
			Category:   c,
			Budget:     budget,
			Spent:      spent,
			Remaining:  remaining,
			Percent:    Percent(spent, budget),
			Overridden: overridden,
			OverBudget: remaining.IsNegative(),
		})
	}

	sum.TotalBudget = sum.DefaultTotal
	if hasOverride {
		sum.TotalBudget = override.TotalBudget
	}
	sum.TotalSpent = sumBy(sum.Transactions, nil, func(t model.BudgetTransaction) decimal.Decimal { return t.Amount })
	sum.Remaining = sum.TotalBudget.Sub(sum.TotalSpent)
	return sum
}
