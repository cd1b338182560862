package ledger

import (
	"maps"

	"github.com/shopspring/decimal"

	"github.com/havenly-dev/havenly/internal/id"
	"github.com/havenly-dev/havenly/internal/model"
)

// AddBudgetTransaction records spending with a fresh id.
type AddBudgetTransaction struct {
	Transaction model.BudgetTransaction
}

func (AddBudgetTransaction) Name() string { return "add_budget_transaction" }

func (c AddBudgetTransaction) Apply(s model.State, ids id.Generator) model.State {
	t := c.Transaction
	t.ID = newID(ids, "", s.BudgetTransactions)
	s.BudgetTransactions = appendRecord(s.BudgetTransactions, t)
	return s
}

// UpdateBudgetTransaction merges a patch into a transaction. An unknown id
// changes nothing.
type UpdateBudgetTransaction struct {
	ID    string
	Patch model.BudgetTransactionPatch
}

func (UpdateBudgetTransaction) Name() string { return "update_budget_transaction" }
func (c UpdateBudgetTransaction) TargetID() string { return c.ID }

func (c UpdateBudgetTransaction) Apply(s model.State, _ id.Generator) model.State {
	s.BudgetTransactions, _ = updateRecord(s.BudgetTransactions, c.ID, c.Patch.Apply)
	return s
}

// DeleteBudgetTransaction removes a transaction.
type DeleteBudgetTransaction struct {
	ID string
}

func (DeleteBudgetTransaction) Name() string { return "delete_budget_transaction" }
func (c DeleteBudgetTransaction) TargetID() string { return c.ID }

func (c DeleteBudgetTransaction) Apply(s model.State, _ id.Generator) model.State {
	s.BudgetTransactions, _ = deleteRecord(s.BudgetTransactions, c.ID)
	return s
}

// AddCustomCategory creates a category with a "custom_" id.
type AddCustomCategory struct {
	Category model.CustomCategory
}

func (AddCustomCategory) Name() string { return "add_custom_category" }

func (c AddCustomCategory) Apply(s model.State, ids id.Generator) model.State {
	cat := c.Category
	cat.ID = newID(ids, "custom_", s.CustomCategories)
	s.CustomCategories = appendRecord(s.CustomCategories, cat)
	return s
}

// UpdateCustomCategory merges a patch into a custom category.
type UpdateCustomCategory struct {
	ID    string
	Patch model.CustomCategoryPatch
}

func (UpdateCustomCategory) Name() string { return "update_custom_category" }
func (c UpdateCustomCategory) TargetID() string { return c.ID }

func (c UpdateCustomCategory) Apply(s model.State, _ id.Generator) model.State {
	s.CustomCategories, _ = updateRecord(s.CustomCategories, c.ID, c.Patch.Apply)
	return s
}

// DeleteCustomCategory removes the category. Transactions filed under it
// keep their category id.
type DeleteCustomCategory struct {
	ID string
}

func (DeleteCustomCategory) Name() string { return "delete_custom_category" }
func (c DeleteCustomCategory) TargetID() string { return c.ID }

func (c DeleteCustomCategory) Apply(s model.State, _ id.Generator) model.State {
	s.CustomCategories, _ = deleteRecord(s.CustomCategories, c.ID)
	return s
}

// SetMonthlyBudgetOverride replaces the total budget of one month, creating
// the override if the month has none. There is never more than one override
// per month.
type SetMonthlyBudgetOverride struct {
	Month       string
	TotalBudget decimal.Decimal
}

func (SetMonthlyBudgetOverride) Name() string { return "set_monthly_budget_override" }
func (c SetMonthlyBudgetOverride) TargetID() string { return c.Month }

func (c SetMonthlyBudgetOverride) Apply(s model.State, _ id.Generator) model.State {
	return upsertOverride(s, c.Month, func(o model.MonthlyBudgetOverride) model.MonthlyBudgetOverride {
		o.TotalBudget = c.TotalBudget
		return o
	})
}

// SetCategoryOverride sets one category's budget for one month. A month
// without an override gets one whose total is the current default.
type SetCategoryOverride struct {
	Month    string
	Category string
	Budget   decimal.Decimal
}

func (SetCategoryOverride) Name() string { return "set_category_override" }
func (c SetCategoryOverride) TargetID() string { return c.Month }

func (c SetCategoryOverride) Apply(s model.State, _ id.Generator) model.State {
	return upsertOverride(s, c.Month, func(o model.MonthlyBudgetOverride) model.MonthlyBudgetOverride {
		o.CategoryOverrides = maps.Clone(o.CategoryOverrides)
		if o.CategoryOverrides == nil {
			o.CategoryOverrides = make(map[string]decimal.Decimal)
		}
		o.CategoryOverrides[c.Category] = c.Budget
		return o
	})
}

func upsertOverride(s model.State, month string, fn func(model.MonthlyBudgetOverride) model.MonthlyBudgetOverride) model.State {
	overrides, ok := updateRecord(s.MonthlyBudgetOverrides, month, fn)
	if !ok {
		created := fn(model.MonthlyBudgetOverride{Month: month, TotalBudget: s.DefaultTotalBudget()})
		overrides = appendRecord(s.MonthlyBudgetOverrides, created)
	}
	s.MonthlyBudgetOverrides = overrides
	return s
}

// DeleteMonthlyBudgetOverride drops a month's override so the month falls
// back to the default budgets.
type DeleteMonthlyBudgetOverride struct {
	Month string
}

func (DeleteMonthlyBudgetOverride) Name() string { return "delete_monthly_budget_override" }
func (c DeleteMonthlyBudgetOverride) TargetID() string { return c.Month }

func (c DeleteMonthlyBudgetOverride) Apply(s model.State, _ id.Generator) model.State {
	s.MonthlyBudgetOverrides, _ = deleteRecord(s.MonthlyBudgetOverrides, c.Month)
	return s
}
