package model

import (
	"maps"
	"slices"
)

// Record is any collection member addressed by id.
type Record interface {
	RecordID() string
}

func (p Payment) RecordID() string               { return p.ID }
func (e WorkExpense) RecordID() string           { return e.ID }
func (c RothIRAContribution) RecordID() string   { return c.ID }
func (e EmergencyFundEntry) RecordID() string    { return e.ID }
func (f SavingsFund) RecordID() string           { return f.ID }
func (t FundTransaction) RecordID() string       { return t.ID }
func (p Paycheck) RecordID() string              { return p.ID }
func (t BudgetTransaction) RecordID() string     { return t.ID }
func (c CustomCategory) RecordID() string        { return c.ID }
func (o MonthlyBudgetOverride) RecordID() string { return o.Month }

// Find returns the record with the given id.
func Find[T Record](items []T, id string) (T, bool) {
	for _, it := range items {
		if it.RecordID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Contains reports whether a record with the given id exists.
func Contains[T Record](items []T, id string) bool {
	_, ok := Find(items, id)
	return ok
}

// Fund returns the savings fund with the given id.
func (s State) Fund(id string) (SavingsFund, bool) {
	return Find(s.SavingsFunds, id)
}

// Override returns the budget override for a "YYYY-MM" month.
func (s State) Override(month string) (MonthlyBudgetOverride, bool) {
	return Find(s.MonthlyBudgetOverrides, month)
}

// Clone returns a deep copy of s. Collections of the copy never share
// backing arrays with s.
func (s State) Clone() State {
	out := s
	out.CreditCard.Payments = cloneSlice(s.CreditCard.Payments)
	out.WorkExpenses = cloneSlice(s.WorkExpenses)
	out.RothIRAContributions = cloneSlice(s.RothIRAContributions)
	out.EmergencyFundEntries = cloneSlice(s.EmergencyFundEntries)
	out.SavingsFunds = cloneSlice(s.SavingsFunds)
	out.FundTransactions = cloneSlice(s.FundTransactions)
	out.Paychecks = cloneSlice(s.Paychecks)
	out.BudgetTransactions = cloneSlice(s.BudgetTransactions)
	out.CustomCategories = cloneSlice(s.CustomCategories)
	out.MonthlyBudgetOverrides = make([]MonthlyBudgetOverride, len(s.MonthlyBudgetOverrides))
	for i, o := range s.MonthlyBudgetOverrides {
		o.CategoryOverrides = maps.Clone(o.CategoryOverrides)
		out.MonthlyBudgetOverrides[i] = o
	}
	return out
}

// cloneSlice copies items, mapping nil to an empty slice so encoded
// documents always carry [] rather than null.
func cloneSlice[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return slices.Clone(items)
}
