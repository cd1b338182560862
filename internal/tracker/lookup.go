package tracker

import (
	"fmt"

	"github.com/havenly-dev/havenly/internal/model"
)

// Lookup finds a record by id in the collection selected by items.
func Lookup[T model.Record](t *Tracker, items func(model.State) []T, recID string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := model.Find(items(t.state), recID)
	if !ok {
		return rec, fmt.Errorf("%q: %w", recID, ErrNotFound)
	}
	return rec, nil
}

// Fund returns the savings fund with the given id.
func (t *Tracker) Fund(fundID string) (model.SavingsFund, error) {
	return Lookup(t, func(s model.State) []model.SavingsFund { return s.SavingsFunds }, fundID)
}

// WorkExpense returns the work expense with the given id.
func (t *Tracker) WorkExpense(expenseID string) (model.WorkExpense, error) {
	return Lookup(t, func(s model.State) []model.WorkExpense { return s.WorkExpenses }, expenseID)
}

// Payment returns the credit-card payment with the given id.
func (t *Tracker) Payment(paymentID string) (model.Payment, error) {
	return Lookup(t, func(s model.State) []model.Payment { return s.CreditCard.Payments }, paymentID)
}

// CustomCategory returns the custom category with the given id.
func (t *Tracker) CustomCategory(categoryID string) (model.CustomCategory, error) {
	return Lookup(t, func(s model.State) []model.CustomCategory { return s.CustomCategories }, categoryID)
}

// WorkExpenseIndex returns the list position of an expense.
func (t *Tracker) WorkExpenseIndex(expenseID string) (int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i, e := range t.state.WorkExpenses {
		if e.ID == expenseID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%q: %w", expenseID, ErrNotFound)
}
