package ledger

import (
	"slices"

	"github.com/havenly-dev/havenly/internal/id"
	"github.com/havenly-dev/havenly/internal/model"
)

// AddWorkExpense appends an expense to the end of the list. An empty status
// defaults to Pending.
type AddWorkExpense struct {
	Expense model.WorkExpense
}

func (AddWorkExpense) Name() string { return "add_work_expense" }

func (c AddWorkExpense) Apply(s model.State, ids id.Generator) model.State {
	e := c.Expense
	e.ID = newID(ids, "", s.WorkExpenses)
	if e.Status == "" {
		e.Status = model.StatusPending
	}
	s.WorkExpenses = appendRecord(s.WorkExpenses, e)
	return s
}

// UpdateWorkExpense merges a patch into an expense. Its list position is
// kept.
type UpdateWorkExpense struct {
	ID    string
	Patch model.WorkExpensePatch
}

func (UpdateWorkExpense) Name() string { return "update_work_expense" }
func (c UpdateWorkExpense) TargetID() string { return c.ID }

func (c UpdateWorkExpense) Apply(s model.State, _ id.Generator) model.State {
	s.WorkExpenses, _ = updateRecord(s.WorkExpenses, c.ID, c.Patch.Apply)
	return s
}

// DeleteWorkExpense removes an expense.
type DeleteWorkExpense struct {
	ID string
}

func (DeleteWorkExpense) Name() string { return "delete_work_expense" }
func (c DeleteWorkExpense) TargetID() string { return c.ID }

func (c DeleteWorkExpense) Apply(s model.State, _ id.Generator) model.State {
	s.WorkExpenses, _ = deleteRecord(s.WorkExpenses, c.ID)
	return s
}

// ReorderWorkExpenses moves the expense at position From to position To.
// Positions index the current list; either out of range is a no-op.
type ReorderWorkExpenses struct {
	From, To int
}

func (ReorderWorkExpenses) Name() string { return "reorder_work_expenses" }

func (c ReorderWorkExpenses) Apply(s model.State, _ id.Generator) model.State {
	n := len(s.WorkExpenses)
	if c.From < 0 || c.From >= n || c.To < 0 || c.To >= n || c.From == c.To {
		return s
	}
	moved := s.WorkExpenses[c.From]
	out := slices.Delete(slices.Clone(s.WorkExpenses), c.From, c.From+1)
	s.WorkExpenses = slices.Insert(out, c.To, moved)
	return s
}
