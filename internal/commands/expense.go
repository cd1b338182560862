package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/havenly-dev/havenly/internal/input"
	"github.com/havenly-dev/havenly/internal/ledger"
	"github.com/havenly-dev/havenly/internal/metrics"
	"github.com/havenly-dev/havenly/internal/model"
	"github.com/havenly-dev/havenly/internal/render"
	"github.com/havenly-dev/havenly/internal/tracker"
)

func newExpenseCommand(opts *rootOptions) *cobra.Command {
	expenseCmd := &cobra.Command{
		Use:   "expense",
		Short: "Reimbursable work expenses",
	}
	expenseCmd.AddCommand(
		newExpenseListCommand(opts),
		newExpenseAddCommand(opts),
		newExpenseUpdateCommand(opts),
		newExpenseStatusCommand(opts),
		newExpenseRmCommand(opts),
		newExpenseMoveCommand(opts),
		newExpenseFloatCommand(opts),
	)
	return expenseCmd
}

func newExpenseListCommand(opts *rootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work expenses in order",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			var rows [][]string
			for i, e := range a.tracker.Snapshot().WorkExpenses {
				if !all && !e.Active() {
					continue
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1), shortID(e.ID), e.Date, e.Description, string(e.Category),
					render.Money(e.Amount), render.Check(e.HasReceipt), string(e.Status), e.ExpectedReimbursementDate, e.DueDate,
				})
			}
			if len(rows) == 0 {
				a.printf("No work expenses.\n")
				return nil
			}
			a.printf("%s", render.RenderTable(render.Table{
				Headers: []string{"#", "ID", "Date", "Description", "Category", "Amount", "Receipt", "Status", "Expected", "Due"},
				Rows:    rows,
			}))
			return nil
		}),
	}

	cmd.Flags().BoolVar(&all, "all", false, "include reimbursed expenses")

	return cmd
}

type expenseFlags struct {
	date, description, category, amount, status, expected, due string
	receipt                                                    bool
}

func (f *expenseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "expense date")
	cmd.Flags().StringVarP(&f.category, "category", "c", string(model.ExpenseOther), "Meals, Travel, Supplies or Other")
	cmd.Flags().StringVar(&f.status, "status", string(model.StatusPending), "Pending, Submitted or Reimbursed")
	cmd.Flags().StringVar(&f.expected, "expected", "", "expected reimbursement date")
	cmd.Flags().StringVar(&f.due, "due", "", "card due date the expense lands on")
	cmd.Flags().BoolVar(&f.receipt, "receipt", false, "a receipt is on file")
}

// resolveExpense accepts an expense's full id or a unique id prefix.
func resolveExpense(a *app, arg string) (model.WorkExpense, error) {
	e, err := a.tracker.WorkExpense(arg)
	if errors.Is(err, tracker.ErrNotFound) {
		return resolve(a.tracker.Snapshot().WorkExpenses, "expense", arg)
	}
	return e, err
}

func newExpenseAddCommand(opts *rootOptions) *cobra.Command {
	var f expenseFlags

	cmd := &cobra.Command{
		Use:   "add <amount> <description>",
		Short: "Record a work expense",
		Args:  cobra.MinimumNArgs(2),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			e := model.WorkExpense{HasReceipt: f.receipt}
			var err error
			if e.Amount, err = input.PositiveAmount("amount", args[0]); err != nil {
				return err
			}
			if e.Description, err = input.Required("description", joinArgs(args[1:])); err != nil {
				return err
			}
			if f.date == "" {
				f.date = input.Today(a.now())
			}
			if e.Date, err = input.Date("date", f.date); err != nil {
				return err
			}
			if e.Category, err = input.ExpenseCategory(f.category); err != nil {
				return err
			}
			if e.Status, err = input.ExpenseStatus(f.status); err != nil {
				return err
			}
			if e.ExpectedReimbursementDate, err = input.OptionalDate("expected", f.expected); err != nil {
				return err
			}
			if e.DueDate, err = input.OptionalDate("due", f.due); err != nil {
				return err
			}

			a.apply(e.Description, ledger.AddWorkExpense{Expense: e})
			a.printf("Added %s expense %s\n", e.Category, render.Money(e.Amount))
			return nil
		}),
	}

	f.register(cmd)

	return cmd
}

func newExpenseUpdateCommand(opts *rootOptions) *cobra.Command {
	var f expenseFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a work expense",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			e, err := resolveExpense(a, args[0])
			if err != nil {
				return err
			}

			var patch model.WorkExpensePatch
			if patch.Amount, err = positiveAmountFlag(cmd, "amount", f.amount); err != nil {
				return err
			}
			if changed(cmd, "description") {
				patch.Description = &f.description
			}
			if changed(cmd, "date") {
				d, err := input.Date("date", f.date)
				if err != nil {
					return err
				}
				patch.Date = &d
			}
			if changed(cmd, "category") {
				c, err := input.ExpenseCategory(f.category)
				if err != nil {
					return err
				}
				patch.Category = &c
			}
			if changed(cmd, "status") {
				st, err := input.ExpenseStatus(f.status)
				if err != nil {
					return err
				}
				patch.Status = &st
			}
			if changed(cmd, "receipt") {
				patch.HasReceipt = &f.receipt
			}
			if patch.ExpectedReimbursementDate, err = dateFlag(cmd, "expected", f.expected); err != nil {
				return err
			}
			if patch.DueDate, err = dateFlag(cmd, "due", f.due); err != nil {
				return err
			}

			a.apply(e.Description, ledger.UpdateWorkExpense{ID: e.ID, Patch: patch})
			a.printf("Updated expense %s\n", shortID(e.ID))
			return nil
		}),
	}

	f.register(cmd)
	cmd.Flags().StringVar(&f.amount, "amount", "", "new amount")
	cmd.Flags().StringVar(&f.description, "description", "", "new description")

	return cmd
}

func newExpenseStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <Pending|Submitted|Reimbursed>",
		Short: "Move an expense through reimbursement",
		Args:  cobra.ExactArgs(2),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			e, err := resolveExpense(a, args[0])
			if err != nil {
				return err
			}
			st, err := input.ExpenseStatus(args[1])
			if err != nil {
				return err
			}
			a.apply(string(st), ledger.UpdateWorkExpense{ID: e.ID, Patch: model.WorkExpensePatch{Status: &st}})
			a.printf("%s is now %s\n", e.Description, st)
			return nil
		}),
	}
}

func newExpenseRmCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a work expense",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			e, err := resolveExpense(a, args[0])
			if err != nil {
				return err
			}
			a.apply(e.Description, ledger.DeleteWorkExpense{ID: e.ID})
			a.printf("Deleted expense %s\n", shortID(e.ID))
			return nil
		}),
	}
}

func newExpenseMoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <position>",
		Short: "Move an expense to a position in the list (1 is first)",
		Args:  cobra.ExactArgs(2),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			s := a.tracker.Snapshot()
			e, err := resolveExpense(a, args[0])
			if err != nil {
				return err
			}
			from, err := a.tracker.WorkExpenseIndex(e.ID)
			if err != nil {
				return err
			}
			pos, err := strconv.Atoi(args[1])
			if err != nil || pos < 1 || pos > len(s.WorkExpenses) {
				return &input.Error{Field: "position", Value: args[1], Reason: fmt.Sprintf("expected 1-%d", len(s.WorkExpenses))}
			}
			a.apply(e.Description, ledger.ReorderWorkExpenses{From: from, To: pos - 1})
			a.printf("Moved %s to position %d\n", e.Description, pos)
			return nil
		}),
	}
}

func newExpenseFloatCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "float",
		Short: "Show how much money is floated on work expenses",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			s := a.tracker.Snapshot()
			f := metrics.WorkExpenseFloat(s)

			limit := render.Money(f.EffectiveSafeLimit)
			if f.IsOverLimit {
				limit = render.Bad(limit + " (over)")
			}
			a.printf("%s\n%s\n", render.Heading("Float"), render.KV(
				[2]string{"Pending", render.Money(f.TotalPending)},
				[2]string{"Submitted", render.Money(f.TotalSubmitted)},
				[2]string{"Total floated", render.Money(f.TotalFloat)},
				[2]string{"Back before due", render.Money(f.ExpectedBackBeforeDue)},
				[2]string{"Safe limit", limit},
				[2]string{"Utilization", render.ProgressBar(f.Utilization, 20)},
			))

			byDue := metrics.FloatByDueDate(s, a.now())
			if len(byDue) == 0 {
				return nil
			}
			rows := make([][]string, 0, len(byDue))
			for _, d := range byDue {
				covered := render.Good("covered")
				if !d.IsCovered {
					covered = render.Warn("exposed")
				}
				rows = append(rows, []string{
					d.DueDate, strconv.Itoa(d.DaysUntilDue), render.Money(d.DueTotal),
					render.Money(d.ExpectedBack), render.Money(d.NetExposure), covered,
				})
			}
			a.printf("%s", render.RenderTable(render.Table{
				Title:   "By due date",
				Headers: []string{"Due", "Days", "Due total", "Back by then", "Exposure", ""},
				Rows:    rows,
			}))
			return nil
		}),
	}
}
