package commands

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/havenly-dev/havenly/internal/catalog"
	"github.com/havenly-dev/havenly/internal/importer"
	"github.com/havenly-dev/havenly/internal/input"
	"github.com/havenly-dev/havenly/internal/ledger"
	"github.com/havenly-dev/havenly/internal/metrics"
	"github.com/havenly-dev/havenly/internal/model"
	"github.com/havenly-dev/havenly/internal/render"
	"github.com/havenly-dev/havenly/internal/tracker"
)

func newBudgetCommand(opts *rootOptions) *cobra.Command {
	budgetCmd := &cobra.Command{
		Use:   "budget",
		Short: "Monthly budget and spending",
	}
	budgetCmd.AddCommand(
		newBudgetShowCommand(opts),
		newBudgetAddCommand(opts),
		newBudgetEditCommand(opts),
		newBudgetRmCommand(opts),
		newBudgetOverrideCommand(opts),
		newBudgetResetOverrideCommand(opts),
		newBudgetImportCommand(opts),
		newCategoryCommand(opts),
	)
	return budgetCmd
}

// monthArg returns the month given as the first argument or flag, else the
// current month.
func monthArg(a *app, value string) (string, error) {
	if value == "" {
		return input.CurrentMonth(a.now()), nil
	}
	return input.Month("month", value)
}

func newBudgetShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show [YYYY-MM]",
		Short: "Show budget against spending for a month",
		Args:  cobra.MaximumNArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			var value string
			if len(args) > 0 {
				value = args[0]
			}
			month, err := monthArg(a, value)
			if err != nil {
				return err
			}
			s := a.tracker.Snapshot()
			m := metrics.MonthBudget(s, month)

			rows := make([][]string, 0, len(m.Categories)+2)
			for _, c := range m.Categories {
				label := c.Category.Label
				if c.Overridden {
					label += " *"
				}
				rows = append(rows, []string{
					label, render.Money(c.Budget), render.Money(c.Spent), colorMoney(c.Remaining), render.Percent(c.Percent),
				})
			}
			rows = append(rows, []string{render.Separator},
				[]string{"Total", render.Money(m.TotalBudget), render.Money(m.TotalSpent), colorMoney(m.Remaining), ""})
			a.printf("%s", render.RenderTable(render.Table{
				Title:   "Budget " + month,
				Headers: []string{"Category", "Budget", "Spent", "Left", "Used"},
				Rows:    rows,
			}))
			if m.HasOverride {
				a.printf("  %s\n", render.Muted(fmt.Sprintf("overridden (default total %s)", render.Money(m.DefaultTotal))))
			}

			if len(m.Transactions) == 0 {
				a.printf("\n  %s\n", render.Muted("No transactions."))
				return nil
			}
			cats := catalog.NewService(s)
			txRows := make([][]string, 0, len(m.Transactions))
			for _, tx := range m.Transactions {
				txRows = append(txRows, []string{shortID(tx.ID), tx.Date, tx.Description, cats.Label(tx.Category), render.Money(tx.Amount)})
			}
			a.printf("\n%s", render.RenderTable(render.Table{
				Title:   "Transactions",
				Headers: []string{"ID", "Date", "Description", "Category", "Amount"},
				Rows:    txRows,
			}))
			return nil
		}),
	}
}

func newBudgetAddCommand(opts *rootOptions) *cobra.Command {
	var category, date, month string

	cmd := &cobra.Command{
		Use:   "add <amount> <description>",
		Short: "Record spending against a category",
		Args:  cobra.MinimumNArgs(2),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			amount, err := input.PositiveAmount("amount", args[0])
			if err != nil {
				return err
			}
			desc, err := input.Required("description", joinArgs(args[1:]))
			if err != nil {
				return err
			}
			cat, err := resolveCategory(a.tracker.Snapshot(), category)
			if err != nil {
				return err
			}
			if date == "" {
				date = input.Today(a.now())
			}
			if date, err = input.Date("date", date); err != nil {
				return err
			}
			if month == "" {
				month = input.MonthOf(date)
			}
			if month, err = input.Month("month", month); err != nil {
				return err
			}

			a.apply(desc, ledger.AddBudgetTransaction{Transaction: model.BudgetTransaction{
				Date:        date,
				Description: desc,
				Category:    cat.ID,
				Amount:      amount,
				Month:       month,
			}})
			a.printf("Recorded %s for %s in %s\n", render.Money(amount), cat.Label, month)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&category, "category", "c", catalog.Other, "category id or label")
	cmd.Flags().StringVar(&date, "date", "", "transaction date (default today)")
	cmd.Flags().StringVar(&month, "month", "", "budget month YYYY-MM (default the date's month)")

	return cmd
}

func newBudgetEditCommand(opts *rootOptions) *cobra.Command {
	var amount, description, category, date, month string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a recorded transaction",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			s := a.tracker.Snapshot()
			tx, err := resolve(s.BudgetTransactions, "transaction", args[0])
			if err != nil {
				return err
			}

			var patch model.BudgetTransactionPatch
			if patch.Amount, err = positiveAmountFlag(cmd, "amount", amount); err != nil {
				return err
			}
			if changed(cmd, "description") {
				patch.Description = &description
			}
			if changed(cmd, "category") {
				cat, err := resolveCategory(s, category)
				if err != nil {
					return err
				}
				patch.Category = &cat.ID
			}
			if changed(cmd, "date") {
				d, err := input.Date("date", date)
				if err != nil {
					return err
				}
				patch.Date = &d
			}
			if changed(cmd, "month") {
				m, err := input.Month("month", month)
				if err != nil {
					return err
				}
				patch.Month = &m
			}

			a.apply(tx.Description, ledger.UpdateBudgetTransaction{ID: tx.ID, Patch: patch})
			a.printf("Updated transaction %s\n", shortID(tx.ID))
			return nil
		}),
	}

	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category id or label")
	cmd.Flags().StringVar(&date, "date", "", "new date")
	cmd.Flags().StringVar(&month, "month", "", "new budget month YYYY-MM")

	return cmd
}

func newBudgetRmCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a recorded transaction",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			tx, err := resolve(a.tracker.Snapshot().BudgetTransactions, "transaction", args[0])
			if err != nil {
				return err
			}
			a.apply(tx.Description, ledger.DeleteBudgetTransaction{ID: tx.ID})
			a.printf("Deleted transaction %s\n", shortID(tx.ID))
			return nil
		}),
	}
}

func newBudgetOverrideCommand(opts *rootOptions) *cobra.Command {
	var month, category string

	cmd := &cobra.Command{
		Use:   "override <amount>",
		Short: "Override a month's total budget, or one category with --category",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			amount, err := input.NonNegativeAmount("amount", args[0])
			if err != nil {
				return err
			}
			m, err := monthArg(a, month)
			if err != nil {
				return err
			}

			if category == "" {
				a.apply("total", ledger.SetMonthlyBudgetOverride{Month: m, TotalBudget: amount})
				a.printf("Budget for %s set to %s\n", m, render.Money(amount))
				return nil
			}
			cat, err := resolveCategory(a.tracker.Snapshot(), category)
			if err != nil {
				return err
			}
			a.apply(cat.ID, ledger.SetCategoryOverride{Month: m, Category: cat.ID, Budget: amount})
			a.printf("%s budget for %s set to %s\n", cat.Label, m, render.Money(amount))
			return nil
		}),
	}

	cmd.Flags().StringVar(&month, "month", "", "month YYYY-MM (default current)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "override only this category")

	return cmd
}

func newBudgetResetOverrideCommand(opts *rootOptions) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "reset-override",
		Short: "Return a month to the default budget",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			m, err := monthArg(a, month)
			if err != nil {
				return err
			}
			if _, ok := a.tracker.Snapshot().Override(m); !ok {
				a.printf("%s has no override\n", m)
				return nil
			}
			a.apply("", ledger.DeleteMonthlyBudgetOverride{Month: m})
			a.printf("Budget for %s reset to default\n", m)
			return nil
		}),
	}

	cmd.Flags().StringVar(&month, "month", "", "month YYYY-MM (default current)")

	return cmd
}

func newBudgetImportCommand(opts *rootOptions) *cobra.Command {
	var format, category string

	cmd := &cobra.Command{
		Use:   "import-bank [file...]",
		Short: "Record spending from bank statement CSVs",
		Long: "Record the money-out rows of bank statement CSVs as transactions. With no files,\n" +
			"every CSV in the budget's import/ directory is read and then moved to import/processed/.\n" +
			"Rows already recorded (same date, description and amount) are skipped.",
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			s := a.tracker.Snapshot()
			cat, err := resolveCategory(s, category)
			if err != nil {
				return err
			}

			paths := args
			scanned := len(args) == 0
			if scanned {
				files, err := importer.Scan(a.dir)
				if err != nil {
					return err
				}
				for _, f := range files {
					paths = append(paths, f.Path)
				}
			}
			if len(paths) == 0 {
				a.printf("No statements in %s\n", filepath.Join(a.dir, importer.Dir))
				return nil
			}

			reg := importer.DefaultRegistry()
			var lines []importer.Line
			for _, p := range paths {
				l, err := reg.ParseFile(format, p)
				if err != nil {
					return err
				}
				lines = append(lines, l...)
			}

			res := importer.Spending(s, lines, cat.ID)
			cmds := make([]ledger.Command, 0, len(res.Transactions))
			for _, tx := range res.Transactions {
				cmds = append(cmds, ledger.AddBudgetTransaction{Transaction: tx})
			}
			if len(cmds) > 0 {
				a.apply(fmt.Sprintf("%d from bank statements", len(cmds)), cmds...)
			}
			if scanned {
				for _, p := range paths {
					if err := importer.MarkProcessed(a.dir, filepath.Base(p)); err != nil {
						return err
					}
				}
			}
			a.printf("Imported %d transactions into %s (%d duplicates, %d credits skipped)\n",
				len(res.Transactions), cat.Label, res.Duplicates, res.Credits)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&format, "format", "f", "chase", "statement format: chase or simple")
	cmd.Flags().StringVarP(&category, "category", "c", catalog.Other, "category for imported spending")

	return cmd
}

func newCategoryCommand(opts *rootOptions) *cobra.Command {
	categoryCmd := &cobra.Command{
		Use:   "category",
		Short: "Budget categories",
	}

	var addColor, color, label, budget string

	list := &cobra.Command{
		Use:   "list",
		Short: "List every category with its monthly budget",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			var rows [][]string
			for _, c := range catalog.NewService(a.tracker.Snapshot()).All() {
				kind := "built-in"
				if c.Custom {
					kind = "custom"
				}
				rows = append(rows, []string{c.Label, c.ID, kind, render.Money(c.Budget)})
			}
			a.printf("%s", render.RenderTable(render.Table{
				Headers: []string{"Category", "ID", "Kind", "Budget"},
				Rows:    rows,
			}))
			return nil
		}),
	}

	add := &cobra.Command{
		Use:   "add <label> <budget>",
		Short: "Add a custom category",
		Args:  cobra.ExactArgs(2),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			name, err := input.Required("label", args[0])
			if err != nil {
				return err
			}
			amount, err := input.NonNegativeAmount("budget", args[1])
			if err != nil {
				return err
			}
			s := a.apply(name, ledger.AddCustomCategory{Category: model.CustomCategory{
				Label:  name,
				Color:  model.CategoryColor(addColor),
				Budget: amount,
			}})
			created := s.CustomCategories[len(s.CustomCategories)-1]
			a.printf("Added category %s (%s)\n", created.Label, created.ID)
			return nil
		}),
	}
	add.Flags().StringVar(&addColor, "color", "gray", "display color")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a custom category",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			c, err := resolve(a.tracker.Snapshot().CustomCategories, "category", args[0])
			if err != nil {
				return err
			}
			var patch model.CustomCategoryPatch
			if patch.Budget, err = amountFlag(cmd, "budget", budget); err != nil {
				return err
			}
			if changed(cmd, "label") {
				patch.Label = &label
			}
			if changed(cmd, "color") {
				patch.Color = ptr(model.CategoryColor(color))
			}
			a.apply(c.Label, ledger.UpdateCustomCategory{ID: c.ID, Patch: patch})
			a.printf("Updated category %s\n", c.ID)
			return nil
		}),
	}
	update.Flags().StringVar(&label, "label", "", "new label")
	update.Flags().StringVar(&budget, "budget", "", "new monthly budget")
	update.Flags().StringVar(&color, "color", "", "new color")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a custom category; its transactions are kept",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			c, err := a.tracker.CustomCategory(args[0])
			if errors.Is(err, tracker.ErrNotFound) {
				c, err = resolve(a.tracker.Snapshot().CustomCategories, "category", args[0])
			}
			if err != nil {
				return err
			}
			a.apply(c.Label, ledger.DeleteCustomCategory{ID: c.ID})
			a.printf("Deleted category %s\n", c.Label)
			return nil
		}),
	}

	categoryCmd.AddCommand(list, add, update, rm)
	return categoryCmd
}
