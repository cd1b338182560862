package commands

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/havenly-dev/havenly/internal/input"
	"github.com/havenly-dev/havenly/internal/ledger"
	"github.com/havenly-dev/havenly/internal/metrics"
	"github.com/havenly-dev/havenly/internal/model"
	"github.com/havenly-dev/havenly/internal/render"
)

type paycheckFlags struct {
	date, gross, net, hours, roth, emergency, brokerage, notes string
}

func (f *paycheckFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.date, "date", "", "pay date")
	cmd.Flags().StringVar(&f.gross, "gross", "", "gross pay")
	cmd.Flags().StringVar(&f.net, "net", "", "net pay")
	cmd.Flags().StringVar(&f.hours, "hours", "", "hours worked")
	cmd.Flags().StringVar(&f.roth, "roth", "", "amount sent to the Roth IRA")
	cmd.Flags().StringVar(&f.emergency, "emergency", "", "amount sent to the emergency fund")
	cmd.Flags().StringVar(&f.brokerage, "brokerage", "", "amount sent to brokerage")
	cmd.Flags().StringVar(&f.notes, "notes", "", "notes")
}

type flagValue struct {
	name, value string
}

// amounts returns the numeric flags in the order of Paycheck's fields.
func (f *paycheckFlags) amounts() []flagValue {
	return []flagValue{
		{"gross", f.gross}, {"net", f.net}, {"hours", f.hours},
		{"roth", f.roth}, {"emergency", f.emergency}, {"brokerage", f.brokerage},
	}
}

func newPaycheckCommand(opts *rootOptions) *cobra.Command {
	paycheckCmd := &cobra.Command{
		Use:   "paycheck",
		Short: "Received paychecks",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List recorded paychecks",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			s := a.tracker.Snapshot()
			if len(s.Paychecks) == 0 {
				a.printf("No paychecks recorded.\n")
				return nil
			}
			rows := make([][]string, 0, len(s.Paychecks)+2)
			for _, p := range s.Paychecks {
				rows = append(rows, []string{
					shortID(p.ID), p.PayDate, render.Money(p.Gross), render.Money(p.Net), p.Hours.String(),
					render.Money(p.RothIRA), render.Money(p.EmergencyFund), render.Money(p.Brokerage), p.Notes,
				})
			}
			t := metrics.PaycheckSummary(s)
			rows = append(rows, []string{render.Separator},
				[]string{"Total", "", render.Money(t.Gross), render.Money(t.Net), t.Hours.String(), "", "", "", "avg net " + render.Money(t.AverageNet)})
			a.printf("%s", render.RenderTable(render.Table{
				Headers: []string{"ID", "Date", "Gross", "Net", "Hours", "Roth", "Emergency", "Brokerage", "Notes"},
				Rows:    rows,
			}))
			return nil
		}),
	}

	var addFlags paycheckFlags
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a paycheck",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			p := model.Paycheck{Notes: addFlags.notes}
			var err error
			date := addFlags.date
			if date == "" {
				date = input.Today(a.now())
			}
			if p.PayDate, err = input.Date("date", date); err != nil {
				return err
			}
			targets := []*decimal.Decimal{&p.Gross, &p.Net, &p.Hours, &p.RothIRA, &p.EmergencyFund, &p.Brokerage}
			for i, field := range addFlags.amounts() {
				if field.value == "" {
					continue
				}
				if *targets[i], err = input.NonNegativeAmount(field.name, field.value); err != nil {
					return err
				}
			}
			if !p.Net.IsPositive() {
				return &input.Error{Field: "net", Value: addFlags.net, Reason: "must be greater than zero"}
			}
			a.apply(p.PayDate, ledger.AddPaycheck{Paycheck: p})
			a.printf("Recorded paycheck of %s net on %s\n", render.Money(p.Net), p.PayDate)
			return nil
		}),
	}
	addFlags.register(add)

	var updateFlags paycheckFlags
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a recorded paycheck",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			p, err := resolve(a.tracker.Snapshot().Paychecks, "paycheck", args[0])
			if err != nil {
				return err
			}
			var patch model.PaycheckPatch
			if changed(cmd, "date") {
				d, err := input.Date("date", updateFlags.date)
				if err != nil {
					return err
				}
				patch.PayDate = &d
			}
			targets := []**decimal.Decimal{&patch.Gross, &patch.Net, &patch.Hours, &patch.RothIRA, &patch.EmergencyFund, &patch.Brokerage}
			for i, field := range updateFlags.amounts() {
				parse := amountFlag
				if field.name == "net" {
					parse = positiveAmountFlag
				}
				if *targets[i], err = parse(cmd, field.name, field.value); err != nil {
					return err
				}
			}
			if changed(cmd, "notes") {
				patch.Notes = &updateFlags.notes
			}
			a.apply(p.PayDate, ledger.UpdatePaycheck{ID: p.ID, Patch: patch})
			a.printf("Updated paycheck %s\n", shortID(p.ID))
			return nil
		}),
	}
	updateFlags.register(update)

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a recorded paycheck",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			p, err := resolve(a.tracker.Snapshot().Paychecks, "paycheck", args[0])
			if err != nil {
				return err
			}
			a.apply(p.PayDate, ledger.DeletePaycheck{ID: p.ID})
			a.printf("Deleted paycheck %s\n", shortID(p.ID))
			return nil
		}),
	}

	paycheckCmd.AddCommand(list, add, update, rm)
	return paycheckCmd
}
