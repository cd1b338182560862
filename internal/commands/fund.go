package commands

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/havenly-dev/havenly/internal/input"
	"github.com/havenly-dev/havenly/internal/ledger"
	"github.com/havenly-dev/havenly/internal/metrics"
	"github.com/havenly-dev/havenly/internal/model"
	"github.com/havenly-dev/havenly/internal/render"
)

func newFundCommand(opts *rootOptions) *cobra.Command {
	fundCmd := &cobra.Command{
		Use:   "fund",
		Short: "Savings funds",
	}
	fundCmd.AddCommand(
		newFundListCommand(opts),
		newFundTransactionCommand(opts, "deposit", model.FundDeposit, "Add money to a fund"),
		newFundTransactionCommand(opts, "withdraw", model.FundWithdrawal, "Take money out of a fund"),
		newFundTransactionCommand(opts, "adjust", model.FundAdjustment, "Record a correction that sets a fund's balance"),
		newFundSetBalanceCommand(opts),
		newFundAddCommand(opts),
		newFundUpdateCommand(opts),
		newFundRmCommand(opts),
		newFundHistoryCommand(opts),
		newFundTxEditCommand(opts),
		newFundTxRmCommand(opts),
	)
	return fundCmd
}

func newFundListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List funds with progress toward their targets",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			fs := metrics.FundsOverview(a.tracker.Snapshot())

			var rows [][]string
			for _, group := range [][]metrics.FundProgress{fs.Active, fs.Inactive} {
				for _, fp := range group {
					f := fp.Fund
					name := f.Name
					if !f.IsActive {
						name = render.Muted(name + " (inactive)")
					}
					rows = append(rows, []string{
						name, f.ID, render.Money(f.Balance), render.Money(f.Target),
						render.Money(f.MonthlyContribution), render.Percent(fp.Percent),
					})
				}
			}
			rows = append(rows, []string{render.Separator},
				[]string{"Total", "", render.Money(fs.TotalBalance), "", render.Money(fs.TotalMonthly), ""})
			a.printf("%s", render.RenderTable(render.Table{
				Headers: []string{"Fund", "ID", "Balance", "Target", "Monthly", "Progress"},
				Rows:    rows,
			}))
			return nil
		}),
	}
}

func newFundTransactionCommand(opts *rootOptions, use string, typ model.FundTransactionType, short string) *cobra.Command {
	var date, note string

	cmd := &cobra.Command{
		Use:   use + " <fund> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			fund, err := resolveFund(a, args[0])
			if err != nil {
				return err
			}
			amount, err := input.NonNegativeAmount("amount", args[1])
			if err != nil {
				return err
			}
			if typ != model.FundAdjustment && amount.IsZero() {
				return &input.Error{Field: "amount", Value: args[1], Reason: "must be greater than zero"}
			}
			if date == "" {
				date = input.Today(a.now())
			}
			if date, err = input.Date("date", date); err != nil {
				return err
			}

			s := a.apply(note, ledger.AddFundTransaction{Transaction: model.FundTransaction{
				FundID: fund.ID,
				Amount: amount,
				Type:   typ,
				Date:   date,
				Note:   note,
			}})
			after, _ := s.Fund(fund.ID)
			a.printf("%s: %s → %s\n", fund.Name, render.Money(fund.Balance), render.Money(after.Balance))
			return nil
		}),
	}

	cmd.Flags().StringVar(&date, "date", "", "transaction date (default today)")
	cmd.Flags().StringVar(&note, "note", "", "note")

	return cmd
}

func newFundSetBalanceCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set-balance <fund> <amount>",
		Short: "Set a fund's balance without recording a transaction",
		Args:  cobra.ExactArgs(2),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			fund, err := resolveFund(a, args[0])
			if err != nil {
				return err
			}
			amount, err := input.Amount("amount", args[1])
			if err != nil {
				return err
			}
			if fund.ID == model.EmergencyFundID {
				a.apply("", ledger.UpdateEmergencyFundBalance{Balance: amount})
			} else {
				a.apply("", ledger.UpdateSavingsFund{ID: fund.ID, Patch: model.SavingsFundPatch{Balance: &amount}})
			}
			a.printf("%s balance set to %s\n", fund.Name, render.Money(amount))
			return nil
		}),
	}
}

type fundFlags struct {
	name, id, target, monthly, balance, color string
	active                                    bool
}

func newFundAddCommand(opts *rootOptions) *cobra.Command {
	var f fundFlags

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a savings fund",
		Args:  cobra.MinimumNArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			fund := model.SavingsFund{
				ID:       strings.TrimSpace(f.id),
				Color:    model.FundColor(f.color),
				IsActive: f.active,
			}
			var err error
			if fund.Name, err = input.Required("name", joinArgs(args)); err != nil {
				return err
			}
			if fund.Target, err = input.NonNegativeAmount("target", f.target); err != nil {
				return err
			}
			if fund.MonthlyContribution, err = input.NonNegativeAmount("monthly", f.monthly); err != nil {
				return err
			}
			if fund.Balance, err = input.NonNegativeAmount("balance", f.balance); err != nil {
				return err
			}

			s := a.apply(fund.Name, ledger.AddSavingsFund{Fund: fund})
			created := s.SavingsFunds[len(s.SavingsFunds)-1]
			a.printf("Added fund %s (%s)\n", created.Name, created.ID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&f.id, "id", "", "fund id (generated when empty or taken)")
	cmd.Flags().StringVar(&f.target, "target", "0", "target balance")
	cmd.Flags().StringVar(&f.monthly, "monthly", "0", "monthly contribution")
	cmd.Flags().StringVar(&f.balance, "balance", "0", "starting balance")
	cmd.Flags().StringVar(&f.color, "color", "blue", "display color")
	cmd.Flags().BoolVar(&f.active, "active", true, "fund receives contributions")

	return cmd
}

func newFundUpdateCommand(opts *rootOptions) *cobra.Command {
	var f fundFlags

	cmd := &cobra.Command{
		Use:   "update <fund>",
		Short: "Change a fund's name, target, contribution, color or active flag",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			fund, err := resolveFund(a, args[0])
			if err != nil {
				return err
			}
			var patch model.SavingsFundPatch
			if changed(cmd, "name") {
				if _, err := input.Required("name", f.name); err != nil {
					return err
				}
				patch.Name = &f.name
			}
			if patch.Target, err = amountFlag(cmd, "target", f.target); err != nil {
				return err
			}
			if patch.MonthlyContribution, err = amountFlag(cmd, "monthly", f.monthly); err != nil {
				return err
			}
			if changed(cmd, "color") {
				patch.Color = ptr(model.FundColor(f.color))
			}
			if changed(cmd, "active") {
				patch.IsActive = &f.active
			}
			a.apply(fund.Name, ledger.UpdateSavingsFund{ID: fund.ID, Patch: patch})
			a.printf("Updated fund %s\n", fund.Name)
			return nil
		}),
	}

	cmd.Flags().StringVar(&f.name, "name", "", "new name")
	cmd.Flags().StringVar(&f.target, "target", "", "new target")
	cmd.Flags().StringVar(&f.monthly, "monthly", "", "new monthly contribution")
	cmd.Flags().StringVar(&f.color, "color", "", "new color")
	cmd.Flags().BoolVar(&f.active, "active", true, "fund receives contributions")

	return cmd
}

func newFundRmCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <fund>",
		Short: "Delete a fund and its transaction history",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			fund, err := resolveFund(a, args[0])
			if err != nil {
				return err
			}
			if fund.ID == model.EmergencyFundID {
				a.printf("The emergency fund cannot be deleted; use `fund update emergency --active=false`.\n")
				return nil
			}
			a.apply(fund.Name, ledger.DeleteSavingsFund{ID: fund.ID})
			a.printf("Deleted fund %s\n", fund.Name)
			return nil
		}),
	}
}

func newFundHistoryCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history [fund]",
		Short: "List fund transactions, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			s := a.tracker.Snapshot()
			var only string
			if len(args) > 0 {
				fund, err := resolveFund(a, args[0])
				if err != nil {
					return err
				}
				only = fund.ID
			}

			txs := slices.Clone(s.FundTransactions)
			slices.Reverse(txs)
			var rows [][]string
			for _, t := range txs {
				if only != "" && t.FundID != only {
					continue
				}
				name := t.FundID
				if f, ok := s.Fund(t.FundID); ok {
					name = f.Name
				}
				amount := render.Money(t.Amount)
				switch t.Type {
				case model.FundDeposit:
					amount = render.Good("+" + amount)
				case model.FundWithdrawal:
					amount = render.Warn("-" + amount)
				case model.FundAdjustment:
					amount = "=" + amount
				}
				rows = append(rows, []string{shortID(t.ID), t.Date, name, string(t.Type), amount, t.Note})
			}
			if len(rows) == 0 {
				a.printf("No fund transactions.\n")
				return nil
			}
			a.printf("%s", render.RenderTable(render.Table{
				Headers: []string{"ID", "Date", "Fund", "Type", "Amount", "Note"},
				Rows:    rows,
			}))
			return nil
		}),
	}
}

func newFundTxEditCommand(opts *rootOptions) *cobra.Command {
	var date, note string

	cmd := &cobra.Command{
		Use:   "tx-edit <id>",
		Short: "Change a fund transaction's date or note",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			t, err := resolve(a.tracker.Snapshot().FundTransactions, "fund transaction", args[0])
			if err != nil {
				return err
			}
			var patch model.FundTransactionPatch
			if changed(cmd, "date") {
				d, err := input.Date("date", date)
				if err != nil {
					return err
				}
				patch.Date = &d
			}
			if changed(cmd, "note") {
				patch.Note = &note
			}
			a.apply(t.FundID, ledger.UpdateFundTransaction{ID: t.ID, Patch: patch})
			a.printf("Updated fund transaction %s\n", shortID(t.ID))
			return nil
		}),
	}

	cmd.Flags().StringVar(&date, "date", "", "new date")
	cmd.Flags().StringVar(&note, "note", "", "new note")

	return cmd
}

func newFundTxRmCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tx-rm <id>",
		Short: "Delete a fund transaction from the history; the balance is unchanged",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			t, err := resolve(a.tracker.Snapshot().FundTransactions, "fund transaction", args[0])
			if err != nil {
				return err
			}
			a.apply(t.FundID, ledger.DeleteFundTransaction{ID: t.ID})
			a.printf("Deleted fund transaction %s\n", shortID(t.ID))
			return nil
		}),
	}
}
