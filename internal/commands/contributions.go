package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/havenly-dev/havenly/internal/input"
	"github.com/havenly-dev/havenly/internal/ledger"
	"github.com/havenly-dev/havenly/internal/metrics"
	"github.com/havenly-dev/havenly/internal/model"
	"github.com/havenly-dev/havenly/internal/render"
)

func newRothCommand(opts *rootOptions) *cobra.Command {
	rothCmd := &cobra.Command{
		Use:   "roth",
		Short: "Roth IRA contributions",
	}

	var month, date, amount string

	show := &cobra.Command{
		Use:   "show",
		Short: "Show this year's contributions against the limit",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			s := a.tracker.Snapshot()
			r := metrics.RothIRAProgress(s, a.now())

			rows := make([][]string, 0, len(r.ByMonth))
			for _, m := range r.ByMonth {
				mark := render.Check(m.Complete)
				if !m.Complete && m.Past {
					mark = render.Warn("missed")
				}
				rows = append(rows, []string{m.Month, render.Money(m.Total), mark})
			}
			a.printf("%s", render.RenderTable(render.Table{
				Title:   "Roth IRA",
				Headers: []string{"Month", "Contributed", ""},
				Rows:    rows,
			}))
			a.printf("\n%s", render.KV(
				[2]string{"Contributed", render.Money(r.Total) + " of " + render.Money(r.Limit)},
				[2]string{"Remaining", render.Money(r.Remaining)},
				[2]string{"Needed per month", render.Money(r.NeededPerMonth) + " over " + strconv.Itoa(r.MonthsLeft) + " months"},
				[2]string{"Progress", render.ProgressBar(r.Percent, 20)},
			))

			if len(s.RothIRAContributions) > 0 {
				var rows [][]string
				for _, c := range s.RothIRAContributions {
					rows = append(rows, []string{shortID(c.ID), c.Month, c.Date, render.Money(c.Amount)})
				}
				a.printf("\n%s", render.RenderTable(render.Table{
					Headers: []string{"ID", "Month", "Date", "Amount"},
					Rows:    rows,
				}))
			}
			return nil
		}),
	}

	add := &cobra.Command{
		Use:   "add <amount>",
		Short: "Record a contribution",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			c := model.RothIRAContribution{}
			var err error
			if c.Amount, err = input.PositiveAmount("amount", args[0]); err != nil {
				return err
			}
			if month == "" {
				month = a.now().Month().String()
			}
			if c.Month, err = input.MonthName("month", month); err != nil {
				return err
			}
			if date == "" {
				date = input.Today(a.now())
			}
			if c.Date, err = input.Date("date", date); err != nil {
				return err
			}
			a.apply(c.Month, ledger.AddRothIRAContribution{Contribution: c})
			a.printf("Recorded %s Roth IRA contribution for %s\n", render.Money(c.Amount), c.Month)
			return nil
		}),
	}
	add.Flags().StringVar(&month, "month", "", "month name or number (default current)")
	add.Flags().StringVar(&date, "date", "", "contribution date (default today)")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a contribution",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			c, err := resolve(a.tracker.Snapshot().RothIRAContributions, "contribution", args[0])
			if err != nil {
				return err
			}
			patch, err := contributionPatch(cmd, amount, month, date, func(v string) (string, error) {
				return input.MonthName("month", v)
			})
			if err != nil {
				return err
			}
			a.apply(c.Month, ledger.UpdateRothIRAContribution{ID: c.ID, Patch: patch})
			a.printf("Updated contribution %s\n", shortID(c.ID))
			return nil
		}),
	}
	update.Flags().StringVar(&amount, "amount", "", "new amount")
	update.Flags().StringVar(&month, "month", "", "new month")
	update.Flags().StringVar(&date, "date", "", "new date")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a contribution",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			c, err := resolve(a.tracker.Snapshot().RothIRAContributions, "contribution", args[0])
			if err != nil {
				return err
			}
			a.apply(c.Month, ledger.DeleteRothIRAContribution{ID: c.ID})
			a.printf("Deleted contribution %s\n", shortID(c.ID))
			return nil
		}),
	}

	rothCmd.AddCommand(show, add, update, rm)
	return rothCmd
}

// contributionPatch builds a patch from the amount, month and date flags
// that were set.
func contributionPatch(cmd *cobra.Command, amount, month, date string, parseMonth func(string) (string, error)) (model.ContributionPatch, error) {
	var patch model.ContributionPatch
	var err error
	if patch.Amount, err = positiveAmountFlag(cmd, "amount", amount); err != nil {
		return patch, err
	}
	if patch.Date, err = dateFlag(cmd, "date", date); err != nil {
		return patch, err
	}
	if changed(cmd, "month") {
		m, err := parseMonth(month)
		if err != nil {
			return patch, err
		}
		patch.Month = &m
	}
	return patch, nil
}

func newEmergencyCommand(opts *rootOptions) *cobra.Command {
	emergencyCmd := &cobra.Command{
		Use:   "emergency",
		Short: "Emergency fund",
	}

	var month, date, amount string

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the emergency fund against its target",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			s := a.tracker.Snapshot()
			e := metrics.EmergencyFundProgress(s)

			a.printf("%s\n", render.KV(
				[2]string{"Balance", render.Money(e.Balance)},
				[2]string{"Target", render.Money(e.Target)},
				[2]string{"Remaining", render.Money(e.Remaining)},
				[2]string{"Months to goal", strconv.Itoa(e.MonthsToGoal)},
				[2]string{"Progress", render.ProgressBar(e.Percent, 20)},
			))
			rows := make([][]string, 0, len(e.Milestones))
			for _, m := range e.Milestones {
				rows = append(rows, []string{m.Label, render.Money(m.Amount), render.Check(m.Reached), render.Percent(m.Progress)})
			}
			a.printf("%s", render.RenderTable(render.Table{
				Title:   "Milestones",
				Headers: []string{"Milestone", "Amount", "Reached", "Progress"},
				Rows:    rows,
			}))

			if len(s.EmergencyFundEntries) > 0 {
				var rows [][]string
				for _, en := range s.EmergencyFundEntries {
					rows = append(rows, []string{shortID(en.ID), en.Month, en.Date, render.Money(en.Amount)})
				}
				a.printf("\n%s", render.RenderTable(render.Table{
					Title:   "Contributions",
					Headers: []string{"ID", "Month", "Date", "Amount"},
					Rows:    rows,
				}))
			}
			return nil
		}),
	}

	add := &cobra.Command{
		Use:   "add <amount>",
		Short: "Record a contribution; the balance grows by the amount",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			en := model.EmergencyFundEntry{Month: month}
			var err error
			if en.Amount, err = input.PositiveAmount("amount", args[0]); err != nil {
				return err
			}
			if en.Month == "" {
				en.Month = input.MonthYearLabel(a.now())
			}
			if date == "" {
				date = input.Today(a.now())
			}
			if en.Date, err = input.Date("date", date); err != nil {
				return err
			}
			s := a.apply(en.Month, ledger.AddEmergencyFundEntry{Entry: en})
			a.printf("Emergency fund is now %s\n", render.Money(s.EmergencyFundBalance))
			return nil
		}),
	}
	add.Flags().StringVar(&month, "month", "", `label such as "January 2025" (default current)`)
	add.Flags().StringVar(&date, "date", "", "contribution date (default today)")

	set := &cobra.Command{
		Use:   "set <balance>",
		Short: "Set the emergency fund balance",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			balance, err := input.Amount("balance", args[0])
			if err != nil {
				return err
			}
			a.apply("", ledger.UpdateEmergencyFundBalance{Balance: balance})
			a.printf("Emergency fund set to %s\n", render.Money(balance))
			return nil
		}),
	}

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a recorded contribution; the balance is unchanged",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			en, err := resolve(a.tracker.Snapshot().EmergencyFundEntries, "entry", args[0])
			if err != nil {
				return err
			}
			patch, err := contributionPatch(cmd, amount, month, date, func(v string) (string, error) {
				return input.Required("month", v)
			})
			if err != nil {
				return err
			}
			a.apply(en.Month, ledger.UpdateEmergencyFundEntry{ID: en.ID, Patch: patch})
			a.printf("Updated entry %s\n", shortID(en.ID))
			return nil
		}),
	}
	update.Flags().StringVar(&amount, "amount", "", "new amount")
	update.Flags().StringVar(&month, "month", "", "new month label")
	update.Flags().StringVar(&date, "date", "", "new date")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a recorded contribution; the balance is unchanged",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			en, err := resolve(a.tracker.Snapshot().EmergencyFundEntries, "entry", args[0])
			if err != nil {
				return err
			}
			a.apply(en.Month, ledger.DeleteEmergencyFundEntry{ID: en.ID})
			a.printf("Deleted entry %s\n", shortID(en.ID))
			return nil
		}),
	}

	emergencyCmd.AddCommand(show, add, set, update, rm)
	return emergencyCmd
}
