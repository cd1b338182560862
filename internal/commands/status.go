package commands

import (
	"github.com/spf13/cobra"

	"github.com/havenly-dev/havenly/internal/metrics"
	"github.com/havenly-dev/havenly/internal/render"
)

func newStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"dashboard"},
		Short:   "Show the monthly overview",
		Args:    cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			d := metrics.Dashboard(a.tracker.Snapshot(), a.now())

			a.printf("%s\n\n", render.Title("Havenly · "+d.CurrentMonth))
			card := "no"
			if d.CardPaymentIncluded {
				card = "yes"
			}
			a.printf("%s\n%s\n", render.Heading("Cash flow"), render.KV(
				[2]string{"Monthly net", render.Money(d.MonthlyNet)},
				[2]string{"Fixed expenses", render.Money(d.FixedExpenses)},
				[2]string{"Includes card payment", card},
				[2]string{"After fixed", render.Money(d.RemainingAfterFixed)},
				[2]string{"Savings allocation", render.Money(d.SavingsAllocation)},
				[2]string{"Buffer", colorMoney(d.Buffer)},
			))
			a.printf("%s\n%s\n", render.Heading("Savings"), render.KV(
				[2]string{"Retirement rate", render.Percent(d.Rates.RetirementRate)},
				[2]string{"Total savings rate", render.Percent(d.Rates.TotalSavingsRate)},
				[2]string{"Roth IRA", render.Money(d.RothIRATotal) + " of " + render.Money(d.RothIRALimit)},
				[2]string{"Emergency fund", render.ProgressBar(d.EmergencyFund.Percent, 20)},
				[2]string{"All funds", render.Money(d.TotalSavingsBalance)},
			))
			a.printf("%s\n%s\n", render.Heading("Obligations"), render.KV(
				[2]string{"Card remaining", render.Money(d.CreditCard.RemainingAmount)},
				[2]string{"Pending expenses", render.Money(d.PendingExpenses)},
				[2]string{"Budget left this month", colorMoney(d.Budget.Remaining)},
			))
			return nil
		}),
	}
}
