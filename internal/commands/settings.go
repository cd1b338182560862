package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/havenly-dev/havenly/internal/input"
	"github.com/havenly-dev/havenly/internal/ledger"
	"github.com/havenly-dev/havenly/internal/metrics"
	"github.com/havenly-dev/havenly/internal/model"
	"github.com/havenly-dev/havenly/internal/render"
)

// setting binds a settings key to its config value and patch field.
type setting struct {
	key   string
	label string
	get   func(model.State) decimal.Decimal
	patch func(*model.ConfigPatch, decimal.Decimal)
}

// cardPaymentKey is the one setting stored on the credit card, not the config.
const cardPaymentKey = "card-payment"

var settings = []setting{
	{"annual-salary", "Annual salary",
		func(s model.State) decimal.Decimal { return s.Config.AnnualSalary },
		func(p *model.ConfigPatch, d decimal.Decimal) { p.AnnualSalary = &d }},
	{"net-pay", "Net pay per paycheck",
		func(s model.State) decimal.Decimal { return s.Config.NetPayPerPaycheck },
		func(p *model.ConfigPatch, d decimal.Decimal) { p.NetPayPerPaycheck = &d }},
	{"roth-401k", "Roth 401k per paycheck",
		func(s model.State) decimal.Decimal { return s.Config.Roth401kPerPaycheck },
		func(p *model.ConfigPatch, d decimal.Decimal) { p.Roth401kPerPaycheck = &d }},
	{"hsa", "HSA per paycheck",
		func(s model.State) decimal.Decimal { return s.Config.HSAPerPaycheck },
		func(p *model.ConfigPatch, d decimal.Decimal) { p.HSAPerPaycheck = &d }},
	{"employer-match", "Employer match %",
		func(s model.State) decimal.Decimal { return s.Config.EmployerMatchPercent },
		func(p *model.ConfigPatch, d decimal.Decimal) { p.EmployerMatchPercent = &d }},
	{"rent", "Rent",
		func(s model.State) decimal.Decimal { return s.Config.Rent },
		func(p *model.ConfigPatch, d decimal.Decimal) { p.Rent = &d }},
	{"power", "Power",
		func(s model.State) decimal.Decimal { return s.Config.Power },
		func(p *model.ConfigPatch, d decimal.Decimal) { p.Power = &d }},
	{"internet", "Internet",
		func(s model.State) decimal.Decimal { return s.Config.Internet },
		func(p *model.ConfigPatch, d decimal.Decimal) { p.Internet = &d }},
	{"gas", "Gas",
		func(s model.State) decimal.Decimal { return s.Config.Gas },
		func(p *model.ConfigPatch, d decimal.Decimal) { p.Gas = &d }},
	{"groceries", "Groceries",
		func(s model.State) decimal.Decimal { return s.Config.Groceries },
		func(p *model.ConfigPatch, d decimal.Decimal) { p.Groceries = &d }},
	{"gym", "Gym",
		func(s model.State) decimal.Decimal { return s.Config.Gym },
		func(p *model.ConfigPatch, d decimal.Decimal) { p.Gym = &d }},
	{"fun-money", "Fun money",
		func(s model.State) decimal.Decimal { return s.Config.FunMoneyMonthly },
		func(p *model.ConfigPatch, d decimal.Decimal) { p.FunMoneyMonthly = &d }},
	{"roth-ira-monthly", "Roth IRA monthly",
		func(s model.State) decimal.Decimal { return s.Config.RothIRAMonthly },
		func(p *model.ConfigPatch, d decimal.Decimal) { p.RothIRAMonthly = &d }},
	{"emergency-monthly", "Emergency fund monthly",
		func(s model.State) decimal.Decimal { return s.Config.EmergencyFundMonthly },
		func(p *model.ConfigPatch, d decimal.Decimal) { p.EmergencyFundMonthly = &d }},
	{"brokerage-monthly", "Brokerage monthly",
		func(s model.State) decimal.Decimal { return s.Config.BrokerageMonthly },
		func(p *model.ConfigPatch, d decimal.Decimal) { p.BrokerageMonthly = &d }},
	{"emergency-target", "Emergency fund target",
		func(s model.State) decimal.Decimal { return s.Config.EmergencyFundTarget },
		func(p *model.ConfigPatch, d decimal.Decimal) { p.EmergencyFundTarget = &d }},
	{"roth-ira-limit", "Roth IRA annual limit",
		func(s model.State) decimal.Decimal { return s.Config.RothIRAAnnualLimit },
		func(p *model.ConfigPatch, d decimal.Decimal) { p.RothIRAAnnualLimit = &d }},
	{cardPaymentKey, "Card monthly payment",
		func(s model.State) decimal.Decimal { return s.CreditCard.MonthlyPayment },
		nil},
}

func findSetting(key string) (setting, bool) {
	for _, s := range settings {
		if s.key == strings.ToLower(key) {
			return s, true
		}
	}
	return setting{}, false
}

func settingKeys() string {
	keys := make([]string, 0, len(settings))
	for _, s := range settings {
		keys = append(keys, s.key)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

func newSettingsCommand(opts *rootOptions) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Income, fixed expenses and savings goals",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show current settings and the monthly plan they produce",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			s := a.tracker.Snapshot()
			rows := make([][]string, 0, len(settings))
			for _, st := range settings {
				value := render.Money(st.get(s))
				if st.key == "employer-match" {
					value = st.get(s).String() + "%"
				}
				rows = append(rows, []string{st.label, st.key, value})
			}
			a.printf("%s", render.RenderTable(render.Table{
				Headers: []string{"Setting", "Key", "Value"},
				Rows:    rows,
			}))

			d := metrics.Dashboard(s, a.now())
			a.printf("\n%s", render.KV(
				[2]string{"Monthly net", render.Money(d.MonthlyNet)},
				[2]string{"Fixed expenses", render.Money(d.FixedExpenses)},
				[2]string{"Savings allocation", render.Money(d.SavingsAllocation)},
				[2]string{"Buffer", colorMoney(d.Buffer)},
			))
			return nil
		}),
	}

	set := &cobra.Command{
		Use:   "set <key> <value> [<key> <value>...]",
		Short: "Change settings and sync fund contributions",
		Long: "Change one or more settings in a single save. The emergency and vacation funds'\n" +
			"monthly contributions follow emergency-monthly and brokerage-monthly.\n\nKeys: " + settingKeys(),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return fmt.Errorf("expected key value pairs")
			}
			return nil
		},
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			var c ledger.CommitSettings
			var keys []string
			for i := 0; i < len(args); i += 2 {
				st, ok := findSetting(args[i])
				if !ok {
					return &input.Error{Field: "setting", Value: args[i], Reason: "expected one of " + settingKeys()}
				}
				d, err := input.NonNegativeAmount(st.key, args[i+1])
				if err != nil {
					return err
				}
				if st.patch == nil {
					c.CreditCardMonthlyPayment = &d
				} else {
					st.patch(&c.Patch, d)
				}
				keys = append(keys, st.key)
			}
			a.apply(strings.Join(keys, " "), c)
			a.printf("Saved %s\n", strings.Join(keys, ", "))
			return nil
		}),
	}

	settingsCmd.AddCommand(show, set)
	return settingsCmd
}
