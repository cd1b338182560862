package commands

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/havenly-dev/havenly/internal/input"
	"github.com/havenly-dev/havenly/internal/ledger"
	"github.com/havenly-dev/havenly/internal/metrics"
	"github.com/havenly-dev/havenly/internal/model"
	"github.com/havenly-dev/havenly/internal/render"
	"github.com/havenly-dev/havenly/internal/tracker"
)

func newCardCommand(opts *rootOptions) *cobra.Command {
	cardCmd := &cobra.Command{
		Use:   "card",
		Short: "Credit card payoff plan",
	}
	cardCmd.AddCommand(
		newCardShowCommand(opts),
		newCardPayCommand(opts, "pay", true),
		newCardPayCommand(opts, "unpay", false),
		newCardAddPaymentCommand(opts),
		newCardRmPaymentCommand(opts),
		newCardSetCommand(opts),
		newCardClearCommand(opts),
	)
	return cardCmd
}

// resolvePayment accepts a payment's sequence number or id.
func resolvePayment(a *app, arg string) (model.Payment, error) {
	payments := a.tracker.Snapshot().CreditCard.Payments
	if n, err := strconv.Atoi(arg); err == nil {
		for _, p := range payments {
			if p.Month == n {
				return p, nil
			}
		}
	}
	p, err := a.tracker.Payment(arg)
	if errors.Is(err, tracker.ErrNotFound) {
		return resolve(payments, "payment", arg)
	}
	return p, err
}

func newCardShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the payoff schedule",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			c := metrics.CreditCardProgress(a.tracker.Snapshot())

			rows := make([][]string, 0, len(c.Rows))
			for _, r := range c.Rows {
				p := r.Payment
				rows = append(rows, []string{
					strconv.Itoa(p.Month), shortID(p.ID), render.Money(p.Amount), render.Check(p.Paid), p.DatePaid, render.Money(r.Balance),
				})
			}
			a.printf("%s", render.RenderTable(render.Table{
				Title:   "Credit card",
				Headers: []string{"#", "ID", "Payment", "Paid", "Date", "Balance after"},
				Rows:    rows,
			}))

			status := render.ProgressBar(c.PercentPaid, 20)
			if c.IsPaidOff {
				status = render.Good("Paid off")
			}
			a.printf("\n%s", render.KV(
				[2]string{"Total", render.Money(c.TotalAmount)},
				[2]string{"Monthly payment", render.Money(c.MonthlyPayment)},
				[2]string{"Paid", render.Money(c.TotalPaid) + " (" + strconv.Itoa(c.PaidCount) + ")"},
				[2]string{"Remaining", render.Money(c.RemainingAmount) + " (" + strconv.Itoa(c.RemainingCount) + ")"},
				[2]string{"Progress", status},
			))
			return nil
		}),
	}
}

func newCardPayCommand(opts *rootOptions, use string, paid bool) *cobra.Command {
	var date string

	short := "Mark a payment paid"
	if !paid {
		short = "Mark a payment unpaid"
	}
	cmd := &cobra.Command{
		Use:   use + " <payment # or id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			p, err := resolvePayment(a, args[0])
			if err != nil {
				return err
			}
			patch := model.PaymentPatch{Paid: &paid, DatePaid: ptr("")}
			if paid {
				if date == "" {
					date = input.Today(a.now())
				}
				d, err := input.Date("date", date)
				if err != nil {
					return err
				}
				patch.DatePaid = &d
			}
			a.apply(strconv.Itoa(p.Month), ledger.UpdateCreditCardPayment{ID: p.ID, Patch: patch})
			if paid {
				a.printf("Payment %d marked paid\n", p.Month)
			} else {
				a.printf("Payment %d marked unpaid\n", p.Month)
			}
			return nil
		}),
	}

	if paid {
		cmd.Flags().StringVar(&date, "date", "", "date paid (default today)")
	}

	return cmd
}

func newCardAddPaymentCommand(opts *rootOptions) *cobra.Command {
	var month int

	cmd := &cobra.Command{
		Use:   "add-payment <amount>",
		Short: "Schedule another payment",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			amount, err := input.PositiveAmount("amount", args[0])
			if err != nil {
				return err
			}
			s := a.apply("", ledger.AddCreditCardPayment{Payment: model.Payment{Month: month, Amount: amount}})
			created := s.CreditCard.Payments[len(s.CreditCard.Payments)-1]
			a.printf("Scheduled payment %d of %s\n", created.Month, render.Money(amount))
			return nil
		}),
	}

	cmd.Flags().IntVar(&month, "month", 0, "sequence number (default one past the last)")

	return cmd
}

func newCardRmPaymentCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rm-payment <payment # or id>",
		Short: "Remove a scheduled payment",
		Args:  cobra.ExactArgs(1),
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			p, err := resolvePayment(a, args[0])
			if err != nil {
				return err
			}
			a.apply(strconv.Itoa(p.Month), ledger.DeleteCreditCardPayment{ID: p.ID})
			a.printf("Removed payment %d\n", p.Month)
			return nil
		}),
	}
}

func newCardSetCommand(opts *rootOptions) *cobra.Command {
	var total, monthly string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the card's total or monthly payment",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			var patch model.CreditCardPatch
			var err error
			if patch.TotalAmount, err = amountFlag(cmd, "total", total); err != nil {
				return err
			}
			if patch.MonthlyPayment, err = amountFlag(cmd, "monthly", monthly); err != nil {
				return err
			}
			s := a.apply("", ledger.UpdateCreditCard{Patch: patch})
			a.printf("Card total %s, monthly %s\n", render.Money(s.CreditCard.TotalAmount), render.Money(s.CreditCard.MonthlyPayment))
			return nil
		}),
	}

	cmd.Flags().StringVar(&total, "total", "", "total amount owed")
	cmd.Flags().StringVar(&monthly, "monthly", "", "monthly payment")

	return cmd
}

func newCardClearCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop the payoff plan",
		Args:  cobra.NoArgs,
		RunE: opts.run(func(cmd *cobra.Command, a *app, args []string) error {
			a.apply("", ledger.ClearCreditCard{})
			a.printf("Credit card cleared\n")
			return nil
		}),
	}
}
