package commands

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/havenly-dev/havenly/internal/catalog"
	"github.com/havenly-dev/havenly/internal/input"
	"github.com/havenly-dev/havenly/internal/model"
	"github.com/havenly-dev/havenly/internal/render"
)

func ptr[T any](v T) *T { return &v }

func colorMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return render.Bad(render.Money(d))
	}
	return render.Money(d)
}

// changed reports whether the named flag was set on the command line.
func changed(cmd *cobra.Command, name string) bool {
	return cmd.Flags().Changed(name)
}

// amountFlag parses the named flag as a non-negative amount when it was set.
func amountFlag(cmd *cobra.Command, name, value string) (*decimal.Decimal, error) {
	return parseAmountFlag(cmd, name, value, input.NonNegativeAmount)
}

// positiveAmountFlag is amountFlag for record amounts, which must be above
// zero.
func positiveAmountFlag(cmd *cobra.Command, name, value string) (*decimal.Decimal, error) {
	return parseAmountFlag(cmd, name, value, input.PositiveAmount)
}

func parseAmountFlag(cmd *cobra.Command, name, value string, parse func(field, s string) (decimal.Decimal, error)) (*decimal.Decimal, error) {
	if !changed(cmd, name) {
		return nil, nil
	}
	d, err := parse(name, value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// dateFlag validates the named date flag when it was set. An empty value
// clears the date.
func dateFlag(cmd *cobra.Command, name, value string) (*string, error) {
	if !changed(cmd, name) {
		return nil, nil
	}
	d, err := input.OptionalDate(name, value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// resolveCategory accepts a category id or label.
func resolveCategory(s model.State, arg string) (catalog.Category, error) {
	cats := catalog.NewService(s)
	if c, ok := cats.Get(arg); ok {
		return c, nil
	}
	for _, c := range cats.All() {
		if strings.EqualFold(c.Label, arg) || strings.EqualFold(c.ID, arg) {
			return c, nil
		}
	}
	return catalog.Category{}, &input.Error{Field: "category", Value: arg, Reason: "unknown category"}
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
