package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/havenly-dev/havenly/internal/model"
)

// Built-in category ids. Budget transactions reference these or a custom
// category id.
const (
	Rent       = "rent"
	Groceries  = "groceries"
	Power      = "power"
	Internet   = "internet"
	Gas        = "gas"
	FunMoney   = "funMoney"
	Gym        = "gym"
	Other      = "other"
	CreditCard = "creditCard"
)

// Builtins returns the built-in budget categories in display order.
func Builtins() []Category {
	return []Category{
		{ID: Rent, Label: "Rent", Color: "blue"},
		{ID: Groceries, Label: "Groceries", Color: "green"},
		{ID: Power, Label: "Power", Color: "yellow"},
		{ID: Internet, Label: "Internet", Color: "purple"},
		{ID: Gas, Label: "Gas", Color: "orange"},
		{ID: FunMoney, Label: "Fun Money", Color: "pink"},
		{ID: Gym, Label: "Gym", Color: "red"},
		{ID: Other, Label: "Other", Color: "gray"},
		{ID: CreditCard, Label: "CC Payment", Color: "yellow"},
	}
}

// Baseline returns the monthly budget a built-in category gets from the
// configuration. Unknown ids and "other" have no baseline.
func Baseline(categoryID string, cfg model.Config, card model.CreditCardDebt) decimal.Decimal {
	switch categoryID {
	case Rent:
		return cfg.Rent
	case Power:
		return cfg.Power
	case Internet:
		return cfg.Internet
	case Gas:
		return cfg.Gas
	case Groceries:
		return cfg.Groceries
	case Gym:
		return cfg.Gym
	case CreditCard:
		return card.MonthlyPayment
	case FunMoney:
		return cfg.FunMoneyMonthly
	default:
		return decimal.Zero
	}
}
