package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/havenly-dev/havenly/internal/model"
)

// Encode marshals the full state. Empty collections are written as [].
func Encode(s model.State) ([]byte, error) {
	data, err := json.MarshalIndent(s.Clone(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling budget: %w", err)
	}
	return append(data, '\n'), nil
}

// document mirrors model.State with every field optional, so a stored
// document written by an older version can be told apart from one that
// holds empty values.
type document struct {
	Config                 json.RawMessage                `json:"config"`
	CreditCard             *model.CreditCardDebt          `json:"creditCard"`
	WorkExpenses           *[]model.WorkExpense           `json:"workExpenses"`
	RothIRAContributions   *[]model.RothIRAContribution   `json:"rothIraContributions"`
	EmergencyFundEntries   *[]model.EmergencyFundEntry    `json:"emergencyFundEntries"`
	EmergencyFundBalance   *decimal.Decimal               `json:"emergencyFundBalance"`
	SavingsFunds           *[]storedFund                  `json:"savingsFunds"`
	FundTransactions       *[]model.FundTransaction       `json:"fundTransactions"`
	Paychecks              *[]model.Paycheck              `json:"paychecks"`
	BudgetTransactions     *[]model.BudgetTransaction     `json:"budgetTransactions"`
	CustomCategories       *[]model.CustomCategory        `json:"customCategories"`
	MonthlyBudgetOverrides *[]model.MonthlyBudgetOverride `json:"monthlyBudgetOverrides"`
}

type storedFund struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Balance             decimal.Decimal  `json:"balance"`
	Target              decimal.Decimal  `json:"target"`
	MonthlyContribution *decimal.Decimal `json:"monthlyContribution"`
	Color               model.FundColor  `json:"color"`
	IsActive            bool             `json:"isActive"`
}

// Decode parses a stored document and fills in whatever it lacks:
//   - a missing config field takes its default value;
//   - a missing top-level field takes the default state's value;
//   - a fund without monthlyContribution takes the default fund's value
//     with the same id, else zero;
//   - a document written before savingsFunds existed carries its
//     emergencyFundBalance into the default emergency fund;
//   - the emergency fund's balance, when that fund exists, is the
//     emergency balance.
//
// An empty or null document returns ErrNotFound.
func Decode(data []byte) (model.State, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return model.State{}, ErrNotFound
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return model.State{}, fmt.Errorf("parsing budget: %w", err)
	}

	s := model.DefaultState()
	if len(doc.Config) > 0 {
		if err := json.Unmarshal(doc.Config, &s.Config); err != nil {
			return model.State{}, fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.CreditCard != nil {
		s.CreditCard = *doc.CreditCard
	}
	take(&s.WorkExpenses, doc.WorkExpenses)
	take(&s.RothIRAContributions, doc.RothIRAContributions)
	take(&s.EmergencyFundEntries, doc.EmergencyFundEntries)
	take(&s.FundTransactions, doc.FundTransactions)
	take(&s.Paychecks, doc.Paychecks)
	take(&s.BudgetTransactions, doc.BudgetTransactions)
	take(&s.CustomCategories, doc.CustomCategories)
	take(&s.MonthlyBudgetOverrides, doc.MonthlyBudgetOverrides)
	if doc.SavingsFunds != nil {
		s.SavingsFunds = normalizeFunds(*doc.SavingsFunds)
	}
	if doc.EmergencyFundBalance != nil {
		s.EmergencyFundBalance = *doc.EmergencyFundBalance
		if doc.SavingsFunds == nil {
			for i := range s.SavingsFunds {
				if s.SavingsFunds[i].ID == model.EmergencyFundID {
					s.SavingsFunds[i].Balance = *doc.EmergencyFundBalance
				}
			}
		}
	}
	if f, ok := s.Fund(model.EmergencyFundID); ok {
		s.EmergencyFundBalance = f.Balance
	}

	// Clone maps nil collections, including nested ones, to empty.
	return s.Clone(), nil
}

func take[T any](dst *[]T, src *[]T) {
	if src != nil {
		*dst = *src
	}
}

func normalizeFunds(stored []storedFund) []model.SavingsFund {
	defaults := model.DefaultFunds()
	funds := make([]model.SavingsFund, 0, len(stored))
	for _, f := range stored {
		monthly := decimal.Zero
		if f.MonthlyContribution != nil {
			monthly = *f.MonthlyContribution
		} else if def, ok := model.Find(defaults, f.ID); ok {
			monthly = def.MonthlyContribution
		}
		funds = append(funds, model.SavingsFund{
			ID:                  f.ID,
			Name:                f.Name,
			Balance:             f.Balance,
			Target:              f.Target,
			MonthlyContribution: monthly,
			Color:               f.Color,
			IsActive:            f.IsActive,
		})
	}
	return funds
}
