package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/havenly-dev/havenly/internal/id"
	"github.com/havenly-dev/havenly/internal/model"
)

// UpdateConfig merges a patch into the configuration. Savings funds are not
// touched; see CommitSettings.
type UpdateConfig struct {
	Patch model.ConfigPatch
}

func (UpdateConfig) Name() string { return "update_config" }

func (c UpdateConfig) Apply(s model.State, _ id.Generator) model.State {
	s.Config = c.Patch.Apply(s.Config)
	return s
}

// CommitSettings is the settings-screen save: it merges the config patch
// and sets the card's monthly payment. The goal amounts tracked by funds
// (EmergencyFundMonthly by the emergency fund, BrokerageMonthly by the
// vacation fund) follow the funds: a patch that leaves one nil takes the
// fund's current contribution into the config, and a patch that sets one
// also sets the fund's contribution.
type CommitSettings struct {
	Patch                    model.ConfigPatch
	CreditCardMonthlyPayment *decimal.Decimal
}

func (CommitSettings) Name() string { return "commit_settings" }

func (c CommitSettings) Apply(s model.State, _ id.Generator) model.State {
	patch := c.Patch
	tracked := []struct {
		fundID string
		field  **decimal.Decimal
	}{
		{model.EmergencyFundID, &patch.EmergencyFundMonthly},
		{model.VacationFundID, &patch.BrokerageMonthly},
	}
	for _, t := range tracked {
		f, ok := s.Fund(t.fundID)
		if !ok {
			continue
		}
		if *t.field == nil {
			*t.field = &f.MonthlyContribution
			continue
		}
		monthly := **t.field
		s.SavingsFunds, _ = updateRecord(s.SavingsFunds, t.fundID, func(f model.SavingsFund) model.SavingsFund {
			f.MonthlyContribution = monthly
			return f
		})
	}

	s.Config = patch.Apply(s.Config)
	if c.CreditCardMonthlyPayment != nil {
		s.CreditCard = model.CreditCardPatch{MonthlyPayment: c.CreditCardMonthlyPayment}.Apply(s.CreditCard)
	}
	return s
}

// Reset replaces the whole snapshot with the canonical defaults. Clearing
// the stored document is the tracker's job.
type Reset struct{}

func (Reset) Name() string { return "reset" }

func (Reset) Apply(model.State, id.Generator) model.State {
	return model.DefaultState()
}
