package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/havenly-dev/havenly/internal/id"
	"github.com/havenly-dev/havenly/internal/model"
)

// AddSavingsFund creates a fund. A caller-chosen ID is kept when it is free;
// otherwise a fresh one is generated.
type AddSavingsFund struct {
	Fund model.SavingsFund
}

func (AddSavingsFund) Name() string { return "add_savings_fund" }

func (c AddSavingsFund) Apply(s model.State, ids id.Generator) model.State {
	f := c.Fund
	if f.ID == "" || model.Contains(s.SavingsFunds, f.ID) {
		f.ID = newID(ids, "fund_", s.SavingsFunds)
	}
	s.SavingsFunds = appendRecord(s.SavingsFunds, f)
	if f.ID == model.EmergencyFundID {
		s.EmergencyFundBalance = f.Balance
	}
	return s
}

// UpdateSavingsFund merges a patch into a fund. Patching the emergency fund
// keeps the top-level emergency balance equal to the fund's balance.
type UpdateSavingsFund struct {
	ID    string
	Patch model.SavingsFundPatch
}

func (UpdateSavingsFund) Name() string { return "update_savings_fund" }
func (c UpdateSavingsFund) TargetID() string { return c.ID }

func (c UpdateSavingsFund) Apply(s model.State, _ id.Generator) model.State {
	funds, ok := updateRecord(s.SavingsFunds, c.ID, c.Patch.Apply)
	if !ok {
		return s
	}
	s.SavingsFunds = funds
	if c.ID == model.EmergencyFundID && c.Patch.Balance != nil {
		s.EmergencyFundBalance = *c.Patch.Balance
	}
	return s
}

// DeleteSavingsFund removes a fund together with its transactions. The
// emergency fund cannot be deleted; deactivate it instead.
type DeleteSavingsFund struct {
	ID string
}

func (DeleteSavingsFund) Name() string { return "delete_savings_fund" }
func (c DeleteSavingsFund) TargetID() string { return c.ID }

func (c DeleteSavingsFund) Apply(s model.State, _ id.Generator) model.State {
	if c.ID == model.EmergencyFundID {
		return s
	}
	funds, ok := deleteRecord(s.SavingsFunds, c.ID)
	if !ok {
		return s
	}
	s.SavingsFunds = funds

	kept := make([]model.FundTransaction, 0, len(s.FundTransactions))
	for _, t := range s.FundTransactions {
		if t.FundID != c.ID {
			kept = append(kept, t)
		}
	}
	s.FundTransactions = kept
	return s
}

// AddFundTransaction records a transaction and moves the referenced fund's
// balance: deposits add, withdrawals subtract, adjustments set the balance
// to the amount. A transaction for an unknown fund is dropped unrecorded.
type AddFundTransaction struct {
	Transaction model.FundTransaction
}

func (AddFundTransaction) Name() string { return "add_fund_transaction" }

func (c AddFundTransaction) Apply(s model.State, ids id.Generator) model.State {
	t := c.Transaction
	fund, ok := s.Fund(t.FundID)
	if !ok {
		return s
	}
	t.ID = newID(ids, "", s.FundTransactions)
	s.FundTransactions = appendRecord(s.FundTransactions, t)
	return setFundBalance(s, fund.ID, applyFundTransaction(fund.Balance, t))
}

func applyFundTransaction(balance decimal.Decimal, t model.FundTransaction) decimal.Decimal {
	switch t.Type {
	case model.FundWithdrawal:
		return balance.Sub(t.Amount)
	case model.FundAdjustment:
		return t.Amount
	default:
		return balance.Add(t.Amount)
	}
}

// UpdateFundTransaction edits the date or note of a recorded transaction.
type UpdateFundTransaction struct {
	ID    string
	Patch model.FundTransactionPatch
}

func (UpdateFundTransaction) Name() string { return "update_fund_transaction" }
func (c UpdateFundTransaction) TargetID() string { return c.ID }

func (c UpdateFundTransaction) Apply(s model.State, _ id.Generator) model.State {
	s.FundTransactions, _ = updateRecord(s.FundTransactions, c.ID, c.Patch.Apply)
	return s
}

// DeleteFundTransaction removes a transaction from the history. The fund
// balance stays where it is.
type DeleteFundTransaction struct {
	ID string
}

func (DeleteFundTransaction) Name() string { return "delete_fund_transaction" }
func (c DeleteFundTransaction) TargetID() string { return c.ID }

func (c DeleteFundTransaction) Apply(s model.State, _ id.Generator) model.State {
	s.FundTransactions, _ = deleteRecord(s.FundTransactions, c.ID)
	return s
}

// UpdateEmergencyFundBalance sets the emergency balance in both places.
type UpdateEmergencyFundBalance struct {
	Balance decimal.Decimal
}

func (UpdateEmergencyFundBalance) Name() string { return "update_emergency_fund_balance" }

func (c UpdateEmergencyFundBalance) Apply(s model.State, _ id.Generator) model.State {
	s.EmergencyFundBalance = c.Balance
	return setFundBalance(s, model.EmergencyFundID, c.Balance)
}
