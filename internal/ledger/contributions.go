package ledger

import (
	"github.com/havenly-dev/havenly/internal/id"
	"github.com/havenly-dev/havenly/internal/model"
)

// AddRothIRAContribution records a Roth IRA contribution with a fresh id.
type AddRothIRAContribution struct {
	Contribution model.RothIRAContribution
}

func (AddRothIRAContribution) Name() string { return "add_roth_ira_contribution" }

func (c AddRothIRAContribution) Apply(s model.State, ids id.Generator) model.State {
	rec := c.Contribution
	rec.ID = newID(ids, "", s.RothIRAContributions)
	s.RothIRAContributions = appendRecord(s.RothIRAContributions, rec)
	return s
}

// UpdateRothIRAContribution merges a patch into a contribution.
type UpdateRothIRAContribution struct {
	ID    string
	Patch model.ContributionPatch
}

func (UpdateRothIRAContribution) Name() string { return "update_roth_ira_contribution" }
func (c UpdateRothIRAContribution) TargetID() string { return c.ID }

func (c UpdateRothIRAContribution) Apply(s model.State, _ id.Generator) model.State {
	s.RothIRAContributions, _ = updateRecord(s.RothIRAContributions, c.ID, c.Patch.ApplyRoth)
	return s
}

// DeleteRothIRAContribution removes a contribution.
type DeleteRothIRAContribution struct {
	ID string
}

func (DeleteRothIRAContribution) Name() string { return "delete_roth_ira_contribution" }
func (c DeleteRothIRAContribution) TargetID() string { return c.ID }

func (c DeleteRothIRAContribution) Apply(s model.State, _ id.Generator) model.State {
	s.RothIRAContributions, _ = deleteRecord(s.RothIRAContributions, c.ID)
	return s
}

// AddEmergencyFundEntry records a contribution and adds its amount to the
// emergency balance, both the fund and the mirrored top-level field.
type AddEmergencyFundEntry struct {
	Entry model.EmergencyFundEntry
}

func (AddEmergencyFundEntry) Name() string { return "add_emergency_fund_entry" }

func (c AddEmergencyFundEntry) Apply(s model.State, ids id.Generator) model.State {
	rec := c.Entry
	rec.ID = newID(ids, "", s.EmergencyFundEntries)
	s.EmergencyFundEntries = appendRecord(s.EmergencyFundEntries, rec)

	balance := s.EmergencyFundBalance.Add(rec.Amount)
	s.EmergencyFundBalance = balance
	return setFundBalance(s, model.EmergencyFundID, balance)
}

// UpdateEmergencyFundEntry edits an entry's bookkeeping fields only; the
// balance is corrected with UpdateEmergencyFundBalance.
type UpdateEmergencyFundEntry struct {
	ID    string
	Patch model.ContributionPatch
}

func (UpdateEmergencyFundEntry) Name() string { return "update_emergency_fund_entry" }
func (c UpdateEmergencyFundEntry) TargetID() string { return c.ID }

func (c UpdateEmergencyFundEntry) Apply(s model.State, _ id.Generator) model.State {
	s.EmergencyFundEntries, _ = updateRecord(s.EmergencyFundEntries, c.ID, c.Patch.ApplyEmergency)
	return s
}

// DeleteEmergencyFundEntry removes an entry. The emergency balance is left
// as it is.
type DeleteEmergencyFundEntry struct {
	ID string
}

func (DeleteEmergencyFundEntry) Name() string { return "delete_emergency_fund_entry" }
func (c DeleteEmergencyFundEntry) TargetID() string { return c.ID }

func (c DeleteEmergencyFundEntry) Apply(s model.State, _ id.Generator) model.State {
	s.EmergencyFundEntries, _ = deleteRecord(s.EmergencyFundEntries, c.ID)
	return s
}

// AddPaycheck records a received paycheck with a fresh id.
type AddPaycheck struct {
	Paycheck model.Paycheck
}

func (AddPaycheck) Name() string { return "add_paycheck" }

func (c AddPaycheck) Apply(s model.State, ids id.Generator) model.State {
	rec := c.Paycheck
	rec.ID = newID(ids, "", s.Paychecks)
	s.Paychecks = appendRecord(s.Paychecks, rec)
	return s
}

// UpdatePaycheck merges a patch into a paycheck.
type UpdatePaycheck struct {
	ID    string
	Patch model.PaycheckPatch
}

func (UpdatePaycheck) Name() string { return "update_paycheck" }
func (c UpdatePaycheck) TargetID() string { return c.ID }

func (c UpdatePaycheck) Apply(s model.State, _ id.Generator) model.State {
	s.Paychecks, _ = updateRecord(s.Paychecks, c.ID, c.Patch.Apply)
	return s
}

// DeletePaycheck removes a paycheck.
type DeletePaycheck struct {
	ID string
}

func (DeletePaycheck) Name() string { return "delete_paycheck" }
func (c DeletePaycheck) TargetID() string { return c.ID }

func (c DeletePaycheck) Apply(s model.State, _ id.Generator) model.State {
	s.Paychecks, _ = deleteRecord(s.Paychecks, c.ID)
	return s
}
