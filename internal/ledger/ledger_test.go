package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havenly-dev/havenly/internal/id"
	"github.com/havenly-dev/havenly/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

// seeded returns the default state with one record in every collection.
func seeded(t *testing.T) (model.State, *id.Sequence) {
	t.Helper()
	ids := id.NewSequence("id-")
	s := Apply(model.DefaultState(), ids,
		AddWorkExpense{Expense: model.WorkExpense{Description: "Client lunch", Category: model.ExpenseMeals, Amount: dec("42.50")}},
		AddRothIRAContribution{Contribution: model.RothIRAContribution{Month: "January", Amount: dec("443.34")}},
		AddEmergencyFundEntry{Entry: model.EmergencyFundEntry{Month: "January 2025", Amount: dec("100")}},
		AddFundTransaction{Transaction: model.FundTransaction{FundID: "vacation", Type: model.FundDeposit, Amount: dec("50"), Date: "2025-01-05"}},
		AddPaycheck{Paycheck: model.Paycheck{PayDate: "2025-01-15", Gross: dec("2923.08"), Net: dec("1920")}},
		AddBudgetTransaction{Transaction: model.BudgetTransaction{Date: "2025-01-03", Category: "groceries", Amount: dec("64.12"), Month: "2025-01"}},
		AddCustomCategory{Category: model.CustomCategory{Label: "Pets", Color: "orange", Budget: dec("75")}},
		SetMonthlyBudgetOverride{Month: "2025-01", TotalBudget: dec("3000")},
	)
	return s, ids
}

func TestUnknownIDIsNoOp(t *testing.T) {
	s, ids := seeded(t)

	cmds := []Command{
		UpdateWorkExpense{ID: "missing", Patch: model.WorkExpensePatch{Description: ptr("x")}},
		DeleteWorkExpense{ID: "missing"},
		UpdateRothIRAContribution{ID: "missing", Patch: model.ContributionPatch{Amount: ptr(dec("1"))}},
		DeleteRothIRAContribution{ID: "missing"},
		UpdateEmergencyFundEntry{ID: "missing", Patch: model.ContributionPatch{Amount: ptr(dec("1"))}},
		DeleteEmergencyFundEntry{ID: "missing"},
		UpdateCreditCardPayment{ID: "missing", Patch: model.PaymentPatch{Paid: ptr(true)}},
		DeleteCreditCardPayment{ID: "missing"},
		UpdateSavingsFund{ID: "missing", Patch: model.SavingsFundPatch{Balance: ptr(dec("1"))}},
		DeleteSavingsFund{ID: "missing"},
		UpdateFundTransaction{ID: "missing", Patch: model.FundTransactionPatch{Note: ptr("x")}},
		DeleteFundTransaction{ID: "missing"},
		UpdatePaycheck{ID: "missing", Patch: model.PaycheckPatch{Notes: ptr("x")}},
		DeletePaycheck{ID: "missing"},
		UpdateBudgetTransaction{ID: "missing", Patch: model.BudgetTransactionPatch{Amount: ptr(dec("1"))}},
		DeleteBudgetTransaction{ID: "missing"},
		UpdateCustomCategory{ID: "missing", Patch: model.CustomCategoryPatch{Label: ptr("x")}},
		DeleteCustomCategory{ID: "missing"},
		DeleteMonthlyBudgetOverride{Month: "1999-01"},
		AddFundTransaction{Transaction: model.FundTransaction{FundID: "missing", Type: model.FundDeposit, Amount: dec("10")}},
	}
	for _, cmd := range cmds {
		got := cmd.Apply(s, ids)
		assert.Equal(t, s, got, cmd.Name())
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	s, ids := seeded(t)
	before := s.Clone()

	_ = Apply(s, ids,
		UpdateWorkExpense{ID: s.WorkExpenses[0].ID, Patch: model.WorkExpensePatch{Description: ptr("changed")}},
		UpdateSavingsFund{ID: "vacation", Patch: model.SavingsFundPatch{Balance: ptr(dec("1"))}},
		UpdateCreditCardPayment{ID: "1", Patch: model.PaymentPatch{Paid: ptr(true)}},
		DeleteBudgetTransaction{ID: s.BudgetTransactions[0].ID},
		ReorderWorkExpenses{From: 0, To: 0},
	)
	assert.Equal(t, before, s)
}

func TestCreatedIDsAreUnique(t *testing.T) {
	ids := id.NewSequence("id-")
	s := model.EmptyState()
	for range 5 {
		s = AddWorkExpense{Expense: model.WorkExpense{Amount: dec("1")}}.Apply(s, ids)
	}
	seen := make(map[string]bool)
	for _, e := range s.WorkExpenses {
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
	assert.Len(t, seen, 5)
}

func TestCreatedIDsSkipTaken(t *testing.T) {
	s := model.EmptyState()
	s.WorkExpenses = []model.WorkExpense{{ID: "id-001"}}

	got := AddWorkExpense{Expense: model.WorkExpense{}}.Apply(s, id.NewSequence("id-"))
	require.Len(t, got.WorkExpenses, 2)
	assert.Equal(t, "id-002", got.WorkExpenses[1].ID)
}

func TestAddWorkExpenseDefaultsToPending(t *testing.T) {
	s := AddWorkExpense{Expense: model.WorkExpense{Amount: dec("10")}}.Apply(model.EmptyState(), id.NewSequence(""))
	require.Len(t, s.WorkExpenses, 1)
	assert.Equal(t, model.StatusPending, s.WorkExpenses[0].Status)
}

func TestUpdateWorkExpenseMergesPatch(t *testing.T) {
	s, ids := seeded(t)
	target := s.WorkExpenses[0]

	got := UpdateWorkExpense{
		ID:    target.ID,
		Patch: model.WorkExpensePatch{Status: ptr(model.StatusSubmitted)},
	}.Apply(s, ids)

	require.Len(t, got.WorkExpenses, 1)
	assert.Equal(t, model.StatusSubmitted, got.WorkExpenses[0].Status)
	assert.Equal(t, "Client lunch", got.WorkExpenses[0].Description)
}

func TestReorderWorkExpenses(t *testing.T) {
	ids := id.NewSequence("")
	s := model.EmptyState()
	for _, name := range []string{"A", "B", "C", "D"} {
		s = AddWorkExpense{Expense: model.WorkExpense{Description: name}}.Apply(s, ids)
	}

	order := func(st model.State) []string {
		var out []string
		for _, e := range st.WorkExpenses {
			out = append(out, e.Description)
		}
		return out
	}

	tests := []struct {
		from, to int
		want     []string
	}{
		{0, 2, []string{"B", "C", "A", "D"}},
		{3, 0, []string{"D", "A", "B", "C"}},
		{1, 3, []string{"A", "C", "D", "B"}},
		{2, 2, []string{"A", "B", "C", "D"}},
		{-1, 2, []string{"A", "B", "C", "D"}},
		{0, 4, []string{"A", "B", "C", "D"}},
		{9, 0, []string{"A", "B", "C", "D"}},
	}
	for _, tt := range tests {
		got := ReorderWorkExpenses{From: tt.from, To: tt.to}.Apply(s, ids)
		assert.Equal(t, tt.want, order(got), "reorder(%d,%d)", tt.from, tt.to)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, order(s), "input must be untouched")
}

func TestOverrideUniqueness(t *testing.T) {
	ids := id.NewSequence("")
	s := Apply(model.DefaultState(), ids,
		SetMonthlyBudgetOverride{Month: "2025-03", TotalBudget: dec("2500")},
		SetMonthlyBudgetOverride{Month: "2025-03", TotalBudget: dec("2750")},
	)

	require.Len(t, s.MonthlyBudgetOverrides, 1)
	assert.Equal(t, "2025-03", s.MonthlyBudgetOverrides[0].Month)
	assert.True(t, s.MonthlyBudgetOverrides[0].TotalBudget.Equal(dec("2750")))
}

func TestDeleteOverride(t *testing.T) {
	ids := id.NewSequence("")
	s := Apply(model.DefaultState(), ids,
		SetMonthlyBudgetOverride{Month: "2025-03", TotalBudget: dec("2500")},
		SetMonthlyBudgetOverride{Month: "2025-04", TotalBudget: dec("2600")},
		DeleteMonthlyBudgetOverride{Month: "2025-03"},
	)

	require.Len(t, s.MonthlyBudgetOverrides, 1)
	assert.Equal(t, "2025-04", s.MonthlyBudgetOverrides[0].Month)
}

func TestSetCategoryOverride(t *testing.T) {
	ids := id.NewSequence("")
	s := model.DefaultState()

	s = SetCategoryOverride{Month: "2025-05", Category: "groceries", Budget: dec("200")}.Apply(s, ids)
	require.Len(t, s.MonthlyBudgetOverrides, 1)
	o := s.MonthlyBudgetOverrides[0]
	assert.True(t, o.TotalBudget.Equal(s.DefaultTotalBudget()), "new override starts at the default total")
	assert.True(t, o.CategoryOverrides["groceries"].Equal(dec("200")))

	s = SetCategoryOverride{Month: "2025-05", Category: "gas", Budget: dec("60")}.Apply(s, ids)
	require.Len(t, s.MonthlyBudgetOverrides, 1)
	assert.Len(t, s.MonthlyBudgetOverrides[0].CategoryOverrides, 2)
	assert.Len(t, o.CategoryOverrides, 1, "earlier snapshot keeps its own map")
}

func TestCustomCategoryIDPrefix(t *testing.T) {
	s := AddCustomCategory{Category: model.CustomCategory{Label: "Pets"}}.Apply(model.EmptyState(), id.NewSequence(""))
	require.Len(t, s.CustomCategories, 1)
	assert.Equal(t, "custom_001", s.CustomCategories[0].ID)
}

func TestDeleteCustomCategoryKeepsTransactions(t *testing.T) {
	s, ids := seeded(t)
	cat := s.CustomCategories[0]
	s = AddBudgetTransaction{Transaction: model.BudgetTransaction{Category: cat.ID, Amount: dec("20"), Month: "2025-01"}}.Apply(s, ids)

	got := DeleteCustomCategory{ID: cat.ID}.Apply(s, ids)
	assert.Empty(t, got.CustomCategories)
	assert.Len(t, got.BudgetTransactions, 2)
}

func TestUpdateConfigDoesNotTouchFunds(t *testing.T) {
	s := model.DefaultState()
	got := UpdateConfig{Patch: model.ConfigPatch{EmergencyFundMonthly: ptr(dec("500"))}}.Apply(s, id.UUID{})

	assert.True(t, got.Config.EmergencyFundMonthly.Equal(dec("500")))
	fund, _ := got.Fund(model.EmergencyFundID)
	assert.True(t, fund.MonthlyContribution.Equal(dec("320")))
}

func TestCommitSettingsSyncsFunds(t *testing.T) {
	s := model.DefaultState()
	got := CommitSettings{
		Patch: model.ConfigPatch{
			EmergencyFundMonthly: ptr(dec("500")),
			BrokerageMonthly:     ptr(dec("150")),
			Rent:                 ptr(dec("1900")),
		},
		CreditCardMonthlyPayment: ptr(dec("200")),
	}.Apply(s, id.UUID{})

	emergency, _ := got.Fund(model.EmergencyFundID)
	vacation, _ := got.Fund(model.VacationFundID)
	house, _ := got.Fund("house")
	assert.True(t, emergency.MonthlyContribution.Equal(dec("500")))
	assert.True(t, vacation.MonthlyContribution.Equal(dec("150")))
	assert.True(t, house.MonthlyContribution.IsZero())
	assert.True(t, got.Config.Rent.Equal(dec("1900")))
	assert.True(t, got.CreditCard.MonthlyPayment.Equal(dec("200")))
}

func TestCommitSettingsKeepsFundContributions(t *testing.T) {
	s := model.DefaultState()
	got := CommitSettings{Patch: model.ConfigPatch{Rent: ptr(dec("1900"))}}.Apply(s, id.UUID{})

	emergency, _ := got.Fund(model.EmergencyFundID)
	vacation, _ := got.Fund(model.VacationFundID)
	assert.True(t, emergency.MonthlyContribution.Equal(dec("320")))
	assert.True(t, vacation.MonthlyContribution.Equal(dec("320")))
	assert.True(t, got.Config.EmergencyFundMonthly.Equal(dec("320")))
	assert.True(t, got.Config.BrokerageMonthly.Equal(dec("320")))
	assert.True(t, got.Config.Rent.Equal(dec("1900")))

	// The original snapshot is untouched.
	assert.True(t, s.Config.EmergencyFundMonthly.Equal(dec("1000")))
}

func TestCommitSettingsWithoutTrackedFunds(t *testing.T) {
	s := model.EmptyState()
	got := CommitSettings{Patch: model.ConfigPatch{BrokerageMonthly: ptr(dec("75"))}}.Apply(s, id.UUID{})

	assert.Empty(t, got.SavingsFunds)
	assert.True(t, got.Config.BrokerageMonthly.Equal(dec("75")))
	assert.True(t, got.Config.EmergencyFundMonthly.Equal(dec("1000")))
}

func TestReset(t *testing.T) {
	s, ids := seeded(t)
	got := Reset{}.Apply(s, ids)
	assert.Equal(t, model.DefaultState(), got)
}
