package storage

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havenly-dev/havenly/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func populated() model.State {
	s := model.DefaultState()
	s.WorkExpenses = []model.WorkExpense{{
		ID: "w1", Date: "2025-05-02", Description: "Flight", Category: model.ExpenseTravel,
		Amount: dec("412.80"), HasReceipt: true, Status: model.StatusSubmitted,
		ExpectedReimbursementDate: "2025-05-20", DueDate: "2025-06-01",
	}}
	s.RothIRAContributions = []model.RothIRAContribution{{ID: "r1", Month: "May", Amount: dec("443.34"), Date: "2025-05-01"}}
	s.FundTransactions = []model.FundTransaction{{ID: "t1", FundID: "vacation", Amount: dec("25"), Type: model.FundDeposit, Date: "2025-05-03"}}
	s.Paychecks = []model.Paycheck{{ID: "p1", PayDate: "2025-05-15", Gross: dec("3166.67"), Net: dec("1920"), Hours: dec("80")}}
	s.BudgetTransactions = []model.BudgetTransaction{{ID: "b1", Date: "2025-05-04", Category: "groceries", Amount: dec("61.07"), Month: "2025-05"}}
	s.CustomCategories = []model.CustomCategory{{ID: "custom_1", Label: "Pets", Color: "orange", Budget: dec("75")}}
	s.MonthlyBudgetOverrides = []model.MonthlyBudgetOverride{{
		Month: "2025-05", TotalBudget: dec("2600"),
		CategoryOverrides: map[string]decimal.Decimal{"groceries": dec("180")},
	}}
	return s
}

func TestRoundTrip(t *testing.T) {
	for name, s := range map[string]model.State{
		"populated": populated(),
		"default":   model.DefaultState(),
		"empty":     model.EmptyState(),
	} {
		t.Run(name, func(t *testing.T) {
			first, err := Encode(s)
			require.NoError(t, err)

			decoded, err := Decode(first)
			require.NoError(t, err)

			second, err := Encode(decoded)
			require.NoError(t, err)
			assert.Equal(t, string(first), string(second))
		})
	}
}

func TestRoundTripKeepsEmptyCollections(t *testing.T) {
	data, err := Encode(model.EmptyState())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"workExpenses": []`)
	assert.Contains(t, string(data), `"payments": []`)
	assert.NotContains(t, string(data), "null")

	s, err := Decode(data)
	require.NoError(t, err)
	assert.NotNil(t, s.WorkExpenses)
	assert.Empty(t, s.WorkExpenses)
	assert.Empty(t, s.SavingsFunds, "an explicit empty fund list is kept")
}

func TestEncodeWritesNumbers(t *testing.T) {
	s := model.EmptyState()
	s.Config.Rent = dec("1815.50")

	data, err := Encode(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rent": 1815.5`)
}

func TestDecodeNullMeansAbsent(t *testing.T) {
	for _, doc := range []string{"null", "  null\n", "", "   "} {
		_, err := Decode([]byte(doc))
		assert.ErrorIs(t, err, ErrNotFound, "%q", doc)
	}
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode([]byte("{not json"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	_, err = Decode([]byte(`{"config": "rent"}`))
	require.Error(t, err)
}

func TestDecodeFillsDefaults(t *testing.T) {
	doc := `{
		"config": {"rent": 2000},
		"workExpenses": [{"id": "w1", "amount": 10, "status": "Pending"}]
	}`

	s, err := Decode([]byte(doc))
	require.NoError(t, err)

	assert.True(t, s.Config.Rent.Equal(dec("2000")))
	assert.True(t, s.Config.Power.Equal(dec("120")), "missing config fields take defaults")
	require.Len(t, s.WorkExpenses, 1)
	assert.Len(t, s.SavingsFunds, 4, "missing funds take the default funds")
	assert.Len(t, s.CreditCard.Payments, 6)
	assert.NotNil(t, s.Paychecks)
	assert.True(t, s.EmergencyFundBalance.Equal(dec("6733.26")))
}

func TestDecodeFundMonthlyContributionFallback(t *testing.T) {
	doc := `{
		"savingsFunds": [
			{"id": "emergency", "name": "Emergency", "balance": 100, "target": 15000, "color": "green", "isActive": true},
			{"id": "boat", "name": "Boat", "balance": 5, "target": 800, "color": "blue", "isActive": true},
			{"id": "vacation", "name": "Trips", "balance": 0, "target": 1, "monthlyContribution": 55, "color": "blue", "isActive": false}
		],
		"emergencyFundBalance": 100
	}`

	s, err := Decode([]byte(doc))
	require.NoError(t, err)
	require.Len(t, s.SavingsFunds, 3)
	assert.True(t, s.SavingsFunds[0].MonthlyContribution.Equal(dec("320")), "default fund's value")
	assert.True(t, s.SavingsFunds[1].MonthlyContribution.IsZero(), "unknown fund gets zero")
	assert.True(t, s.SavingsFunds[2].MonthlyContribution.Equal(dec("55")), "stored value wins")
}

func TestDecodeMirrorsEmergencyBalance(t *testing.T) {
	doc := `{
		"savingsFunds": [{"id": "emergency", "balance": 900, "target": 15000, "isActive": true}],
		"emergencyFundBalance": 850
	}`

	s, err := Decode([]byte(doc))
	require.NoError(t, err)
	assert.True(t, s.EmergencyFundBalance.Equal(dec("900")))
}

func TestDecodeLegacyEmergencyBalance(t *testing.T) {
	doc := `{
		"emergencyFundBalance": 9000,
		"config": {"rent": 1900}
	}`

	s, err := Decode([]byte(doc))
	require.NoError(t, err)
	assert.True(t, s.EmergencyFundBalance.Equal(dec("9000")))
	fund, ok := s.Fund(model.EmergencyFundID)
	require.True(t, ok)
	assert.True(t, fund.Balance.Equal(dec("9000")))
	assert.True(t, s.Config.Rent.Equal(dec("1900")))

	vacation, ok := s.Fund(model.VacationFundID)
	require.True(t, ok)
	assert.True(t, vacation.Balance.Equal(dec("626")))
}

func TestDecodeNullCollections(t *testing.T) {
	s, err := Decode([]byte(`{"workExpenses": null, "creditCard": {"totalAmount": 50, "monthlyPayment": 10, "payments": null}}`))
	require.NoError(t, err)
	assert.NotNil(t, s.WorkExpenses)
	assert.NotNil(t, s.CreditCard.Payments)
	assert.Empty(t, s.CreditCard.Payments)
	assert.True(t, s.CreditCard.TotalAmount.Equal(dec("50")))
}
