package model

import "github.com/shopspring/decimal"

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DefaultConfig returns the configuration a new budget starts with.
func DefaultConfig() Config {
	return Config{
		AnnualSalary:         d("76000"),
		NetPayPerPaycheck:    d("1920"),
		Roth401kPerPaycheck:  d("253.33"),
		HSAPerPaycheck:       d("126.67"),
		EmployerMatchPercent: d("8"),
		Rent:                 d("1815"),
		Power:                d("120"),
		Internet:             d("51.16"),
		Gas:                  d("48.3"),
		Groceries:            d("140"),
		Gym:                  d("34.99"),
		RothIRAMonthly:       d("443.34"),
		EmergencyFundMonthly: d("1000"),
		BrokerageMonthly:     d("100"),
		FunMoneyMonthly:      d("40"),
		EmergencyFundTarget:  d("15000"),
		RothIRAAnnualLimit:   d("7500"),
	}
}

// DefaultFunds returns the savings funds a new budget starts with.
func DefaultFunds() []SavingsFund {
	return []SavingsFund{
		{ID: EmergencyFundID, Name: "Emergency Fund", Balance: d("6733.26"), Target: d("15000"), MonthlyContribution: d("320"), Color: "green", IsActive: true},
		{ID: VacationFundID, Name: "Vacation Fund", Balance: d("626"), Target: d("5000"), MonthlyContribution: d("320"), Color: "blue", IsActive: true},
		{ID: "house", Name: "House Fund", Balance: d("1"), Target: d("50000"), MonthlyContribution: d("0"), Color: "purple", IsActive: false},
		{ID: "car", Name: "Car Fund", Balance: d("1"), Target: d("10000"), MonthlyContribution: d("0"), Color: "yellow", IsActive: false},
	}
}

// DefaultCreditCard returns the payoff plan a new budget starts with.
func DefaultCreditCard() CreditCardDebt {
	card := CreditCardDebt{
		TotalAmount:    d("948.24"),
		MonthlyPayment: d("158.04"),
	}
	for _, n := range []string{"1", "2", "3", "4", "5", "6"} {
		card.Payments = append(card.Payments, Payment{
			ID:     n,
			Month:  len(card.Payments) + 1,
			Amount: d("158.04"),
		})
	}
	return card
}

// DefaultState returns the canonical starting snapshot. Every call returns
// fresh collections.
func DefaultState() State {
	funds := DefaultFunds()
	return State{
		Config:                 DefaultConfig(),
		CreditCard:             DefaultCreditCard(),
		WorkExpenses:           []WorkExpense{},
		RothIRAContributions:   []RothIRAContribution{},
		EmergencyFundEntries:   []EmergencyFundEntry{},
		EmergencyFundBalance:   funds[0].Balance,
		SavingsFunds:           funds,
		FundTransactions:       []FundTransaction{},
		Paychecks:              []Paycheck{},
		BudgetTransactions:     []BudgetTransaction{},
		CustomCategories:       []CustomCategory{},
		MonthlyBudgetOverrides: []MonthlyBudgetOverride{},
	}
}

// EmptyState returns a snapshot with default configuration and no records
// in any collection.
func EmptyState() State {
	return State{
		Config:                 DefaultConfig(),
		CreditCard:             CreditCardDebt{Payments: []Payment{}},
		WorkExpenses:           []WorkExpense{},
		RothIRAContributions:   []RothIRAContribution{},
		EmergencyFundEntries:   []EmergencyFundEntry{},
		SavingsFunds:           []SavingsFund{},
		FundTransactions:       []FundTransaction{},
		Paychecks:              []Paycheck{},
		BudgetTransactions:     []BudgetTransaction{},
		CustomCategories:       []CustomCategory{},
		MonthlyBudgetOverrides: []MonthlyBudgetOverride{},
	}
}
