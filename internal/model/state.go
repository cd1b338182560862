// Package model defines the budget state snapshot and every record it holds.
package model

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Stored documents carry money as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// EmergencyFundID is the savings fund whose balance is mirrored into
// State.EmergencyFundBalance.
const EmergencyFundID = "emergency"

// VacationFundID is the savings fund fed by Config.BrokerageMonthly on settings commit.
const VacationFundID = "vacation"

// State is one complete snapshot of the budget.
type State struct {
	Config                 Config                  `json:"config"`
	CreditCard             CreditCardDebt          `json:"creditCard"`
	WorkExpenses           []WorkExpense           `json:"workExpenses"`
	RothIRAContributions   []RothIRAContribution   `json:"rothIraContributions"`
	EmergencyFundEntries   []EmergencyFundEntry    `json:"emergencyFundEntries"`
	EmergencyFundBalance   decimal.Decimal         `json:"emergencyFundBalance"`
	SavingsFunds           []SavingsFund           `json:"savingsFunds"`
	FundTransactions       []FundTransaction       `json:"fundTransactions"`
	Paychecks              []Paycheck              `json:"paychecks"`
	BudgetTransactions     []BudgetTransaction     `json:"budgetTransactions"`
	CustomCategories       []CustomCategory        `json:"customCategories"`
	MonthlyBudgetOverrides []MonthlyBudgetOverride `json:"monthlyBudgetOverrides"`
}

// Config holds income assumptions, fixed-expense baselines and savings goals.
type Config struct {
	AnnualSalary         decimal.Decimal `json:"annualSalary"`
	NetPayPerPaycheck    decimal.Decimal `json:"netPayPerPaycheck"`
	Roth401kPerPaycheck  decimal.Decimal `json:"roth401kPerPaycheck"`
	HSAPerPaycheck       decimal.Decimal `json:"hsaPerPaycheck"`
	EmployerMatchPercent decimal.Decimal `json:"employerMatchPercent"`

	Rent      decimal.Decimal `json:"rent"`
	Power     decimal.Decimal `json:"power"`
	Internet  decimal.Decimal `json:"internet"`
	Gas       decimal.Decimal `json:"gas"`
	Groceries decimal.Decimal `json:"groceries"`
	Gym       decimal.Decimal `json:"gym"`

	RothIRAMonthly       decimal.Decimal `json:"rothIraMonthly"`
	EmergencyFundMonthly decimal.Decimal `json:"emergencyFundMonthly"`
	BrokerageMonthly     decimal.Decimal `json:"brokerageMonthly"`
	FunMoneyMonthly      decimal.Decimal `json:"funMoneyMonthly"`

	EmergencyFundTarget decimal.Decimal `json:"emergencyFundTarget"`
	RothIRAAnnualLimit  decimal.Decimal `json:"rothIraAnnualLimit"`
}

// FixedBaselines returns the sum of the configured fixed monthly expenses,
// fun money included.
func (c Config) FixedBaselines() decimal.Decimal {
	return decimal.Sum(c.Rent, c.Power, c.Internet, c.Gas, c.Groceries, c.Gym, c.FunMoneyMonthly)
}

// CreditCardDebt is a payoff plan for a single card balance.
type CreditCardDebt struct {
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	Payments       []Payment       `json:"payments"`
}

// HasUnpaid reports whether any scheduled payment is still open.
func (c CreditCardDebt) HasUnpaid() bool {
	for _, p := range c.Payments {
		if !p.Paid {
			return true
		}
	}
	return false
}

// Payment is one scheduled credit-card payment. Month is a sequence number
// and need not be contiguous after deletions.
type Payment struct {
	ID       string          `json:"id"`
	Month    int             `json:"month"`
	Amount   decimal.Decimal `json:"amount"`
	Paid     bool            `json:"paid"`
	DatePaid string          `json:"datePaid,omitempty"`
}

// ExpenseCategory classifies a reimbursable work expense.
type ExpenseCategory string

const (
	ExpenseMeals    ExpenseCategory = "Meals"
	ExpenseTravel   ExpenseCategory = "Travel"
	ExpenseSupplies ExpenseCategory = "Supplies"
	ExpenseOther    ExpenseCategory = "Other"
)

// ExpenseCategories lists the valid work-expense categories.
var ExpenseCategories = []ExpenseCategory{ExpenseMeals, ExpenseTravel, ExpenseSupplies, ExpenseOther}

// ExpenseStatus is the reimbursement lifecycle of a work expense.
type ExpenseStatus string

const (
	StatusPending    ExpenseStatus = "Pending"
	StatusSubmitted  ExpenseStatus = "Submitted"
	StatusReimbursed ExpenseStatus = "Reimbursed"
)

// WorkExpense is an out-of-pocket expense awaiting reimbursement.
type WorkExpense struct {
	ID                        string          `json:"id"`
	Date                      string          `json:"date"`
	Description               string          `json:"description"`
	Category                  ExpenseCategory `json:"category"`
	Amount                    decimal.Decimal `json:"amount"`
	HasReceipt                bool            `json:"hasReceipt"`
	Status                    ExpenseStatus   `json:"status"`
	ExpectedReimbursementDate string          `json:"expectedReimbursementDate,omitempty"`
	DueDate                   string          `json:"dueDate,omitempty"`
}

// Active reports whether the expense is still floated (not yet reimbursed).
func (e WorkExpense) Active() bool {
	return e.Status != StatusReimbursed
}

// RothIRAContribution records money put into the Roth IRA.
type RothIRAContribution struct {
	ID     string          `json:"id"`
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date,omitempty"`
}

// EmergencyFundEntry records a contribution to the emergency fund.
type EmergencyFundEntry struct {
	ID     string          `json:"id"`
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date,omitempty"`
}

// FundColor is the display color of a savings fund.
type FundColor string

// SavingsFund is a named savings bucket.
type SavingsFund struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Balance             decimal.Decimal `json:"balance"`
	Target              decimal.Decimal `json:"target"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution"`
	Color               FundColor       `json:"color"`
	IsActive            bool            `json:"isActive"`
}

// FundTransactionType says how a fund transaction changes the balance.
type FundTransactionType string

const (
	FundDeposit    FundTransactionType = "deposit"
	FundWithdrawal FundTransactionType = "withdrawal"
	// FundAdjustment sets the balance to the transaction amount.
	FundAdjustment FundTransactionType = "adjustment"
)

// FundTransaction is a recorded movement of money in or out of a fund.
type FundTransaction struct {
	ID     string              `json:"id"`
	FundID string              `json:"fundId"`
	Amount decimal.Decimal     `json:"amount"`
	Type   FundTransactionType `json:"type"`
	Date   string              `json:"date"`
	Note   string              `json:"note,omitempty"`
}

// Paycheck is one received paycheck and how it was split.
type Paycheck struct {
	ID            string          `json:"id"`
	PayDate       string          `json:"payDate"`
	Gross         decimal.Decimal `json:"gross"`
	Net           decimal.Decimal `json:"net"`
	Hours         decimal.Decimal `json:"hours"`
	RothIRA       decimal.Decimal `json:"rothIra"`
	EmergencyFund decimal.Decimal `json:"emergencyFund"`
	Brokerage     decimal.Decimal `json:"brokerage"`
	Notes         string          `json:"notes"`
}

// BudgetTransaction is money spent against a budget category. Month is the
// "YYYY-MM" bucket it counts toward and may differ from Date.
type BudgetTransaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Month       string          `json:"month"`
}

// CategoryColor is the display color of a custom category.
type CategoryColor string

// CustomCategory is a user-defined budget bucket.
type CustomCategory struct {
	ID     string          `json:"id"`
	Label  string          `json:"label"`
	Color  CategoryColor   `json:"color"`
	Budget decimal.Decimal `json:"budget"`
}

// MonthlyBudgetOverride replaces the computed total budget for one month.
type MonthlyBudgetOverride struct {
	Month             string                     `json:"month"`
	TotalBudget       decimal.Decimal            `json:"totalBudget"`
	CategoryOverrides map[string]decimal.Decimal `json:"categoryOverrides,omitempty"`
}

// DefaultTotalBudget is the monthly budget used when a month has no
// override: fixed baselines, the card payment and every custom category.
func (s State) DefaultTotalBudget() decimal.Decimal {
	total := s.Config.FixedBaselines().Add(s.CreditCard.MonthlyPayment)
	for _, c := range s.CustomCategories {
		total = total.Add(c.Budget)
	}
	return total
}
