package model

import "github.com/shopspring/decimal"

// Patches are merge-patches: nil fields leave the target untouched.

// ConfigPatch updates selected configuration fields.
type ConfigPatch struct {
	AnnualSalary         *decimal.Decimal
	NetPayPerPaycheck    *decimal.Decimal
	Roth401kPerPaycheck  *decimal.Decimal
	HSAPerPaycheck       *decimal.Decimal
	EmployerMatchPercent *decimal.Decimal
	Rent                 *decimal.Decimal
	Power                *decimal.Decimal
	Internet             *decimal.Decimal
	Gas                  *decimal.Decimal
	Groceries            *decimal.Decimal
	Gym                  *decimal.Decimal
	RothIRAMonthly       *decimal.Decimal
	EmergencyFundMonthly *decimal.Decimal
	BrokerageMonthly     *decimal.Decimal
	FunMoneyMonthly      *decimal.Decimal
	EmergencyFundTarget  *decimal.Decimal
	RothIRAAnnualLimit   *decimal.Decimal
}

// Apply returns c with the patch merged in.
func (p ConfigPatch) Apply(c Config) Config {
	set(&c.AnnualSalary, p.AnnualSalary)
	set(&c.NetPayPerPaycheck, p.NetPayPerPaycheck)
	set(&c.Roth401kPerPaycheck, p.Roth401kPerPaycheck)
	set(&c.HSAPerPaycheck, p.HSAPerPaycheck)
	set(&c.EmployerMatchPercent, p.EmployerMatchPercent)
	set(&c.Rent, p.Rent)
	set(&c.Power, p.Power)
	set(&c.Internet, p.Internet)
	set(&c.Gas, p.Gas)
	set(&c.Groceries, p.Groceries)
	set(&c.Gym, p.Gym)
	set(&c.RothIRAMonthly, p.RothIRAMonthly)
	set(&c.EmergencyFundMonthly, p.EmergencyFundMonthly)
	set(&c.BrokerageMonthly, p.BrokerageMonthly)
	set(&c.FunMoneyMonthly, p.FunMoneyMonthly)
	set(&c.EmergencyFundTarget, p.EmergencyFundTarget)
	set(&c.RothIRAAnnualLimit, p.RothIRAAnnualLimit)
	return c
}

// CreditCardPatch updates the card totals. Payments are edited through
// their own commands.
type CreditCardPatch struct {
	TotalAmount    *decimal.Decimal
	MonthlyPayment *decimal.Decimal
}

func (p CreditCardPatch) Apply(c CreditCardDebt) CreditCardDebt {
	set(&c.TotalAmount, p.TotalAmount)
	set(&c.MonthlyPayment, p.MonthlyPayment)
	return c
}

type PaymentPatch struct {
	Month    *int
	Amount   *decimal.Decimal
	Paid     *bool
	DatePaid *string
}

func (p PaymentPatch) Apply(pay Payment) Payment {
	set(&pay.Month, p.Month)
	set(&pay.Amount, p.Amount)
	set(&pay.Paid, p.Paid)
	set(&pay.DatePaid, p.DatePaid)
	return pay
}

type WorkExpensePatch struct {
	Date                      *string
	Description               *string
	Category                  *ExpenseCategory
	Amount                    *decimal.Decimal
	HasReceipt                *bool
	Status                    *ExpenseStatus
	ExpectedReimbursementDate *string
	DueDate                   *string
}

func (p WorkExpensePatch) Apply(e WorkExpense) WorkExpense {
	set(&e.Date, p.Date)
	set(&e.Description, p.Description)
	set(&e.Category, p.Category)
	set(&e.Amount, p.Amount)
	set(&e.HasReceipt, p.HasReceipt)
	set(&e.Status, p.Status)
	set(&e.ExpectedReimbursementDate, p.ExpectedReimbursementDate)
	set(&e.DueDate, p.DueDate)
	return e
}

// ContributionPatch applies to Roth IRA contributions and emergency fund entries.
type ContributionPatch struct {
	Month  *string
	Amount *decimal.Decimal
	Date   *string
}

func (p ContributionPatch) ApplyRoth(c RothIRAContribution) RothIRAContribution {
	set(&c.Month, p.Month)
	set(&c.Amount, p.Amount)
	set(&c.Date, p.Date)
	return c
}

func (p ContributionPatch) ApplyEmergency(e EmergencyFundEntry) EmergencyFundEntry {
	set(&e.Month, p.Month)
	set(&e.Amount, p.Amount)
	set(&e.Date, p.Date)
	return e
}

type SavingsFundPatch struct {
	Name                *string
	Balance             *decimal.Decimal
	Target              *decimal.Decimal
	MonthlyContribution *decimal.Decimal
	Color               *FundColor
	IsActive            *bool
}

func (p SavingsFundPatch) Apply(f SavingsFund) SavingsFund {
	set(&f.Name, p.Name)
	set(&f.Balance, p.Balance)
	set(&f.Target, p.Target)
	set(&f.MonthlyContribution, p.MonthlyContribution)
	set(&f.Color, p.Color)
	set(&f.IsActive, p.IsActive)
	return f
}

// FundTransactionPatch only touches descriptive fields; amount and type are
// fixed once the transaction has moved the balance.
type FundTransactionPatch struct {
	Date *string
	Note *string
}

func (p FundTransactionPatch) Apply(t FundTransaction) FundTransaction {
	set(&t.Date, p.Date)
	set(&t.Note, p.Note)
	return t
}

type PaycheckPatch struct {
	PayDate       *string
	Gross         *decimal.Decimal
	Net           *decimal.Decimal
	Hours         *decimal.Decimal
	RothIRA       *decimal.Decimal
	EmergencyFund *decimal.Decimal
	Brokerage     *decimal.Decimal
	Notes         *string
}

func (p PaycheckPatch) Apply(pc Paycheck) Paycheck {
	set(&pc.PayDate, p.PayDate)
	set(&pc.Gross, p.Gross)
	set(&pc.Net, p.Net)
	set(&pc.Hours, p.Hours)
	set(&pc.RothIRA, p.RothIRA)
	set(&pc.EmergencyFund, p.EmergencyFund)
	set(&pc.Brokerage, p.Brokerage)
	set(&pc.Notes, p.Notes)
	return pc
}

type BudgetTransactionPatch struct {
	Date        *string
	Description *string
	Category    *string
	Amount      *decimal.Decimal
	Month       *string
}

func (p BudgetTransactionPatch) Apply(t BudgetTransaction) BudgetTransaction {
	set(&t.Date, p.Date)
	set(&t.Description, p.Description)
	set(&t.Category, p.Category)
	set(&t.Amount, p.Amount)
	set(&t.Month, p.Month)
	return t
}

type CustomCategoryPatch struct {
	Label  *string
	Color  *CategoryColor
	Budget *decimal.Decimal
}

func (p CustomCategoryPatch) Apply(c CustomCategory) CustomCategory {
	set(&c.Label, p.Label)
	set(&c.Color, p.Color)
	set(&c.Budget, p.Budget)
	return c
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
