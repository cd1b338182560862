package ledger

import (
	"github.com/havenly-dev/havenly/internal/id"
	"github.com/havenly-dev/havenly/internal/model"
)

// UpdateCreditCard merges new totals into the payoff plan.
type UpdateCreditCard struct {
	Patch model.CreditCardPatch
}

func (UpdateCreditCard) Name() string { return "update_credit_card" }

func (c UpdateCreditCard) Apply(s model.State, _ id.Generator) model.State {
	s.CreditCard = c.Patch.Apply(s.CreditCard)
	return s
}

// ClearCreditCard zeroes the plan and drops every scheduled payment.
type ClearCreditCard struct{}

func (ClearCreditCard) Name() string { return "clear_credit_card" }

func (ClearCreditCard) Apply(s model.State, _ id.Generator) model.State {
	s.CreditCard = model.CreditCardDebt{Payments: []model.Payment{}}
	return s
}

// AddCreditCardPayment schedules a payment. A Month of zero or less is
// assigned one past the highest existing sequence number.
type AddCreditCardPayment struct {
	Payment model.Payment
}

func (AddCreditCardPayment) Name() string { return "add_credit_card_payment" }

func (c AddCreditCardPayment) Apply(s model.State, ids id.Generator) model.State {
	p := c.Payment
	p.ID = newID(ids, "", s.CreditCard.Payments)
	if p.Month <= 0 {
		p.Month = nextPaymentMonth(s.CreditCard.Payments)
	}
	s.CreditCard.Payments = appendRecord(s.CreditCard.Payments, p)
	return s
}

func nextPaymentMonth(payments []model.Payment) int {
	highest := 0
	for _, p := range payments {
		highest = max(highest, p.Month)
	}
	return highest + 1
}

// UpdateCreditCardPayment merges a patch into a scheduled payment, such as
// marking it paid.
type UpdateCreditCardPayment struct {
	ID    string
	Patch model.PaymentPatch
}

func (UpdateCreditCardPayment) Name() string { return "update_credit_card_payment" }
func (c UpdateCreditCardPayment) TargetID() string { return c.ID }

func (c UpdateCreditCardPayment) Apply(s model.State, _ id.Generator) model.State {
	s.CreditCard.Payments, _ = updateRecord(s.CreditCard.Payments, c.ID, c.Patch.Apply)
	return s
}

// DeleteCreditCardPayment removes a payment from the schedule.
type DeleteCreditCardPayment struct {
	ID string
}

func (DeleteCreditCardPayment) Name() string { return "delete_credit_card_payment" }
func (c DeleteCreditCardPayment) TargetID() string { return c.ID }

func (c DeleteCreditCardPayment) Apply(s model.State, _ id.Generator) model.State {
	s.CreditCard.Payments, _ = deleteRecord(s.CreditCard.Payments, c.ID)
	return s
}
