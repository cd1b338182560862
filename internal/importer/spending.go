package importer

import (
	"github.com/havenly-dev/havenly/internal/model"
)

// Result is what Spending kept and dropped from a statement.
type Result struct {
	Transactions []model.BudgetTransaction
	Duplicates   int
	Credits      int
}

// Spending converts the money-out lines into budget transactions filed
// under category, in the month of their date. A line matching an existing
// transaction (or an earlier line) on date, description and amount is a
// duplicate and is skipped. Ids are left for the ledger to assign.
func Spending(s model.State, lines []Line, category string) Result {
	type key struct{ date, desc, amount string }
	seen := make(map[key]bool, len(s.BudgetTransactions))
	for _, tx := range s.BudgetTransactions {
		seen[key{tx.Date, tx.Description, tx.Amount.StringFixed(2)}] = true
	}

	var res Result
	for _, l := range lines {
		if !l.Amount.IsNegative() {
			res.Credits++
			continue
		}
		amount := l.Amount.Neg()
		k := key{l.Date, l.Description, amount.StringFixed(2)}
		if seen[k] {
			res.Duplicates++
			continue
		}
		seen[k] = true
		res.Transactions = append(res.Transactions, model.BudgetTransaction{
			Date:        l.Date,
			Description: l.Description,
			Category:    category,
			Amount:      amount,
			Month:       l.Date[:7],
		})
	}
	return res
}
