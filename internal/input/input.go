// Package input parses user-entered values into model types.
package input

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/havenly-dev/havenly/internal/model"
)

// Layouts of stored dates and month buckets.
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)

// Error describes one rejected value.
type Error struct {
	Field  string
	Value  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func reject(field, value, reason string) *Error {
	return &Error{Field: field, Value: value, Reason: reason}
}

func cleanAmount(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	return strings.ReplaceAll(s, ",", "")
}

// Amount parses a money amount such as "1,234.50" or "$12".
func Amount(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(cleanAmount(s))
	if err != nil {
		return decimal.Zero, reject(field, s, "not a number")
	}
	return d, nil
}

// PositiveAmount parses an amount that must be greater than zero.
func PositiveAmount(field, s string) (decimal.Decimal, error) {
	d, err := Amount(field, s)
	if err != nil {
		return d, err
	}
	if !d.IsPositive() {
		return decimal.Zero, reject(field, s, "must be greater than zero")
	}
	return d, nil
}

// NonNegativeAmount parses an amount that may be zero but not negative.
func NonNegativeAmount(field, s string) (decimal.Decimal, error) {
	d, err := Amount(field, s)
	if err != nil {
		return d, err
	}
	if d.IsNegative() {
		return decimal.Zero, reject(field, s, "must not be negative")
	}
	return d, nil
}

// Date validates a "YYYY-MM-DD" date.
func Date(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", reject(field, s, "expected YYYY-MM-DD")
	}
	return s, nil
}

// OptionalDate is Date but accepts the empty string.
func OptionalDate(field, s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	return Date(field, s)
}

// Month validates a "YYYY-MM" month bucket.
func Month(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(MonthLayout, s); err != nil {
		return "", reject(field, s, "expected YYYY-MM")
	}
	return s, nil
}

// MonthName accepts a month as a full or three-letter name or as 1-12 and
// returns its full English name.
func MonthName(field, s string) (string, error) {
	v := strings.TrimSpace(s)
	if n, err := strconv.Atoi(v); err == nil {
		if n < 1 || n > 12 {
			return "", reject(field, s, "month number must be 1-12")
		}
		return time.Month(n).String(), nil
	}
	for m := time.January; m <= time.December; m++ {
		name := m.String()
		if strings.EqualFold(v, name) || (len(v) == 3 && strings.EqualFold(v, name[:3])) {
			return name, nil
		}
	}
	return "", reject(field, s, "unknown month")
}

// MonthOf returns the "YYYY-MM" bucket containing a "YYYY-MM-DD" date.
func MonthOf(date string) string {
	if len(date) >= len(MonthLayout) {
		return date[:len(MonthLayout)]
	}
	return date
}

// Today formats t as a stored date.
func Today(t time.Time) string {
	return t.Format(DateLayout)
}

// CurrentMonth formats t as a month bucket.
func CurrentMonth(t time.Time) string {
	return t.Format(MonthLayout)
}

// MonthYearLabel formats t as "January 2025", the label emergency fund
// entries are filed under.
func MonthYearLabel(t time.Time) string {
	return t.Format("January 2006")
}

// ExpenseCategory matches a work-expense category case-insensitively.
func ExpenseCategory(s string) (model.ExpenseCategory, error) {
	for _, c := range model.ExpenseCategories {
		if strings.EqualFold(strings.TrimSpace(s), string(c)) {
			return c, nil
		}
	}
	return "", reject("category", s, "expected Meals, Travel, Supplies or Other")
}

// ExpenseStatus matches a reimbursement status case-insensitively.
func ExpenseStatus(s string) (model.ExpenseStatus, error) {
	for _, st := range []model.ExpenseStatus{model.StatusPending, model.StatusSubmitted, model.StatusReimbursed} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", reject("status", s, "expected Pending, Submitted or Reimbursed")
}

// FundTransactionType matches a fund transaction type case-insensitively.
func FundTransactionType(s string) (model.FundTransactionType, error) {
	for _, tt := range []model.FundTransactionType{model.FundDeposit, model.FundWithdrawal, model.FundAdjustment} {
		if strings.EqualFold(strings.TrimSpace(s), string(tt)) {
			return tt, nil
		}
	}
	return "", reject("type", s, "expected deposit, withdrawal or adjustment")
}

// Required rejects a blank value.
func Required(field, s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", reject(field, s, "must not be empty")
	}
	return v, nil
}
