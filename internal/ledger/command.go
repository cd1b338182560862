// Package ledger implements every state mutation as a command value. Applying
// a command never edits the input snapshot in place and never fails: lookups
// by unknown id leave the state unchanged.
package ledger

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/havenly-dev/havenly/internal/id"
	"github.com/havenly-dev/havenly/internal/model"
)

// Command is one mutation of the budget state.
type Command interface {
	// Name identifies the command kind in logs.
	Name() string
	// Apply returns the state after the command. ids supplies fresh ids for
	// created records.
	Apply(s model.State, ids id.Generator) model.State
}

// Target is implemented by commands that address one record, so callers can
// log what they touched.
type Target interface {
	TargetID() string
}

// Apply runs cmds in order against s.
func Apply(s model.State, ids id.Generator, cmds ...Command) model.State {
	for _, cmd := range cmds {
		s = cmd.Apply(s, ids)
	}
	return s
}

// newID returns an id unused in items.
func newID[T model.Record](ids id.Generator, prefix string, items []T) string {
	return id.Unused(ids, prefix, func(candidate string) bool {
		return model.Contains(items, candidate)
	})
}

// appendRecord returns a new slice with rec appended.
func appendRecord[T any](items []T, rec T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, rec)
}

// updateRecord returns a copy of items with fn applied to the record with the
// given id. ok is false when no record matched; items is then returned as is.
func updateRecord[T model.Record](items []T, recID string, fn func(T) T) ([]T, bool) {
	i := slices.IndexFunc(items, func(it T) bool { return it.RecordID() == recID })
	if i < 0 {
		return items, false
	}
	out := slices.Clone(items)
	out[i] = fn(out[i])
	return out, true
}

// deleteRecord returns a copy of items without the record with the given id.
func deleteRecord[T model.Record](items []T, recID string) ([]T, bool) {
	if !model.Contains(items, recID) {
		return items, false
	}
	out := make([]T, 0, len(items)-1)
	for _, it := range items {
		if it.RecordID() != recID {
			out = append(out, it)
		}
	}
	return out, true
}

// setFundBalance sets a fund's balance and, for the emergency fund, the
// mirrored top-level balance in the same step.
func setFundBalance(s model.State, fundID string, balance decimal.Decimal) model.State {
	funds, ok := updateRecord(s.SavingsFunds, fundID, func(f model.SavingsFund) model.SavingsFund {
		f.Balance = balance
		return f
	})
	if !ok {
		return s
	}
	s.SavingsFunds = funds
	if fundID == model.EmergencyFundID {
		s.EmergencyFundBalance = balance
	}
	return s
}
