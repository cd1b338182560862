package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/havenly-dev/havenly/internal/model"
	"github.com/havenly-dev/havenly/internal/tracker"
)

// shortIDLen is how much of a generated id listings show. Any unique prefix
// is accepted back on the command line.
const shortIDLen = 8

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// resolve finds the record whose id is arg or uniquely starts with it.
func resolve[T model.Record](items []T, kind, arg string) (T, error) {
	var zero T
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return zero, fmt.Errorf("%s id must not be empty", kind)
	}
	var matches []T
	for _, it := range items {
		if it.RecordID() == arg {
			return it, nil
		}
		if strings.HasPrefix(it.RecordID(), arg) {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return zero, fmt.Errorf("%s %q: %w", kind, arg, tracker.ErrNotFound)
	default:
		return zero, fmt.Errorf("%s %q is ambiguous: %d matches", kind, arg, len(matches))
	}
}

// resolveFund accepts a fund id, id prefix or name.
func resolveFund(a *app, arg string) (model.SavingsFund, error) {
	f, err := a.tracker.Fund(arg)
	if !errors.Is(err, tracker.ErrNotFound) {
		return f, err
	}
	funds := a.tracker.Snapshot().SavingsFunds
	for _, f := range funds {
		if strings.EqualFold(f.Name, arg) || strings.EqualFold(strings.TrimSuffix(f.Name, " Fund"), arg) {
			return f, nil
		}
	}
	return resolve(funds, "fund", arg)
}
