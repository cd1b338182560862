package backup

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/havenly-dev/havenly/internal/catalog"
	"github.com/havenly-dev/havenly/internal/metrics"
	"github.com/havenly-dev/havenly/internal/model"
)

// TransactionsHeader is the header row of a transactions CSV.
const TransactionsHeader = "date,month,description,category_id,category,amount"

// ExportTransactionsCSV writes month's budget transactions, newest first.
func ExportTransactionsCSV(w io.Writer, s model.State, month string) error {
	cats := catalog.NewService(s)
	cw := csv.NewWriter(w)

	if err := cw.Write(strings.Split(TransactionsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, tx := range metrics.MonthTransactions(s, month) {
		row := []string{
			tx.Date,
			tx.Month,
			tx.Description,
			tx.Category,
			cats.Label(tx.Category),
			tx.Amount.StringFixed(2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
