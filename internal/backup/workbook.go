package backup

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/havenly-dev/havenly/internal/catalog"
	"github.com/havenly-dev/havenly/internal/metrics"
	"github.com/havenly-dev/havenly/internal/model"
)

// Sheet names of an exported workbook, in order.
const (
	SheetDashboard    = "Dashboard"
	SheetBudget       = "Budget"
	SheetTransactions = "Transactions"
	SheetCreditCard   = "Credit Card"
	SheetFunds        = "Funds"
	SheetWorkExpenses = "Work Expenses"
)

// WorkbookFileName returns the workbook file name for the day of t.
func WorkbookFileName(t time.Time) string {
	return fmt.Sprintf("havenly-%s.xlsx", t.Format("2006-01-02"))
}

// sheetWriter appends rows to one worksheet.
type sheetWriter struct {
	f    *excelize.File
	name string
	row  int
	err  error
}

func (w *sheetWriter) add(values ...any) {
	if w.err != nil {
		return
	}
	w.row++
	for i, v := range values {
		if d, ok := v.(decimal.Decimal); ok {
			values[i] = d.Round(2).InexactFloat64()
		}
	}
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(w.name, cell, &values); err != nil {
		w.err = fmt.Errorf("sheet %s row %d: %w", w.name, w.row, err)
	}
}

func (w *sheetWriter) widths(widths ...float64) {
	for i, width := range widths {
		if w.err != nil {
			return
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			w.err = err
			return
		}
		w.err = w.f.SetColWidth(w.name, col, col, width)
	}
}

// ExportWorkbook writes a spreadsheet of the budget as of now: the
// dashboard, the current month's budget and transactions, the card payoff
// plan, savings funds and work expenses.
func ExportWorkbook(w io.Writer, s model.State, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	names := []string{SheetDashboard, SheetBudget, SheetTransactions, SheetCreditCard, SheetFunds, SheetWorkExpenses}
	if err := f.SetSheetName("Sheet1", names[0]); err != nil {
		return fmt.Errorf("creating workbook: %w", err)
	}
	for _, name := range names[1:] {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	dash := metrics.Dashboard(s, now)
	writers := []func(*sheetWriter){
		func(sw *sheetWriter) { writeDashboard(sw, dash) },
		func(sw *sheetWriter) { writeBudget(sw, dash.Budget) },
		func(sw *sheetWriter) { writeTransactions(sw, s, dash.Budget) },
		func(sw *sheetWriter) { writeCreditCard(sw, metrics.CreditCardProgress(s)) },
		func(sw *sheetWriter) { writeFunds(sw, metrics.FundsOverview(s)) },
		func(sw *sheetWriter) { writeWorkExpenses(sw, s) },
	}
	for i, write := range writers {
		sw := &sheetWriter{f: f, name: names[i]}
		write(sw)
		if sw.err != nil {
			return fmt.Errorf("writing workbook: %w", sw.err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeDashboard(sw *sheetWriter, d metrics.DashboardSummary) {
	sw.add("Metric", "Value")
	sw.add("Month", d.CurrentMonth)
	sw.add("Monthly Net", d.MonthlyNet)
	sw.add("Fixed Expenses", d.FixedExpenses)
	sw.add("Remaining After Fixed", d.RemainingAfterFixed)
	sw.add("Savings Allocation", d.SavingsAllocation)
	sw.add("Buffer", d.Buffer)
	sw.add("Retirement Savings Rate %", d.Rates.RetirementRate)
	sw.add("Total Savings Rate %", d.Rates.TotalSavingsRate)
	sw.add("Roth IRA Total", d.RothIRATotal)
	sw.add("Roth IRA Limit", d.RothIRALimit)
	sw.add("Emergency Fund", d.EmergencyFund.Balance)
	sw.add("Emergency Fund Target", d.EmergencyFund.Target)
	sw.add("Credit Card Remaining", d.CreditCard.RemainingAmount)
	sw.add("Pending Work Expenses", d.PendingExpenses)
	sw.add("Total Savings Balance", d.TotalSavingsBalance)
	sw.widths(28, 16)
}

func writeBudget(sw *sheetWriter, m metrics.MonthSummary) {
	sw.add("Category", "Budget", "Spent", "Remaining", "Percent", "Overridden")
	for _, row := range m.Categories {
		sw.add(row.Category.Label, row.Budget, row.Spent, row.Remaining, row.Percent, row.Overridden)
	}
	sw.add("Total", m.TotalBudget, m.TotalSpent, m.Remaining)
	sw.widths(22, 12, 12, 12, 10, 12)
}

func writeTransactions(sw *sheetWriter, s model.State, m metrics.MonthSummary) {
	cats := catalog.NewService(s)
	sw.add("Date", "Description", "Category", "Amount")
	for _, tx := range m.Transactions {
		sw.add(tx.Date, tx.Description, cats.Label(tx.Category), tx.Amount)
	}
	sw.widths(12, 30, 18, 12)
}

func writeCreditCard(sw *sheetWriter, c metrics.CreditCardSummary) {
	sw.add("Month", "Amount", "Paid", "Date Paid", "Balance")
	for _, row := range c.Rows {
		p := row.Payment
		sw.add(p.Month, p.Amount, p.Paid, p.DatePaid, row.Balance)
	}
	sw.add("Total", c.TotalAmount, c.IsPaidOff, "", c.RemainingAmount)
	sw.widths(10, 12, 8, 12, 12)
}

func writeFunds(sw *sheetWriter, fs metrics.FundsSummary) {
	sw.add("Fund", "Balance", "Target", "Monthly", "Percent", "Active")
	for _, group := range [][]metrics.FundProgress{fs.Active, fs.Inactive} {
		for _, fp := range group {
			f := fp.Fund
			sw.add(f.Name, f.Balance, f.Target, f.MonthlyContribution, fp.Percent, f.IsActive)
		}
	}
	sw.add("Total", fs.TotalBalance, "", fs.TotalMonthly)
	sw.widths(22, 12, 12, 12, 10, 8)
}

func writeWorkExpenses(sw *sheetWriter, s model.State) {
	sw.add("Date", "Description", "Category", "Amount", "Receipt", "Status", "Expected Back", "Due")
	for _, e := range s.WorkExpenses {
		sw.add(e.Date, e.Description, string(e.Category), e.Amount, e.HasReceipt, string(e.Status),
			e.ExpectedReimbursementDate, e.DueDate)
	}
	sw.widths(12, 30, 10, 12, 8, 12, 14, 12)
}
