package commands_test

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havenly-dev/havenly/internal/activity"
	"github.com/havenly-dev/havenly/internal/model"
)

func TestStatus_Defaults(t *testing.T) {
	dir := initBudget(t)
	out := mustRun(t, dir, "status")

	assert.Contains(t, out, "2025-05")
	assert.Contains(t, out, "$3,840.00")
	assert.Contains(t, out, "$2,407.49")
	assert.Contains(t, out, "$349.17")

	alias := mustRun(t, dir, "dashboard")
	assert.Equal(t, out, alias)
}

func TestStatus_WithoutInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fresh")
	out := mustRun(t, dir, "status")
	assert.Contains(t, out, "$3,840.00")

	// Reading never writes a document.
	_, err := os.Stat(filepath.Join(dir, "budget-data.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestFund_DepositWithdrawKeepsEmergencyMirrored(t *testing.T) {
	dir := initBudget(t)

	out := mustRun(t, dir, "fund", "deposit", "emergency", "100", "--note", "bonus")
	assert.Contains(t, out, "$6,733.26 → $6,833.26")
	mustRun(t, dir, "fund", "withdraw", "Emergency Fund", "$33.26")

	s := stored(t, dir)
	f, ok := s.Fund(model.EmergencyFundID)
	require.True(t, ok)
	assert.Equal(t, "6800", f.Balance.String())
	assert.True(t, f.Balance.Equal(s.EmergencyFundBalance))
	require.Len(t, s.FundTransactions, 2)
	assert.Equal(t, "bonus", s.FundTransactions[0].Note)
	assert.Equal(t, "2025-05-01", s.FundTransactions[0].Date)

	history := mustRun(t, dir, "fund", "history", "emergency")
	assert.Contains(t, history, "withdrawal")
	assert.Contains(t, history, "bonus")
}

func TestFund_AdjustAndSetBalance(t *testing.T) {
	dir := initBudget(t)

	mustRun(t, dir, "fund", "adjust", "vacation", "900")
	mustRun(t, dir, "fund", "set-balance", "emergency", "5000")

	s := stored(t, dir)
	v, _ := s.Fund(model.VacationFundID)
	assert.Equal(t, "900", v.Balance.String())
	assert.Equal(t, "5000", s.EmergencyFundBalance.String())
	assert.Len(t, s.FundTransactions, 1)
}

func TestFund_AddUpdateRemove(t *testing.T) {
	dir := initBudget(t)

	mustRun(t, dir, "fund", "add", "Wedding", "--id", "wedding", "--target", "12000", "--monthly", "200")
	mustRun(t, dir, "fund", "deposit", "wedding", "50")
	mustRun(t, dir, "fund", "update", "wedding", "--active=false")

	s := stored(t, dir)
	f, ok := s.Fund("wedding")
	require.True(t, ok)
	assert.False(t, f.IsActive)
	assert.Equal(t, "50", f.Balance.String())

	mustRun(t, dir, "fund", "rm", "wedding")
	s = stored(t, dir)
	assert.False(t, model.Contains(s.SavingsFunds, "wedding"))
	assert.Empty(t, s.FundTransactions)

	out := mustRun(t, dir, "fund", "rm", "emergency")
	assert.Contains(t, out, "cannot be deleted")
	assert.True(t, model.Contains(stored(t, dir).SavingsFunds, model.EmergencyFundID))
}

func TestFund_Unknown(t *testing.T) {
	dir := initBudget(t)
	out, err := runHavenly(t, dir, "fund", "deposit", "boat", "10")
	require.Error(t, err)
	assert.Contains(t, out, "not found")
}

func TestExpense_Workflow(t *testing.T) {
	dir := initBudget(t)

	mustRun(t, dir, "expense", "add", "42.50", "Client", "lunch", "-c", "meals", "--receipt", "--due", "2025-05-20")
	mustRun(t, dir, "expense", "add", "300", "Hotel", "-c", "Travel", "--expected", "2025-05-10", "--due", "2025-05-20")
	mustRun(t, dir, "expense", "add", "12", "Pens", "-c", "supplies")

	s := stored(t, dir)
	require.Len(t, s.WorkExpenses, 3)
	lunch, hotel, pens := s.WorkExpenses[0], s.WorkExpenses[1], s.WorkExpenses[2]
	assert.Equal(t, "Client lunch", lunch.Description)
	assert.Equal(t, model.ExpenseMeals, lunch.Category)
	assert.Equal(t, model.StatusPending, lunch.Status)
	assert.True(t, lunch.HasReceipt)
	assert.Equal(t, "2025-05-01", lunch.Date)

	mustRun(t, dir, "expense", "move", pens.ID, "1")
	s = stored(t, dir)
	assert.Equal(t, []string{pens.ID, lunch.ID, hotel.ID}, ids(s.WorkExpenses))

	mustRun(t, dir, "expense", "status", hotel.ID[:8], "submitted")
	mustRun(t, dir, "expense", "update", lunch.ID, "--amount", "45", "--description", "Client dinner")
	s = stored(t, dir)
	assert.Equal(t, model.StatusSubmitted, s.WorkExpenses[2].Status)
	assert.Equal(t, "45", s.WorkExpenses[1].Amount.String())
	assert.Equal(t, "Client dinner", s.WorkExpenses[1].Description)
	assert.Equal(t, model.ExpenseMeals, s.WorkExpenses[1].Category)

	float := mustRun(t, dir, "expense", "float")
	assert.Contains(t, float, "$357.00")
	assert.Contains(t, float, "2025-05-20")
	assert.Contains(t, float, "exposed")

	mustRun(t, dir, "expense", "status", pens.ID, "reimbursed")
	list := mustRun(t, dir, "expense", "list")
	assert.NotContains(t, list, "Pens")
	assert.Contains(t, mustRun(t, dir, "expense", "list", "--all"), "Pens")

	mustRun(t, dir, "expense", "rm", pens.ID)
	assert.Len(t, stored(t, dir).WorkExpenses, 2)
}

func TestExpense_InvalidInput(t *testing.T) {
	dir := initBudget(t)

	out, err := runHavenly(t, dir, "expense", "add", "0", "Refund")
	require.Error(t, err)
	assert.Contains(t, out, "invalid amount")

	out, err = runHavenly(t, dir, "expense", "add", "5", "Taxi", "-c", "Rides")
	require.Error(t, err)
	assert.Contains(t, out, "invalid category")

	assert.Empty(t, stored(t, dir).WorkExpenses)
}

func TestUpdate_RejectsNonPositiveAmounts(t *testing.T) {
	dir := initBudget(t)
	mustRun(t, dir, "expense", "add", "12", "Pens")
	mustRun(t, dir, "budget", "add", "30", "Kroger", "-c", "groceries")
	mustRun(t, dir, "paycheck", "add", "--net", "1920")
	s := stored(t, dir)
	expense, tx, paycheck := s.WorkExpenses[0], s.BudgetTransactions[0], s.Paychecks[0]

	for _, args := range [][]string{
		{"expense", "update", expense.ID, "--amount", "0"},
		{"expense", "update", expense.ID, "--amount=-5"},
		{"budget", "edit", tx.ID, "--amount", "0"},
		{"paycheck", "update", paycheck.ID, "--net", "0"},
		{"fund", "update", "vacation", "--target=-1"},
		{"card", "set", "--monthly=-10"},
	} {
		out, err := runHavenly(t, dir, args...)
		require.Error(t, err, args)
		assert.Contains(t, out, "invalid", args)
	}

	s = stored(t, dir)
	assert.Equal(t, "12", s.WorkExpenses[0].Amount.String())
	assert.Equal(t, "30", s.BudgetTransactions[0].Amount.String())
	assert.Equal(t, "1920", s.Paychecks[0].Net.String())
	vacation, _ := s.Fund("vacation")
	assert.Equal(t, "5000", vacation.Target.String())
	assert.Equal(t, "158.04", s.CreditCard.MonthlyPayment.String())

	mustRun(t, dir, "paycheck", "update", paycheck.ID, "--roth", "0")
	assert.True(t, stored(t, dir).Paychecks[0].RothIRA.IsZero(), "zero is allowed for deductions")
}

func TestBudget_AddOverrideShow(t *testing.T) {
	dir := initBudget(t)

	mustRun(t, dir, "budget", "add", "84.10", "Kroger", "-c", "groceries")
	mustRun(t, dir, "budget", "add", "1815.50", "May rent", "-c", "Rent", "--date", "2025-04-30", "--month", "2025-05")
	mustRun(t, dir, "budget", "add", "20", "April snack", "--date", "2025-04-12")

	out := mustRun(t, dir, "budget", "show")
	assert.Contains(t, out, "Budget 2025-05")
	assert.Contains(t, out, "Kroger")
	assert.Contains(t, out, "May rent")
	assert.NotContains(t, out, "April snack")
	assert.Contains(t, out, "$1,899.60")

	mustRun(t, dir, "budget", "override", "3000")
	mustRun(t, dir, "budget", "override", "150", "-c", "groceries")
	s := stored(t, dir)
	require.Len(t, s.MonthlyBudgetOverrides, 1)
	o := s.MonthlyBudgetOverrides[0]
	assert.Equal(t, "3000", o.TotalBudget.String())
	assert.Equal(t, "150", o.CategoryOverrides["groceries"].String())

	out = mustRun(t, dir, "budget", "show", "2025-05")
	assert.Contains(t, out, "overridden")
	assert.Contains(t, out, "Groceries *")

	mustRun(t, dir, "budget", "reset-override")
	assert.Empty(t, stored(t, dir).MonthlyBudgetOverrides)

	april := mustRun(t, dir, "budget", "show", "2025-04")
	assert.Contains(t, april, "April snack")

	tx := stored(t, dir).BudgetTransactions[0]
	mustRun(t, dir, "budget", "edit", tx.ID, "--amount", "90")
	mustRun(t, dir, "budget", "rm", stored(t, dir).BudgetTransactions[2].ID)
	s = stored(t, dir)
	require.Len(t, s.BudgetTransactions, 2)
	assert.Equal(t, "90", s.BudgetTransactions[0].Amount.String())
}

func TestBudget_CustomCategories(t *testing.T) {
	dir := initBudget(t)

	out := mustRun(t, dir, "budget", "category", "add", "Pets", "75", "--color", "teal")
	assert.Contains(t, out, "custom_")

	s := stored(t, dir)
	require.Len(t, s.CustomCategories, 1)
	pets := s.CustomCategories[0]
	assert.True(t, strings.HasPrefix(pets.ID, "custom_"))
	assert.Equal(t, model.CategoryColor("teal"), pets.Color)

	mustRun(t, dir, "budget", "add", "60", "Vet", "-c", "pets")
	mustRun(t, dir, "budget", "category", "update", pets.ID, "--budget", "90")
	assert.Equal(t, "90", stored(t, dir).CustomCategories[0].Budget.String())
	assert.Contains(t, mustRun(t, dir, "budget", "category", "list"), "Pets")

	mustRun(t, dir, "budget", "category", "rm", pets.ID)
	s = stored(t, dir)
	assert.Empty(t, s.CustomCategories)
	require.Len(t, s.BudgetTransactions, 1)
	assert.Equal(t, pets.ID, s.BudgetTransactions[0].Category)
}

func TestBudget_ImportBank(t *testing.T) {
	dir := initBudget(t)
	statement := "Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n" +
		"DEBIT,05/02/2025,KROGER #412,-84.10,DEBIT_CARD,2415.90,\n" +
		"CREDIT,05/09/2025,ACME PAYROLL,1920.00,ACH_CREDIT,4335.90,\n"
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "import"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "may.csv"), []byte(statement), 0o644))

	out := mustRun(t, dir, "budget", "import-bank", "-c", "groceries")
	assert.Contains(t, out, "Imported 1 transactions into Groceries")
	assert.FileExists(t, filepath.Join(dir, "import", "processed", "may.csv"))

	s := stored(t, dir)
	require.Len(t, s.BudgetTransactions, 1)
	assert.Equal(t, "KROGER #412", s.BudgetTransactions[0].Description)
	assert.Equal(t, "groceries", s.BudgetTransactions[0].Category)

	again := mustRun(t, dir, "budget", "import-bank", filepath.Join(dir, "import", "processed", "may.csv"))
	assert.Contains(t, again, "1 duplicates")
	assert.Len(t, stored(t, dir).BudgetTransactions, 1)
}

func TestCard_PayAndSchedule(t *testing.T) {
	dir := initBudget(t)

	mustRun(t, dir, "card", "pay", "1")
	s := stored(t, dir)
	assert.True(t, s.CreditCard.Payments[0].Paid)
	assert.Equal(t, "2025-05-01", s.CreditCard.Payments[0].DatePaid)

	mustRun(t, dir, "card", "unpay", "1")
	s = stored(t, dir)
	assert.False(t, s.CreditCard.Payments[0].Paid)
	assert.Empty(t, s.CreditCard.Payments[0].DatePaid)

	out := mustRun(t, dir, "card", "add-payment", "50")
	assert.Contains(t, out, "Scheduled payment 7")
	mustRun(t, dir, "card", "rm-payment", "7")
	mustRun(t, dir, "card", "set", "--monthly", "200")
	s = stored(t, dir)
	assert.Len(t, s.CreditCard.Payments, 6)
	assert.Equal(t, "200", s.CreditCard.MonthlyPayment.String())

	for i := 1; i <= 6; i++ {
		mustRun(t, dir, "card", "pay", strconv.Itoa(i))
	}
	assert.Contains(t, mustRun(t, dir, "card", "show"), "Paid off")

	mustRun(t, dir, "card", "clear")
	assert.Empty(t, stored(t, dir).CreditCard.Payments)
}

func TestRothAndEmergency(t *testing.T) {
	dir := initBudget(t)

	mustRun(t, dir, "roth", "add", "583.33", "--month", "jan")
	mustRun(t, dir, "roth", "add", "100")
	s := stored(t, dir)
	require.Len(t, s.RothIRAContributions, 2)
	assert.Equal(t, "January", s.RothIRAContributions[0].Month)
	assert.Equal(t, "May", s.RothIRAContributions[1].Month)

	mustRun(t, dir, "roth", "update", s.RothIRAContributions[1].ID, "--amount", "150")
	out := mustRun(t, dir, "roth", "show")
	assert.Contains(t, out, "$733.33")
	mustRun(t, dir, "roth", "rm", s.RothIRAContributions[0].ID)
	assert.Len(t, stored(t, dir).RothIRAContributions, 1)

	out = mustRun(t, dir, "emergency", "add", "266.74")
	assert.Contains(t, out, "$7,000.00")
	s = stored(t, dir)
	require.Len(t, s.EmergencyFundEntries, 1)
	assert.Equal(t, "May 2025", s.EmergencyFundEntries[0].Month)
	f, _ := s.Fund(model.EmergencyFundID)
	assert.Equal(t, "7000", f.Balance.String())

	mustRun(t, dir, "emergency", "rm", s.EmergencyFundEntries[0].ID)
	assert.Equal(t, "7000", stored(t, dir).EmergencyFundBalance.String())

	mustRun(t, dir, "emergency", "set", "10000")
	out = mustRun(t, dir, "emergency", "show")
	assert.Contains(t, out, "4 Months Expenses")
	assert.Contains(t, out, "$5,000.00")
}

func TestPaycheck(t *testing.T) {
	dir := initBudget(t)

	mustRun(t, dir, "paycheck", "add", "--gross", "2916.67", "--net", "1920", "--hours", "80", "--roth", "250")
	out, err := runHavenly(t, dir, "paycheck", "add", "--gross", "100")
	require.Error(t, err, out)

	s := stored(t, dir)
	require.Len(t, s.Paychecks, 1)
	p := s.Paychecks[0]
	assert.Equal(t, "2025-05-01", p.PayDate)
	assert.Equal(t, "250", p.RothIRA.String())
	assert.True(t, p.Brokerage.IsZero())

	mustRun(t, dir, "paycheck", "update", p.ID, "--notes", "first", "--net", "1925")
	list := mustRun(t, dir, "paycheck", "list")
	assert.Contains(t, list, "$1,925.00")
	assert.Contains(t, list, "first")

	mustRun(t, dir, "paycheck", "rm", p.ID)
	assert.Empty(t, stored(t, dir).Paychecks)
}

func TestSettings_SetSyncsFunds(t *testing.T) {
	dir := initBudget(t)

	mustRun(t, dir, "settings", "set", "emergency-monthly", "500", "brokerage-monthly", "250", "card-payment", "100", "rent", "1900")

	s := stored(t, dir)
	assert.Equal(t, "1900", s.Config.Rent.String())
	assert.Equal(t, "100", s.CreditCard.MonthlyPayment.String())
	e, _ := s.Fund(model.EmergencyFundID)
	v, _ := s.Fund(model.VacationFundID)
	assert.Equal(t, "500", e.MonthlyContribution.String())
	assert.Equal(t, "250", v.MonthlyContribution.String())

	out := mustRun(t, dir, "settings", "show")
	assert.Contains(t, out, "$1,900.00")

	out, err := runHavenly(t, dir, "settings", "set", "yacht", "1")
	require.Error(t, err)
	assert.Contains(t, out, "invalid setting")

	_, err = runHavenly(t, dir, "settings", "set", "rent")
	require.Error(t, err)
}

func TestExportImportReset(t *testing.T) {
	dir := initBudget(t)
	mustRun(t, dir, "fund", "deposit", "vacation", "74")
	before, err := os.ReadFile(filepath.Join(dir, "budget-data.json"))
	require.NoError(t, err)

	backupPath := filepath.Join(t.TempDir(), "backup.json")
	mustRun(t, dir, "export", "-o", backupPath)
	exported, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Equal(t, before, exported)

	mustRun(t, dir, "reset", "--yes")
	_, err = os.Stat(filepath.Join(dir, "budget-data.json"))
	assert.True(t, os.IsNotExist(err))

	mustRun(t, dir, "import", backupPath)
	after, err := os.ReadFile(filepath.Join(dir, "budget-data.json"))
	require.NoError(t, err)
	assert.Equal(t, before, after)

	_, err = runHavenly(t, dir, "reset")
	require.Error(t, err)
	assert.FileExists(t, filepath.Join(dir, "budget-data.json"))
}

func TestImport_Invalid(t *testing.T) {
	dir := initBudget(t)
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json at all"), 0o644))

	out, err := runHavenly(t, dir, "import", bad)
	require.Error(t, err)
	assert.Contains(t, out, "invalid backup file")
	assert.Len(t, stored(t, dir).SavingsFunds, 4)
}

func TestExport_WorkbookAndCSV(t *testing.T) {
	dir := initBudget(t)
	mustRun(t, dir, "budget", "add", "84.10", "Kroger", "-c", "groceries")
	out := t.TempDir()

	mustRun(t, dir, "export", "-f", "xlsx", "-o", filepath.Join(out, "budget.xlsx"))
	info, err := os.Stat(filepath.Join(out, "budget.xlsx"))
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	csv := mustRun(t, dir, "export", "-f", "csv", "-o", "-")
	assert.Contains(t, csv, "2025-05-01,2025-05,Kroger,groceries,Groceries,84.10")

	_, err = runHavenly(t, dir, "export", "-f", "pdf")
	require.Error(t, err)
}

func TestActivityLog(t *testing.T) {
	dir := initBudget(t)
	mustRun(t, dir, "expense", "add", "12", "Pens")
	mustRun(t, dir, "fund", "deposit", "vacation", "10")
	mustRun(t, dir, "status")

	entries, err := activity.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "add_work_expense", entries[0].Command)
	assert.Equal(t, "Pens", entries[0].Details)
	assert.Equal(t, "add_fund_transaction", entries[1].Command)

	out := mustRun(t, dir, "log")
	assert.Contains(t, out, "add_fund_transaction")
}

func TestAutoCommit(t *testing.T) {
	requireGit(t)
	dir := initBudget(t, "--git")

	initHash := strings.TrimSpace(gitLog(t, dir, "%h"))

	mustRun(t, dir, "fund", "deposit", "vacation", "10")
	assert.Contains(t, gitLog(t, dir, "%s"), "budget: add_fund_transaction")
	assert.Empty(t, gitStatus(t, dir), "the activity log is committed with the change")

	entries, err := activity.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, initHash, entries[0].CommitHash)

	depositHash := strings.TrimSpace(gitLog(t, dir, "%h"))
	mustRun(t, dir, "fund", "deposit", "vacation", "5")
	assert.Empty(t, gitStatus(t, dir))
	entries, err = activity.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, depositHash, entries[1].CommitHash)

	mustRun(t, dir, "status")
	assert.Contains(t, gitLog(t, dir, "%s"), "budget: add_fund_transaction")
}

func ids[T model.Record](items []T) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.RecordID())
	}
	return out
}
