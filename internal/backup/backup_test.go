package backup

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/havenly-dev/havenly/internal/id"
	"github.com/havenly-dev/havenly/internal/ledger"
	"github.com/havenly-dev/havenly/internal/model"
	"github.com/havenly-dev/havenly/internal/storage"
	"github.com/havenly-dev/havenly/internal/tracker"
)

var testNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func openTracker(t *testing.T, dir string) *tracker.Tracker {
	t.Helper()
	tr, err := tracker.Open(context.Background(),
		storage.NewFileBackend(filepath.Join(dir, storage.DataFile)),
		tracker.Options{
			IDs:       id.NewSequence("id-"),
			SaveDelay: time.Hour,
			Now:       func() time.Time { return testNow },
		})
	require.NoError(t, err)
	return tr
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "havenly-backup-2025-05-01.json", FileName(testNow))
	assert.Equal(t, "havenly-2025-05-01.xlsx", WorkbookFileName(testNow))
}

func TestExportNothingStored(t *testing.T) {
	tr := openTracker(t, t.TempDir())
	var buf bytes.Buffer
	assert.ErrorIs(t, Export(context.Background(), tr, &buf), ErrNothingToExport)
	assert.Zero(t, buf.Len())
}

func TestExportIsVerbatim(t *testing.T) {
	dir := t.TempDir()
	stored := []byte("{ \"emergencyFundBalance\": 10,\n\"paychecks\": [] }")
	require.NoError(t, os.WriteFile(filepath.Join(dir, storage.DataFile), stored, 0o644))

	tr := openTracker(t, dir)
	var buf bytes.Buffer
	require.NoError(t, Export(context.Background(), tr, &buf))
	assert.Equal(t, stored, buf.Bytes())
}

func TestExportFlushesPendingChanges(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	tr := openTracker(t, dir)
	tr.Apply(ledger.UpdateEmergencyFundBalance{Balance: decimal.NewFromInt(7000)})

	path, err := ExportFile(ctx, tr, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "havenly-backup-2025-05-01.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	s, err := storage.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "7000", s.EmergencyFundBalance.String())
}

func TestExportFileRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	_, err := ExportFile(context.Background(), openTracker(t, dir), dir)
	assert.ErrorIs(t, err, ErrNothingToExport)

	_, statErr := os.Stat(filepath.Join(dir, FileName(testNow)))
	assert.True(t, os.IsNotExist(statErr))
}

func TestImportRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	tr := openTracker(t, dir)
	tr.Apply(ledger.DeleteSavingsFund{ID: "car"})
	require.NoError(t, tr.Flush(ctx))
	before, err := tr.Backend().Load(ctx)
	require.NoError(t, err)

	for _, data := range []string{"not json", "{\"config\": ", "[1, 2]", `{"paychecks": "nope"}`} {
		_, err := Import(ctx, tr, []byte(data))
		assert.ErrorIs(t, err, ErrInvalidBackup, data)
	}

	after, err := tr.Backend().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, tr.Snapshot().SavingsFunds, 3)
}

func TestImportReplacesBudget(t *testing.T) {
	ctx := context.Background()

	src := openTracker(t, t.TempDir())
	src.Apply(
		ledger.AddFundTransaction{Transaction: model.FundTransaction{
			FundID: "vacation", Amount: decimal.NewFromInt(74), Type: model.FundDeposit, Date: "2025-05-01",
		}},
		ledger.DeleteSavingsFund{ID: "house"},
	)
	var backup bytes.Buffer
	require.NoError(t, Export(ctx, src, &backup))

	dir := t.TempDir()
	path := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(path, backup.Bytes(), 0o644))

	dst := openTracker(t, t.TempDir())
	got, err := ImportFile(ctx, dst, path)
	require.NoError(t, err)
	want, err := storage.Encode(src.Snapshot())
	require.NoError(t, err)
	encoded, err := storage.Encode(got)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(encoded))
	assert.Equal(t, "700", got.SavingsFunds[1].Balance.String())
	assert.Equal(t, got, dst.Snapshot())

	stored, err := dst.Backend().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, backup.Bytes(), stored)
}

func TestImportNullRestoresDefaults(t *testing.T) {
	tr := openTracker(t, t.TempDir())
	tr.Apply(ledger.ClearCreditCard{})

	got, err := Import(context.Background(), tr, []byte("null"))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultState(), got)
}

func TestExportTransactionsCSV(t *testing.T) {
	s := model.DefaultState()
	s.CustomCategories = []model.CustomCategory{{ID: "custom_001", Label: "Pets", Budget: decimal.NewFromInt(50)}}
	s.BudgetTransactions = []model.BudgetTransaction{
		{ID: "1", Date: "2025-05-02", Description: "Kroger, weekly", Category: "groceries", Amount: decimal.RequireFromString("84.1"), Month: "2025-05"},
		{ID: "2", Date: "2025-05-09", Description: "Vet", Category: "custom_001", Amount: decimal.NewFromInt(60), Month: "2025-05"},
		{ID: "3", Date: "2025-04-30", Description: "April rent", Category: "rent", Amount: decimal.NewFromInt(1815), Month: "2025-04"},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportTransactionsCSV(&buf, s, "2025-05"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, TransactionsHeader, lines[0])
	assert.Equal(t, "2025-05-09,2025-05,Vet,custom_001,Pets,60.00", lines[1])
	assert.Equal(t, `2025-05-02,2025-05,"Kroger, weekly",groceries,Groceries,84.10`, lines[2])
}

func TestExportWorkbook(t *testing.T) {
	s := model.DefaultState()
	s.BudgetTransactions = []model.BudgetTransaction{
		{ID: "1", Date: "2025-05-02", Description: "Kroger", Category: "groceries", Amount: decimal.NewFromInt(84), Month: "2025-05"},
	}
	s.WorkExpenses = []model.WorkExpense{
		{ID: "w1", Date: "2025-04-20", Description: "Client lunch", Category: model.ExpenseMeals, Amount: decimal.RequireFromString("42.5"), Status: model.StatusPending},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportWorkbook(&buf, s, testNow))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		SheetDashboard, SheetBudget, SheetTransactions, SheetCreditCard, SheetFunds, SheetWorkExpenses,
	}, f.GetSheetList())

	month, err := f.GetCellValue(SheetDashboard, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2025-05", month)
	net, err := f.GetCellValue(SheetDashboard, "B3")
	require.NoError(t, err)
	assert.Equal(t, "3840", net)

	funds, err := f.GetRows(SheetFunds)
	require.NoError(t, err)
	require.Len(t, funds, 6) // header, four funds, total
	assert.Equal(t, "Emergency Fund", funds[1][0])
	assert.Equal(t, "6733.26", funds[1][1])
	assert.Equal(t, "Total", funds[5][0])

	txs, err := f.GetRows(SheetTransactions)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, []string{"2025-05-02", "Kroger", "Groceries", "84"}, txs[1])

	card, err := f.GetRows(SheetCreditCard)
	require.NoError(t, err)
	assert.Len(t, card, 8) // header, six payments, total

	expenses, err := f.GetRows(SheetWorkExpenses)
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	assert.Equal(t, "Client lunch", expenses[1][1])
	assert.Equal(t, "Pending", expenses[1][5])
}
