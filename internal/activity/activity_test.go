package activity

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/havenly-dev/havenly/internal/ledger"
	"github.com/havenly-dev/havenly/internal/model"
	"github.com/havenly-dev/havenly/internal/storage"
	"github.com/havenly-dev/havenly/internal/tracker"
)

var testTime = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func testEntry() Entry {
	return Entry{
		Timestamp:  testTime,
		Command:    "add_work_expense",
		Details:    "Client lunch, 42.50",
		RecordID:   "3f1c",
		CommitHash: "abc1234",
	}
}

func TestAppend_NewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	data, err := os.ReadFile(filepath.Join(dir, File))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, Header, lines[0])
	assert.Equal(t, `2025-01-15T10:30:00Z,add_work_expense,"Client lunch, 42.50",3f1c,abc1234`, lines[1])
}

func TestAppend_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, []Entry{testEntry()}))

	e2 := testEntry()
	e2.Command = "reset"
	require.NoError(t, Append(dir, []Entry{e2}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "add_work_expense", entries[0].Command)
	assert.Equal(t, "reset", entries[1].Command)
}

func TestAppend_NothingToWrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Append(dir, nil))
	_, err := os.Stat(filepath.Join(dir, File))
	assert.True(t, os.IsNotExist(err))
}

func TestRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	original := testEntry()
	require.NoError(t, Append(dir, []Entry{original}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	got := entries[0]
	assert.True(t, original.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, original.Command, got.Command)
	assert.Equal(t, original.Details, got.Details)
	assert.Equal(t, original.RecordID, got.RecordID)
	assert.Equal(t, original.CommitHash, got.CommitHash)
}

func TestRead_NotFound(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestRead_BadTimestamp(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "logs"), 0o755))
	content := Header + "\nyesterday,reset,,,\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, File), []byte(content), 0o644))

	_, err := Read(dir)
	assert.ErrorContains(t, err, "row 2")
}

func TestRecorder(t *testing.T) {
	dir := t.TempDir()
	tr, err := tracker.Open(context.Background(),
		storage.NewFileBackend(filepath.Join(dir, storage.DataFile)),
		tracker.Options{Now: func() time.Time { return testTime }})
	require.NoError(t, err)

	var rec Recorder
	rec.Attach(tr)
	rec.Describe("budget tidy-up")
	tr.Apply(
		ledger.DeleteSavingsFund{ID: "car"},
		ledger.UpdateConfig{Patch: model.ConfigPatch{}},
	)
	assert.Equal(t, 2, rec.Len())
	assert.Equal(t, "delete_savings_fund, update_config", rec.Summary())

	require.NoError(t, rec.Flush(dir, "beef123"))
	assert.Equal(t, 0, rec.Len())

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "car", entries[0].RecordID)
	assert.Equal(t, "budget tidy-up", entries[0].Details)
	assert.Equal(t, "beef123", entries[1].CommitHash)
	assert.True(t, testTime.Equal(entries[1].Timestamp))
}
