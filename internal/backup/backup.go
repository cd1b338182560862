// Package backup moves a budget in and out of the tracker: verbatim JSON
// backups, a spreadsheet workbook and per-month transaction CSVs.
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/havenly-dev/havenly/internal/model"
	"github.com/havenly-dev/havenly/internal/storage"
	"github.com/havenly-dev/havenly/internal/tracker"
)

var (
	// ErrInvalidBackup is returned by Import for data that is not a budget
	// document. Nothing is stored when it is returned.
	ErrInvalidBackup = errors.New("invalid backup file")

	// ErrNothingToExport is returned by Export when no budget has been saved.
	ErrNothingToExport = errors.New("no data to export")
)

// FileName returns the backup file name for the day of t.
func FileName(t time.Time) string {
	return fmt.Sprintf("havenly-backup-%s.json", t.Format("2006-01-02"))
}

// Export writes the stored document to w exactly as it is stored. Pending
// changes are flushed first.
func Export(ctx context.Context, t *tracker.Tracker, w io.Writer) error {
	if err := t.Flush(ctx); err != nil {
		return fmt.Errorf("flushing before export: %w", err)
	}
	data, err := t.Backend().Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNothingToExport
	}
	if err != nil {
		return fmt.Errorf("reading budget: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}
	return nil
}

// ExportFile writes a dated backup into dir and returns its path.
func ExportFile(ctx context.Context, t *tracker.Tracker, dir string) (string, error) {
	path := filepath.Join(dir, FileName(t.Now()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating backup: %w", err)
	}
	if err := Export(ctx, t, f); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing backup: %w", err)
	}
	return path, nil
}

// Import replaces the stored document with data and reloads the tracker
// from it. Unsaved changes in the tracker are dropped.
func Import(ctx context.Context, t *tracker.Tracker, data []byte) (model.State, error) {
	if !json.Valid(data) {
		return model.State{}, ErrInvalidBackup
	}
	if _, err := storage.Decode(data); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return model.State{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	s, err := t.Replace(ctx, data)
	if err != nil {
		return model.State{}, fmt.Errorf("storing backup: %w", err)
	}
	return s, nil
}

// ImportFile imports the backup at path.
func ImportFile(ctx context.Context, t *tracker.Tracker, path string) (model.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.State{}, fmt.Errorf("reading backup: %w", err)
	}
	return Import(ctx, t, data)
}
