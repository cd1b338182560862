package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DataFile is the file name of the JSON document inside a budget directory.
const DataFile = "budget-data.json"

// FileBackend keeps the document in a single JSON file.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend writing to path. The file and its
// directory are created on first save.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Load reads the file, returning ErrNotFound if it does not exist.
func (b *FileBackend) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", b.path, err)
	}
	return data, nil
}

// Save writes data to a temp file next to the target and renames it into
// place, so readers never see a partial document.
func (b *FileBackend) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	tmpPath := b.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing temp data file: %w", err)
	}
	if err := os.Rename(tmpPath, b.path); err != nil {
		return fmt.Errorf("replacing data file: %w", err)
	}
	return nil
}

// Clear deletes the file.
func (b *FileBackend) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(b.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing data file: %w", err)
	}
	return nil
}

// Location returns the file path.
func (b *FileBackend) Location() string {
	return b.path
}
