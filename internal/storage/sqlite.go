package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// DatabaseFile is the file name of the SQLite store inside a budget directory.
const DatabaseFile = "budget.db"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`

// SQLiteBackend keeps the document as one row of a key-value table.
type SQLiteBackend struct {
	db   *sql.DB
	path string
	key  string
}

// OpenSQLite opens or creates the database at dbPath.
func OpenSQLite(dbPath string) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening budget db: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteBackend{db: db, path: dbPath, key: DocumentKey}, nil
}

// Close closes the database.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

// Load returns the stored document, or ErrNotFound.
func (b *SQLiteBackend) Load(ctx context.Context) ([]byte, error) {
	var value string
	err := b.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", b.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", b.key, err)
	}
	return []byte(value), nil
}

// Save upserts the document.
func (b *SQLiteBackend) Save(ctx context.Context, data []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := b.db.ExecContext(ctx, `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		b.key, string(data), now)
	if err != nil {
		return fmt.Errorf("writing %s: %w", b.key, err)
	}
	return nil
}

// Clear deletes the document row.
func (b *SQLiteBackend) Clear(ctx context.Context) error {
	if _, err := b.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", b.key); err != nil {
		return fmt.Errorf("clearing %s: %w", b.key, err)
	}
	return nil
}

// Location returns the database path and key.
func (b *SQLiteBackend) Location() string {
	return b.path + "#" + b.key
}
