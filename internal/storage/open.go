package storage

import (
	"fmt"
	"io"
	"path/filepath"
)

// Backend kinds accepted by Open.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
)

// Open returns the backend of the given kind rooted in dir. An empty name
// uses the kind's default file name.
func Open(kind, dir, name string) (Backend, error) {
	switch kind {
	case KindFile, "":
		if name == "" {
			name = DataFile
		}
		return NewFileBackend(filepath.Join(dir, name)), nil
	case KindSQLite:
		if name == "" {
			name = DatabaseFile
		}
		return OpenSQLite(filepath.Join(dir, name))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}

// Close releases backend resources, if it holds any.
func Close(b Backend) error {
	if c, ok := b.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
