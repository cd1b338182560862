// Package importer turns bank statement CSV exports into budget spending.
package importer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Line is one parsed statement row.
type Line struct {
	Date        string // YYYY-MM-DD
	Description string
	Amount      decimal.Decimal // negative = money out
}

// Parser converts a bank CSV file into statement lines.
type Parser interface {
	Parse(r io.Reader) ([]Line, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file waiting in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists the registered format names in order.
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	r.Register(&SimpleParser{})
	return r
}

// Dir is the subdirectory of a budget directory that statements are dropped
// into. Imported files move to Dir/processed.
const Dir = "import"

const processedDir = "processed"

// Scan returns the CSV statements waiting in <budgetDir>/import/, sorted by
// name. Hidden files and subdirectories are ignored.
func Scan(budgetDir string) ([]FileInfo, error) {
	dir := filepath.Join(budgetDir, Dir)
	entries, err := os.ReadDir(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", name, err)
		}
		files = append(files, FileInfo{Name: name, Path: filepath.Join(dir, name), Size: info.Size()})
	}
	return files, nil
}

// MarkProcessed moves an imported statement to import/processed/. A file of
// the same name already there is kept; the new one gets a numeric suffix.
func MarkProcessed(budgetDir, fileName string) error {
	done := filepath.Join(budgetDir, Dir, processedDir)
	if err := os.MkdirAll(done, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	dst := filepath.Join(done, fileName)
	for n := 1; ; n++ {
		if _, err := os.Stat(dst); errors.Is(err, fs.ErrNotExist) {
			break
		}
		dst = filepath.Join(done, fmt.Sprintf("%s-%d%s", base, n, ext))
	}

	if err := os.Rename(filepath.Join(budgetDir, Dir, fileName), dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// ParseFile reads path with the parser registered for format.
func (r *Registry) ParseFile(format, path string) ([]Line, error) {
	p := r.Get(format)
	if p == nil {
		return nil, fmt.Errorf("unknown statement format %q (have %s)", format, strings.Join(r.Formats(), ", "))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	lines, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return lines, nil
}
