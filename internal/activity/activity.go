// Package activity keeps an append-only CSV log of the changes made to a
// budget directory.
package activity

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/havenly-dev/havenly/internal/tracker"
)

// Entry is one row in the activity log.
type Entry struct {
	Timestamp  time.Time
	Command    string
	Details    string
	RecordID   string
	// CommitHash is the budget repository's HEAD when the entry was logged,
	// the commit the change was made on top of. Empty outside git.
	CommitHash string
}

// Header is the CSV header for activity-log.csv.
const Header = "timestamp,command,details,record_id,commit_hash"

// File is the log's path relative to the budget directory.
const File = "logs/activity-log.csv"

const (
	numFields     = 5
	colTimestamp  = 0
	colCommand    = 1
	colDetails    = 2
	colRecordID   = 3
	colCommitHash = 4
)

func marshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colCommand] = e.Command
	row[colDetails] = e.Details
	row[colRecordID] = e.RecordID
	row[colCommitHash] = e.CommitHash
	return row
}

func unmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	return Entry{
		Timestamp:  ts,
		Command:    record[colCommand],
		Details:    record[colDetails],
		RecordID:   record[colRecordID],
		CommitHash: record[colCommitHash],
	}, nil
}

// Append writes entries to <dir>/logs/activity-log.csv, creating the file
// and header if needed.
func Append(dir string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	path := filepath.Join(dir, File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(marshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns every entry in the log, oldest first. A missing log reads
// as empty.
func Read(dir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, File))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()
	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading activity log CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := unmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Recorder collects tracker events until they are written out.
type Recorder struct {
	mu      sync.Mutex
	details string
	entries []Entry
}

// Attach subscribes r to t's applied commands.
func (r *Recorder) Attach(t *tracker.Tracker) {
	t.OnApply(r.Record)
}

// Describe sets the details text attached to subsequently recorded events.
func (r *Recorder) Describe(details string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.details = details
}

// Record queues one event.
func (r *Recorder) Record(ev tracker.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{
		Timestamp: ev.At,
		Command:   ev.Command,
		Details:   r.details,
		RecordID:  ev.TargetID,
	})
}

// Len returns the number of queued entries.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Summary joins the queued command names, for commit messages.
func (r *Recorder) Summary() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.Command)
	}
	return strings.Join(names, ", ")
}

// Flush appends the queued entries to dir's log, stamping each with
// commitHash, and empties the queue. Call it before committing so the log
// lands in the same commit as the change.
func (r *Recorder) Flush(dir, commitHash string) error {
	r.mu.Lock()
	entries := r.entries
	r.entries = nil
	r.mu.Unlock()

	for i := range entries {
		entries[i].CommitHash = commitHash
	}
	return Append(dir, entries)
}
