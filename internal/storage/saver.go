package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/havenly-dev/havenly/internal/model"
)

// DefaultSaveDelay is how long the Saver waits for further changes before
// writing.
const DefaultSaveDelay = 500 * time.Millisecond

// Saver writes snapshots to a Backend, coalescing bursts of changes into a
// single write. Write failures are logged and do not affect the in-memory
// state.
type Saver struct {
	backend Backend
	delay   time.Duration
	logger  *log.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *model.State

	// writeMu serializes every backend write and clear.
	writeMu sync.Mutex
	written func([]byte)
}

// NewSaver returns a Saver. A non-positive delay uses DefaultSaveDelay; a
// nil logger discards messages.
func NewSaver(backend Backend, delay time.Duration, logger *log.Logger) *Saver {
	if delay <= 0 {
		delay = DefaultSaveDelay
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Saver{backend: backend, delay: delay, logger: logger}
}

// OnWrite registers fn to be called with each successfully written document.
func (s *Saver) OnWrite(fn func([]byte)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written = fn
}

// Schedule queues st to be written once no newer snapshot has been
// scheduled for the save delay.
func (s *Saver) Schedule(st model.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &st
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() {
		if err := s.Flush(context.Background()); err != nil {
			s.logger.Printf("saving budget to %s: %v", s.backend.Location(), err)
		}
	})
}

// Flush writes the pending snapshot now, if there is one.
func (s *Saver) Flush(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	st := s.pending
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	written := s.written
	s.mu.Unlock()

	if st == nil {
		return nil
	}
	data, err := Encode(*st)
	if err != nil {
		return err
	}
	if err := s.backend.Save(ctx, data); err != nil {
		return fmt.Errorf("saving budget: %w", err)
	}
	if written != nil {
		written(data)
	}
	return nil
}

// Discard drops any pending snapshot without writing it. A write already
// under way finishes first.
func (s *Saver) Discard() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.drop()
}

// Clear drops any pending snapshot and removes the stored document.
func (s *Saver) Clear(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.drop()
	return s.backend.Clear(ctx)
}

// Replace drops any pending snapshot and stores data as the document.
func (s *Saver) Replace(ctx context.Context, data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	written := s.drop()
	if err := s.backend.Save(ctx, data); err != nil {
		return fmt.Errorf("saving budget: %w", err)
	}
	if written != nil {
		written(data)
	}
	return nil
}

// drop forgets the pending snapshot and stops its timer. The caller holds
// writeMu.
func (s *Saver) drop() func([]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	return s.written
}
