// Package tracker owns the live budget snapshot. It applies ledger commands,
// hands out copies for reading, and schedules persistence of every change.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/havenly-dev/havenly/internal/id"
	"github.com/havenly-dev/havenly/internal/ledger"
	"github.com/havenly-dev/havenly/internal/model"
	"github.com/havenly-dev/havenly/internal/storage"
)

// ErrNotFound is returned by lookups for an id that does not exist.
var ErrNotFound = errors.New("not found")

// Event describes one applied command.
type Event struct {
	Command  string
	TargetID string
	At       time.Time
}

// Options configures a Tracker. Zero values select defaults.
type Options struct {
	IDs       id.Generator
	Logger    *log.Logger
	SaveDelay time.Duration
	Now       func() time.Time
}

// Tracker is the single owner of the budget state for a process.
type Tracker struct {
	mu    sync.RWMutex
	state model.State

	backend storage.Backend
	saver   *storage.Saver
	ids     id.Generator
	logger  *log.Logger
	now     func() time.Time

	hookMu sync.Mutex
	hooks  []func(Event)
}

// Open loads the stored budget and returns a tracker holding it. Nothing
// can be applied before the load has finished. A missing document starts
// from the defaults; an unreadable one is logged and also starts from the
// defaults. The only error is a done ctx.
func Open(ctx context.Context, backend storage.Backend, opts Options) (*Tracker, error) {
	if opts.IDs == nil {
		opts.IDs = id.UUID{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr, "havenly: ", 0)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	t := &Tracker{
		backend: backend,
		saver:   storage.NewSaver(backend, opts.SaveDelay, opts.Logger),
		ids:     opts.IDs,
		logger:  opts.Logger,
		now:     opts.Now,
	}
	s, err := t.load(ctx)
	if err != nil {
		return nil, err
	}
	t.state = s
	return t, nil
}

func (t *Tracker) load(ctx context.Context) (model.State, error) {
	data, err := t.backend.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return model.DefaultState(), nil
	case err != nil:
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.State{}, ctxErr
		}
		t.logger.Printf("loading budget from %s: %v; starting from defaults", t.backend.Location(), err)
		return model.DefaultState(), nil
	}

	s, err := storage.Decode(data)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return model.DefaultState(), nil
	case err != nil:
		t.logger.Printf("reading budget from %s: %v; starting from defaults", t.backend.Location(), err)
		return model.DefaultState(), nil
	}
	return s, nil
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() model.State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.Clone()
}

// Now returns the tracker's clock reading.
func (t *Tracker) Now() time.Time {
	return t.now()
}

// Apply runs cmds in order as one change, schedules a save and returns the
// new state.
func (t *Tracker) Apply(cmds ...ledger.Command) model.State {
	t.mu.Lock()
	next := ledger.Apply(t.state, t.ids, cmds...)
	t.state = next
	t.saver.Schedule(next)
	t.mu.Unlock()

	at := t.now()
	for _, cmd := range cmds {
		ev := Event{Command: cmd.Name(), At: at}
		if target, ok := cmd.(ledger.Target); ok {
			ev.TargetID = target.TargetID()
		}
		t.emit(ev)
	}
	return next.Clone()
}

// Reset restores the default budget and clears the stored document once
// any save already under way has finished. A failed clear is logged; the
// in-memory reset still happens.
func (t *Tracker) Reset(ctx context.Context) model.State {
	t.mu.Lock()
	if err := t.saver.Clear(ctx); err != nil {
		t.logger.Printf("clearing %s: %v", t.backend.Location(), err)
	}
	t.state = ledger.Reset{}.Apply(t.state, t.ids)
	next := t.state
	t.mu.Unlock()

	t.emit(Event{Command: ledger.Reset{}.Name(), At: t.now()})
	return next.Clone()
}

// Reload replaces the in-memory state with the stored document, dropping
// any unsaved change.
func (t *Tracker) Reload(ctx context.Context) (model.State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.saver.Discard()
	return t.reload(ctx)
}

// Replace stores data as the budget document, dropping any unsaved change,
// and reloads the state from it.
func (t *Tracker) Replace(ctx context.Context, data []byte) (model.State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.saver.Replace(ctx, data); err != nil {
		return model.State{}, err
	}
	return t.reload(ctx)
}

// reload reads the stored document into t.state. The caller holds t.mu.
func (t *Tracker) reload(ctx context.Context) (model.State, error) {
	data, err := t.backend.Load(ctx)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return model.State{}, fmt.Errorf("reloading budget: %w", err)
	}
	s := model.DefaultState()
	if err == nil {
		decoded, err := storage.Decode(data)
		switch {
		case err == nil:
			s = decoded
		case !errors.Is(err, storage.ErrNotFound):
			return model.State{}, fmt.Errorf("reloading budget: %w", err)
		}
	}
	t.state = s
	return s.Clone(), nil
}

// Flush writes any pending change immediately.
func (t *Tracker) Flush(ctx context.Context) error {
	return t.saver.Flush(ctx)
}

// Close flushes pending changes.
func (t *Tracker) Close(ctx context.Context) error {
	return t.Flush(ctx)
}

// OnApply registers fn to run after every applied command.
func (t *Tracker) OnApply(fn func(Event)) {
	t.hookMu.Lock()
	defer t.hookMu.Unlock()
	t.hooks = append(t.hooks, fn)
}

// OnSave registers fn to run after each successful write of the document.
func (t *Tracker) OnSave(fn func([]byte)) {
	t.saver.OnWrite(fn)
}

func (t *Tracker) emit(ev Event) {
	t.hookMu.Lock()
	hooks := append([]func(Event){}, t.hooks...)
	t.hookMu.Unlock()
	for _, fn := range hooks {
		fn(ev)
	}
}

// Backend returns the persistence backend.
func (t *Tracker) Backend() storage.Backend {
	return t.backend
}
