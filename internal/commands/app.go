package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/havenly-dev/havenly/internal/activity"
	"github.com/havenly-dev/havenly/internal/config"
	"github.com/havenly-dev/havenly/internal/gitops"
	"github.com/havenly-dev/havenly/internal/id"
	"github.com/havenly-dev/havenly/internal/input"
	"github.com/havenly-dev/havenly/internal/ledger"
	"github.com/havenly-dev/havenly/internal/model"
	"github.com/havenly-dev/havenly/internal/storage"
	"github.com/havenly-dev/havenly/internal/tracker"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	dir   string
	today string
}

func (o *rootOptions) budgetDir() (string, error) {
	dir := o.dir
	if dir == "" {
		var err error
		if dir, err = config.DefaultDir(); err != nil {
			return "", err
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}

func (o *rootOptions) clock() (func() time.Time, error) {
	if o.today == "" {
		return time.Now, nil
	}
	day, err := input.Date("today", o.today)
	if err != nil {
		return nil, err
	}
	t, err := time.ParseInLocation(input.DateLayout, day, time.Local)
	if err != nil {
		return nil, err
	}
	noon := t.Add(12 * time.Hour)
	return func() time.Time { return noon }, nil
}

// app is one CLI invocation's view of a budget directory.
type app struct {
	dir     string
	cfg     *config.Config
	backend storage.Backend
	tracker *tracker.Tracker
	rec     activity.Recorder
	out     io.Writer
}

// open loads the budget directory's config and state.
func (o *rootOptions) open(cmd *cobra.Command) (*app, error) {
	dir, err := o.budgetDir()
	if err != nil {
		return nil, err
	}
	now, err := o.clock()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrDefault(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating budget directory: %w", err)
	}

	backend, err := storage.Open(cfg.Storage.Backend, dir, cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	tr, err := tracker.Open(cmd.Context(), backend, tracker.Options{
		IDs:       id.UUID{},
		Logger:    log.New(cmd.ErrOrStderr(), "havenly: ", 0),
		SaveDelay: cfg.Storage.SaveDelay,
		Now:       now,
	})
	if err != nil {
		storage.Close(backend)
		return nil, err
	}

	a := &app{
		dir:     dir,
		cfg:     cfg,
		backend: backend,
		tracker: tr,
		out:     cmd.OutOrStdout(),
	}
	a.rec.Attach(tr)
	return a, nil
}

// close writes pending changes, appends the activity log when it is enabled
// and then commits everything when auto-commit is on.
func (a *app) close(ctx context.Context) error {
	err := a.tracker.Close(ctx)
	err = errors.Join(err, storage.Close(a.backend))
	if err != nil || a.rec.Len() == 0 {
		return err
	}

	summary := a.rec.Summary()
	commit := a.cfg.Git.AutoCommit && gitops.IsRepo(a.dir)
	if a.cfg.Activity.Enabled {
		var base string
		if commit {
			// Entries name the commit their change was made on top of. A
			// repository without commits leaves the column empty.
			base, _ = gitops.Head(ctx, a.dir)
		}
		if err := a.rec.Flush(a.dir, base); err != nil {
			return err
		}
	}
	if !commit {
		return nil
	}
	author := gitops.Author{Name: a.cfg.Git.AuthorName, Email: a.cfg.Git.AuthorEmail}
	if _, err := gitops.CommitAll(ctx, a.dir, "budget: "+summary, author); err != nil {
		return fmt.Errorf("committing changes: %w", err)
	}
	return nil
}

// apply runs cmds with details recorded in the activity log.
func (a *app) apply(details string, cmds ...ledger.Command) model.State {
	a.rec.Describe(details)
	return a.tracker.Apply(cmds...)
}

func (a *app) now() time.Time {
	return a.tracker.Now()
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

type runFunc func(cmd *cobra.Command, a *app, args []string) error

// run wraps fn so it gets an open app that is closed afterwards.
func (o *rootOptions) run(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := o.open(cmd)
		if err != nil {
			return err
		}
		runErr := fn(cmd, a, args)
		return errors.Join(runErr, a.close(cmd.Context()))
	}
}
