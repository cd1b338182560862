package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/havenly-dev/havenly/internal/activity"
	"github.com/havenly-dev/havenly/internal/config"
	"github.com/havenly-dev/havenly/internal/gitops"
	"github.com/havenly-dev/havenly/internal/model"
	"github.com/havenly-dev/havenly/internal/storage"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	var name, backend string
	var git bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new budget directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.dir = args[0]
			}
			dir, err := opts.budgetDir()
			if err != nil {
				return err
			}

			cfg := config.Default(name)
			cfg.Storage.Backend = backend
			cfg.Git.AutoCommit = git
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runInit(cmd, dir, cfg)
		},
	}

	cmd.Flags().StringVar(&name, "name", "Household", "budget name")
	cmd.Flags().StringVar(&backend, "backend", storage.KindFile, "storage backend: file or sqlite")
	cmd.Flags().BoolVar(&git, "git", false, "track the budget in git and commit every change")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, cfg *config.Config) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	if err := os.MkdirAll(filepath.Join(dir, filepath.Dir(activity.File)), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	// Write havenly.yaml.
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Store the starting budget.
	backend, err := storage.Open(cfg.Storage.Backend, dir, cfg.Storage.Path)
	if err != nil {
		return err
	}
	data, err := storage.Encode(model.DefaultState())
	if err == nil {
		err = backend.Save(cmd.Context(), data)
	}
	if err := errors.Join(err, storage.Close(backend)); err != nil {
		return fmt.Errorf("writing budget: %w", err)
	}

	// Write .gitignore.
	gitignore := "havenly-backup-*.json\n*.xlsx\n*.db-wal\n*.db-shm\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	out := cmd.OutOrStdout()
	if !cfg.Git.AutoCommit {
		fmt.Fprintf(out, "Initialized budget %q at %s\n", cfg.Budget.Name, dir)
		return nil
	}

	// Initialize git and create initial commit.
	if err := gitops.Init(cmd.Context(), dir); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	hash, err := gitops.CommitAll(cmd.Context(), dir, "init: Initialize "+cfg.Budget.Name, author)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(out, "Initialized budget %q at %s (%s)\n", cfg.Budget.Name, dir, hash)
	return nil
}
