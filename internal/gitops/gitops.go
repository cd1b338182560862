// Package gitops versions a budget directory with git.
package gitops

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Author identifies who commits budget changes.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

func git(ctx context.Context, dir string, author Author, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	// The committer defaults to the author so commits work without a global
	// git identity.
	cmd.Env = append(os.Environ(),
		"GIT_COMMITTER_NAME="+author.Name,
		"GIT_COMMITTER_EMAIL="+author.Email,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}
	return out, nil
}

// Init initializes a new git repository at dir.
func Init(ctx context.Context, dir string) error {
	_, err := git(ctx, dir, Author{}, "init", "--quiet")
	return err
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// HasChanges reports whether the working tree differs from HEAD.
func HasChanges(ctx context.Context, dir string) (bool, error) {
	out, err := git(ctx, dir, Author{}, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return len(strings.TrimSpace(string(out))) > 0, nil
}

// CommitAll stages every change and commits it. It returns the short hash
// of the new commit, or "" when there was nothing to commit.
func CommitAll(ctx context.Context, dir, message string, author Author) (string, error) {
	changed, err := HasChanges(ctx, dir)
	if err != nil {
		return "", err
	}
	if !changed {
		return "", nil
	}

	if _, err := git(ctx, dir, author, "add", "-A"); err != nil {
		return "", err
	}
	if _, err := git(ctx, dir, author, "commit", "--quiet", "-m", message, "--author", author.String()); err != nil {
		return "", err
	}
	return Head(ctx, dir)
}

// Head returns the short hash of the commit HEAD points at. It fails in a
// repository without commits.
func Head(ctx context.Context, dir string) (string, error) {
	out, err := git(ctx, dir, Author{}, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
