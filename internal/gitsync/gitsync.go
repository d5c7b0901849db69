// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gitsync commits and pushes the export tree when it is a git
// repository: add, commit, pull --rebase, push. Pulling after the commit
// rebases our export on top of whatever else landed in the repository.
package gitsync

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotARepo reports an export directory without a .git directory.
var ErrNotARepo = errors.New("export directory is not a git repository")

// Sync runs the add/commit/pull/push sequence in dir with a dated commit
// message, printing progress to w. An up-to-date tree (nothing to commit)
// is not an error.
func Sync(dir string, now time.Time, w io.Writer) error {
	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return fmt.Errorf("%s: %w", dir, ErrNotARepo)
	}

	msg := "Plaud export " + now.Format("2006-01-02")

	if out, err := run(dir, "add", "."); err != nil {
		return fmt.Errorf("git add: %v: %s", err, out)
	}

	if out, err := run(dir, "commit", "-m", msg); err != nil {
		if strings.Contains(out, "nothing to commit") {
			fmt.Fprintln(w, "git: nothing to commit")
		} else {
			return fmt.Errorf("git commit: %v: %s", err, out)
		}
	}

	if out, err := run(dir, "pull", "--rebase"); err != nil {
		return fmt.Errorf("git pull --rebase: %v: %s", err, strings.TrimSpace(out))
	}
	if out, err := run(dir, "push"); err != nil {
		return fmt.Errorf("git push: %v: %s", err, strings.TrimSpace(out))
	}

	fmt.Fprintf(w, "git: committed and pushed (%s)\n", msg)
	return nil
}

func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}
