// Package source refreshes the deployable working tree before a rebuild.
package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// Updater pulls the latest revision of the deployment tree.
type Updater struct {
	dir    string
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// NewUpdater creates an updater for the given working tree. An empty dir
// means the current directory.
func NewUpdater(dir string, logger *slog.Logger) *Updater {
	if logger == nil {
		logger = slog.Default()
	}
	return &Updater{
		dir:    dir,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logger,
	}
}

// Refresh fast-forwards the working tree to the latest upstream revision.
// Local divergence is a deliberate hard failure: deploying a tree that does
// not match upstream defeats the point of the update path.
func (u *Updater) Refresh(ctx context.Context) error {
	u.logger.Info("updating source tree", "dir", u.dir)

	cmd := exec.CommandContext(ctx, "git", "pull", "--ff-only")
	cmd.Dir = u.dir
	cmd.Stdout = u.stdout
	cmd.Stderr = u.stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git pull: %w", err)
	}
	return nil
}
