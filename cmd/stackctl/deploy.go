package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sessionguard/stackctl/internal/core/domain"
	"github.com/sessionguard/stackctl/internal/shell/lockfile"
)

func newDeployCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: "Tear down, rebuild, start, and verify the service stack",
		RunE:  runDeploy,
	}
}

func runDeploy(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return exitWith(ExitConfigError, err)
	}
	logger := SetupLogger(cfg)

	lock, err := lockfile.Acquire(cfg.Lock.Path)
	if err != nil {
		if errors.Is(err, domain.ErrLockHeld) {
			return exitWith(ExitLocked, err)
		}
		return exitWith(ExitConfigError, err)
	}
	defer lock.Release()

	// An interrupt kills the current external call; stack consistency after
	// that is the orchestration tool's responsibility.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seq, cleanup := newSequencer(cfg, logger)
	defer cleanup()

	run, err := seq.Deploy(ctx)
	return verdict(cfg, run, err)
}
