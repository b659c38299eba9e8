package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sessionguard/stackctl/internal/core/domain"
	"github.com/sessionguard/stackctl/internal/shell/backup"
	"github.com/sessionguard/stackctl/internal/shell/lockfile"
	"github.com/sessionguard/stackctl/internal/shell/source"
)

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Back up the database, refresh the source tree, then redeploy",
		RunE:  runUpdate,
	}
}

func runUpdate(cmd *cobra.Command, args []string) error {
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

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seq, cleanup := newSequencer(cfg, logger)
	defer cleanup()

	dumper := backup.NewDumper(backup.DumperConfig{
		URI: cfg.Mongo.URI,
		Dir: cfg.Backup.Dir,
	}, logger)
	seq.WithUpdate(dumper, source.NewUpdater(cfg.Source.Dir, logger))

	run, err := seq.Update(ctx)
	return verdict(cfg, run, err)
}
