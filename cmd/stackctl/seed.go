package main

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sessionguard/stackctl/internal/shell/deployer"
	"github.com/sessionguard/stackctl/internal/shell/seed"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Bootstrap the bot database (collections, indexes, settings)",
		Long:  "Creates the indexed collections the bot depends on and seeds the settings\ndocument. Idempotent: safe to run against an already-seeded database.",
		RunE:  runSeed,
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return exitWith(ExitConfigError, err)
	}
	logger := SetupLogger(cfg)

	// The database URI and owner usually live in the stack's env file.
	if err := deployer.CheckEnvFile(cfg.EnvFile); err == nil {
		if err := deployer.LoadEnvFile(cfg.EnvFile); err != nil {
			logger.Warn("could not load env file", "error", err)
		}
	}

	uri := cfg.Mongo.URI
	if env := os.Getenv("MONGO_URI"); env != "" {
		uri = env
	}

	var ownerID int64
	if raw := os.Getenv("OWNER_ID"); raw != "" {
		ownerID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logger.Warn("invalid OWNER_ID, seeding without an owner", "value", raw)
			ownerID = 0
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seeder := seed.NewSeeder(uri, cfg.Mongo.Database, logger)
	if err := seeder.Run(ctx, ownerID); err != nil {
		return exitWith(ExitStepFailed, err)
	}

	logger.Info("database bootstrap complete", "database", cfg.Mongo.Database)
	return nil
}
