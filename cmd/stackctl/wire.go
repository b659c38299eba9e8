package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sessionguard/stackctl/internal/core/compose"
	"github.com/sessionguard/stackctl/internal/core/domain"
	shellcompose "github.com/sessionguard/stackctl/internal/shell/compose"
	"github.com/sessionguard/stackctl/internal/shell/deployer"
	"github.com/sessionguard/stackctl/internal/shell/docker"
	"github.com/sessionguard/stackctl/internal/shell/probe"
)

// =============================================================================
// Sequencer Wiring
// =============================================================================

// newSequencer assembles the sequencer and its collaborators from config.
// The returned cleanup closes the Docker client, when one was opened.
func newSequencer(cfg *Config, logger *slog.Logger) (*deployer.Sequencer, func()) {
	runner := shellcompose.NewCommandRunner(shellcompose.CommandRunnerConfig{
		File:    cfg.Compose.File,
		Project: cfg.Compose.Project,
		Dir:     cfg.Compose.Dir,
	}, logger)

	prober := probe.NewHTTPProber(cfg.Health.URL, cfg.Health.Timeout)

	// The poll-based readiness check observes container state through the
	// Docker API. When the daemon is unreachable the waiter degrades to
	// endpoint polling alone.
	var lister probe.ContainerLister
	cleanup := func() {}
	if probe.ReadinessMode(cfg.Readiness.Mode) == probe.ModePoll {
		if cli, err := docker.NewClient(cfg.Docker.Host); err == nil {
			lister = cli
			cleanup = func() { _ = cli.Close() }
		} else {
			logger.Warn("docker unavailable, readiness falls back to endpoint polling", "error", err)
		}
	}

	waiter := probe.NewWaiter(probe.ReadinessConfig{
		Mode:     probe.ReadinessMode(cfg.Readiness.Mode),
		Wait:     cfg.Readiness.Wait,
		Interval: cfg.Readiness.Interval,
		Deadline: cfg.Readiness.Deadline,
	}, lister, prober, composeProject(cfg), logger)

	seq := deployer.New(deployer.Config{
		EnvFile:        cfg.EnvFile,
		Dirs:           cfg.Dirs,
		LogTail:        cfg.Logs.Tail,
		PrimaryService: primaryService(cfg, logger),
	}, runner, waiter, prober, logger)

	return seq, cleanup
}

// composeProject resolves the compose project name the tool will stamp on
// containers: the configured name, or the stack directory's name following
// the tool's own default.
func composeProject(cfg *Config) string {
	if cfg.Compose.Project != "" {
		return cfg.Compose.Project
	}
	dir := cfg.Compose.Dir
	if dir == "" {
		dir, _ = os.Getwd()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	return strings.ToLower(filepath.Base(abs))
}

// primaryService resolves the diagnostic log target from the compose file.
// A parse failure only costs the targeted dump, so it is not fatal here.
func primaryService(cfg *Config, logger *slog.Logger) string {
	path := cfg.Compose.File
	if cfg.Compose.Dir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(cfg.Compose.Dir, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("cannot read compose file, using configured primary service", "error", err)
		return cfg.PrimaryService
	}
	stack, err := compose.ParseStackFile(string(content))
	if err != nil {
		logger.Warn("cannot parse compose file, using configured primary service", "error", err)
		return cfg.PrimaryService
	}
	return stack.PrimaryService(cfg.PrimaryService)
}

// =============================================================================
// Verdict
// =============================================================================

// verdict maps a finished run to the process exit status.
func verdict(cfg *Config, run *domain.Run, err error) error {
	if err != nil {
		if errors.Is(err, domain.ErrMissingEnvFile) {
			return exitWith(ExitConfigError, err)
		}
		return exitWith(ExitStepFailed, err)
	}
	if run.Outcome == domain.OutcomeHealthCheckFailed && cfg.Health.StrictExit {
		return exitWith(ExitUnhealthy, fmt.Errorf("deployment completed but is unhealthy"))
	}
	return nil
}
