// Package deployer runs the ordered deployment lifecycle against the service
// stack and reports the outcome.
package deployer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/sessionguard/stackctl/internal/core/domain"
	"github.com/sessionguard/stackctl/internal/core/sequence"
	"github.com/sessionguard/stackctl/internal/shell/compose"
	"github.com/sessionguard/stackctl/internal/shell/probe"
)

// =============================================================================
// Collaborator Interfaces
// =============================================================================

// BackupRunner dumps the database before a destructive update.
type BackupRunner interface {
	Dump(ctx context.Context) (string, error)
}

// SourceRefresher brings the deployable tree to its latest revision.
type SourceRefresher interface {
	Refresh(ctx context.Context) error
}

// ReadinessWaiter blocks until started services should be able to answer the
// health probe.
type ReadinessWaiter interface {
	Wait(ctx context.Context) error
}

// =============================================================================
// Sequencer
// =============================================================================

// Config holds the sequencer's settings.
type Config struct {
	// EnvFile is the secrets file whose presence gates the whole run.
	EnvFile string

	// Dirs are local directories ensured before startup (logs, TLS material).
	Dirs []string

	// LogTail bounds every log dump.
	LogTail int

	// PrimaryService is the per-service diagnostic log target used when the
	// health probe fails.
	PrimaryService string
}

// Sequencer executes the fixed deployment lifecycle. All side effects go
// through the injected collaborators so tests can assert ordering and
// branching without a container runtime.
type Sequencer struct {
	config Config
	runner compose.Runner
	waiter ReadinessWaiter
	prober probe.Prober
	backup BackupRunner    // update path only
	source SourceRefresher // update path only
	logger *slog.Logger
	out    io.Writer
}

// New creates a sequencer for the deploy path.
func New(config Config, runner compose.Runner, waiter ReadinessWaiter, prober probe.Prober, logger *slog.Logger) *Sequencer {
	if config.EnvFile == "" {
		config.EnvFile = ".env"
	}
	if len(config.Dirs) == 0 {
		config.Dirs = []string{"logs", "ssl"}
	}
	if config.LogTail == 0 {
		config.LogTail = 50
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sequencer{
		config: config,
		runner: runner,
		waiter: waiter,
		prober: prober,
		logger: logger,
		out:    os.Stdout,
	}
}

// WithUpdate attaches the update-path collaborators.
func (s *Sequencer) WithUpdate(backup BackupRunner, source SourceRefresher) *Sequencer {
	s.backup = backup
	s.source = source
	return s
}

// Deploy runs the full lifecycle: validate, prepare, stop, pull, build,
// start, await readiness, status, logs, health probe.
func (s *Sequencer) Deploy(ctx context.Context) (*domain.Run, error) {
	return s.execute(ctx, sequence.DeploySteps())
}

// Update runs the update variant: a database backup and a source refresh
// precede the shared lifecycle, including its verification tail.
func (s *Sequencer) Update(ctx context.Context) (*domain.Run, error) {
	return s.execute(ctx, sequence.UpdateSteps())
}

// =============================================================================
// Execution
// =============================================================================

func (s *Sequencer) execute(ctx context.Context, steps []domain.Step) (*domain.Run, error) {
	run := domain.NewRun()
	s.logger.Info("starting deployment run", "run_id", run.ID)

	for i, step := range steps {
		started := time.Now()
		err := s.do(ctx, step)
		run.Record(step, err, time.Since(started))

		if err == nil {
			continue
		}
		if sequence.IsFatal(step) {
			for _, rest := range steps[i+1:] {
				run.Skip(rest)
			}
			run.Outcome = sequence.Decide(run)
			s.logger.Error("fatal step failed, aborting run",
				"step", step,
				"error", err,
			)
			s.reportFailure(run)
			return run, err
		}
		s.logger.Warn("step failed, continuing", "step", step, "error", err)
	}

	run.Outcome = sequence.Decide(run)
	if run.Outcome == domain.OutcomeSuccess {
		s.reportSuccess(run)
	} else {
		s.reportFailure(run)
	}
	return run, nil
}

// do dispatches one step. Progress is reported as it happens; failure policy
// lives in the sequence package, not here.
func (s *Sequencer) do(ctx context.Context, step domain.Step) error {
	switch step {
	case domain.StepValidate:
		s.logger.Info("validating environment", "env_file", s.config.EnvFile)
		if err := CheckEnvFile(s.config.EnvFile); err != nil {
			return err
		}
		return LoadEnvFile(s.config.EnvFile)

	case domain.StepPrepareDirs:
		s.logger.Info("ensuring directories", "dirs", s.config.Dirs)
		return EnsureDirectories(s.config.Dirs)

	case domain.StepBackup:
		if s.backup == nil {
			return errors.New("no backup runner configured")
		}
		dest, err := s.backup.Dump(ctx)
		if err != nil {
			return err
		}
		s.logger.Info("database backed up", "destination", dest)
		return nil

	case domain.StepUpdateSource:
		if s.source == nil {
			return errors.New("no source refresher configured")
		}
		return s.source.Refresh(ctx)

	case domain.StepStopExisting:
		s.logger.Info("stopping existing services")
		return s.runner.Down(ctx)

	case domain.StepPullImages:
		s.logger.Info("pulling images")
		return s.runner.Pull(ctx)

	case domain.StepBuildImages:
		s.logger.Info("building images (no cache)")
		return s.runner.Build(ctx)

	case domain.StepStartServices:
		s.logger.Info("starting services (detached)")
		return s.runner.Up(ctx)

	case domain.StepAwaitReady:
		return s.waiter.Wait(ctx)

	case domain.StepCheckStatus:
		s.logger.Info("service status")
		return s.runner.Status(ctx)

	case domain.StepCollectLogs:
		s.logger.Info("recent logs", "tail", s.config.LogTail)
		return s.runner.Logs(ctx, s.config.LogTail, "")

	case domain.StepHealthProbe:
		return s.probeHealth(ctx)

	default:
		return fmt.Errorf("unknown step %q", step)
	}
}

// probeHealth runs the verification decision point. A failed probe is
// reported, not auto-remediated: the remediation aid is a log dump scoped to
// the primary service, and no rollback happens.
func (s *Sequencer) probeHealth(ctx context.Context) error {
	s.logger.Info("probing health endpoint")

	result := s.prober.Probe(ctx)
	if result.Healthy {
		s.logger.Info("health probe succeeded", "status", result.StatusCode)
		return nil
	}

	s.logger.Error("health probe failed", "error", result.Error)
	if s.config.PrimaryService != "" {
		s.logger.Info("collecting diagnostic logs", "service", s.config.PrimaryService)
		if err := s.runner.Logs(ctx, s.config.LogTail, s.config.PrimaryService); err != nil {
			s.logger.Warn("diagnostic log collection failed", "error", err)
		}
	}
	return errors.New(result.Error)
}

// =============================================================================
// Outcome Reports
// =============================================================================

func (s *Sequencer) reportSuccess(run *domain.Run) {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "✅ Deployment complete - all services are up and healthy.")
	fmt.Fprintln(s.out, "   Follow logs:   docker compose logs -f")
	fmt.Fprintln(s.out, "   Check status:  docker compose ps")
}

func (s *Sequencer) reportFailure(run *domain.Run) {
	fmt.Fprintln(s.out)
	fmt.Fprintf(s.out, "❌ Deployment did not complete cleanly (%s).\n", run.Outcome)
	if run.Outcome == domain.OutcomeHealthCheckFailed && s.config.PrimaryService != "" {
		fmt.Fprintf(s.out, "   Inspect the %s service logs above, or run: docker compose logs %s\n",
			s.config.PrimaryService, s.config.PrimaryService)
	}
}
