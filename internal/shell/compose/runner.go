package compose

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
)

// =============================================================================
// Runner Interface
// =============================================================================

// Runner is the fixed command contract the sequencer holds against the
// orchestration tool: stop-all, pull, no-cache build, detached start,
// status listing, and bounded log tailing (aggregate or per-service).
type Runner interface {
	// Down stops and removes the running service set. Idempotent: succeeds
	// when nothing is running.
	Down(ctx context.Context) error

	// Pull refreshes externally hosted images.
	Pull(ctx context.Context) error

	// Build rebuilds locally defined images without the layer cache.
	Build(ctx context.Context) error

	// Up starts the full service set in detached mode.
	Up(ctx context.Context) error

	// Status prints the tool's view of the running services.
	Status(ctx context.Context) error

	// Logs prints the last tail lines. An empty service means the aggregate
	// across all services; a service name scopes the dump to that container.
	Logs(ctx context.Context, tail int, service string) error
}

// =============================================================================
// Command Runner
// =============================================================================

// CommandRunner implements Runner by executing `docker compose` as an
// external process. Output streams to the operator unmodified.
type CommandRunner struct {
	binary  string // "docker"
	file    string // compose file path
	project string // optional compose project name
	dir     string // working directory for the child process
	stdout  io.Writer
	stderr  io.Writer
	logger  *slog.Logger
}

// CommandRunnerConfig configures a CommandRunner.
type CommandRunnerConfig struct {
	File    string // compose file path, default "docker-compose.yml"
	Project string // optional project name
	Dir     string // working directory, default current
	Stdout  io.Writer
	Stderr  io.Writer
}

// NewCommandRunner creates a runner for the given stack.
func NewCommandRunner(cfg CommandRunnerConfig, logger *slog.Logger) *CommandRunner {
	if cfg.File == "" {
		cfg.File = "docker-compose.yml"
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CommandRunner{
		binary:  "docker",
		file:    cfg.File,
		project: cfg.Project,
		dir:     cfg.Dir,
		stdout:  cfg.Stdout,
		stderr:  cfg.Stderr,
		logger:  logger,
	}
}

func (r *CommandRunner) Down(ctx context.Context) error {
	return r.run(ctx, "Down", r.downArgs())
}

func (r *CommandRunner) Pull(ctx context.Context) error {
	return r.run(ctx, "Pull", r.pullArgs())
}

func (r *CommandRunner) Build(ctx context.Context) error {
	return r.run(ctx, "Build", r.buildArgs())
}

func (r *CommandRunner) Up(ctx context.Context) error {
	return r.run(ctx, "Up", r.upArgs())
}

func (r *CommandRunner) Status(ctx context.Context) error {
	return r.run(ctx, "Status", r.statusArgs())
}

func (r *CommandRunner) Logs(ctx context.Context, tail int, service string) error {
	return r.run(ctx, "Logs", r.logsArgs(tail, service))
}

// run executes one tool invocation to completion. Cancelling the context
// kills the child process; stack consistency after an interrupted command is
// the tool's responsibility, not ours.
func (r *CommandRunner) run(ctx context.Context, op string, args []string) error {
	r.logger.Debug("invoking orchestration tool", "op", op, "args", args)

	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = r.dir
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.Env = os.Environ()

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return NewCommandError(op, args, execErr.Error(), ErrToolNotFound)
		}
		return NewCommandError(op, args, fmt.Sprintf("%s: %v", r.binary, err), ErrCommandFailed)
	}
	return nil
}

// =============================================================================
// Argument Builders
// =============================================================================

// baseArgs is the common prefix selecting the compose file and project.
func (r *CommandRunner) baseArgs() []string {
	args := []string{"compose", "-f", r.file}
	if r.project != "" {
		args = append(args, "-p", r.project)
	}
	return args
}

func (r *CommandRunner) downArgs() []string {
	return append(r.baseArgs(), "down", "--remove-orphans")
}

func (r *CommandRunner) pullArgs() []string {
	return append(r.baseArgs(), "pull", "--ignore-buildable")
}

func (r *CommandRunner) buildArgs() []string {
	return append(r.baseArgs(), "build", "--no-cache")
}

func (r *CommandRunner) upArgs() []string {
	return append(r.baseArgs(), "up", "-d")
}

func (r *CommandRunner) statusArgs() []string {
	return append(r.baseArgs(), "ps")
}

func (r *CommandRunner) logsArgs(tail int, service string) []string {
	args := append(r.baseArgs(), "logs", "--tail", strconv.Itoa(tail))
	if service != "" {
		args = append(args, service)
	}
	return args
}
