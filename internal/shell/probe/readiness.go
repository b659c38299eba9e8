package probe

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sessionguard/stackctl/internal/shell/docker"
)

// =============================================================================
// Readiness Wait
// =============================================================================

// ReadinessMode selects how the sequencer waits for started services.
type ReadinessMode string

const (
	// ModeFixed reproduces the original unconditional delay before
	// verification.
	ModeFixed ReadinessMode = "fixed"

	// ModePoll polls container state and the health endpoint until ready or
	// deadline.
	ModePoll ReadinessMode = "poll"
)

// ReadinessConfig configures the wait between start and verification.
type ReadinessConfig struct {
	Mode     ReadinessMode
	Wait     time.Duration // fixed mode: unconditional delay
	Interval time.Duration // poll mode: time between checks
	Deadline time.Duration // poll mode: total budget
}

// DefaultReadinessConfig returns the default configuration.
func DefaultReadinessConfig() ReadinessConfig {
	return ReadinessConfig{
		Mode:     ModePoll,
		Wait:     30 * time.Second,
		Interval: 5 * time.Second,
		Deadline: 120 * time.Second,
	}
}

// ContainerLister observes the containers of a compose project.
type ContainerLister interface {
	ListStackContainers(ctx context.Context, project string) ([]docker.ContainerState, error)
}

// Waiter blocks until the stack is ready for verification.
type Waiter struct {
	config     ReadinessConfig
	containers ContainerLister // may be nil; endpoint polling still works
	prober     Prober
	project    string
	logger     *slog.Logger
}

// NewWaiter creates a readiness waiter.
func NewWaiter(config ReadinessConfig, containers ContainerLister, prober Prober, project string, logger *slog.Logger) *Waiter {
	if config.Mode == "" {
		config.Mode = ModePoll
	}
	if config.Wait == 0 {
		config.Wait = 30 * time.Second
	}
	if config.Interval == 0 {
		config.Interval = 5 * time.Second
	}
	if config.Deadline == 0 {
		config.Deadline = 120 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Waiter{
		config:     config,
		containers: containers,
		prober:     prober,
		project:    project,
		logger:     logger,
	}
}

// Wait blocks according to the configured mode. In fixed mode it always
// returns nil after the delay. In poll mode it returns nil as soon as the
// stack answers, or an error once the deadline passes; the caller treats that
// error as non-fatal and lets the verification step render the verdict.
func (w *Waiter) Wait(ctx context.Context) error {
	if w.config.Mode == ModeFixed {
		w.logger.Info("waiting for services to initialize", "wait", w.config.Wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.config.Wait):
			return nil
		}
	}

	w.logger.Info("polling for readiness",
		"interval", w.config.Interval,
		"deadline", w.config.Deadline,
	)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	deadline := time.Now().Add(w.config.Deadline)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if w.ready(ctx) {
				w.logger.Info("stack is ready")
				return nil
			}
			if time.Now().After(deadline) {
				return fmt.Errorf("timeout waiting for stack to become ready")
			}
			w.logger.Debug("stack not yet ready, waiting...")
		}
	}
}

// ready checks container states first (when a Docker client is available) and
// then the health endpoint.
func (w *Waiter) ready(ctx context.Context) bool {
	if w.containers != nil {
		states, err := w.containers.ListStackContainers(ctx, w.project)
		if err != nil {
			w.logger.Debug("container state check failed", "error", err)
			return false
		}
		if !docker.AllRunning(states) {
			return false
		}
	}
	return w.prober.Probe(ctx).Healthy
}
