// Package domain defines the value types shared across stackctl.
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrMissingEnvFile is returned when the secrets file required by the
	// stack is absent. This aborts a run before any orchestration call.
	ErrMissingEnvFile = errors.New("environment file not found")

	// ErrLockHeld is returned when another run holds the deployment lock.
	ErrLockHeld = errors.New("another deployment is in progress")
)

// =============================================================================
// Steps
// =============================================================================

// Step is a named lifecycle transition of a deployment run.
type Step string

const (
	StepValidate      Step = "validate"
	StepPrepareDirs   Step = "prepare_directories"
	StepBackup        Step = "backup"
	StepUpdateSource  Step = "update_source"
	StepStopExisting  Step = "stop_existing"
	StepPullImages    Step = "pull_images"
	StepBuildImages   Step = "build_images"
	StepStartServices Step = "start_services"
	StepAwaitReady    Step = "await_readiness"
	StepCheckStatus   Step = "check_status"
	StepCollectLogs   Step = "collect_logs"
	StepHealthProbe   Step = "health_probe"
)

// StepStatus is the result of executing a single step.
type StepStatus string

const (
	StepOK      StepStatus = "ok"
	StepFailed  StepStatus = "failed"
	StepSkipped StepStatus = "skipped"
)

// StepResult records the outcome of one executed step.
type StepResult struct {
	Step     Step
	Status   StepStatus
	Error    string
	Duration time.Duration
}

// =============================================================================
// Outcome
// =============================================================================

// Outcome is the final verdict of a deployment run.
type Outcome string

const (
	OutcomeSuccess           Outcome = "success"
	OutcomeConfigMissing     Outcome = "config_missing"
	OutcomeBuildFailed       Outcome = "build_failed"
	OutcomeStartFailed       Outcome = "start_failed"
	OutcomeBackupFailed      Outcome = "backup_failed"
	OutcomeSourceFailed      Outcome = "source_update_failed"
	OutcomeHealthCheckFailed Outcome = "health_check_failed"
)

// HealthProbeResult is the boolean reachable/unreachable outcome of a single
// bounded HTTP check against the stack's health endpoint.
type HealthProbeResult struct {
	Healthy    bool
	StatusCode int
	Error      string
}

// =============================================================================
// Run
// =============================================================================

// Run is one execution of the deployment sequencer. It is transient: created
// at invocation, discarded at process exit.
type Run struct {
	ID        string
	StartedAt time.Time
	Steps     []StepResult
	Outcome   Outcome
}

// NewRun creates a run with a fresh ID.
func NewRun() *Run {
	return &Run{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
	}
}

// Record appends a step result. err may be nil for successful steps.
func (r *Run) Record(step Step, err error, took time.Duration) {
	res := StepResult{Step: step, Status: StepOK, Duration: took}
	if err != nil {
		res.Status = StepFailed
		res.Error = err.Error()
	}
	r.Steps = append(r.Steps, res)
}

// Skip appends a skipped step, for steps cut off by a fatal failure earlier
// in the run.
func (r *Run) Skip(step Step) {
	r.Steps = append(r.Steps, StepResult{Step: step, Status: StepSkipped})
}

// Completed reports whether a step was actually executed during this run.
// Skipped steps do not count.
func (r *Run) Completed(step Step) bool {
	for _, s := range r.Steps {
		if s.Step == step && s.Status != StepSkipped {
			return true
		}
	}
	return false
}

// Failed reports whether a step was executed and failed.
func (r *Run) Failed(step Step) bool {
	for _, s := range r.Steps {
		if s.Step == step && s.Status == StepFailed {
			return true
		}
	}
	return false
}
