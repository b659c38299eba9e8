// Package sequence contains the pure lifecycle logic of a deployment run.
// Following the core/shell split: no I/O here, only step ordering, failure
// policy, and the outcome decision.
package sequence

import "github.com/sessionguard/stackctl/internal/core/domain"

// =============================================================================
// Step Plans
// =============================================================================

// DeploySteps returns the fixed, totally ordered lifecycle of a deploy run.
// No reordering or skipping is permitted; fatal steps short-circuit the rest.
func DeploySteps() []domain.Step {
	return []domain.Step{
		domain.StepValidate,
		domain.StepPrepareDirs,
		domain.StepStopExisting,
		domain.StepPullImages,
		domain.StepBuildImages,
		domain.StepStartServices,
		domain.StepAwaitReady,
		domain.StepCheckStatus,
		domain.StepCollectLogs,
		domain.StepHealthProbe,
	}
}

// UpdateSteps returns the update variant: a database backup and a source
// refresh precede the shared stop → build → start → verify lifecycle.
func UpdateSteps() []domain.Step {
	return []domain.Step{
		domain.StepValidate,
		domain.StepPrepareDirs,
		domain.StepBackup,
		domain.StepUpdateSource,
		domain.StepStopExisting,
		domain.StepPullImages,
		domain.StepBuildImages,
		domain.StepStartServices,
		domain.StepAwaitReady,
		domain.StepCheckStatus,
		domain.StepCollectLogs,
		domain.StepHealthProbe,
	}
}

// =============================================================================
// Failure Policy
// =============================================================================

// IsFatal reports whether a failure of the given step aborts the run.
//
// Pull may legitimately fail when images are only built locally, so it is
// logged and skipped over. Stop is idempotent at the tool level and a stale
// error there must not block a redeploy. Status and log collection are
// informational. The health probe never aborts the run itself; it flips the
// reported outcome instead.
func IsFatal(step domain.Step) bool {
	switch step {
	case domain.StepValidate,
		domain.StepBackup,
		domain.StepUpdateSource,
		domain.StepBuildImages,
		domain.StepStartServices:
		return true
	default:
		return false
	}
}

// =============================================================================
// Outcome Decision
// =============================================================================

// Decide maps a run's recorded step results to its final outcome.
func Decide(run *domain.Run) domain.Outcome {
	switch {
	case run.Failed(domain.StepValidate):
		return domain.OutcomeConfigMissing
	case run.Failed(domain.StepBackup):
		return domain.OutcomeBackupFailed
	case run.Failed(domain.StepUpdateSource):
		return domain.OutcomeSourceFailed
	case run.Failed(domain.StepBuildImages):
		return domain.OutcomeBuildFailed
	case run.Failed(domain.StepStartServices):
		return domain.OutcomeStartFailed
	case run.Failed(domain.StepHealthProbe):
		return domain.OutcomeHealthCheckFailed
	default:
		return domain.OutcomeSuccess
	}
}
