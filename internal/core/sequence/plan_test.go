package sequence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sessionguard/stackctl/internal/core/domain"
)

// =============================================================================
// Plan Ordering Tests
// =============================================================================

func TestDeploySteps_FixedOrder(t *testing.T) {
	expected := []domain.Step{
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

	assert.Equal(t, expected, DeploySteps())
}

func TestUpdateSteps_PrependsBackupAndSourceRefresh(t *testing.T) {
	steps := UpdateSteps()

	assert.Equal(t, domain.StepBackup, steps[2])
	assert.Equal(t, domain.StepUpdateSource, steps[3])
	// Shared tail is identical to the deploy plan.
	assert.Equal(t, DeploySteps()[2:], steps[4:])
}

func TestDeploySteps_ReturnsFreshSlice(t *testing.T) {
	a := DeploySteps()
	a[0] = domain.StepHealthProbe

	assert.Equal(t, domain.StepValidate, DeploySteps()[0])
}

// =============================================================================
// Failure Policy Tests
// =============================================================================

func TestIsFatal(t *testing.T) {
	tests := []struct {
		step  domain.Step
		fatal bool
	}{
		{domain.StepValidate, true},
		{domain.StepPrepareDirs, false},
		{domain.StepBackup, true},
		{domain.StepUpdateSource, true},
		{domain.StepStopExisting, false},
		{domain.StepPullImages, false},
		{domain.StepBuildImages, true},
		{domain.StepStartServices, true},
		{domain.StepAwaitReady, false},
		{domain.StepCheckStatus, false},
		{domain.StepCollectLogs, false},
		{domain.StepHealthProbe, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.step), func(t *testing.T) {
			assert.Equal(t, tt.fatal, IsFatal(tt.step))
		})
	}
}

// =============================================================================
// Outcome Decision Tests
// =============================================================================

func TestDecide(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name     string
		build    func() *domain.Run
		expected domain.Outcome
	}{
		{
			name: "all steps ok",
			build: func() *domain.Run {
				r := domain.NewRun()
				for _, s := range DeploySteps() {
					r.Record(s, nil, 0)
				}
				return r
			},
			expected: domain.OutcomeSuccess,
		},
		{
			name: "missing configuration",
			build: func() *domain.Run {
				r := domain.NewRun()
				r.Record(domain.StepValidate, domain.ErrMissingEnvFile, 0)
				return r
			},
			expected: domain.OutcomeConfigMissing,
		},
		{
			name: "build failure",
			build: func() *domain.Run {
				r := domain.NewRun()
				r.Record(domain.StepValidate, nil, 0)
				r.Record(domain.StepPrepareDirs, nil, 0)
				r.Record(domain.StepStopExisting, nil, 0)
				r.Record(domain.StepPullImages, errBoom, 0) // non-fatal
				r.Record(domain.StepBuildImages, errBoom, 0)
				return r
			},
			expected: domain.OutcomeBuildFailed,
		},
		{
			name: "start failure",
			build: func() *domain.Run {
				r := domain.NewRun()
				r.Record(domain.StepBuildImages, nil, 0)
				r.Record(domain.StepStartServices, errBoom, 0)
				return r
			},
			expected: domain.OutcomeStartFailed,
		},
		{
			name: "health probe failure",
			build: func() *domain.Run {
				r := domain.NewRun()
				for _, s := range DeploySteps()[:9] {
					r.Record(s, nil, 0)
				}
				r.Record(domain.StepHealthProbe, errors.New("connection refused"), 0)
				return r
			},
			expected: domain.OutcomeHealthCheckFailed,
		},
		{
			name: "backup failure on update path",
			build: func() *domain.Run {
				r := domain.NewRun()
				r.Record(domain.StepValidate, nil, 0)
				r.Record(domain.StepPrepareDirs, nil, 0)
				r.Record(domain.StepBackup, errBoom, 0)
				return r
			},
			expected: domain.OutcomeBackupFailed,
		},
		{
			name: "non-fatal failures alone still succeed",
			build: func() *domain.Run {
				r := domain.NewRun()
				r.Record(domain.StepValidate, nil, 0)
				r.Record(domain.StepPullImages, errBoom, 0)
				r.Record(domain.StepCheckStatus, errBoom, 0)
				r.Record(domain.StepHealthProbe, nil, 0)
				return r
			},
			expected: domain.OutcomeSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decide(tt.build()))
		})
	}
}
