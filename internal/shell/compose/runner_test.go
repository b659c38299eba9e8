package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestRunner(project string) *CommandRunner {
	return NewCommandRunner(CommandRunnerConfig{
		File:    "docker-compose.yml",
		Project: project,
	}, nil)
}

// =============================================================================
// Argument Builder Tests
// =============================================================================

func TestArgs_Down(t *testing.T) {
	r := newTestRunner("")
	assert.Equal(t,
		[]string{"compose", "-f", "docker-compose.yml", "down", "--remove-orphans"},
		r.downArgs(),
	)
}

func TestArgs_PullIgnoresBuildableImages(t *testing.T) {
	r := newTestRunner("")
	assert.Equal(t,
		[]string{"compose", "-f", "docker-compose.yml", "pull", "--ignore-buildable"},
		r.pullArgs(),
	)
}

func TestArgs_BuildDisablesLayerCache(t *testing.T) {
	r := newTestRunner("")
	assert.Contains(t, r.buildArgs(), "--no-cache")
}

func TestArgs_UpIsDetached(t *testing.T) {
	r := newTestRunner("")
	assert.Equal(t,
		[]string{"compose", "-f", "docker-compose.yml", "up", "-d"},
		r.upArgs(),
	)
}

func TestArgs_ProjectNameIncludedWhenSet(t *testing.T) {
	r := newTestRunner("sessionguard")
	assert.Equal(t,
		[]string{"compose", "-f", "docker-compose.yml", "-p", "sessionguard", "ps"},
		r.statusArgs(),
	)
}

func TestArgs_LogsAggregate(t *testing.T) {
	r := newTestRunner("")
	assert.Equal(t,
		[]string{"compose", "-f", "docker-compose.yml", "logs", "--tail", "50"},
		r.logsArgs(50, ""),
	)
}

func TestArgs_LogsScopedToService(t *testing.T) {
	r := newTestRunner("")
	args := r.logsArgs(50, "bot")
	assert.Equal(t, "bot", args[len(args)-1])
}

// =============================================================================
// Config Defaults
// =============================================================================

func TestNewCommandRunner_Defaults(t *testing.T) {
	r := NewCommandRunner(CommandRunnerConfig{}, nil)

	assert.Equal(t, "docker", r.binary)
	assert.Equal(t, "docker-compose.yml", r.file)
	assert.NotNil(t, r.stdout)
	assert.NotNil(t, r.stderr)
}
