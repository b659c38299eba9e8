package docker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// Container State Tests
// =============================================================================

func TestContainerState_Running(t *testing.T) {
	tests := []struct {
		name     string
		state    ContainerState
		expected bool
	}{
		{"running without healthcheck", ContainerState{State: "running"}, true},
		{"running and healthy", ContainerState{State: "running", Health: "healthy"}, true},
		{"running but unhealthy", ContainerState{State: "running", Health: "unhealthy"}, false},
		{"running but starting", ContainerState{State: "running", Health: "starting"}, false},
		{"exited", ContainerState{State: "exited"}, false},
		{"restarting", ContainerState{State: "restarting"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.Running())
		})
	}
}

func TestAllRunning(t *testing.T) {
	running := ContainerState{State: "running"}
	exited := ContainerState{State: "exited"}

	assert.True(t, AllRunning([]ContainerState{running, running}))
	assert.False(t, AllRunning([]ContainerState{running, exited}))
	assert.False(t, AllRunning(nil), "empty stack is not ready")
}
