// Package docker provides a trimmed Docker client used by the poll-based
// readiness check to observe the state of stack containers.
package docker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrConnectionFailed is returned when the Docker daemon is unreachable.
	ErrConnectionFailed = errors.New("docker connection failed")
)

// =============================================================================
// Container State
// =============================================================================

// ContainerState is the readiness-relevant slice of a container's status.
type ContainerState struct {
	ID      string
	Name    string
	Service string // compose service label, if present
	State   string // "running", "exited", ...
	Health  string // "healthy", "unhealthy", "starting", "" when no healthcheck
}

// Running reports whether the container is up and, when it declares a health
// check, not failing it.
func (c ContainerState) Running() bool {
	if c.State != "running" {
		return false
	}
	return c.Health == "" || c.Health == "healthy"
}

// AllRunning reports whether every container in the set is running. An empty
// set is not ready: the stack has not come up at all.
func AllRunning(states []ContainerState) bool {
	if len(states) == 0 {
		return false
	}
	for _, s := range states {
		if !s.Running() {
			return false
		}
	}
	return true
}

// =============================================================================
// Client
// =============================================================================

// composeProjectLabel is the label the compose tool stamps on every container
// it manages.
const (
	composeProjectLabel = "com.docker.compose.project"
	composeServiceLabel = "com.docker.compose.service"
)

// Client observes stack containers through the Docker API.
type Client struct {
	cli *client.Client
}

// NewClient creates a Docker client. If host is empty, the default Docker
// host from the environment is used.
func NewClient(host string) (*Client, error) {
	var opts []client.Opt
	opts = append(opts, client.FromEnv)
	opts = append(opts, client.WithAPIVersionNegotiation())
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("create docker client: %w", ErrConnectionFailed)
	}
	return &Client{cli: cli}, nil
}

// Ping checks if the Docker daemon is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.cli.Ping(ctx); err != nil {
		return fmt.Errorf("ping docker: %w", ErrConnectionFailed)
	}
	return nil
}

// Close closes the Docker client connection.
func (c *Client) Close() error {
	return c.cli.Close()
}

// ListStackContainers returns the state of every container belonging to the
// given compose project. Health is taken from the container inspect data when
// a health check is declared.
func (c *Client) ListStackContainers(ctx context.Context, project string) ([]ContainerState, error) {
	f := filters.NewArgs()
	f.Add("label", fmt.Sprintf("%s=%s", composeProjectLabel, project))

	containers, err := c.cli.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: f,
	})
	if err != nil {
		return nil, fmt.Errorf("list stack containers: %w", err)
	}

	var states []ContainerState
	for _, ct := range containers {
		name := ""
		if len(ct.Names) > 0 {
			name = strings.TrimPrefix(ct.Names[0], "/")
		}

		state := ContainerState{
			ID:      ct.ID,
			Name:    name,
			Service: ct.Labels[composeServiceLabel],
			State:   ct.State,
		}

		// The list endpoint has no health detail; inspect fills it in.
		if inspect, err := c.cli.ContainerInspect(ctx, ct.ID); err == nil {
			if inspect.State != nil && inspect.State.Health != nil {
				state.Health = inspect.State.Health.Status
			}
		}

		states = append(states, state)
	}

	return states, nil
}
