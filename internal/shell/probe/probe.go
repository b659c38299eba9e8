// Package probe performs the bounded HTTP liveness check and the readiness
// wait that precedes it.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sessionguard/stackctl/internal/core/domain"
)

// =============================================================================
// Prober
// =============================================================================

// Prober issues a single bounded liveness check.
type Prober interface {
	Probe(ctx context.Context) domain.HealthProbeResult
}

// HTTPProber checks one fixed HTTP endpoint. Connection failure, timeout, and
// non-success status are all treated identically as unhealthy.
type HTTPProber struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// NewHTTPProber creates a prober for the given endpoint.
func NewHTTPProber(url string, timeout time.Duration) *HTTPProber {
	if timeout == 0 {
		timeout = 3 * time.Second
	}
	return &HTTPProber{
		url:     url,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

// Probe performs one GET with no retries. Any status below 400 counts as
// healthy; the response body is irrelevant.
func (p *HTTPProber) Probe(ctx context.Context) domain.HealthProbeResult {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return domain.HealthProbeResult{Error: err.Error()}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return domain.HealthProbeResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return domain.HealthProbeResult{
			StatusCode: resp.StatusCode,
			Error:      fmt.Sprintf("health endpoint returned %s", resp.Status),
		}
	}

	return domain.HealthProbeResult{Healthy: true, StatusCode: resp.StatusCode}
}
