package gateway

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	StatusHealthy     = "healthy"
	StatusUnhealthy   = "unhealthy"
	StatusUnreachable = "unreachable"
)

// checkHealth 모든 upstream 의 /health 를 동시에 조회
func checkHealth(ctx context.Context, client *http.Client, upstreams []Upstream, timeout time.Duration) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	statuses := make([]string, len(upstreams))
	var g errgroup.Group
	for i, up := range upstreams {
		g.Go(func() error {
			statuses[i] = probe(ctx, client, up)
			return nil
		})
	}
	g.Wait()

	out := make(map[string]string, len(upstreams))
	for i, up := range upstreams {
		out[up.Key] = statuses[i]
	}
	return out
}

func probe(ctx context.Context, client *http.Client, up Upstream) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, up.URL.JoinPath("health").String(), nil)
	if err != nil {
		return StatusUnreachable
	}
	resp, err := client.Do(req)
	if err != nil {
		return StatusUnreachable
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusOK {
		return StatusHealthy
	}
	return StatusUnhealthy
}
