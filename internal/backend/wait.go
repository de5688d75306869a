package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Survival1sm/zenithbioscience-e2e-sub001/internal/observability/logger"
)

// WaitForStack polls the backend health endpoint and the frontend root
// concurrently until both answer or the timeout elapses. Used by the wait
// subcommand (and scripts/wait-for-stack.sh) before CI starts the suite.
func WaitForStack(ctx context.Context, backendURL, frontendURL string, timeout, interval time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return waitForURL(ctx, "backend", backendURL+pathHealth, interval)
	})
	g.Go(func() error {
		return waitForURL(ctx, "frontend", frontendURL+"/", interval)
	})
	return g.Wait()
}

func waitForURL(ctx context.Context, name, url string, interval time.Duration) error {
	log := logger.Named("wait")
	client := &http.Client{Timeout: 5 * time.Second}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("wait %s: %w", name, err)
		}
		resp, err := client.Do(req)
		if err == nil {
			code := resp.StatusCode
			resp.Body.Close()
			// anything the server answers coherently counts as "up";
			// readiness beyond that is the bootstrap's problem
			if code < 500 {
				log.Info("service is up", logger.String("target", name), logger.URL(url), logger.Attempt(attempt))
				return nil
			}
			log.Debug("service not ready", logger.String("target", name), logger.Status(code), logger.Attempt(attempt))
		} else if ctx.Err() == nil {
			log.Debug("service unreachable", logger.String("target", name), logger.Attempt(attempt), logger.Err(err))
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait %s: %s not up before deadline: %w", name, url, ctx.Err())
		case <-ticker.C:
		}
	}
}
