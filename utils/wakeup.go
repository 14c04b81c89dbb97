package utils

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// WakeUpConfig controls the retry loop used to wake a hibernating
// container. Free hosting tiers put idle services to sleep; the first
// request times out while the container boots, so we keep pinging with
// growing delays until the health endpoint answers.
type WakeUpConfig struct {
	URL         string
	MaxAttempts int
	InitialWait time.Duration
	Multiplier  float64
	Timeout     time.Duration // per-request timeout
	Client      *http.Client  // optional; defaults to http.DefaultClient
}

type WakeUpResult struct {
	Attempts int
	Awake    bool
	Elapsed  time.Duration
}

func (c *WakeUpConfig) withDefaults() WakeUpConfig {
	out := *c
	if out.MaxAttempts <= 0 {
		out.MaxAttempts = 6
	}
	if out.InitialWait <= 0 {
		out.InitialWait = 2 * time.Second
	}
	if out.Multiplier < 1 {
		out.Multiplier = 2
	}
	if out.Timeout <= 0 {
		out.Timeout = 10 * time.Second
	}
	if out.Client == nil {
		out.Client = http.DefaultClient
	}
	return out
}

// WakeUp pings cfg.URL until it returns a 2xx or attempts run out.
// The wait between attempts starts at InitialWait and is multiplied by
// Multiplier each round. A non-2xx status counts as a failed attempt.
func WakeUp(ctx context.Context, cfg WakeUpConfig) (*WakeUpResult, error) {
	c := cfg.withDefaults()
	if c.URL == "" {
		return nil, fmt.Errorf("wakeup: url required")
	}

	start := time.Now()
	wait := c.InitialWait
	res := &WakeUpResult{}

	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		res.Attempts = attempt

		reqCtx, cancel := context.WithTimeout(ctx, c.Timeout)
		req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.URL, nil)
		if err != nil {
			cancel()
			res.Elapsed = time.Since(start)
			return res, fmt.Errorf("wakeup: build request: %w", err)
		}
		resp, err := c.Client.Do(req)
		cancel()

		if err == nil {
			status := resp.StatusCode
			resp.Body.Close()
			if status >= 200 && status < 300 {
				res.Awake = true
				res.Elapsed = time.Since(start)
				return res, nil
			}
		}

		if attempt == c.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			res.Elapsed = time.Since(start)
			return res, ctx.Err()
		case <-time.After(wait):
		}
		wait = time.Duration(float64(wait) * c.Multiplier)
	}

	res.Elapsed = time.Since(start)
	return res, fmt.Errorf("wakeup: service did not respond after %d attempts", res.Attempts)
}
