package verify

import (
	"context"
	"time"

	"github.com/mzaleski/proofcheck"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// fetchWithRetry fetches a URL, retrying once per delay on failure. Context
// cancellation aborts both the wait and further attempts.
func fetchWithRetry(ctx context.Context, fetcher proofcheck.Fetcher, url string, delays []time.Duration) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= len(delays); attempt++ {
		markup, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return markup, nil
		}
		lastErr = err

		if attempt == len(delays) {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return "", lastErr
}
