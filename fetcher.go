package proofcheck

import "context"

// Fetcher retrieves rendered email markup from URLs.
// The engine performs no network I/O itself; implementations must tolerate
// arbitrarily large responses without crashing the host process.
type Fetcher interface {
	// Fetch retrieves the raw markup at the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (markup string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
