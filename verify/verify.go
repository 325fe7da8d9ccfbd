// Package verify orchestrates email verification. It coordinates fetching,
// content extraction, rule evaluation, the gated semantic comparison, and
// report aggregation. The engine itself stays stateless: the reference text
// is a per-call parameter and never read from storage here.
package verify

import (
	"context"
	"net/url"
	"time"

	"github.com/mzaleski/proofcheck"
	"github.com/mzaleski/proofcheck/bloom"
	"golang.org/x/sync/errgroup"
)

// Dedup filter sizing for batch verification.
const (
	dedupFalsePositiveRate = 0.01
	defaultConcurrency     = 4
)

// Verifier composes the verification pipeline. Zero-value optional fields
// get working defaults: a fresh Comparator and Canonicalizer, no semantic
// layer, no rate limiting.
type Verifier struct {
	Fetcher       proofcheck.Fetcher
	Extractor     proofcheck.EmailExtractor
	Comparator    *proofcheck.Comparator
	Semantic      proofcheck.SemanticComparator
	Canonicalizer *proofcheck.Canonicalizer
	RateLimiter   *DomainLimiter
	Concurrency   int
	RetryDelays   []time.Duration
}

// URLResult holds the outcome of verifying a single URL in a batch.
// Duplicate entries are skipped without fetching and carry no report.
type URLResult struct {
	URL       string
	Report    *proofcheck.Report
	Duplicate bool
	Err       error
}

// Verify runs the full pipeline on already-fetched markup: extract, evaluate
// the five rule checks, run the semantic comparison only when every
// deterministic check passed, and aggregate the report.
//
// A semantic collaborator failure degrades the report to "skipped" rather
// than failing the verification; the deterministic layer is authoritative.
func (v *Verifier) Verify(ctx context.Context, referenceText, markup string, config proofcheck.ComparisonConfig) (*proofcheck.Report, error) {
	content, err := v.Extractor.Extract(markup)
	if err != nil {
		return nil, err
	}

	comparator := v.Comparator
	if comparator == nil {
		comparator = proofcheck.NewComparator()
	}

	results := comparator.Evaluate(referenceText, content, config)
	allPassed := proofcheck.AllPassed(results)

	var semantic *proofcheck.SemanticResult
	skipped := true
	if allPassed && v.Semantic != nil {
		if result, err := v.Semantic.Compare(ctx, referenceText, content.Text); err == nil {
			semantic = result
			skipped = false
		}
	}

	return proofcheck.BuildReport(results, semantic, allPassed, skipped), nil
}

// VerifyURL fetches the markup at rawURL and verifies it. The fetch honors
// the per-domain rate limiter when one is configured and retries transient
// failures with backoff.
func (v *Verifier) VerifyURL(ctx context.Context, referenceText, rawURL string, config proofcheck.ComparisonConfig) (*proofcheck.Report, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, proofcheck.Errorf(proofcheck.EINVALID, "invalid url %q", rawURL)
	}

	if v.RateLimiter != nil {
		if err := v.RateLimiter.Wait(ctx, parsed.Host); err != nil {
			return nil, err
		}
	}

	delays := v.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	markup, err := fetchWithRetry(ctx, v.Fetcher, rawURL, delays)
	if err != nil {
		return nil, err
	}

	return v.Verify(ctx, referenceText, markup, config)
}

// VerifyAll verifies a batch of URLs against one reference document.
// Results come back in input order. URLs that canonicalize to an
// already-seen key are marked Duplicate and not fetched; per-URL fetch or
// parse failures land in that entry's Err without aborting the batch.
func (v *Verifier) VerifyAll(ctx context.Context, referenceText string, urls []string, config proofcheck.ComparisonConfig) ([]URLResult, error) {
	canon := v.Canonicalizer
	if canon == nil {
		canon = proofcheck.NewCanonicalizer()
	}

	expected := uint(len(urls))
	if expected == 0 {
		expected = 1
	}
	seen := bloom.NewFilter(expected, dedupFalsePositiveRate)

	concurrency := v.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	results := make([]URLResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, rawURL := range urls {
		results[i].URL = rawURL

		key := canon.Key(rawURL)
		if seen.Seen(key) {
			results[i].Duplicate = true
			continue
		}
		seen.Add(key)

		g.Go(func() error {
			report, err := v.VerifyURL(gctx, referenceText, rawURL, config)
			results[i].Report = report
			results[i].Err = err
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
