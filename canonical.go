package proofcheck

import (
	"net/url"
	"strings"
)

// DefaultTrackingParams lists query-parameter names (exact or prefix,
// case-insensitive) that carry analytics attribution and are semantically
// irrelevant to destination identity.
var DefaultTrackingParams = []string{
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
	"elqTrack", "elqTrackId",
	"mkt_tok",
	"mc_cid", "mc_eid",
	"sfmc_id", "subscriber_id", "contact_id", "lead_id",
	"_hsenc", "_hsmi", "hsa_",
	"fbclid", "gclid", "msclkid",
	"trk", "track", "tracking",
	"ref", "source",
}

// Canonicalizer normalizes URLs for comparison. It provides two distinct
// normalization levels:
//
//   - Canonicalize strips tracking parameters but otherwise preserves the
//     URL (scheme, host, path, remaining query).
//   - Key is the stricter equality form: lower-cased scheme and host,
//     trailing slash stripped from the path, query discarded entirely.
//
// Both are pure and total: an unparseable URL yields the original string
// lower-cased with any trailing slash stripped, as a best-effort fallback.
type Canonicalizer struct {
	trackingParams []string
}

// NewCanonicalizer creates a Canonicalizer. With no arguments it uses
// DefaultTrackingParams; tests can inject a custom table.
func NewCanonicalizer(trackingParams ...string) *Canonicalizer {
	if len(trackingParams) == 0 {
		trackingParams = DefaultTrackingParams
	}
	return &Canonicalizer{trackingParams: trackingParams}
}

// Canonicalize returns the URL with tracking parameters removed.
// A query parameter is removed when its name exactly matches, or starts
// with (case-insensitively), any entry in the tracking-parameter table.
func (c *Canonicalizer) Canonicalize(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fallbackForm(rawURL)
	}

	query := u.Query()
	for name := range query {
		if c.isTrackingParam(name) {
			query.Del(name)
		}
	}
	u.RawQuery = query.Encode()

	return u.String()
}

// Key returns the strict canonical form used for equality comparisons.
func (c *Canonicalizer) Key(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fallbackForm(rawURL)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""

	return u.String()
}

func (c *Canonicalizer) isTrackingParam(name string) bool {
	lower := strings.ToLower(name)
	for _, param := range c.trackingParams {
		if strings.HasPrefix(lower, strings.ToLower(param)) {
			return true
		}
	}
	return false
}

func fallbackForm(rawURL string) string {
	return strings.ToLower(strings.TrimSuffix(rawURL, "/"))
}
