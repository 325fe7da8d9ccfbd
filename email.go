package proofcheck

// EmailContent is the normalized content model extracted from a rendered
// marketing email. It is produced once per fetched email and is immutable
// thereafter: Text and FooterText are plain strings with no markup, and
// every CanonicalURL is either a valid URL or a best-effort-preserved
// original string.
type EmailContent struct {
	// Text is the visible plain-text body: personalization tokens removed,
	// whitespace collapsed, trimmed.
	Text string `json:"text"`

	// CTACandidates holds call-to-action candidates in document order,
	// de-duplicated by display text.
	CTACandidates []CTACandidate `json:"ctaCandidates"`

	// Links holds every non-mailto/tel anchor in document order.
	Links []Link `json:"links"`

	// Unsubscribe carries the two independent unsubscribe signals.
	Unsubscribe UnsubscribeSignal `json:"unsubscribeSignal"`

	// FooterText is the best-effort trailing content block.
	FooterText string `json:"footerText"`
}

// CTACandidate is an anchor that looks like a call-to-action.
type CTACandidate struct {
	Text         string `json:"text"`
	URL          string `json:"url"`
	CanonicalURL string `json:"canonicalUrl"`
}

// Link is an outbound anchor found in the email body.
type Link struct {
	Text         string `json:"text"`
	URL          string `json:"url"`
	CanonicalURL string `json:"canonicalUrl"`
}

// UnsubscribeSignal reports how an unsubscribe mechanism was detected.
// The two booleans are independent and never conflated: an email may carry
// an unsubscribe link whose display text never mentions unsubscribing.
type UnsubscribeSignal struct {
	HasLinkMatch bool `json:"hasLinkMatch"`
	HasTextMatch bool `json:"hasTextMatch"`
}

// NoLinkText is the placeholder recorded for anchors with empty display text.
const NoLinkText = "[no text]"

// EmailExtractor converts raw rendered-email markup into the normalized
// content model.
type EmailExtractor interface {
	// Extract parses the markup and returns the normalized content.
	// It fails with EUNPROCESSABLE only when the input cannot be parsed as
	// markup at all; missing expected elements yield empty/default fields.
	Extract(markup string) (*EmailContent, error)
}
