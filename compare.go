package proofcheck

import (
	"fmt"
	"strings"
)

// Status is the outcome of a check or of a whole report.
type Status string

// Check and report outcomes.
const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// Check names, used as keys in the comparator's result map and as issue
// categories in the aggregated report.
const (
	CheckCTAText     = "cta_text"
	CheckCTAURL      = "cta_url"
	CheckUnsubscribe = "unsubscribe"
	CheckFooter      = "footer"
	CheckKeywords    = "keywords"
)

// CheckOrder fixes the evaluation and reporting order of the rule checks.
var CheckOrder = []string{CheckCTAText, CheckCTAURL, CheckUnsubscribe, CheckFooter, CheckKeywords}

// DefaultFooterTexts is the built-in legal/footer requirement applied when
// the caller configures no footer texts. An empty RequiredFooterTexts is
// deliberately not a vacuous pass.
var DefaultFooterTexts = []string{"all rights reserved", "privacy policy", "terms"}

// DefaultUnsubscribeText is the unsubscribe phrase searched for when the
// caller configures none.
const DefaultUnsubscribeText = "unsubscribe"

// ComparisonConfig configures one comparison call. Every list field may be
// empty: an empty CTA/URL/keyword list means the check passes vacuously,
// while an empty footer list falls back to DefaultFooterTexts.
type ComparisonConfig struct {
	RequiredCTATexts    []string `json:"requiredCtaTexts"`
	RequiredCTAURLs     []string `json:"requiredCtaUrls"`
	RequiredKeywords    []string `json:"requiredKeywords"`
	RequiredFooterTexts []string `json:"requiredFooterTexts"`
	UnsubscribeText     string   `json:"unsubscribeText"`
}

// CheckResult is the outcome of a single rule check. The string slices are
// populated only when meaningful for that check. Issues is empty exactly
// when Status is StatusPass.
type CheckResult struct {
	Status   Status   `json:"status"`
	Expected []string `json:"expected,omitempty"`
	Found    []string `json:"found,omitempty"`
	Matched  []string `json:"matched,omitempty"`
	Missing  []string `json:"missing,omitempty"`
	Issues   []string `json:"issues,omitempty"`
}

// LenientMatch is the tolerance policy shared by the CTA-text and CTA-URL
// checks: after trimming and lower-casing, a and b match when either is a
// substring of the other. This bidirectional containment is intentional
// leniency for minor copy differences ("Shop Now" matches "shop"), not
// exact equality.
func LenientMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// Comparator evaluates extracted email content against a reference document
// and a rule configuration. It is a pure function of its inputs and safe
// for unbounded concurrent use.
type Comparator struct {
	canonicalizer      *Canonicalizer
	defaultFooterTexts []string
}

// ComparatorOption configures a Comparator.
type ComparatorOption func(*Comparator)

// WithCanonicalizer sets the URL canonicalizer used by the CTA-URL check.
func WithCanonicalizer(c *Canonicalizer) ComparatorOption {
	return func(cmp *Comparator) { cmp.canonicalizer = c }
}

// WithDefaultFooterTexts overrides the built-in footer requirement table.
func WithDefaultFooterTexts(texts []string) ComparatorOption {
	return func(cmp *Comparator) { cmp.defaultFooterTexts = texts }
}

// NewComparator creates a Comparator with default tables.
func NewComparator(opts ...ComparatorOption) *Comparator {
	cmp := &Comparator{
		canonicalizer:      NewCanonicalizer(),
		defaultFooterTexts: DefaultFooterTexts,
	}
	for _, opt := range opts {
		opt(cmp)
	}
	return cmp
}

// Evaluate runs the five rule checks and returns a map keyed by check name.
// All checks are computed even when earlier ones fail. Missing data is
// reported as StatusFail with an explanatory issue, never as an error.
func (cmp *Comparator) Evaluate(referenceText string, content *EmailContent, config ComparisonConfig) map[string]CheckResult {
	return map[string]CheckResult{
		CheckCTAText:     cmp.checkCTAText(content, config),
		CheckCTAURL:      cmp.checkCTAURL(content, config),
		CheckUnsubscribe: cmp.checkUnsubscribe(content, config),
		CheckFooter:      cmp.checkFooter(content, config),
		CheckKeywords:    cmp.checkKeywords(referenceText, content, config),
	}
}

// AllPassed reports whether every check in the result map passed.
func AllPassed(results map[string]CheckResult) bool {
	for _, result := range results {
		if result.Status != StatusPass {
			return false
		}
	}
	return true
}

func (cmp *Comparator) checkCTAText(content *EmailContent, config ComparisonConfig) CheckResult {
	found := make([]string, 0, len(content.CTACandidates))
	for _, cta := range content.CTACandidates {
		found = append(found, cta.Text)
	}

	// Vacuous pass: nothing required, report candidates for visibility.
	if len(config.RequiredCTATexts) == 0 {
		return CheckResult{Status: StatusPass, Found: found}
	}

	result := CheckResult{
		Status:   StatusPass,
		Expected: config.RequiredCTATexts,
		Found:    found,
	}
	for _, expected := range config.RequiredCTATexts {
		if matchAny(expected, found) {
			result.Matched = append(result.Matched, expected)
			continue
		}
		result.Missing = append(result.Missing, expected)
		result.Issues = append(result.Issues, fmt.Sprintf("expected CTA %q not found in email", expected))
	}
	if len(result.Missing) > 0 {
		result.Status = StatusFail
	}
	return result
}

func (cmp *Comparator) checkCTAURL(content *EmailContent, config ComparisonConfig) CheckResult {
	found := make([]string, 0, len(content.CTACandidates))
	for _, cta := range content.CTACandidates {
		found = append(found, cmp.canonicalizer.Key(cta.URL))
	}

	if len(config.RequiredCTAURLs) == 0 {
		return CheckResult{Status: StatusPass, Found: found}
	}

	result := CheckResult{
		Status:   StatusPass,
		Expected: config.RequiredCTAURLs,
		Found:    found,
	}
	for _, expected := range config.RequiredCTAURLs {
		if matchAny(cmp.canonicalizer.Key(expected), found) {
			result.Matched = append(result.Matched, expected)
			continue
		}
		result.Missing = append(result.Missing, expected)
		result.Issues = append(result.Issues, fmt.Sprintf("expected CTA URL %q not found in email", expected))
	}
	if len(result.Missing) > 0 {
		result.Status = StatusFail
	}
	return result
}

func (cmp *Comparator) checkUnsubscribe(content *EmailContent, config ComparisonConfig) CheckResult {
	phrase := config.UnsubscribeText
	if phrase == "" {
		phrase = DefaultUnsubscribeText
	}

	textHasPhrase := strings.Contains(strings.ToLower(content.Text), strings.ToLower(phrase))
	if content.Unsubscribe.HasLinkMatch || content.Unsubscribe.HasTextMatch || textHasPhrase {
		result := CheckResult{Status: StatusPass, Expected: []string{phrase}}
		if content.Unsubscribe.HasLinkMatch {
			result.Found = append(result.Found, "unsubscribe link")
		}
		if content.Unsubscribe.HasTextMatch || textHasPhrase {
			result.Found = append(result.Found, "unsubscribe text")
		}
		return result
	}

	return CheckResult{
		Status:   StatusFail,
		Expected: []string{phrase},
		Issues:   []string{"no unsubscribe link or text found: email is not compliant"},
	}
}

// checkFooter searches the footer text concatenated with the full email
// text, covering compliance text living outside the detected footer block.
// An explicit non-empty requirement list passes when at least one entry is
// found; the built-in default set requires every entry. The asymmetry is
// observed behavior and preserved deliberately.
func (cmp *Comparator) checkFooter(content *EmailContent, config ComparisonConfig) CheckResult {
	searchText := strings.ToLower(content.FooterText + "\n" + content.Text)

	explicit := len(config.RequiredFooterTexts) > 0
	required := config.RequiredFooterTexts
	if !explicit {
		required = cmp.defaultFooterTexts
	}

	result := CheckResult{Status: StatusPass, Expected: required}
	for _, text := range required {
		if strings.Contains(searchText, strings.ToLower(text)) {
			result.Matched = append(result.Matched, text)
		} else {
			result.Missing = append(result.Missing, text)
		}
	}

	if explicit {
		if len(result.Matched) == 0 {
			result.Status = StatusFail
			result.Issues = append(result.Issues, "none of the required footer texts were found in the email")
		}
		return result
	}

	if len(result.Missing) > 0 {
		result.Status = StatusFail
		for _, text := range result.Missing {
			result.Issues = append(result.Issues, fmt.Sprintf("required legal text %q not found in email", text))
		}
	}
	return result
}

func (cmp *Comparator) checkKeywords(referenceText string, content *EmailContent, config ComparisonConfig) CheckResult {
	if len(config.RequiredKeywords) == 0 {
		return CheckResult{Status: StatusPass}
	}

	emailText := strings.ToLower(content.Text)
	refText := strings.ToLower(referenceText)

	result := CheckResult{Status: StatusPass, Expected: config.RequiredKeywords}
	for _, keyword := range config.RequiredKeywords {
		if strings.Contains(emailText, strings.ToLower(keyword)) {
			result.Matched = append(result.Matched, keyword)
			continue
		}
		result.Missing = append(result.Missing, keyword)
		issue := fmt.Sprintf("required keyword %q not found in email", keyword)
		if strings.Contains(refText, strings.ToLower(keyword)) {
			issue += " (present in the approval document)"
		}
		result.Issues = append(result.Issues, issue)
	}
	if len(result.Missing) > 0 {
		result.Status = StatusFail
	}
	return result
}

// matchAny reports whether expected leniently matches any candidate.
func matchAny(expected string, candidates []string) bool {
	for _, candidate := range candidates {
		if LenientMatch(expected, candidate) {
			return true
		}
	}
	return false
}
