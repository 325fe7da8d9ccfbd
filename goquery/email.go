// Package goquery provides a goquery-based implementation of
// proofcheck.EmailExtractor. It converts rendered marketing-email markup
// into the normalized content model: visible text, CTA candidates,
// outbound links, footer text, and the unsubscribe signal.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mzaleski/proofcheck"
	"golang.org/x/net/html"
)

// DefaultButtonSelectors match anchors that look like buttons: class names
// containing button/btn/cta, an inline style indicating a background fill,
// or anchors nested inside elements carrying those classes.
var DefaultButtonSelectors = []string{
	`a[class*="button"]`,
	`a[class*="btn"]`,
	`a[class*="cta"]`,
	`a[style*="background"]`,
	`[class*="button"] a`,
	`[class*="btn"] a`,
	`[class*="cta"] a`,
}

// DefaultActionVerbs are the verbs a plain anchor's display text may start
// with to qualify as a CTA candidate.
var DefaultActionVerbs = []string{
	"shop", "buy", "get", "learn", "discover", "start", "try", "sign",
	"register", "subscribe", "download", "view", "see", "explore",
	"claim", "grab", "save",
}

// DefaultFooterSelectors are tried in order when locating the footer block.
var DefaultFooterSelectors = []string{
	"footer",
	`[class*="footer"]`,
	`[id*="footer"]`,
}

// footerFallbackLines is how many trailing non-blank text lines stand in
// for the footer when no footer-like element exists. A deliberate
// degraded-mode approximation, not an error.
const footerFallbackLines = 5

// removedElements are stripped from the document before any text is read.
const removedElements = "script, style, head, meta, link"

var (
	unsubscribeTextMarkers = []string{"unsubscribe", "opt out", "opt-out"}
	unsubscribeLinkMarkers = []string{"unsubscribe", "optout", "opt-out"}
)

// Personalization-token patterns removed from visible text: {{...}},
// [[...]], %UPPER_SNAKE%, ${...}, and vendor-namespaced tags that survived
// parsing as literal text.
var tokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\{\{[^}]*\}\}`),
	regexp.MustCompile(`\[\[[^\]]*\]\]`),
	regexp.MustCompile(`%[A-Z0-9_]+%`),
	regexp.MustCompile(`\$\{[^}]*\}`),
	regexp.MustCompile(`</?[A-Za-z][\w.-]*:[^>]*>`),
}

var horizontalSpace = regexp.MustCompile(`[ \t\x{00a0}]+`)

// Ensure EmailExtractor implements proofcheck.EmailExtractor at compile time.
var _ proofcheck.EmailExtractor = (*EmailExtractor)(nil)

// EmailExtractor extracts the normalized content model from email markup.
// The heuristic tables are injected at construction time so they can be
// overridden in tests without touching the matching logic.
type EmailExtractor struct {
	canonicalizer   *proofcheck.Canonicalizer
	buttonSelectors []string
	actionVerbs     []string
	footerSelectors []string
}

// Option configures an EmailExtractor.
type Option func(*EmailExtractor)

// WithCanonicalizer sets the URL canonicalizer.
func WithCanonicalizer(c *proofcheck.Canonicalizer) Option {
	return func(e *EmailExtractor) { e.canonicalizer = c }
}

// WithButtonSelectors overrides the button-like CSS selector table.
func WithButtonSelectors(selectors []string) Option {
	return func(e *EmailExtractor) { e.buttonSelectors = selectors }
}

// WithActionVerbs overrides the action-verb table.
func WithActionVerbs(verbs []string) Option {
	return func(e *EmailExtractor) { e.actionVerbs = verbs }
}

// WithFooterSelectors overrides the footer selector table.
func WithFooterSelectors(selectors []string) Option {
	return func(e *EmailExtractor) { e.footerSelectors = selectors }
}

// NewEmailExtractor creates an EmailExtractor with the default tables.
func NewEmailExtractor(opts ...Option) *EmailExtractor {
	e := &EmailExtractor{
		canonicalizer:   proofcheck.NewCanonicalizer(),
		buttonSelectors: DefaultButtonSelectors,
		actionVerbs:     DefaultActionVerbs,
		footerSelectors: DefaultFooterSelectors,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses the markup and returns the normalized content model.
// It fails with EUNPROCESSABLE only when the markup cannot be parsed at
// all; missing expected elements yield empty/default fields.
func (e *EmailExtractor) Extract(markup string) (*proofcheck.EmailContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, proofcheck.Errorf(proofcheck.EUNPROCESSABLE, "failed to parse markup: %v", err)
	}

	doc.Find(removedElements).Remove()

	text := normalizeText(selectionText(doc.Selection))

	content := &proofcheck.EmailContent{
		Text:          text,
		CTACandidates: e.extractCTACandidates(doc),
		Links:         e.extractLinks(doc),
		Unsubscribe:   extractUnsubscribeSignal(doc, text),
		FooterText:    e.extractFooter(doc, text),
	}
	return content, nil
}

// extractCTACandidates runs the two detection passes. Pass 1 collects
// button-like anchors, pass 2 collects remaining anchors whose display text
// starts with an action verb. Both passes walk anchors in document order;
// candidates are de-duplicated by exact display text and pass 1 wins.
func (e *EmailExtractor) extractCTACandidates(doc *goquery.Document) []proofcheck.CTACandidate {
	buttonLike := make(map[*html.Node]bool)
	for _, selector := range e.buttonSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			// Injected selector tables may match non-anchor elements;
			// only anchors qualify as candidates.
			if node := sel.Get(0); node.Data == "a" {
				buttonLike[node] = true
			}
		})
	}

	seen := make(map[string]bool)
	var candidates []proofcheck.CTACandidate

	add := func(sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if text == "" || href == "" || seen[text] {
			return
		}
		seen[text] = true
		candidates = append(candidates, proofcheck.CTACandidate{
			Text:         text,
			URL:          href,
			CanonicalURL: e.canonicalizer.Canonicalize(href),
		})
	}

	anchors := doc.Find("a[href]")

	anchors.Each(func(_ int, sel *goquery.Selection) {
		if buttonLike[sel.Get(0)] {
			add(sel)
		}
	})

	anchors.Each(func(_ int, sel *goquery.Selection) {
		if buttonLike[sel.Get(0)] {
			return
		}
		if e.startsWithActionVerb(sel.Text()) {
			add(sel)
		}
	})

	return candidates
}

func (e *EmailExtractor) startsWithActionVerb(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, verb := range e.actionVerbs {
		if strings.HasPrefix(lower, verb) {
			return true
		}
	}
	return false
}

// extractLinks returns every anchor with a non-empty href that is not a
// mailto: or tel: link, in document order. Empty display text is replaced
// with the NoLinkText placeholder.
func (e *EmailExtractor) extractLinks(doc *goquery.Document) []proofcheck.Link {
	var links []proofcheck.Link
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" || isContactLink(href) {
			return
		}
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			text = proofcheck.NoLinkText
		}
		links = append(links, proofcheck.Link{
			Text:         text,
			URL:          href,
			CanonicalURL: e.canonicalizer.Canonicalize(href),
		})
	})
	return links
}

func isContactLink(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "tel:")
}

// extractUnsubscribeSignal computes the two independent booleans: a text
// match anywhere in the visible text and a link match on any anchor href.
func extractUnsubscribeSignal(doc *goquery.Document, text string) proofcheck.UnsubscribeSignal {
	var signal proofcheck.UnsubscribeSignal

	lowerText := strings.ToLower(text)
	for _, marker := range unsubscribeTextMarkers {
		if strings.Contains(lowerText, marker) {
			signal.HasTextMatch = true
			break
		}
	}

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href := strings.ToLower(sel.AttrOr("href", ""))
		for _, marker := range unsubscribeLinkMarkers {
			if strings.Contains(href, marker) {
				signal.HasLinkMatch = true
				return false
			}
		}
		return true
	})

	return signal
}

// extractFooter tries the footer selectors in order and takes the first
// match's trimmed text. When none match it falls back to the last
// footerFallbackLines non-blank lines of the full visible text.
func (e *EmailExtractor) extractFooter(doc *goquery.Document, text string) string {
	for _, selector := range e.footerSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 {
			return normalizeText(selectionText(sel))
		}
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > footerFallbackLines {
		lines = lines[len(lines)-footerFallbackLines:]
	}
	return strings.Join(lines, "\n")
}

// selectionText walks the selection's nodes and returns the raw visible
// text with newlines at block-element boundaries, skipping
// vendor-namespaced elements (e.g. <sfmc:personalization>).
func selectionText(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, node := range sel.Nodes {
		writeVisibleText(&sb, node)
	}
	return sb.String()
}

var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"div": true, "footer": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "ol": true, "p": true, "section": true, "table": true,
	"td": true, "tr": true, "ul": true,
}

func writeVisibleText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if strings.Contains(n.Data, ":") {
			return
		}
		if n.Data == "br" {
			sb.WriteByte('\n')
			return
		}
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		sb.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeVisibleText(sb, c)
	}
	if block {
		sb.WriteByte('\n')
	}
}

// normalizeText strips personalization tokens, collapses horizontal
// whitespace, trims every line, collapses blank-line runs, and trims the
// result.
func normalizeText(text string) string {
	for _, pattern := range tokenPatterns {
		text = pattern.ReplaceAllString(text, "")
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = horizontalSpace.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := true // collapses leading blanks too
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank {
				out = append(out, "")
			}
			blank = true
			continue
		}
		out = append(out, line)
		blank = false
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}
