// Package gemini implements semantic email comparison using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mzaleski/proofcheck"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// mockPassThreshold is the keyword-overlap ratio at or above which a
// mock-mode field is considered a match.
const mockPassThreshold = 0.3

// Ensure Comparator implements proofcheck.SemanticComparator at compile time.
var _ proofcheck.SemanticComparator = (*Comparator)(nil)

// Comparator implements proofcheck.SemanticComparator using Google Gemini.
// In mock mode it never calls the model and instead derives a deterministic
// keyword-overlap result, flagged via SemanticResult.MockMode.
type Comparator struct {
	client   *genai.Client
	mockMode bool
}

// Option configures a Comparator.
type Option func(*Comparator)

// WithMockMode makes the comparator compute a deterministic heuristic
// result locally instead of calling Gemini. Useful when no API key is
// available.
func WithMockMode() Option {
	return func(c *Comparator) { c.mockMode = true }
}

// NewComparator creates a new Comparator. The client may be nil when
// WithMockMode is set.
func NewComparator(client *genai.Client, opts ...Option) *Comparator {
	c := &Comparator{client: client}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compare evaluates whether the email conveys the same message as the
// reference approval document.
func (c *Comparator) Compare(ctx context.Context, referenceText, emailText string) (*proofcheck.SemanticResult, error) {
	if strings.TrimSpace(referenceText) == "" {
		return nil, proofcheck.Errorf(proofcheck.EINVALID, "reference text required")
	}
	if strings.TrimSpace(emailText) == "" {
		return nil, proofcheck.Errorf(proofcheck.EINVALID, "email text required")
	}

	if c.mockMode {
		return mockCompare(referenceText, emailText), nil
	}
	if c.client == nil {
		return nil, proofcheck.Errorf(proofcheck.EINVALID, "gemini client required")
	}

	prompt := BuildUserPrompt(referenceText, emailText)
	config := BuildConfig()

	result, err := c.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, proofcheck.Errorf(proofcheck.EINTERNAL, "gemini returned nil result")
	}

	return ParseResponse(result.Text())
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a marketing compliance reviewer. Compare a marketing email against its approved reference document and judge whether the email's headings, body copy, and offer convey the same message. Respond with JSON only, matching this shape: {\"headings\": {\"status\": \"PASS\"|\"FAIL\", \"confidence\": 0.0-1.0, \"explanation\": string, \"issues\": [string]}, \"body_copy\": {...}, \"offer\": {...}, \"overall_match\": bool, \"summary\": string}. List issues only for fields that fail.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildUserPrompt builds the user prompt containing the reference document
// and the extracted email text.
func BuildUserPrompt(referenceText, emailText string) string {
	var sb strings.Builder
	sb.WriteString("<reference>\n")
	sb.WriteString(referenceText)
	sb.WriteString("\n</reference>\n\n")
	sb.WriteString("<email>\n")
	sb.WriteString(emailText)
	sb.WriteString("\n</email>\n\n")
	sb.WriteString("Compare the email against the reference document.")
	return sb.String()
}

// semanticResponse is the wire shape Gemini is instructed to return.
type semanticResponse struct {
	Headings     fieldResponse `json:"headings"`
	BodyCopy     fieldResponse `json:"body_copy"`
	Offer        fieldResponse `json:"offer"`
	OverallMatch bool          `json:"overall_match"`
	Summary      string        `json:"summary"`
}

type fieldResponse struct {
	Status      string   `json:"status"`
	Confidence  float64  `json:"confidence"`
	Explanation string   `json:"explanation"`
	Issues      []string `json:"issues"`
}

// ParseResponse parses a model response into a SemanticResult. It tolerates
// a Markdown code fence around the JSON body.
func ParseResponse(text string) (*proofcheck.SemanticResult, error) {
	text = stripCodeFence(text)

	var resp semanticResponse
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		return nil, proofcheck.Errorf(proofcheck.EINTERNAL, "invalid gemini response: %v", err)
	}

	headings, err := resp.Headings.toResult("headings")
	if err != nil {
		return nil, err
	}
	bodyCopy, err := resp.BodyCopy.toResult("body_copy")
	if err != nil {
		return nil, err
	}
	offer, err := resp.Offer.toResult("offer")
	if err != nil {
		return nil, err
	}

	return &proofcheck.SemanticResult{
		Headings:     headings,
		BodyCopy:     bodyCopy,
		Offer:        offer,
		OverallMatch: resp.OverallMatch,
		Summary:      resp.Summary,
	}, nil
}

func (f fieldResponse) toResult(name string) (proofcheck.SemanticFieldResult, error) {
	var status proofcheck.Status
	switch strings.ToUpper(strings.TrimSpace(f.Status)) {
	case string(proofcheck.StatusPass):
		status = proofcheck.StatusPass
	case string(proofcheck.StatusFail):
		status = proofcheck.StatusFail
	default:
		return proofcheck.SemanticFieldResult{}, proofcheck.Errorf(proofcheck.EINTERNAL, "invalid %s status %q in gemini response", name, f.Status)
	}
	return proofcheck.SemanticFieldResult{
		Status:      status,
		Confidence:  f.Confidence,
		Explanation: f.Explanation,
		Issues:      f.Issues,
	}, nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

// mockCompare derives a deterministic result from keyword overlap between
// the reference document and the email text. All three fields share the
// overlap ratio so the outcome is reproducible without a model.
func mockCompare(referenceText, emailText string) *proofcheck.SemanticResult {
	ratio := overlapRatio(referenceText, emailText)

	status := proofcheck.StatusPass
	var issues []string
	if ratio < mockPassThreshold {
		status = proofcheck.StatusFail
		issues = []string{fmt.Sprintf("keyword overlap %.0f%% below %.0f%% threshold", ratio*100, mockPassThreshold*100)}
	}

	field := func(name string) proofcheck.SemanticFieldResult {
		return proofcheck.SemanticFieldResult{
			Status:      status,
			Confidence:  ratio,
			Explanation: fmt.Sprintf("heuristic %s comparison: %.0f%% keyword overlap", name, ratio*100),
			Issues:      issues,
		}
	}

	return &proofcheck.SemanticResult{
		Headings:     field("headings"),
		BodyCopy:     field("body copy"),
		Offer:        field("offer"),
		OverallMatch: status == proofcheck.StatusPass,
		Summary:      fmt.Sprintf("Heuristic comparison: %.0f%% of reference keywords appear in the email.", ratio*100),
		MockMode:     true,
	}
}

// overlapRatio returns the fraction of distinct reference keywords that
// appear in the email text. Words shorter than four characters are ignored.
func overlapRatio(referenceText, emailText string) float64 {
	ref := keywords(referenceText)
	if len(ref) == 0 {
		return 0
	}
	email := keywords(emailText)

	matched := 0
	for w := range ref {
		if email[w] {
			matched++
		}
	}
	return float64(matched) / float64(len(ref))
}

func keywords(text string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	set := make(map[string]bool)
	for _, w := range words {
		if len(w) >= 4 {
			set[w] = true
		}
	}
	return set
}
