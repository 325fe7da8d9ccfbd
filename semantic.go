package proofcheck

import "context"

// SemanticFieldResult is the outcome of one AI-compared field.
type SemanticFieldResult struct {
	Status      Status   `json:"status"`
	Confidence  float64  `json:"confidence"`
	Explanation string   `json:"explanation"`
	Issues      []string `json:"issues,omitempty"`
}

// SemanticResult is the outcome of an AI-based semantic comparison between
// the reference approval document and the email content. A nil
// *SemanticResult means the comparison was skipped, which is distinct from
// a result with MockMode set (the comparator ran in a degraded heuristic
// mode and the report summary must say so).
type SemanticResult struct {
	Headings     SemanticFieldResult `json:"headings"`
	BodyCopy     SemanticFieldResult `json:"body_copy"`
	Offer        SemanticFieldResult `json:"offer"`
	OverallMatch bool                `json:"overall_match"`
	Summary      string              `json:"summary"`
	MockMode     bool                `json:"mock_mode,omitempty"`
}

// SemanticField pairs a field name with its result, preserving the fixed
// reporting order.
type SemanticField struct {
	Name   string
	Result SemanticFieldResult
}

// Fields returns the per-field results in reporting order.
func (r *SemanticResult) Fields() []SemanticField {
	return []SemanticField{
		{Name: "headings", Result: r.Headings},
		{Name: "body_copy", Result: r.BodyCopy},
		{Name: "offer", Result: r.Offer},
	}
}

// SemanticComparator performs an AI-based semantic comparison. The engine
// never calls it when any deterministic check fails; implementations may
// run in a mock mode that produces heuristic results without a model call.
type SemanticComparator interface {
	Compare(ctx context.Context, referenceText, emailText string) (*SemanticResult, error)
}
