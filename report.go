package proofcheck

import (
	"fmt"
	"strings"
)

// Issue origins.
const (
	IssueTypeFunction = "function"
	IssueTypeSemantic = "semantic"
)

// Issue severities. Rule-check violations are critical; semantic-field
// observations are warnings.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
)

// Issue is a single violation surfaced in the aggregated report.
type Issue struct {
	Type     string `json:"type"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// ReportMetadata records how the report was produced.
type ReportMetadata struct {
	FunctionChecksPassed  bool `json:"functionChecksPassed"`
	SemanticComparisonRan bool `json:"semanticComparisonRan"`
	SemanticMockMode      bool `json:"semanticMockMode"`
}

// Report is the terminal artifact of one comparison request. Field names
// are stable interchange contract: overall_status, exact_match_results,
// semantic_match_results, issues, summary, metadata.
type Report struct {
	OverallStatus        Status                 `json:"overall_status"`
	ExactMatchResults    map[string]CheckResult `json:"exact_match_results"`
	SemanticMatchResults *SemanticResult        `json:"semantic_match_results,omitempty"`
	Issues               []Issue                `json:"issues"`
	Summary              string                 `json:"summary"`
	Metadata             ReportMetadata         `json:"metadata"`
}

// BuildReport derives the overall status, flattens issues, and renders the
// summary. The rule-based layer is authoritative: when allPassed is false
// the report fails regardless of the semantic result. Otherwise the report
// fails when a semantic result is present and either its overall match flag
// is false or any of its per-field statuses is StatusFail.
func BuildReport(results map[string]CheckResult, semantic *SemanticResult, allPassed bool, semanticSkipped bool) *Report {
	report := &Report{
		OverallStatus:        StatusPass,
		ExactMatchResults:    results,
		SemanticMatchResults: semantic,
		Issues:               []Issue{},
		Metadata: ReportMetadata{
			FunctionChecksPassed:  allPassed,
			SemanticComparisonRan: semantic != nil,
			SemanticMockMode:      semantic != nil && semantic.MockMode,
		},
	}

	if !allPassed {
		report.OverallStatus = StatusFail
	} else if semantic != nil && (!semantic.OverallMatch || anySemanticFieldFailed(semantic)) {
		report.OverallStatus = StatusFail
	}

	for _, name := range CheckOrder {
		result, ok := results[name]
		if !ok {
			continue
		}
		for _, message := range result.Issues {
			report.Issues = append(report.Issues, Issue{
				Type:     IssueTypeFunction,
				Category: name,
				Message:  message,
				Severity: SeverityCritical,
			})
		}
	}

	if semantic != nil {
		for _, field := range semantic.Fields() {
			for _, message := range field.Result.Issues {
				report.Issues = append(report.Issues, Issue{
					Type:     IssueTypeSemantic,
					Category: field.Name,
					Message:  message,
					Severity: SeverityWarning,
				})
			}
		}
	}

	report.Summary = buildSummary(report, results, semantic, semanticSkipped)
	return report
}

func anySemanticFieldFailed(semantic *SemanticResult) bool {
	for _, field := range semantic.Fields() {
		if field.Result.Status == StatusFail {
			return true
		}
	}
	return false
}

// buildSummary renders the deterministic natural-language synopsis: verdict
// sentence, failed categories (or an all-pass sentence), and a semantic
// layer sentence. Pure string templating.
func buildSummary(report *Report, results map[string]CheckResult, semantic *SemanticResult, semanticSkipped bool) string {
	var sb strings.Builder

	if report.OverallStatus == StatusPass {
		sb.WriteString("Verification passed.")
	} else {
		sb.WriteString("Verification failed.")
	}

	var failed []string
	for _, name := range CheckOrder {
		if result, ok := results[name]; ok && result.Status == StatusFail {
			failed = append(failed, name)
		}
	}
	if len(failed) > 0 {
		fmt.Fprintf(&sb, " Failed checks: %s.", strings.Join(failed, ", "))
	} else {
		sb.WriteString(" All rule-based checks passed.")
	}

	switch {
	case semantic == nil || semanticSkipped:
		sb.WriteString(" Semantic comparison was skipped.")
	case semantic.MockMode && semantic.OverallMatch:
		sb.WriteString(" Semantic comparison ran in mock mode (heuristic, no model call) and reported a match.")
	case semantic.MockMode:
		sb.WriteString(" Semantic comparison ran in mock mode (heuristic, no model call) and reported a mismatch.")
	case semantic.OverallMatch && !anySemanticFieldFailed(semantic):
		sb.WriteString(" Semantic comparison reported a match.")
	default:
		sb.WriteString(" Semantic comparison reported a mismatch.")
	}

	return sb.String()
}
