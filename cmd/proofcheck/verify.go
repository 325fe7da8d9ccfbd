package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mzaleski/proofcheck"
	"github.com/mzaleski/proofcheck/verify"
)

// urlReport is the JSON output shape for one verified URL.
type urlReport struct {
	URL       string             `json:"url"`
	Duplicate bool               `json:"duplicate,omitempty"`
	Error     string             `json:"error,omitempty"`
	Report    *proofcheck.Report `json:"report,omitempty"`
}

// Run executes the verify command.
func (c *VerifyCmd) Run(deps *Dependencies) error {
	refs, err := deps.References.FindReferences(deps.Ctx, proofcheck.ReferenceFilter{Name: &c.Reference})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", proofcheck.ErrorMessage(err))
		return err
	}
	if len(refs) == 0 {
		fmt.Fprintf(deps.Stderr, "error: reference %q not found. Use 'proofcheck list' to see available references.\n", c.Reference)
		return proofcheck.Errorf(proofcheck.ENOTFOUND, "reference %q not found", c.Reference)
	}
	ref := refs[0]

	config, err := loadConfig(c.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", proofcheck.ErrorMessage(err))
		return err
	}

	results, err := deps.Verifier.VerifyAll(deps.Ctx, ref.Content, c.URLs, config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", proofcheck.ErrorMessage(err))
		return err
	}

	if c.JSON {
		if err := printJSON(deps, results); err != nil {
			return err
		}
	} else {
		printText(deps, results)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil || (r.Report != nil && r.Report.OverallStatus == proofcheck.StatusFail) {
			failed++
		}
	}
	if failed > 0 {
		return proofcheck.Errorf(proofcheck.EINVALID, "%d of %d urls failed verification", failed, len(results))
	}
	return nil
}

// loadConfig reads the comparison rules from a JSON file. An empty path
// yields the zero config: vacuous CTA/keyword checks, default footer and
// unsubscribe rules.
func loadConfig(path string) (proofcheck.ComparisonConfig, error) {
	var config proofcheck.ComparisonConfig
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config, proofcheck.Errorf(proofcheck.ENOTFOUND, "cannot read config file %q: %v", path, err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return config, proofcheck.Errorf(proofcheck.EINVALID, "invalid config file %q: %v", path, err)
	}
	return config, nil
}

func printJSON(deps *Dependencies, results []verify.URLResult) error {
	out := make([]urlReport, 0, len(results))
	for _, r := range results {
		entry := urlReport{URL: r.URL, Duplicate: r.Duplicate, Report: r.Report}
		if r.Err != nil {
			entry.Error = proofcheck.ErrorMessage(r.Err)
		}
		out = append(out, entry)
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printText(deps *Dependencies, results []verify.URLResult) {
	for _, r := range results {
		switch {
		case r.Duplicate:
			fmt.Fprintf(deps.Stdout, "SKIP  %s (duplicate)\n", r.URL)
		case r.Err != nil:
			fmt.Fprintf(deps.Stdout, "ERROR %s: %s\n", r.URL, proofcheck.ErrorMessage(r.Err))
		default:
			fmt.Fprintf(deps.Stdout, "%-5s %s\n", r.Report.OverallStatus, r.URL)
			fmt.Fprintf(deps.Stdout, "      %s\n", r.Report.Summary)
			for _, issue := range r.Report.Issues {
				fmt.Fprintf(deps.Stdout, "      [%s/%s] %s: %s\n", issue.Severity, issue.Type, issue.Category, issue.Message)
			}
		}
	}
}
