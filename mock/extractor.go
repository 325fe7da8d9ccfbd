package mock

import "github.com/mzaleski/proofcheck"

var _ proofcheck.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of proofcheck.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*proofcheck.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*proofcheck.ExtractResult, error) {
	return e.ExtractFn(html)
}
