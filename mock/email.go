package mock

import "github.com/mzaleski/proofcheck"

var _ proofcheck.EmailExtractor = (*EmailExtractor)(nil)

// EmailExtractor is a mock implementation of proofcheck.EmailExtractor.
type EmailExtractor struct {
	ExtractFn func(markup string) (*proofcheck.EmailContent, error)
}

func (e *EmailExtractor) Extract(markup string) (*proofcheck.EmailContent, error) {
	return e.ExtractFn(markup)
}
