package mock

import (
	"context"

	"github.com/mzaleski/proofcheck"
)

var _ proofcheck.SemanticComparator = (*SemanticComparator)(nil)

// SemanticComparator is a mock implementation of proofcheck.SemanticComparator.
type SemanticComparator struct {
	CompareFn func(ctx context.Context, referenceText, emailText string) (*proofcheck.SemanticResult, error)
}

func (c *SemanticComparator) Compare(ctx context.Context, referenceText, emailText string) (*proofcheck.SemanticResult, error) {
	return c.CompareFn(ctx, referenceText, emailText)
}
