package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mzaleski/proofcheck"
)

// Ensure LoggingSemanticComparator implements proofcheck.SemanticComparator.
var _ proofcheck.SemanticComparator = (*LoggingSemanticComparator)(nil)

// LoggingSemanticComparator wraps a SemanticComparator with debug logging.
type LoggingSemanticComparator struct {
	next   proofcheck.SemanticComparator
	logger *slog.Logger
}

// NewLoggingSemanticComparator creates a new LoggingSemanticComparator.
func NewLoggingSemanticComparator(next proofcheck.SemanticComparator, logger *slog.Logger) *LoggingSemanticComparator {
	return &LoggingSemanticComparator{next: next, logger: logger}
}

// Compare delegates to the wrapped comparator and logs the operation.
func (c *LoggingSemanticComparator) Compare(ctx context.Context, referenceText, emailText string) (result *proofcheck.SemanticResult, err error) {
	defer func(begin time.Time) {
		match := false
		mockMode := false
		if result != nil {
			match = result.OverallMatch
			mockMode = result.MockMode
		}
		c.logger.Info("semantic comparison",
			"match", match,
			"mock_mode", mockMode,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Compare(ctx, referenceText, emailText)
}
