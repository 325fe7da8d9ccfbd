package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mzaleski/proofcheck"
	"github.com/mzaleski/proofcheck/mock"
	pcslog "github.com/mzaleski/proofcheck/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with size and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>email</html>", nil
			},
		}

		fetcher := pcslog.NewLoggingFetcher(inner, logger)
		markup, err := fetcher.Fetch(context.Background(), "https://shop.test/sale")

		require.NoError(t, err)
		assert.NotEmpty(t, markup)
		output := buf.String()
		assert.Contains(t, output, "email fetch")
		assert.Contains(t, output, "url=https://shop.test/sale")
		assert.Contains(t, output, "bytes=18")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("connection failed")
			},
		}

		fetcher := pcslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://shop.test/sale")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "email fetch")
		assert.Contains(t, output, "err=\"connection failed\"")
	})

	t.Run("delegates close", func(t *testing.T) {
		t.Parallel()

		closed := false
		inner := &mock.Fetcher{
			CloseFn: func() error {
				closed = true
				return nil
			},
		}

		fetcher := pcslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
		require.NoError(t, fetcher.Close())
		assert.True(t, closed)
	})
}

func TestLoggingSemanticComparator_Compare(t *testing.T) {
	t.Parallel()

	t.Run("logs match and mock mode", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SemanticComparator{
			CompareFn: func(ctx context.Context, referenceText, emailText string) (*proofcheck.SemanticResult, error) {
				return &proofcheck.SemanticResult{OverallMatch: true, MockMode: true}, nil
			},
		}

		comparator := pcslog.NewLoggingSemanticComparator(inner, logger)
		result, err := comparator.Compare(context.Background(), "reference", "email")

		require.NoError(t, err)
		assert.True(t, result.OverallMatch)
		output := buf.String()
		assert.Contains(t, output, "semantic comparison")
		assert.Contains(t, output, "match=true")
		assert.Contains(t, output, "mock_mode=true")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.SemanticComparator{
			CompareFn: func(ctx context.Context, referenceText, emailText string) (*proofcheck.SemanticResult, error) {
				return nil, errors.New("model unavailable")
			},
		}

		comparator := pcslog.NewLoggingSemanticComparator(inner, logger)
		_, err := comparator.Compare(context.Background(), "reference", "email")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "match=false")
		assert.Contains(t, output, "err=\"model unavailable\"")
	})
}
