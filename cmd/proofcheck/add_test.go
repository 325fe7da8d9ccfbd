package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mzaleski/proofcheck"
	main "github.com/mzaleski/proofcheck/cmd/proofcheck"
	"github.com/mzaleski/proofcheck/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAddCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("stores a plain text file as-is", func(t *testing.T) {
		t.Parallel()

		path := writeTempFile(t, "spring.md", "# Spring Sale\n\n50% off everything.")

		var created *proofcheck.ReferenceDocument
		references := &mock.ReferenceService{
			CreateReferenceFn: func(_ context.Context, doc *proofcheck.ReferenceDocument) error {
				doc.ID = "ref-1"
				created = doc
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     stderr,
			References: references,
		}

		cmd := &main.AddCmd{Name: "spring-sale", Source: path}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "spring-sale", created.Name)
		assert.Equal(t, path, created.Source)
		assert.Equal(t, "# Spring Sale\n\n50% off everything.", created.Content)
		assert.Contains(t, stdout.String(), "Added reference")
		assert.Empty(t, stderr.String())
	})

	t.Run("routes html files through extraction and conversion", func(t *testing.T) {
		t.Parallel()

		path := writeTempFile(t, "spring.html", "<html><body><article><h1>Spring</h1></article></body></html>")

		var created *proofcheck.ReferenceDocument
		references := &mock.ReferenceService{
			CreateReferenceFn: func(_ context.Context, doc *proofcheck.ReferenceDocument) error {
				created = doc
				return nil
			},
		}

		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*proofcheck.ExtractResult, error) {
				return &proofcheck.ExtractResult{Title: "Spring", ContentHTML: "<h1>Spring</h1>"}, nil
			},
		}
		converter := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				assert.Equal(t, "<h1>Spring</h1>", html)
				return "# Spring", nil
			},
		}

		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     &bytes.Buffer{},
			Stderr:     &bytes.Buffer{},
			References: references,
			Extractor:  extractor,
			Converter:  converter,
		}

		cmd := &main.AddCmd{Name: "spring-sale", Source: path}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "# Spring", created.Content)
	})

	t.Run("fetches url sources through the html pipeline", func(t *testing.T) {
		t.Parallel()

		var fetchedURL string
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				fetchedURL = url
				return "<html><body><p>Approved copy</p></body></html>", nil
			},
		}
		extractor := &mock.Extractor{
			ExtractFn: func(html string) (*proofcheck.ExtractResult, error) {
				return &proofcheck.ExtractResult{ContentHTML: "<p>Approved copy</p>"}, nil
			},
		}
		converter := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "Approved copy", nil
			},
		}

		var created *proofcheck.ReferenceDocument
		references := &mock.ReferenceService{
			CreateReferenceFn: func(_ context.Context, doc *proofcheck.ReferenceDocument) error {
				created = doc
				return nil
			},
		}

		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     &bytes.Buffer{},
			Stderr:     &bytes.Buffer{},
			References: references,
			Fetcher:    fetcher,
			Extractor:  extractor,
			Converter:  converter,
		}

		cmd := &main.AddCmd{Name: "summer", Source: "https://intranet.test/approvals/summer"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "https://intranet.test/approvals/summer", fetchedURL)
		require.NotNil(t, created)
		assert.Equal(t, "Approved copy", created.Content)
	})

	t.Run("with --force updates an existing reference", func(t *testing.T) {
		t.Parallel()

		path := writeTempFile(t, "v2.md", "new content")

		var updatedID, updatedContent string
		references := &mock.ReferenceService{
			FindReferencesFn: func(_ context.Context, filter proofcheck.ReferenceFilter) ([]*proofcheck.ReferenceDocument, error) {
				return []*proofcheck.ReferenceDocument{{ID: "ref-1", Name: "spring-sale"}}, nil
			},
			UpdateReferenceFn: func(_ context.Context, id, content string) (*proofcheck.ReferenceDocument, error) {
				updatedID = id
				updatedContent = content
				return &proofcheck.ReferenceDocument{ID: id, Name: "spring-sale", Content: content}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     &bytes.Buffer{},
			References: references,
		}

		cmd := &main.AddCmd{Name: "spring-sale", Source: path, Force: true}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "ref-1", updatedID)
		assert.Equal(t, "new content", updatedContent)
		assert.Contains(t, stdout.String(), "Updated reference")
	})

	t.Run("returns error for unreadable files", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		cmd := &main.AddCmd{Name: "x", Source: filepath.Join(t.TempDir(), "missing.md")}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, proofcheck.ENOTFOUND, proofcheck.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("returns error when create fails", func(t *testing.T) {
		t.Parallel()

		path := writeTempFile(t, "dup.md", "content")

		references := &mock.ReferenceService{
			CreateReferenceFn: func(_ context.Context, doc *proofcheck.ReferenceDocument) error {
				return proofcheck.Errorf(proofcheck.ECONFLICT, "reference already exists")
			},
		}

		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     &bytes.Buffer{},
			Stderr:     stderr,
			References: references,
		}

		cmd := &main.AddCmd{Name: "dup", Source: path}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, proofcheck.ECONFLICT, proofcheck.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}
