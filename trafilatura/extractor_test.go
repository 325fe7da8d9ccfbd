package trafilatura_test

import (
	"testing"

	"github.com/mzaleski/proofcheck"
	"github.com/mzaleski/proofcheck/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts the main content and drops boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Spring Sale Approval</title></head>
<body>
<nav><a href="/">Home</a><a href="/campaigns">Campaigns</a></nav>
<article>
<h1>Spring Sale Campaign</h1>
<p>Approved copy: 50% off everything through Friday. The call to action is Shop Now.</p>
<p>Required legal: All rights reserved. Privacy Policy. Terms.</p>
</article>
<aside>Sidebar content</aside>
<footer>Internal tool footer</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
		assert.Contains(t, result.ContentHTML, "50% off everything")
		assert.NotContains(t, result.ContentHTML, "Sidebar content")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("")

		require.Error(t, err)
		assert.Equal(t, proofcheck.EINVALID, proofcheck.ErrorCode(err))
	})
}
