package proofcheck_test

import (
	"testing"

	"github.com/mzaleski/proofcheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLenientMatch(t *testing.T) {
	t.Parallel()

	t.Run("matches case-insensitive containment in either direction", func(t *testing.T) {
		t.Parallel()

		assert.True(t, proofcheck.LenientMatch("Shop Now", "shop"))
		assert.True(t, proofcheck.LenientMatch("shop", "Shop Now"))
		assert.True(t, proofcheck.LenientMatch("  Shop Now  ", "SHOP NOW"))
	})

	t.Run("rejects unrelated strings", func(t *testing.T) {
		t.Parallel()

		assert.False(t, proofcheck.LenientMatch("Shop Now", "Learn More"))
	})

	t.Run("rejects empty strings", func(t *testing.T) {
		t.Parallel()

		assert.False(t, proofcheck.LenientMatch("", "shop"))
		assert.False(t, proofcheck.LenientMatch("shop", "   "))
	})
}

func TestComparator_Evaluate_CTAText(t *testing.T) {
	t.Parallel()

	cmp := proofcheck.NewComparator()

	content := &proofcheck.EmailContent{
		Text: "Big summer sale. Shop Now and save.",
		CTACandidates: []proofcheck.CTACandidate{
			{Text: "Shop Now", URL: "https://shop.test/sale", CanonicalURL: "https://shop.test/sale"},
		},
	}

	t.Run("passes vacuously when unconfigured, reporting found candidates", func(t *testing.T) {
		t.Parallel()

		results := cmp.Evaluate("", content, proofcheck.ComparisonConfig{})

		result := results[proofcheck.CheckCTAText]
		assert.Equal(t, proofcheck.StatusPass, result.Status)
		assert.Equal(t, []string{"Shop Now"}, result.Found)
		assert.Empty(t, result.Issues)
	})

	t.Run("matches expected labels bidirectionally", func(t *testing.T) {
		t.Parallel()

		results := cmp.Evaluate("", content, proofcheck.ComparisonConfig{
			RequiredCTATexts: []string{"shop"},
		})

		result := results[proofcheck.CheckCTAText]
		assert.Equal(t, proofcheck.StatusPass, result.Status)
		assert.Equal(t, []string{"shop"}, result.Matched)
	})

	t.Run("fails listing every unmatched label", func(t *testing.T) {
		t.Parallel()

		results := cmp.Evaluate("", content, proofcheck.ComparisonConfig{
			RequiredCTATexts: []string{"Shop", "Register Today", "Learn More"},
		})

		result := results[proofcheck.CheckCTAText]
		assert.Equal(t, proofcheck.StatusFail, result.Status)
		assert.Equal(t, []string{"Shop"}, result.Matched)
		assert.Equal(t, []string{"Register Today", "Learn More"}, result.Missing)
		require.Len(t, result.Issues, 2)
	})
}

func TestComparator_Evaluate_CTAURL(t *testing.T) {
	t.Parallel()

	cmp := proofcheck.NewComparator()

	content := &proofcheck.EmailContent{
		CTACandidates: []proofcheck.CTACandidate{
			{Text: "Shop Now", URL: "https://shop.test/sale/?utm_campaign=x", CanonicalURL: "https://shop.test/sale/"},
		},
	}

	t.Run("passes vacuously when unconfigured", func(t *testing.T) {
		t.Parallel()

		results := cmp.Evaluate("", content, proofcheck.ComparisonConfig{})

		assert.Equal(t, proofcheck.StatusPass, results[proofcheck.CheckCTAURL].Status)
	})

	t.Run("compares using the strict canonical form", func(t *testing.T) {
		t.Parallel()

		results := cmp.Evaluate("", content, proofcheck.ComparisonConfig{
			RequiredCTAURLs: []string{"https://SHOP.test/sale"},
		})

		result := results[proofcheck.CheckCTAURL]
		assert.Equal(t, proofcheck.StatusPass, result.Status)
		assert.Equal(t, []string{"https://SHOP.test/sale"}, result.Matched)
	})

	t.Run("fails on unmatched destinations", func(t *testing.T) {
		t.Parallel()

		results := cmp.Evaluate("", content, proofcheck.ComparisonConfig{
			RequiredCTAURLs: []string{"https://other.test/landing"},
		})

		result := results[proofcheck.CheckCTAURL]
		assert.Equal(t, proofcheck.StatusFail, result.Status)
		require.Len(t, result.Issues, 1)
	})
}

func TestComparator_Evaluate_Unsubscribe(t *testing.T) {
	t.Parallel()

	cmp := proofcheck.NewComparator()

	t.Run("passes on link signal alone even without the literal word", func(t *testing.T) {
		t.Parallel()

		content := &proofcheck.EmailContent{
			Text:        "Manage your preferences here.",
			Unsubscribe: proofcheck.UnsubscribeSignal{HasLinkMatch: true},
		}

		results := cmp.Evaluate("", content, proofcheck.ComparisonConfig{})

		result := results[proofcheck.CheckUnsubscribe]
		assert.Equal(t, proofcheck.StatusPass, result.Status)
		assert.Empty(t, result.Issues)
	})

	t.Run("passes when the configured phrase appears in the text", func(t *testing.T) {
		t.Parallel()

		content := &proofcheck.EmailContent{Text: "Click here to stop receiving these emails."}

		results := cmp.Evaluate("", content, proofcheck.ComparisonConfig{
			UnsubscribeText: "stop receiving",
		})

		assert.Equal(t, proofcheck.StatusPass, results[proofcheck.CheckUnsubscribe].Status)
	})

	t.Run("fails with a compliance issue when no signal exists", func(t *testing.T) {
		t.Parallel()

		content := &proofcheck.EmailContent{Text: "Just marketing copy."}

		results := cmp.Evaluate("", content, proofcheck.ComparisonConfig{})

		result := results[proofcheck.CheckUnsubscribe]
		assert.Equal(t, proofcheck.StatusFail, result.Status)
		require.Len(t, result.Issues, 1)
		assert.Contains(t, result.Issues[0], "compliant")
	})
}

func TestComparator_Evaluate_Footer(t *testing.T) {
	t.Parallel()

	cmp := proofcheck.NewComparator()

	t.Run("empty config falls back to the default legal set", func(t *testing.T) {
		t.Parallel()

		content := &proofcheck.EmailContent{
			Text:       "Sale!",
			FooterText: "© 2026 Acme. All Rights Reserved. Privacy Policy | Terms",
		}

		results := cmp.Evaluate("", content, proofcheck.ComparisonConfig{})

		result := results[proofcheck.CheckFooter]
		assert.Equal(t, proofcheck.StatusPass, result.Status)
		assert.Equal(t, proofcheck.DefaultFooterTexts, result.Expected)
	})

	t.Run("default set fails when any single item is missing", func(t *testing.T) {
		t.Parallel()

		content := &proofcheck.EmailContent{
			Text:       "Sale!",
			FooterText: "© 2026 Acme. All Rights Reserved. Privacy Policy",
		}

		results := cmp.Evaluate("", content, proofcheck.ComparisonConfig{})

		result := results[proofcheck.CheckFooter]
		assert.Equal(t, proofcheck.StatusFail, result.Status)
		assert.Equal(t, []string{"terms"}, result.Missing)
		require.Len(t, result.Issues, 1)
	})

	t.Run("explicit list passes when at least one entry is found", func(t *testing.T) {
		t.Parallel()

		content := &proofcheck.EmailContent{
			Text:       "Sale!",
			FooterText: "Acme Inc, 1 Main St",
		}

		results := cmp.Evaluate("", content, proofcheck.ComparisonConfig{
			RequiredFooterTexts: []string{"Acme Inc", "Registered in Delaware"},
		})

		result := results[proofcheck.CheckFooter]
		assert.Equal(t, proofcheck.StatusPass, result.Status)
		assert.Equal(t, []string{"Acme Inc"}, result.Matched)
		assert.Equal(t, []string{"Registered in Delaware"}, result.Missing)
		assert.Empty(t, result.Issues)
	})

	t.Run("explicit list fails only when nothing is found", func(t *testing.T) {
		t.Parallel()

		content := &proofcheck.EmailContent{Text: "Sale!", FooterText: "Hello"}

		results := cmp.Evaluate("", content, proofcheck.ComparisonConfig{
			RequiredFooterTexts: []string{"Acme Inc", "Registered in Delaware"},
		})

		result := results[proofcheck.CheckFooter]
		assert.Equal(t, proofcheck.StatusFail, result.Status)
		require.Len(t, result.Issues, 1)
	})

	t.Run("searches the full text when legal copy lives outside the footer block", func(t *testing.T) {
		t.Parallel()

		content := &proofcheck.EmailContent{
			Text:       "Sale! all rights reserved privacy policy terms",
			FooterText: "",
		}

		results := cmp.Evaluate("", content, proofcheck.ComparisonConfig{})

		assert.Equal(t, proofcheck.StatusPass, results[proofcheck.CheckFooter].Status)
	})
}

func TestComparator_Evaluate_Keywords(t *testing.T) {
	t.Parallel()

	cmp := proofcheck.NewComparator()

	t.Run("passes vacuously when unconfigured", func(t *testing.T) {
		t.Parallel()

		content := &proofcheck.EmailContent{Text: "anything"}

		results := cmp.Evaluate("", content, proofcheck.ComparisonConfig{})

		assert.Equal(t, proofcheck.StatusPass, results[proofcheck.CheckKeywords].Status)
	})

	t.Run("lists every missing keyword, not just the first", func(t *testing.T) {
		t.Parallel()

		content := &proofcheck.EmailContent{Text: "Huge savings this week only."}

		results := cmp.Evaluate("The 50% off offer ends Friday", content, proofcheck.ComparisonConfig{
			RequiredKeywords: []string{"50% off", "savings", "ends Friday"},
		})

		result := results[proofcheck.CheckKeywords]
		assert.Equal(t, proofcheck.StatusFail, result.Status)
		assert.Equal(t, []string{"savings"}, result.Matched)
		assert.Equal(t, []string{"50% off", "ends Friday"}, result.Missing)
		require.Len(t, result.Issues, 2)
		assert.Contains(t, result.Issues[0], "approval document")
	})

	t.Run("matches case-insensitively", func(t *testing.T) {
		t.Parallel()

		content := &proofcheck.EmailContent{Text: "Get 50% OFF today"}

		results := cmp.Evaluate("", content, proofcheck.ComparisonConfig{
			RequiredKeywords: []string{"50% off"},
		})

		assert.Equal(t, proofcheck.StatusPass, results[proofcheck.CheckKeywords].Status)
	})
}

func TestComparator_Evaluate_ComputesAllChecks(t *testing.T) {
	t.Parallel()

	cmp := proofcheck.NewComparator()

	// Every check should be present in the result map even when all fail.
	content := &proofcheck.EmailContent{Text: "nothing relevant"}

	results := cmp.Evaluate("", content, proofcheck.ComparisonConfig{
		RequiredCTATexts: []string{"Shop"},
		RequiredCTAURLs:  []string{"https://shop.test"},
		RequiredKeywords: []string{"sale"},
	})

	require.Len(t, results, 5)
	for _, name := range proofcheck.CheckOrder {
		assert.Contains(t, results, name)
	}
	assert.False(t, proofcheck.AllPassed(results))
}
