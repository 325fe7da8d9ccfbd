package proofcheck

// ExtractResult holds the main content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// It is used when ingesting reference approval documents supplied as HTML.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown. Ingested HTML reference documents
// are stored as markdown so rule evaluation sees plain text.
type Converter interface {
	Convert(html string) (string, error)
}
