package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mzaleski/proofcheck"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	content, err := loadReferenceContent(deps, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", proofcheck.ErrorMessage(err))
		return err
	}

	// Force mode: replace the content of an existing reference
	if c.Force {
		existing, err := deps.References.FindReferences(deps.Ctx, proofcheck.ReferenceFilter{Name: &c.Name})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", proofcheck.ErrorMessage(err))
			return err
		}
		if len(existing) > 0 {
			updated, err := deps.References.UpdateReference(deps.Ctx, existing[0].ID, content)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", proofcheck.ErrorMessage(err))
				return err
			}
			fmt.Fprintf(deps.Stdout, "Updated reference %q (%s)\n", c.Name, updated.ID)
			return nil
		}
	}

	doc := &proofcheck.ReferenceDocument{
		Name:    c.Name,
		Source:  c.Source,
		Content: content,
	}

	if err := deps.References.CreateReference(deps.Ctx, doc); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", proofcheck.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added reference %q (%s, %d bytes)\n", c.Name, doc.ID, len(content))
	return nil
}

// loadReferenceContent reads the approval document from a URL or local file.
// HTML sources go through main-content extraction and Markdown conversion;
// plain text and Markdown files are stored as-is.
func loadReferenceContent(deps *Dependencies, source string) (string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		html, err := deps.Fetcher.Fetch(deps.Ctx, source)
		if err != nil {
			return "", err
		}
		return htmlToMarkdown(deps, html)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return "", proofcheck.Errorf(proofcheck.ENOTFOUND, "cannot read file %q: %v", source, err)
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".html", ".htm":
		return htmlToMarkdown(deps, string(data))
	default:
		return string(data), nil
	}
}

func htmlToMarkdown(deps *Dependencies, html string) (string, error) {
	result, err := deps.Extractor.Extract(html)
	if err != nil {
		return "", err
	}
	return deps.Converter.Convert(result.ContentHTML)
}
