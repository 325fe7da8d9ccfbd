package proofcheck

import (
	"context"
	"time"
)

// ReferenceDocument is a stored reference approval document. Its content is
// already-normalized plain text; the engine performs no file-format parsing.
type ReferenceDocument struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Source      string    `json:"source"` // file path or URL the content was ingested from
	Content     string    `json:"content"`
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the reference document contains invalid fields.
func (d *ReferenceDocument) Validate() error {
	if d.Name == "" {
		return Errorf(EINVALID, "reference name required")
	}
	if d.Content == "" {
		return Errorf(EINVALID, "reference content required")
	}
	return nil
}

// ReferenceFilter represents a filter for FindReferences.
type ReferenceFilter struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ReferenceService manages stored reference documents. The verification
// engine never reads the store itself; callers load a document and pass its
// content explicitly on every comparison call, so concurrent requests for
// different documents cannot interfere.
type ReferenceService interface {
	// CreateReference creates a new reference document.
	CreateReference(ctx context.Context, doc *ReferenceDocument) error

	// FindReferenceByID retrieves a reference document by ID.
	// Returns ENOTFOUND if it does not exist.
	FindReferenceByID(ctx context.Context, id string) (*ReferenceDocument, error)

	// FindReferences retrieves reference documents matching the filter.
	FindReferences(ctx context.Context, filter ReferenceFilter) ([]*ReferenceDocument, error)

	// UpdateReference replaces the content of an existing reference document.
	// Returns ENOTFOUND if it does not exist.
	UpdateReference(ctx context.Context, id string, content string) (*ReferenceDocument, error)

	// DeleteReference permanently removes a reference document.
	// Returns ENOTFOUND if it does not exist.
	DeleteReference(ctx context.Context, id string) error
}
