package mock

import (
	"context"

	"github.com/mzaleski/proofcheck"
)

var _ proofcheck.ReferenceService = (*ReferenceService)(nil)

// ReferenceService is a mock implementation of proofcheck.ReferenceService.
type ReferenceService struct {
	CreateReferenceFn   func(ctx context.Context, doc *proofcheck.ReferenceDocument) error
	FindReferenceByIDFn func(ctx context.Context, id string) (*proofcheck.ReferenceDocument, error)
	FindReferencesFn    func(ctx context.Context, filter proofcheck.ReferenceFilter) ([]*proofcheck.ReferenceDocument, error)
	UpdateReferenceFn   func(ctx context.Context, id string, content string) (*proofcheck.ReferenceDocument, error)
	DeleteReferenceFn   func(ctx context.Context, id string) error
}

func (s *ReferenceService) CreateReference(ctx context.Context, doc *proofcheck.ReferenceDocument) error {
	return s.CreateReferenceFn(ctx, doc)
}

func (s *ReferenceService) FindReferenceByID(ctx context.Context, id string) (*proofcheck.ReferenceDocument, error) {
	return s.FindReferenceByIDFn(ctx, id)
}

func (s *ReferenceService) FindReferences(ctx context.Context, filter proofcheck.ReferenceFilter) ([]*proofcheck.ReferenceDocument, error) {
	return s.FindReferencesFn(ctx, filter)
}

func (s *ReferenceService) UpdateReference(ctx context.Context, id string, content string) (*proofcheck.ReferenceDocument, error) {
	return s.UpdateReferenceFn(ctx, id, content)
}

func (s *ReferenceService) DeleteReference(ctx context.Context, id string) error {
	return s.DeleteReferenceFn(ctx, id)
}
