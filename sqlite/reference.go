package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/mzaleski/proofcheck"
)

// Compile-time interface verification.
var _ proofcheck.ReferenceService = (*ReferenceService)(nil)

// ReferenceService implements proofcheck.ReferenceService using SQLite.
type ReferenceService struct {
	db *DB
}

// NewReferenceService creates a new ReferenceService.
func NewReferenceService(db *DB) *ReferenceService {
	return &ReferenceService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// CreateReference creates a new reference document.
func (s *ReferenceService) CreateReference(ctx context.Context, doc *proofcheck.ReferenceDocument) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	existing, err := s.FindReferences(ctx, proofcheck.ReferenceFilter{Name: &doc.Name})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return proofcheck.Errorf(proofcheck.ECONFLICT, "reference %q already exists", doc.Name)
	}

	doc.ID = uuid.New().String()
	doc.ContentHash = hashContent(doc.Content)
	doc.CreatedAt = time.Now().UTC()
	doc.UpdatedAt = doc.CreatedAt

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO references_ (id, name, source, content, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Name, doc.Source, doc.Content, doc.ContentHash,
		doc.CreatedAt.Format(time.RFC3339), doc.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindReferenceByID retrieves a reference document by ID.
func (s *ReferenceService) FindReferenceByID(ctx context.Context, id string) (*proofcheck.ReferenceDocument, error) {
	var doc proofcheck.ReferenceDocument
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, source, content, content_hash, created_at, updated_at
		FROM references_
		WHERE id = ?
	`, id).Scan(&doc.ID, &doc.Name, &doc.Source, &doc.Content, &doc.ContentHash, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, proofcheck.Errorf(proofcheck.ENOTFOUND, "reference not found")
	}
	if err != nil {
		return nil, err
	}

	if doc.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if doc.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &doc, nil
}

// FindReferences retrieves reference documents matching the filter.
func (s *ReferenceService) FindReferences(ctx context.Context, filter proofcheck.ReferenceFilter) ([]*proofcheck.ReferenceDocument, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, name, source, content, content_hash, created_at, updated_at FROM references_ WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*proofcheck.ReferenceDocument
	for rows.Next() {
		var doc proofcheck.ReferenceDocument
		var createdAt, updatedAt string

		if err := rows.Scan(&doc.ID, &doc.Name, &doc.Source, &doc.Content, &doc.ContentHash, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if doc.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if doc.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}

		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// UpdateReference replaces the content of an existing reference document.
func (s *ReferenceService) UpdateReference(ctx context.Context, id string, content string) (*proofcheck.ReferenceDocument, error) {
	if content == "" {
		return nil, proofcheck.Errorf(proofcheck.EINVALID, "reference content required")
	}

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		UPDATE references_ SET content = ?, content_hash = ?, updated_at = ? WHERE id = ?
	`, content, hashContent(content), now.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, proofcheck.Errorf(proofcheck.ENOTFOUND, "reference not found")
	}

	return s.FindReferenceByID(ctx, id)
}

// DeleteReference permanently removes a reference document.
func (s *ReferenceService) DeleteReference(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM references_ WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return proofcheck.Errorf(proofcheck.ENOTFOUND, "reference not found")
	}

	return nil
}
