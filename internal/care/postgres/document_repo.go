// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/care"
	"github.com/carehaven/carehaven/internal/store"
)

const documentColumns = `id, owner_id, name, object_key, content_type, size_bytes, created_at, updated_at`

// DocumentRepository implements care.DocumentRepository using PostgreSQL.
// It stores metadata only; the bytes live in object storage.
type DocumentRepository struct {
	pool store.Querier
}

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(pool store.Querier) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

func (r *DocumentRepository) q(ctx context.Context) store.Querier {
	return store.Conn(ctx, r.pool)
}

// Create stores a new document.
func (r *DocumentRepository) Create(ctx context.Context, d *care.Document) error {
	_, err := r.q(ctx).Exec(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		d.ID.String(),
		d.OwnerID.String(),
		d.Name,
		d.ObjectKey,
		d.ContentType,
		d.SizeBytes,
		d.CreatedAt,
		d.UpdatedAt,
	)
	if err != nil {
		return oops.Code("DOCUMENT_CREATE_FAILED").
			With("operation", "insert document").
			With("id", d.ID.String()).
			Wrap(err)
	}
	return nil
}

// Get retrieves a document by ID.
func (r *DocumentRepository) Get(ctx context.Context, id ulid.ULID) (*care.Document, error) {
	row := r.q(ctx).QueryRow(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE id = $1
	`, id.String())

	d, err := scanDocument(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("DOCUMENT_NOT_FOUND").With("id", id.String()).Wrap(care.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("DOCUMENT_GET_FAILED").
			With("operation", "get document").
			With("id", id.String()).
			Wrap(err)
	}
	return d, nil
}

// Update renames a document.
func (r *DocumentRepository) Update(ctx context.Context, d *care.Document) error {
	return execOne(ctx, r.q(ctx), "DOCUMENT", "DOCUMENT_UPDATE_FAILED", "update document", d.ID, `
		UPDATE documents SET name = $2, updated_at = $3
		WHERE id = $1
	`, d.ID.String(), d.Name, d.UpdatedAt)
}

// Delete removes a document.
func (r *DocumentRepository) Delete(ctx context.Context, id ulid.ULID) error {
	return execOne(ctx, r.q(ctx), "DOCUMENT", "DOCUMENT_DELETE_FAILED", "delete document", id,
		`DELETE FROM documents WHERE id = $1`, id.String())
}

// List returns documents newest first, restricted to owner when it is not nil.
func (r *DocumentRepository) List(ctx context.Context, owner *ulid.ULID) ([]*care.Document, error) {
	rows, err := r.q(ctx).Query(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE $1::text IS NULL OR owner_id = $1
		ORDER BY created_at DESC, id DESC
	`, optionalID(owner))
	if err != nil {
		return nil, oops.Code("DOCUMENT_LIST_FAILED").With("operation", "list documents").Wrap(err)
	}
	docs, err := collect(rows, scanDocument)
	if err != nil {
		return nil, oops.Code("DOCUMENT_LIST_FAILED").With("operation", "scan document rows").Wrap(err)
	}
	return docs, nil
}

func scanDocument(row pgx.Row) (*care.Document, error) {
	var (
		d               care.Document
		idStr, ownerStr string
	)
	err := row.Scan(
		&idStr,
		&ownerStr,
		&d.Name,
		&d.ObjectKey,
		&d.ContentType,
		&d.SizeBytes,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if d.ID, err = parseID(idStr); err != nil {
		return nil, err
	}
	if d.OwnerID, err = parseID(ownerStr); err != nil {
		return nil, err
	}
	return &d, nil
}

var _ care.DocumentRepository = (*DocumentRepository)(nil)
