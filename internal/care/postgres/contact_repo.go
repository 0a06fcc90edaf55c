// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/carehaven/carehaven/internal/care"
	"github.com/carehaven/carehaven/internal/store"
)

// ContactRepository implements care.ContactRepository using PostgreSQL.
type ContactRepository struct {
	pool store.Querier
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(pool store.Querier) *ContactRepository {
	return &ContactRepository{pool: pool}
}

// Create stores a submission.
func (r *ContactRepository) Create(ctx context.Context, m *care.ContactMessage) error {
	_, err := store.Conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO contact_messages (id, name, email, subject, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, m.ID.String(), m.Name, m.Email, m.Subject, m.Message, m.CreatedAt)
	if err != nil {
		return oops.Code("CONTACT_CREATE_FAILED").
			With("operation", "insert contact message").
			With("id", m.ID.String()).
			Wrap(err)
	}
	return nil
}

// List returns every submission, newest first.
func (r *ContactRepository) List(ctx context.Context) ([]*care.ContactMessage, error) {
	rows, err := store.Conn(ctx, r.pool).Query(ctx, `
		SELECT id, name, email, subject, message, created_at
		FROM contact_messages
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, oops.Code("CONTACT_LIST_FAILED").With("operation", "list contact messages").Wrap(err)
	}
	msgs, err := collect(rows, func(row pgx.Row) (*care.ContactMessage, error) {
		var (
			m     care.ContactMessage
			idStr string
		)
		if err := row.Scan(&idStr, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		id, err := parseID(idStr)
		if err != nil {
			return nil, err
		}
		m.ID = id
		return &m, nil
	})
	if err != nil {
		return nil, oops.Code("CONTACT_LIST_FAILED").With("operation", "scan contact rows").Wrap(err)
	}
	return msgs, nil
}

var _ care.ContactRepository = (*ContactRepository)(nil)
